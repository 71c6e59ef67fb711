// Package registry holds the per-object-type field tables the compiler
// dispatches through: field descriptors, query prefix, default sorts and
// fetch type, and the capability interfaces implemented by the resolver and
// dialect packages.
//
// A registry is built once, before any compilation, and is read-only
// afterward. Configurations come either from explicit Go construction or
// from a directory of CUE files (LoadDir).
package registry

import (
	"sort"

	"github.com/finchql/finch/internal/qlang"
)

// Context carries per-compilation state shared across resolvers: the object
// type being compiled and the bound-parameter list that parameterized
// dialects accumulate. One Context exists per compile; it is never shared
// across compilations.
type Context struct {
	Type   qlang.ObjectType
	Params []any
}

// Bind appends a value to the bound-parameter list and returns the
// positional placeholder that stands for it in the native query.
func (c *Context) Bind(v any) string {
	c.Params = append(c.Params, v)
	return "?"
}

// ResolvedTerm is the transient product of field and value resolution for
// one term, scoped to a single compilation pass.
type ResolvedTerm struct {
	Descriptor *FieldDescriptor
	// Field is the resolved native field name for single-field terms.
	Field string
	// Fields is the resolved multi-field expansion; nil for single-field
	// terms. When set, Field is empty.
	Fields []string
	// Values is the ordered list of dialect-ready value strings, filled by
	// the value resolver.
	Values []string
}

// FieldResolver validates a term's bracket qualifiers and translates the
// field template into final native field name(s). Implementations are pure
// functions of their inputs plus the context.
type FieldResolver interface {
	Resolve(ctx *Context, term qlang.Term, desc *FieldDescriptor) (*ResolvedTerm, error)
}

// ValueResolver type-checks and normalizes a term's literal into
// dialect-ready value strings. Parameterized dialects bind the typed value
// through the context and return a placeholder instead.
type ValueResolver interface {
	ResolveValues(term qlang.Term, desc *FieldDescriptor, ctx *Context) ([]string, error)
}

// SubQueryBuilder assembles one native clause from a resolved term.
type SubQueryBuilder interface {
	BuildQuery(rt *ResolvedTerm, term qlang.Term) (string, error)
}

// Conjunction tags how a boolean clause joins the clauses before it.
type Conjunction int

const (
	// ConjNone marks the first clause of a list.
	ConjNone Conjunction = iota
	ConjAnd
	ConjOr
	ConjNot
)

// BooleanClause is one native fragment tagged with its conjunction.
type BooleanClause struct {
	Conj     Conjunction
	Fragment string
}

// CompleteQueryBuilder combines clauses into the final native query for one
// dialect. Finish runs exactly once per compile, including for queries with
// zero clauses.
type CompleteQueryBuilder interface {
	// AddBooleanClause appends a fragment to the clause list, negating it
	// first when op is the not-equal operator.
	AddBooleanClause(list []BooleanClause, conj Conjunction, fragment string, op qlang.Operator) []BooleanClause
	// Negate wraps a fragment in the dialect's negation form.
	Negate(fragment string) string
	// BooleanQuery combines the clause list into one fragment per the
	// conjunction tags. An empty list yields an empty fragment.
	BooleanQuery(list []BooleanClause) string
	// Finish applies type policy to the combined fragment: prepends the
	// configuration's prefix, fills default sorts when the query specified
	// none, and resolves fetch-type placeholders. Returns the native query.
	Finish(fragment string, q *qlang.CompiledQuery, cfg *Configuration) string
}

// FieldDescriptor describes one (object type, field key) registration.
// Descriptors are constructed at registry-build time and read-only during
// compilation; they are shared across all queries for the type.
type FieldDescriptor struct {
	Key qlang.FieldKey
	// Template is the native field template. Localized and price fields
	// use format verbs filled from the term's qualifiers.
	Template string
	// Templates is the multi-field expansion for logical fields that fan
	// out into several native fields. Empty for single-field descriptors.
	Templates []string
	ValueType qlang.FieldValueType
	// EnumValues is the allowed literal set for ValueEnum fields.
	EnumValues []string
	// MatchAll switches a multi-field term from any-field-matches (the
	// default) to all-fields-match.
	MatchAll bool

	Resolver FieldResolver
	Values   ValueResolver
	SubQuery SubQueryBuilder
}

// Configuration is the compile-time table for one object type.
type Configuration struct {
	Type    qlang.ObjectType
	Dialect qlang.Dialect
	// Prefix is prepended to every compiled query for this type. For the
	// SQL dialect it is a format template whose verb receives the
	// fetch-type identifier column.
	Prefix       string
	DefaultSorts []qlang.SortClause
	DefaultFetch qlang.FetchType
	Builder      CompleteQueryBuilder

	fields map[qlang.FieldKey]*FieldDescriptor
}

// NewConfiguration creates an empty configuration for one object type.
func NewConfiguration(t qlang.ObjectType, d qlang.Dialect) *Configuration {
	return &Configuration{
		Type:         t,
		Dialect:      d,
		DefaultFetch: qlang.FetchUID,
		fields:       make(map[qlang.FieldKey]*FieldDescriptor),
	}
}

// Register adds a field descriptor. Later registrations replace earlier
// ones for the same key; registration only happens at build time.
func (c *Configuration) Register(desc *FieldDescriptor) {
	c.fields[desc.Key] = desc
}

// Lookup returns the descriptor for a field key, or absent.
func (c *Configuration) Lookup(key qlang.FieldKey) (*FieldDescriptor, bool) {
	d, ok := c.fields[key]
	return d, ok
}

// FieldKeys returns the registered keys in sorted order.
func (c *Configuration) FieldKeys() []qlang.FieldKey {
	keys := make([]qlang.FieldKey, 0, len(c.fields))
	for k := range c.fields {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Registry maps object types to their configurations.
type Registry struct {
	configs map[qlang.ObjectType]*Configuration
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{configs: make(map[qlang.ObjectType]*Configuration)}
}

// Add registers a configuration under its object type.
func (r *Registry) Add(cfg *Configuration) {
	r.configs[cfg.Type] = cfg
}

// Config returns the configuration for an object type, or absent.
func (r *Registry) Config(t qlang.ObjectType) (*Configuration, bool) {
	cfg, ok := r.configs[t]
	return cfg, ok
}

// Types returns the registered object types in sorted order.
func (r *Registry) Types() []qlang.ObjectType {
	types := make([]qlang.ObjectType, 0, len(r.configs))
	for t := range r.configs {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

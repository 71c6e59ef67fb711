// Package assembler accumulates parser callbacks into a compiled query.
// The parser drives it strictly in grammar order: query type first, then
// fetch, clauses, sorts, and paging; PostParse seals the result.
package assembler

import (
	"errors"
	"strconv"

	"github.com/finchql/finch/internal/qlang"
	"github.com/finchql/finch/internal/registry"
)

// Assembler builds one CompiledQuery. Not safe for concurrent use; each
// parse gets a fresh assembler.
type Assembler struct {
	reg *registry.Registry
	cfg *registry.Configuration
	ctx *registry.Context

	q        *qlang.CompiledQuery
	fetchSet bool
}

func New(reg *registry.Registry) *Assembler {
	return &Assembler{reg: reg}
}

// SetQueryType selects the object type configuration. It must be the
// first callback; every later callback fails without it.
func (a *Assembler) SetQueryType(name string) error {
	t, ok := qlang.ParseObjectType(name)
	if !ok {
		return qlang.Errorf(qlang.ErrUnsupportedQueryType, "unsupported query type %q", name)
	}
	cfg, ok := a.reg.Config(t)
	if !ok {
		return qlang.Errorf(qlang.ErrUnsupportedQueryType, "no configuration registered for type %s", t)
	}
	a.cfg = cfg
	a.ctx = &registry.Context{Type: t}
	a.q = qlang.NewCompiledQuery(t)
	a.q.Dialect = cfg.Dialect
	return nil
}

func (a *Assembler) SetFetchType(name string) error {
	f, ok := qlang.ParseFetchType(name)
	if !ok {
		return qlang.Errorf(qlang.ErrUnknownFetchType, "unknown fetch type %q", name)
	}
	a.q.Fetch = f
	a.fetchSet = true
	return nil
}

func (a *Assembler) SetLimit(raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return qlang.Errorf(qlang.ErrLimitFormat, "limit must be a positive integer, got %q", raw)
	}
	a.q.Limit = n
	return nil
}

func (a *Assembler) SetStartIndex(raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return qlang.Errorf(qlang.ErrLimitFormat, "offset must be a non-negative integer, got %q", raw)
	}
	a.q.StartIndex = n
	return nil
}

// MakeTerm constructs a term, reporting unknown field names against the
// current object type so the caller sees which type rejected the field.
func (a *Assembler) MakeTerm(rawField, param2, param1, rawOp, literal string, quoted bool) (qlang.Term, error) {
	term, err := qlang.NewTerm(rawField, param2, param1, rawOp, literal, quoted)
	if err != nil {
		var perr *qlang.ParseError
		if errors.As(err, &perr) && perr.Kind == qlang.ErrUnknownField {
			return term, qlang.Errorf(qlang.ErrFieldNotSupported,
				"field %s is not supported for type %s", rawField, a.cfg.Type)
		}
		return term, err
	}
	return term, nil
}

// BuildTerm resolves one comparison into a native query fragment: field
// resolution, value resolution, then sub-query rendering. Field-level
// resolvers come from the type's descriptor; an unregistered field key is
// reported against the current type.
func (a *Assembler) BuildTerm(term qlang.Term) (string, error) {
	desc, ok := a.cfg.Lookup(term.Field())
	if !ok {
		return "", qlang.Errorf(qlang.ErrFieldNotSupported,
			"field %s is not supported for type %s", term.Field(), a.cfg.Type)
	}
	rt, err := desc.Resolver.Resolve(a.ctx, term, desc)
	if err != nil {
		return "", err
	}
	rt.Values, err = desc.Values.ResolveValues(term, desc, a.ctx)
	if err != nil {
		return "", err
	}
	return desc.SubQuery.BuildQuery(rt, term)
}

// AddClause appends a fragment to a clause list via the dialect builder.
func (a *Assembler) AddClause(list []registry.BooleanClause, conj registry.Conjunction, fragment string, op qlang.Operator) []registry.BooleanClause {
	return a.cfg.Builder.AddBooleanClause(list, conj, fragment, op)
}

// BooleanQuery collapses a clause list into a single fragment.
func (a *Assembler) BooleanQuery(list []registry.BooleanClause) string {
	return a.cfg.Builder.BooleanQuery(list)
}

func (a *Assembler) AddSort(field string, descending bool) {
	a.q.Sorts = append(a.q.Sorts, qlang.SortClause{Field: field, Descending: descending})
}

func (a *Assembler) SetValidateOnly(v bool) {
	a.q.ValidateOnly = v
}

// PostParse finalizes the query: applies the type's default fetch when
// the query named none, transfers bound parameters, and renders the
// native query text.
func (a *Assembler) PostParse(whereFragment string) *qlang.CompiledQuery {
	if !a.fetchSet {
		a.q.Fetch = a.cfg.DefaultFetch
	}
	if len(a.q.Sorts) == 0 {
		a.q.Sorts = append(a.q.Sorts, a.cfg.DefaultSorts...)
	}
	a.q.Params = a.ctx.Params
	a.q.Native = a.cfg.Builder.Finish(whereFragment, a.q, a.cfg)
	return a.q
}

// Package sqldialect renders query terms into parameterized SQL for
// directly queryable object types. Every literal travels as a positional
// parameter; the generated text never contains a user-supplied value.
package sqldialect

import (
	"fmt"
	"strings"

	"github.com/finchql/finch/internal/qlang"
	"github.com/finchql/finch/internal/registry"
)

// Values binds the term's literal into the compilation context and emits
// the placeholder. Validation of numeric and date forms happens here so a
// malformed literal fails at compile time, not in the database.
type Values struct{}

func (Values) ResolveValues(term qlang.Term, desc *registry.FieldDescriptor, ctx *registry.Context) ([]string, error) {
	lit := term.Literal()
	switch desc.ValueType {
	case qlang.ValueString:
		if !term.Quoted() {
			return nil, qlang.Errorf(qlang.ErrValueFormat,
				"value for field %s must be quoted", desc.Key)
		}
	case qlang.ValueFloat, qlang.ValueBoolean, qlang.ValueDate, qlang.ValueEnum:
		// The built-in SQL configurations register string fields only.
		return nil, qlang.Errorf(qlang.ErrValueFormat,
			"value type %s is not supported in SQL queries for field %s", desc.ValueType, desc.Key)
	}
	return []string{ctx.Bind(lit)}, nil
}

// SubQuery renders one resolved term as `field op ?`. Inequality renders
// as equality; the complete query builder applies the negation.
type SubQuery struct{}

func (SubQuery) BuildQuery(rt *registry.ResolvedTerm, term qlang.Term) (string, error) {
	if len(rt.Fields) > 0 {
		return "", qlang.Errorf(qlang.ErrFieldNotSupported,
			"field %s expands to multiple columns and cannot be queried over SQL", rt.Descriptor.Key)
	}
	if len(rt.Values) != 1 {
		return "", qlang.Errorf(qlang.ErrValueFormat,
			"expected a single value for field %s, got %d", rt.Descriptor.Key, len(rt.Values))
	}
	op := term.Operator()
	if op == qlang.OpNotEqual {
		op = qlang.OpEqual
	}
	return fmt.Sprintf("%s %s %s", rt.Field, op, rt.Values[0]), nil
}

// Builder assembles SQL boolean expressions with explicit AND/OR/AND NOT
// keywords, parenthesizing any grouping of more than one clause.
type Builder struct{}

func (Builder) AddBooleanClause(list []registry.BooleanClause, conj registry.Conjunction, fragment string, op qlang.Operator) []registry.BooleanClause {
	if op == qlang.OpNotEqual {
		if conj == registry.ConjAnd {
			conj = registry.ConjNot
		} else {
			fragment = Builder{}.Negate(fragment)
		}
	}
	return append(list, registry.BooleanClause{Conj: conj, Fragment: fragment})
}

func (Builder) Negate(fragment string) string {
	return "NOT (" + fragment + ")"
}

func (Builder) BooleanQuery(list []registry.BooleanClause) string {
	if len(list) == 0 {
		return ""
	}
	if len(list) == 1 && list[0].Conj == registry.ConjNone {
		return list[0].Fragment
	}
	var b strings.Builder
	b.WriteByte('(')
	for i, c := range list {
		if i > 0 {
			switch c.Conj {
			case registry.ConjOr:
				b.WriteString(" OR ")
			case registry.ConjNot:
				b.WriteString(" AND NOT ")
			default:
				b.WriteString(" AND ")
			}
		} else if c.Conj == registry.ConjNot {
			b.WriteString("NOT ")
		}
		b.WriteString(c.Fragment)
	}
	b.WriteByte(')')
	return b.String()
}

// Finish renders the final statement: SELECT prefix with the fetch
// column, optional WHERE clause, and a mandatory ORDER BY so result
// paging is stable.
func (Builder) Finish(fragment string, q *qlang.CompiledQuery, cfg *registry.Configuration) string {
	column := "uidpk"
	if q.Fetch == qlang.FetchGUID {
		column = "guid"
	}
	var b strings.Builder
	fmt.Fprintf(&b, cfg.Prefix, column)
	if fragment != "" {
		b.WriteString(" WHERE ")
		b.WriteString(fragment)
	}
	b.WriteString(" ORDER BY ")
	sorts := q.Sorts
	if len(sorts) == 0 {
		sorts = cfg.DefaultSorts
	}
	if len(sorts) == 0 {
		sorts = []qlang.SortClause{{Field: column}}
	}
	for i, s := range sorts {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(s.Field)
		if s.Descending {
			b.WriteString(" DESC")
		} else {
			b.WriteString(" ASC")
		}
	}
	return b.String()
}

package lucene

import (
	"strings"

	"github.com/finchql/finch/internal/qlang"
	"github.com/finchql/finch/internal/registry"
)

// Builder assembles Lucene boolean queries. AND lists render every clause
// as required (`+`), OR lists leave clauses optional, and negated clauses
// carry the prohibit marker (`-`).
type Builder struct{}

func (Builder) AddBooleanClause(list []registry.BooleanClause, conj registry.Conjunction, fragment string, op qlang.Operator) []registry.BooleanClause {
	if op == qlang.OpNotEqual {
		if conj == registry.ConjAnd {
			conj = registry.ConjNot
		} else {
			// Standalone and OR'd negations need the match-all guard so
			// the clause is satisfiable on its own.
			fragment = Builder{}.Negate(fragment)
		}
	}
	return append(list, registry.BooleanClause{Conj: conj, Fragment: fragment})
}

func (Builder) Negate(fragment string) string {
	return "(*:* -" + fragment + ")"
}

func (Builder) BooleanQuery(list []registry.BooleanClause) string {
	if len(list) == 1 && list[0].Conj == registry.ConjNone {
		return list[0].Fragment
	}
	required := false
	for _, c := range list {
		if c.Conj == registry.ConjAnd || c.Conj == registry.ConjNot {
			required = true
			break
		}
	}
	parts := make([]string, 0, len(list))
	for _, c := range list {
		switch {
		case c.Conj == registry.ConjNot:
			parts = append(parts, "-"+c.Fragment)
		case required:
			parts = append(parts, "+"+c.Fragment)
		default:
			parts = append(parts, c.Fragment)
		}
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Finish prepends the configuration's type-restriction prefix. Limits and
// offsets are carried on the compiled query, not in the query string.
func (Builder) Finish(fragment string, q *qlang.CompiledQuery, cfg *registry.Configuration) string {
	if fragment == "" {
		return cfg.Prefix
	}
	return cfg.Prefix + " " + fragment
}

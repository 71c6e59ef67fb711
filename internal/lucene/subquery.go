package lucene

import (
	"fmt"
	"strings"

	"github.com/finchql/finch/internal/qlang"
	"github.com/finchql/finch/internal/registry"
)

// SubQuery renders a single resolved term into a Lucene fragment.
// Relational operators become open or closed range queries; inequality is
// rendered as equality here and negated by the complete query builder.
type SubQuery struct{}

func (SubQuery) BuildQuery(rt *registry.ResolvedTerm, term qlang.Term) (string, error) {
	if len(rt.Values) != 1 {
		return "", qlang.Errorf(qlang.ErrValueFormat,
			"expected a single value for field %s, got %d", rt.Descriptor.Key, len(rt.Values))
	}
	value := rt.Values[0]

	if len(rt.Fields) > 0 {
		return multiField(rt, value), nil
	}

	switch term.Operator() {
	case qlang.OpEqual, qlang.OpNotEqual:
		return fmt.Sprintf("%s:%s", rt.Field, value), nil
	case qlang.OpGreater:
		return fmt.Sprintf("%s:{%s TO *}", rt.Field, value), nil
	case qlang.OpGreaterEqual:
		return fmt.Sprintf("%s:[%s TO *]", rt.Field, value), nil
	case qlang.OpLess:
		return fmt.Sprintf("%s:{* TO %s}", rt.Field, value), nil
	case qlang.OpLessEqual:
		return fmt.Sprintf("%s:[* TO %s]", rt.Field, value), nil
	}
	return "", qlang.Errorf(qlang.ErrUnknownOperator,
		"operator %s is not supported for field %s", term.Operator(), rt.Descriptor.Key)
}

// multiField matches the value against every expanded field. MatchAll
// requires all fields to match; the default is any-field match.
func multiField(rt *registry.ResolvedTerm, value string) string {
	parts := make([]string, len(rt.Fields))
	for i, f := range rt.Fields {
		if rt.Descriptor.MatchAll {
			parts[i] = fmt.Sprintf("+%s:%s", f, value)
		} else {
			parts[i] = fmt.Sprintf("%s:%s", f, value)
		}
	}
	return "(" + strings.Join(parts, " ") + ")"
}

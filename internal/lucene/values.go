package lucene

import (
	"strconv"
	"strings"
	"time"

	"github.com/finchql/finch/internal/qlang"
	"github.com/finchql/finch/internal/registry"
)

// dateLayouts are the accepted literal forms for DATE fields, tried in
// order. Parsed times are normalized to UTC RFC 3339 for the index.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Values converts term literals into index-ready strings. String and date
// values are escaped; numeric, boolean and enum values pass through
// unquoted after validation.
type Values struct{}

func (Values) ResolveValues(term qlang.Term, desc *registry.FieldDescriptor, _ *registry.Context) ([]string, error) {
	lit := term.Literal()
	switch desc.ValueType {
	case qlang.ValueString:
		if !term.Quoted() {
			return nil, qlang.Errorf(qlang.ErrValueFormat,
				"value for field %s must be quoted", desc.Key)
		}
		return []string{Escape(lit)}, nil

	case qlang.ValueFloat:
		if term.Quoted() {
			return nil, qlang.Errorf(qlang.ErrValueFormat,
				"numeric value for field %s must not be quoted", desc.Key)
		}
		if _, err := strconv.ParseFloat(lit, 64); err != nil {
			return nil, qlang.Errorf(qlang.ErrValueFormat,
				"invalid numeric value %q for field %s", lit, desc.Key)
		}
		return []string{lit}, nil

	case qlang.ValueBoolean:
		switch strings.ToLower(lit) {
		case "true":
			return []string{"true"}, nil
		case "false":
			return []string{"false"}, nil
		}
		return nil, qlang.Errorf(qlang.ErrValueFormat,
			"invalid boolean value %q for field %s", lit, desc.Key)

	case qlang.ValueEnum:
		if term.Quoted() {
			return nil, qlang.Errorf(qlang.ErrValueFormat,
				"enum value for field %s must not be quoted", desc.Key)
		}
		for _, v := range desc.EnumValues {
			if v == lit {
				return []string{lit}, nil
			}
		}
		return nil, qlang.Errorf(qlang.ErrValueFormat,
			"value %q is not valid for field %s, expected one of %s",
			lit, desc.Key, strings.Join(desc.EnumValues, ", "))

	case qlang.ValueDate:
		for _, layout := range dateLayouts {
			t, err := time.Parse(layout, lit)
			if err == nil {
				return []string{Escape(t.UTC().Format(time.RFC3339))}, nil
			}
		}
		return nil, qlang.Errorf(qlang.ErrValueFormat,
			"invalid date value %q for field %s", lit, desc.Key)
	}

	return nil, qlang.Errorf(qlang.ErrValueFormat,
		"unsupported value type %s for field %s", desc.ValueType, desc.Key)
}

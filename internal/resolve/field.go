// Package resolve implements the field-resolver capabilities: each resolver
// validates a term's bracket qualifiers and substitutes them into the
// descriptor's native field template. Resolvers are stateless and shared
// across object types.
package resolve

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/finchql/finch/internal/qlang"
	"github.com/finchql/finch/internal/registry"
)

// Plain resolves fields that take no qualifiers. The native field name is
// the template verbatim; multi-template descriptors expand as-is.
type Plain struct{}

func (Plain) Resolve(_ *registry.Context, term qlang.Term, desc *registry.FieldDescriptor) (*registry.ResolvedTerm, error) {
	if term.Param1() != "" {
		return nil, qlang.Errorf(qlang.ErrUnexpectedParameter,
			"parameter1 (%s) should be removed for field %s", term.Param1(), desc.Key)
	}
	if term.Param2() != "" {
		return nil, qlang.Errorf(qlang.ErrUnexpectedParameter,
			"parameter2 (%s) should be removed for field %s", term.Param2(), desc.Key)
	}
	return expand(desc, func(template string) string { return template }), nil
}

// Localized resolves fields whose native name carries a locale, written as
// the bracket qualifier: `CategoryName[en]`. The locale tag is checked for
// well-formedness before substitution.
type Localized struct{}

func (Localized) Resolve(_ *registry.Context, term qlang.Term, desc *registry.FieldDescriptor) (*registry.ResolvedTerm, error) {
	if term.Param2() != "" {
		return nil, qlang.Errorf(qlang.ErrUnexpectedParameter,
			"parameter2 (%s) should be removed for field %s", term.Param2(), desc.Key)
	}
	locale, err := localeTag(term.Param1(), desc.Key)
	if err != nil {
		return nil, err
	}
	return expand(desc, func(template string) string {
		return fmt.Sprintf(template, locale)
	}), nil
}

// Attribute resolves per-attribute localized fields: the brace qualifier
// names the attribute, the bracket qualifier the locale:
// `AttributeName{quality}[en]`.
type Attribute struct{}

func (Attribute) Resolve(_ *registry.Context, term qlang.Term, desc *registry.FieldDescriptor) (*registry.ResolvedTerm, error) {
	if term.Param2() == "" {
		return nil, qlang.Errorf(qlang.ErrMissingParameter,
			"parameter2 (attribute key) must be specified for field %s", desc.Key)
	}
	locale, err := localeTag(term.Param1(), desc.Key)
	if err != nil {
		return nil, err
	}
	return expand(desc, func(template string) string {
		return fmt.Sprintf(template, term.Param2(), locale)
	}), nil
}

// Price resolves price fields qualified by price list and currency:
// `Price{SNAPITUP}[CAD]`. The currency must be a known ISO 4217 code.
type Price struct{}

func (Price) Resolve(_ *registry.Context, term qlang.Term, desc *registry.FieldDescriptor) (*registry.ResolvedTerm, error) {
	if term.Param1() == "" {
		return nil, qlang.Errorf(qlang.ErrMissingParameter,
			"parameter1 (currency) must be specified for field %s", desc.Key)
	}
	if term.Param2() == "" {
		return nil, qlang.Errorf(qlang.ErrMissingParameter,
			"parameter2 (price list) must be specified for field %s", desc.Key)
	}
	unit, err := currency.ParseISO(term.Param1())
	if err != nil {
		return nil, qlang.Errorf(qlang.ErrValueFormat,
			"unknown currency %q for field %s", term.Param1(), desc.Key)
	}
	return expand(desc, func(template string) string {
		return fmt.Sprintf(template, term.Param2(), unit.String())
	}), nil
}

// Metadata resolves key-value metadata fields: the brace qualifier names
// the metadata key, which is bound into the compilation context ahead of
// the term's value. The template itself carries the key's placeholder.
type Metadata struct{}

func (Metadata) Resolve(ctx *registry.Context, term qlang.Term, desc *registry.FieldDescriptor) (*registry.ResolvedTerm, error) {
	if term.Param1() != "" {
		return nil, qlang.Errorf(qlang.ErrUnexpectedParameter,
			"parameter1 (%s) should be removed for field %s", term.Param1(), desc.Key)
	}
	if term.Param2() == "" {
		return nil, qlang.Errorf(qlang.ErrMissingParameter,
			"parameter2 (metadata key) must be specified for field %s", desc.Key)
	}
	ctx.Bind(term.Param2())
	return expand(desc, func(template string) string { return template }), nil
}

// localeTag validates the bracket qualifier as a language tag and returns
// the raw qualifier for template substitution. The raw spelling is kept so
// native field names match the index's own naming.
func localeTag(param1 string, key qlang.FieldKey) (string, error) {
	if param1 == "" {
		return "", qlang.Errorf(qlang.ErrMissingParameter,
			"parameter1 (locale) must be specified for field %s", key)
	}
	if _, err := language.Parse(param1); err != nil {
		return "", qlang.Errorf(qlang.ErrValueFormat,
			"invalid locale %q for field %s", param1, key)
	}
	return param1, nil
}

// expand fills the descriptor's template(s) and builds the resolved term.
func expand(desc *registry.FieldDescriptor, fill func(string) string) *registry.ResolvedTerm {
	rt := &registry.ResolvedTerm{Descriptor: desc}
	if len(desc.Templates) > 0 {
		rt.Fields = make([]string, len(desc.Templates))
		for i, t := range desc.Templates {
			rt.Fields[i] = fill(t)
		}
		return rt
	}
	rt.Field = fill(desc.Template)
	return rt
}

package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchql/finch/internal/qlang"
	"github.com/finchql/finch/internal/registry"
)

func mustTerm(t *testing.T, field, param2, param1 string) qlang.Term {
	t.Helper()
	term, err := qlang.NewTerm(field, param2, param1, "=", "x", true)
	require.NoError(t, err)
	return term
}

func TestPlainResolve(t *testing.T) {
	desc := &registry.FieldDescriptor{Key: qlang.FieldProductCode, Template: "productCode"}

	rt, err := Plain{}.Resolve(nil, mustTerm(t, "ProductCode", "", ""), desc)
	require.NoError(t, err)
	assert.Equal(t, "productCode", rt.Field)
	assert.Empty(t, rt.Fields)

	_, err = Plain{}.Resolve(nil, mustTerm(t, "ProductCode", "", "en"), desc)
	requireKind(t, err, qlang.ErrUnexpectedParameter)

	_, err = Plain{}.Resolve(nil, mustTerm(t, "ProductCode", "extra", ""), desc)
	requireKind(t, err, qlang.ErrUnexpectedParameter)
}

func TestPlainResolveMultiTemplate(t *testing.T) {
	desc := &registry.FieldDescriptor{
		Key:       qlang.FieldCatalogCode,
		Templates: []string{"catalogCode", "masterCatalogCode"},
	}
	rt, err := Plain{}.Resolve(nil, mustTerm(t, "CatalogCode", "", ""), desc)
	require.NoError(t, err)
	assert.Equal(t, []string{"catalogCode", "masterCatalogCode"}, rt.Fields)
	assert.Empty(t, rt.Field)
}

func TestLocalizedResolve(t *testing.T) {
	desc := &registry.FieldDescriptor{Key: qlang.FieldCategoryName, Template: "categoryName_%s"}

	rt, err := Localized{}.Resolve(nil, mustTerm(t, "CategoryName", "", "en"), desc)
	require.NoError(t, err)
	assert.Equal(t, "categoryName_en", rt.Field)

	_, err = Localized{}.Resolve(nil, mustTerm(t, "CategoryName", "", ""), desc)
	requireKind(t, err, qlang.ErrMissingParameter)

	_, err = Localized{}.Resolve(nil, mustTerm(t, "CategoryName", "", "not a tag"), desc)
	requireKind(t, err, qlang.ErrValueFormat)

	_, err = Localized{}.Resolve(nil, mustTerm(t, "CategoryName", "extra", "en"), desc)
	requireKind(t, err, qlang.ErrUnexpectedParameter)
}

func TestAttributeResolve(t *testing.T) {
	desc := &registry.FieldDescriptor{Key: qlang.FieldAttributeName, Template: "attribute_%s_%s"}

	rt, err := Attribute{}.Resolve(nil, mustTerm(t, "AttributeName", "quality", "en"), desc)
	require.NoError(t, err)
	assert.Equal(t, "attribute_quality_en", rt.Field)

	_, err = Attribute{}.Resolve(nil, mustTerm(t, "AttributeName", "", "en"), desc)
	requireKind(t, err, qlang.ErrMissingParameter)

	_, err = Attribute{}.Resolve(nil, mustTerm(t, "AttributeName", "quality", ""), desc)
	requireKind(t, err, qlang.ErrMissingParameter)
}

func TestPriceResolve(t *testing.T) {
	desc := &registry.FieldDescriptor{Key: qlang.FieldPrice, Template: "price_%s_%s"}

	rt, err := Price{}.Resolve(nil, mustTerm(t, "Price", "SNAPITUP", "CAD"), desc)
	require.NoError(t, err)
	assert.Equal(t, "price_SNAPITUP_CAD", rt.Field)

	_, err = Price{}.Resolve(nil, mustTerm(t, "Price", "SNAPITUP", ""), desc)
	requireKind(t, err, qlang.ErrMissingParameter)

	_, err = Price{}.Resolve(nil, mustTerm(t, "Price", "", "CAD"), desc)
	requireKind(t, err, qlang.ErrMissingParameter)

	_, err = Price{}.Resolve(nil, mustTerm(t, "Price", "SNAPITUP", "ZZZZ"), desc)
	requireKind(t, err, qlang.ErrValueFormat)
}

func TestMetadataResolve(t *testing.T) {
	desc := &registry.FieldDescriptor{
		Key:      qlang.FieldMetadataKey,
		Template: "(SELECT m.value FROM tmetadata m WHERE m.setting_uid = s.uidpk AND m.mkey = ?)",
	}
	ctx := &registry.Context{Type: qlang.TypeConfiguration}

	rt, err := Metadata{}.Resolve(ctx, mustTerm(t, "MetadataKey", "sharding", ""), desc)
	require.NoError(t, err)
	assert.Equal(t, desc.Template, rt.Field)
	assert.Equal(t, []any{"sharding"}, ctx.Params)

	_, err = Metadata{}.Resolve(ctx, mustTerm(t, "MetadataKey", "", ""), desc)
	requireKind(t, err, qlang.ErrMissingParameter)
}

func requireKind(t *testing.T, err error, kind qlang.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	var perr *qlang.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, kind, perr.Kind)
}

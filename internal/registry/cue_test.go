package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchql/finch/internal/commerce"
	"github.com/finchql/finch/internal/qlang"
	"github.com/finchql/finch/internal/registry"
)

func TestLoadDir(t *testing.T) {
	reg, err := registry.LoadDir("testdata/specs", commerce.Binder{})
	require.NoError(t, err)

	assert.Equal(t, []qlang.ObjectType{
		qlang.TypeConfiguration, qlang.TypeProduct, qlang.TypePromotion,
	}, reg.Types())

	product, ok := reg.Config(qlang.TypeProduct)
	require.True(t, ok)
	assert.Equal(t, qlang.DialectSearch, product.Dialect)
	assert.Equal(t, "+objectType:Product", product.Prefix)
	assert.Equal(t, qlang.FetchUID, product.DefaultFetch)
	assert.Equal(t, []qlang.SortClause{{Field: "productCode"}}, product.DefaultSorts)

	name, ok := product.Lookup(qlang.FieldProductName)
	require.True(t, ok)
	assert.Equal(t, "productName_%s", name.Template)
	assert.Equal(t, qlang.ValueString, name.ValueType)

	catalog, ok := product.Lookup(qlang.FieldCatalogCode)
	require.True(t, ok)
	assert.Equal(t, []string{"catalogCode", "masterCatalogCode"}, catalog.Templates)

	promo, ok := reg.Config(qlang.TypePromotion)
	require.True(t, ok)
	state, ok := promo.Lookup(qlang.FieldState)
	require.True(t, ok)
	assert.Equal(t, []string{"ACTIVE", "DISABLED", "EXPIRED"}, state.EnumValues)

	settings, ok := reg.Config(qlang.TypeConfiguration)
	require.True(t, ok)
	assert.Equal(t, qlang.DialectSQL, settings.Dialect)
	assert.Equal(t, qlang.FetchGUID, settings.DefaultFetch)
}

func TestLoadDirErrors(t *testing.T) {
	_, err := registry.LoadDir("testdata/does-not-exist", commerce.Binder{})
	require.Error(t, err)

	_, err = registry.LoadDir("testdata/badspecs/dialect", commerce.Binder{})
	require.Error(t, err)
	var cerr *registry.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Message, "graphql")

	_, err = registry.LoadDir("testdata/badspecs/enum", commerce.Binder{})
	require.Error(t, err)
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Message, "values list")
}

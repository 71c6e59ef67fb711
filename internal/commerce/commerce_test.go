package commerce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchql/finch/internal/qlang"
)

func TestDefaultRegistryTypes(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []qlang.ObjectType{
		qlang.TypeCatalog,
		qlang.TypeCategory,
		qlang.TypeConfiguration,
		qlang.TypeCustomer,
		qlang.TypeProduct,
		qlang.TypePromotion,
	}, r.Types())
}

func TestProductFields(t *testing.T) {
	r := DefaultRegistry()
	cfg, ok := r.Config(qlang.TypeProduct)
	require.True(t, ok)
	assert.Equal(t, qlang.DialectSearch, cfg.Dialect)
	assert.Equal(t, "+objectType:Product", cfg.Prefix)
	assert.Equal(t, qlang.FetchUID, cfg.DefaultFetch)

	for _, key := range []qlang.FieldKey{
		qlang.FieldProductCode, qlang.FieldProductName, qlang.FieldAttributeName,
		qlang.FieldPrice, qlang.FieldLastModifiedDate, qlang.FieldProductActive,
	} {
		_, ok := cfg.Lookup(key)
		assert.True(t, ok, "field %s", key)
	}
	_, ok = cfg.Lookup(qlang.FieldNamespace)
	assert.False(t, ok)
}

func TestCustomerDefaultsToGUID(t *testing.T) {
	cfg, ok := DefaultRegistry().Config(qlang.TypeCustomer)
	require.True(t, ok)
	assert.Equal(t, qlang.FetchGUID, cfg.DefaultFetch)
}

func TestConfigurationIsSQL(t *testing.T) {
	cfg, ok := DefaultRegistry().Config(qlang.TypeConfiguration)
	require.True(t, ok)
	assert.Equal(t, qlang.DialectSQL, cfg.Dialect)
	desc, ok := cfg.Lookup(qlang.FieldMetadataKey)
	require.True(t, ok)
	assert.Contains(t, desc.Template, "tmetadata")
}

func TestBinderRejectsUnknownNames(t *testing.T) {
	var b Binder
	_, err := b.Builder("graphql")
	require.Error(t, err)
	_, err = b.Field("regex")
	require.Error(t, err)

	for _, d := range []qlang.Dialect{qlang.DialectSearch, qlang.DialectSQL} {
		_, err := b.Builder(d)
		require.NoError(t, err)
		_, err = b.SubQuery(d)
		require.NoError(t, err)
		_, err = b.Values(d)
		require.NoError(t, err)
	}
	for _, name := range []string{"plain", "localized", "attribute", "price", "metadata"} {
		_, err := b.Field(name)
		require.NoError(t, err)
	}
}

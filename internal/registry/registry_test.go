package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchql/finch/internal/qlang"
)

func TestContextBind(t *testing.T) {
	ctx := &Context{Type: qlang.TypeConfiguration}
	assert.Equal(t, "?", ctx.Bind("COMMERCE"))
	assert.Equal(t, "?", ctx.Bind(42))
	assert.Equal(t, []any{"COMMERCE", 42}, ctx.Params)
}

func TestConfigurationRegisterLookup(t *testing.T) {
	cfg := NewConfiguration(qlang.TypeProduct, qlang.DialectSearch)
	assert.Equal(t, qlang.FetchUID, cfg.DefaultFetch)

	cfg.Register(&FieldDescriptor{Key: qlang.FieldProductName})
	cfg.Register(&FieldDescriptor{Key: qlang.FieldProductCode})

	desc, ok := cfg.Lookup(qlang.FieldProductCode)
	require.True(t, ok)
	assert.Equal(t, qlang.FieldProductCode, desc.Key)

	_, ok = cfg.Lookup(qlang.FieldNamespace)
	assert.False(t, ok)

	assert.Equal(t, []qlang.FieldKey{qlang.FieldProductCode, qlang.FieldProductName}, cfg.FieldKeys())
}

func TestRegistryTypesSorted(t *testing.T) {
	r := New()
	r.Add(NewConfiguration(qlang.TypeProduct, qlang.DialectSearch))
	r.Add(NewConfiguration(qlang.TypeCatalog, qlang.DialectSQL))

	assert.Equal(t, []qlang.ObjectType{qlang.TypeCatalog, qlang.TypeProduct}, r.Types())

	_, ok := r.Config(qlang.TypeProduct)
	assert.True(t, ok)
	_, ok = r.Config(qlang.TypeCustomer)
	assert.False(t, ok)
}

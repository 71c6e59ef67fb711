// Package commerce supplies the built-in object type registry for the
// commerce search index and settings store, plus the dialect binder used
// when loading registries from CUE specs.
package commerce

import (
	"fmt"

	"github.com/finchql/finch/internal/lucene"
	"github.com/finchql/finch/internal/qlang"
	"github.com/finchql/finch/internal/registry"
	"github.com/finchql/finch/internal/resolve"
	"github.com/finchql/finch/internal/sqldialect"
)

// Binder maps dialect and resolver names to the built-in capability
// implementations. It satisfies the registry loader's binder contract.
type Binder struct{}

func (Binder) Builder(d qlang.Dialect) (registry.CompleteQueryBuilder, error) {
	switch d {
	case qlang.DialectSearch:
		return lucene.Builder{}, nil
	case qlang.DialectSQL:
		return sqldialect.Builder{}, nil
	}
	return nil, fmt.Errorf("no query builder for dialect %q", d)
}

func (Binder) SubQuery(d qlang.Dialect) (registry.SubQueryBuilder, error) {
	switch d {
	case qlang.DialectSearch:
		return lucene.SubQuery{}, nil
	case qlang.DialectSQL:
		return sqldialect.SubQuery{}, nil
	}
	return nil, fmt.Errorf("no sub-query builder for dialect %q", d)
}

func (Binder) Values(d qlang.Dialect) (registry.ValueResolver, error) {
	switch d {
	case qlang.DialectSearch:
		return lucene.Values{}, nil
	case qlang.DialectSQL:
		return sqldialect.Values{}, nil
	}
	return nil, fmt.Errorf("no value resolver for dialect %q", d)
}

func (Binder) Field(name string) (registry.FieldResolver, error) {
	switch name {
	case "plain":
		return resolve.Plain{}, nil
	case "localized":
		return resolve.Localized{}, nil
	case "attribute":
		return resolve.Attribute{}, nil
	case "price":
		return resolve.Price{}, nil
	case "metadata":
		return resolve.Metadata{}, nil
	}
	return nil, fmt.Errorf("unknown field resolver %q", name)
}

// DefaultRegistry builds the registry for the stock commerce object
// types. Product, Category, Promotion and Customer compile to the search
// dialect; Catalog and Configuration compile to parameterized SQL.
func DefaultRegistry() *registry.Registry {
	r := registry.New()
	r.Add(productConfig())
	r.Add(categoryConfig())
	r.Add(promotionConfig())
	r.Add(customerConfig())
	r.Add(catalogConfig())
	r.Add(configurationConfig())
	return r
}

func searchConfig(t qlang.ObjectType) *registry.Configuration {
	cfg := registry.NewConfiguration(t, qlang.DialectSearch)
	cfg.Prefix = "+objectType:" + string(t)
	cfg.Builder = lucene.Builder{}
	return cfg
}

func searchField(key qlang.FieldKey, template string, vt qlang.FieldValueType, fr registry.FieldResolver) *registry.FieldDescriptor {
	return &registry.FieldDescriptor{
		Key:       key,
		Template:  template,
		ValueType: vt,
		Resolver:  fr,
		Values:    lucene.Values{},
		SubQuery:  lucene.SubQuery{},
	}
}

func productConfig() *registry.Configuration {
	cfg := searchConfig(qlang.TypeProduct)
	cfg.DefaultSorts = []qlang.SortClause{{Field: "productCode"}}
	cfg.Register(searchField(qlang.FieldProductCode, "productCode", qlang.ValueString, resolve.Plain{}))
	cfg.Register(searchField(qlang.FieldProductName, "productName_%s", qlang.ValueString, resolve.Localized{}))
	cfg.Register(searchField(qlang.FieldAttributeName, "attribute_%s_%s", qlang.ValueString, resolve.Attribute{}))
	cfg.Register(searchField(qlang.FieldPrice, "price_%s_%s", qlang.ValueFloat, resolve.Price{}))
	cfg.Register(searchField(qlang.FieldLastModifiedDate, "lastModifiedDate", qlang.ValueDate, resolve.Plain{}))
	cfg.Register(searchField(qlang.FieldProductActive, "productActive", qlang.ValueBoolean, resolve.Plain{}))
	cfg.Register(searchField(qlang.FieldCatalogCode, "catalogCode", qlang.ValueString, resolve.Plain{}))
	return cfg
}

func categoryConfig() *registry.Configuration {
	cfg := searchConfig(qlang.TypeCategory)
	cfg.DefaultSorts = []qlang.SortClause{{Field: "categoryCode"}}
	cfg.Register(searchField(qlang.FieldCategoryCode, "categoryCode", qlang.ValueString, resolve.Plain{}))
	cfg.Register(searchField(qlang.FieldCategoryName, "categoryName_%s", qlang.ValueString, resolve.Localized{}))
	cfg.Register(searchField(qlang.FieldCatalogCode, "catalogCode", qlang.ValueString, resolve.Plain{}))
	cfg.Register(searchField(qlang.FieldLastModifiedDate, "lastModifiedDate", qlang.ValueDate, resolve.Plain{}))
	return cfg
}

func promotionConfig() *registry.Configuration {
	cfg := searchConfig(qlang.TypePromotion)
	cfg.DefaultSorts = []qlang.SortClause{{Field: "promotionName"}}
	cfg.Register(searchField(qlang.FieldPromotionName, "promotionName", qlang.ValueString, resolve.Plain{}))
	state := searchField(qlang.FieldState, "state", qlang.ValueEnum, resolve.Plain{})
	state.EnumValues = []string{"ACTIVE", "DISABLED", "EXPIRED"}
	cfg.Register(state)
	cfg.Register(searchField(qlang.FieldCatalogCode, "catalogCode", qlang.ValueString, resolve.Plain{}))
	cfg.Register(searchField(qlang.FieldStoreCode, "storeCode", qlang.ValueString, resolve.Plain{}))
	return cfg
}

func customerConfig() *registry.Configuration {
	cfg := searchConfig(qlang.TypeCustomer)
	cfg.DefaultFetch = qlang.FetchGUID
	cfg.DefaultSorts = []qlang.SortClause{{Field: "customerEmail"}}
	cfg.Register(searchField(qlang.FieldCustomerEmail, "customerEmail", qlang.ValueString, resolve.Plain{}))
	cfg.Register(searchField(qlang.FieldLastModifiedDate, "lastModifiedDate", qlang.ValueDate, resolve.Plain{}))
	return cfg
}

func sqlField(key qlang.FieldKey, template string, fr registry.FieldResolver) *registry.FieldDescriptor {
	return &registry.FieldDescriptor{
		Key:       key,
		Template:  template,
		ValueType: qlang.ValueString,
		Resolver:  fr,
		Values:    sqldialect.Values{},
		SubQuery:  sqldialect.SubQuery{},
	}
}

func catalogConfig() *registry.Configuration {
	cfg := registry.NewConfiguration(qlang.TypeCatalog, qlang.DialectSQL)
	cfg.Prefix = "SELECT c.%s FROM tcatalog c"
	cfg.Builder = sqldialect.Builder{}
	cfg.DefaultSorts = []qlang.SortClause{{Field: "c.code"}}
	cfg.Register(sqlField(qlang.FieldCatalogCode, "c.code", resolve.Plain{}))
	return cfg
}

func configurationConfig() *registry.Configuration {
	cfg := registry.NewConfiguration(qlang.TypeConfiguration, qlang.DialectSQL)
	cfg.Prefix = "SELECT s.%s FROM tsettings s"
	cfg.Builder = sqldialect.Builder{}
	cfg.DefaultSorts = []qlang.SortClause{{Field: "s.namespace"}}
	cfg.Register(sqlField(qlang.FieldNamespace, "s.namespace", resolve.Plain{}))
	cfg.Register(sqlField(qlang.FieldContext, "s.context", resolve.Plain{}))
	cfg.Register(sqlField(qlang.FieldMetadataKey,
		"(SELECT m.value FROM tmetadata m WHERE m.setting_uid = s.uidpk AND m.mkey = ?)",
		resolve.Metadata{}))
	return cfg
}

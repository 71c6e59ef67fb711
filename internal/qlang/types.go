package qlang

// ObjectType identifies a queryable entity kind. The set is closed: a type
// is only usable once a configuration for it has been added to a registry.
type ObjectType string

const (
	TypeProduct       ObjectType = "Product"
	TypeCategory      ObjectType = "Category"
	TypeCatalog       ObjectType = "Catalog"
	TypePromotion     ObjectType = "Promotion"
	TypeCustomer      ObjectType = "Customer"
	TypeConfiguration ObjectType = "Configuration"
)

var objectTypes = map[string]ObjectType{
	string(TypeProduct):       TypeProduct,
	string(TypeCategory):      TypeCategory,
	string(TypeCatalog):       TypeCatalog,
	string(TypePromotion):     TypePromotion,
	string(TypeCustomer):      TypeCustomer,
	string(TypeConfiguration): TypeConfiguration,
}

// ParseObjectType maps a query-type token to its ObjectType.
func ParseObjectType(name string) (ObjectType, bool) {
	t, ok := objectTypes[name]
	return t, ok
}

// Dialect selects which native backend a configuration compiles to.
type Dialect string

const (
	// DialectSearch renders a search-index query string with inline,
	// escaped literal values.
	DialectSearch Dialect = "search"
	// DialectSQL renders parameterized SQL; literal values are bound as
	// parameters, never interpolated.
	DialectSQL Dialect = "sql"
)

// ParseDialect maps a configuration dialect name to its Dialect.
func ParseDialect(name string) (Dialect, bool) {
	switch Dialect(name) {
	case DialectSearch:
		return DialectSearch, true
	case DialectSQL:
		return DialectSQL, true
	}
	return "", false
}

// FetchType selects which identifier form compiled-query results are
// returned as: the internal numeric identifier or the stable external one.
type FetchType string

const (
	FetchUID  FetchType = "UID"
	FetchGUID FetchType = "GUID"
)

// ParseFetchType maps a fetch-type token to its FetchType.
func ParseFetchType(name string) (FetchType, bool) {
	switch FetchType(name) {
	case FetchUID:
		return FetchUID, true
	case FetchGUID:
		return FetchGUID, true
	}
	return "", false
}

// FieldValueType declares how a field's literal text is checked and
// normalized during value resolution.
type FieldValueType string

const (
	ValueString  FieldValueType = "string"
	ValueDate    FieldValueType = "date"
	ValueFloat   FieldValueType = "float"
	ValueBoolean FieldValueType = "boolean"
	ValueEnum    FieldValueType = "enum"
)

// ParseFieldValueType maps a configuration type name to its FieldValueType.
func ParseFieldValueType(name string) (FieldValueType, bool) {
	switch FieldValueType(name) {
	case ValueString, ValueDate, ValueFloat, ValueBoolean, ValueEnum:
		return FieldValueType(name), true
	}
	return "", false
}

// Operator is a comparison operator symbol as written in query text.
type Operator string

const (
	OpEqual        Operator = "="
	OpNotEqual     Operator = "!="
	OpGreater      Operator = ">"
	OpLess         Operator = "<"
	OpGreaterEqual Operator = ">="
	OpLessEqual    Operator = "<="
)

var operators = map[string]Operator{
	string(OpEqual):        OpEqual,
	string(OpNotEqual):     OpNotEqual,
	string(OpGreater):      OpGreater,
	string(OpLess):         OpLess,
	string(OpGreaterEqual): OpGreaterEqual,
	string(OpLessEqual):    OpLessEqual,
}

// ParseOperator maps an operator symbol to its Operator.
func ParseOperator(symbol string) (Operator, bool) {
	op, ok := operators[symbol]
	return op, ok
}

// FieldKey is the logical, author-facing name of a queryable attribute.
// The set is closed; per-type availability is decided by the registry.
type FieldKey string

const (
	FieldProductCode      FieldKey = "ProductCode"
	FieldProductName      FieldKey = "ProductName"
	FieldAttributeName    FieldKey = "AttributeName"
	FieldPrice            FieldKey = "Price"
	FieldLastModifiedDate FieldKey = "LastModifiedDate"
	FieldProductActive    FieldKey = "ProductActive"
	FieldCategoryCode     FieldKey = "CategoryCode"
	FieldCategoryName     FieldKey = "CategoryName"
	FieldCatalogCode      FieldKey = "CatalogCode"
	FieldStoreCode        FieldKey = "StoreCode"
	FieldPromotionName    FieldKey = "PromotionName"
	FieldState            FieldKey = "State"
	FieldCustomerEmail    FieldKey = "CustomerEmail"
	FieldNamespace        FieldKey = "Namespace"
	FieldContext          FieldKey = "Context"
	FieldMetadataKey      FieldKey = "MetadataKey"
)

var fieldKeys = map[string]FieldKey{
	string(FieldProductCode):      FieldProductCode,
	string(FieldProductName):      FieldProductName,
	string(FieldAttributeName):    FieldAttributeName,
	string(FieldPrice):            FieldPrice,
	string(FieldLastModifiedDate): FieldLastModifiedDate,
	string(FieldProductActive):    FieldProductActive,
	string(FieldCategoryCode):     FieldCategoryCode,
	string(FieldCategoryName):     FieldCategoryName,
	string(FieldCatalogCode):      FieldCatalogCode,
	string(FieldStoreCode):        FieldStoreCode,
	string(FieldPromotionName):    FieldPromotionName,
	string(FieldState):            FieldState,
	string(FieldCustomerEmail):    FieldCustomerEmail,
	string(FieldNamespace):        FieldNamespace,
	string(FieldContext):          FieldContext,
	string(FieldMetadataKey):      FieldMetadataKey,
}

// ParseFieldKey maps an author-facing field name to its FieldKey.
func ParseFieldKey(name string) (FieldKey, bool) {
	k, ok := fieldKeys[name]
	return k, ok
}

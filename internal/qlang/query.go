package qlang

// LimitUnbounded is the sentinel for a query with no LIMIT clause.
const LimitUnbounded = -1

// SortClause is one ordering directive over a native field name.
type SortClause struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending,omitempty"`
}

// CompiledQuery is the output of one successful compile: the native query
// payload for the configuration's dialect plus paging and fetch metadata.
// It is immutable to callers; the assembler mutates it only during the
// single pass that builds it.
type CompiledQuery struct {
	// Native is the dialect-specific payload: a search-index query string,
	// or SQL text whose values are carried in Params.
	Native string `json:"native"`
	// Params is the ordered bound-parameter list for parameterized
	// dialects; empty for dialects that inline literals.
	Params []any `json:"params,omitempty"`

	Type    ObjectType `json:"type"`
	Dialect Dialect    `json:"dialect"`
	Fetch   FetchType  `json:"fetch"`
	// Limit is LimitUnbounded when the query specified none.
	Limit int `json:"limit"`
	// StartIndex is the zero-based result offset.
	StartIndex int `json:"start_index"`
	// ValidateOnly marks a compile performed only to check the query.
	ValidateOnly bool         `json:"validate_only,omitempty"`
	Sorts        []SortClause `json:"sorts,omitempty"`
}

// NewCompiledQuery starts an in-progress compiled query for one object type.
func NewCompiledQuery(t ObjectType) *CompiledQuery {
	return &CompiledQuery{
		Type:  t,
		Limit: LimitUnbounded,
	}
}

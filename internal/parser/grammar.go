package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The query language is keyword-first and case-sensitive: keywords are
// uppercase, field names are bare identifiers, string literals take
// single or double quotes with backslash escapes.
var queryLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `'(?:\\.|[^'\\])*'|"(?:\\.|[^"\\])*"`},
	{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
	{Name: "Operator", Pattern: `<=|>=|!=|=|<|>`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.-]*`},
	{Name: "Punct", Pattern: `[(){}\[\],]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var queryParser = participle.MustBuild[queryAST](
	participle.Lexer(queryLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

type queryAST struct {
	Type   string       `parser:"'FIND' @Ident"`
	Fetch  *string      `parser:"('RETURN' @('UID' | 'GUID'))?"`
	Where  *orExpr      `parser:"('WHERE' @@)?"`
	Sorts  []*sortField `parser:"('ORDER' 'BY' @@ (',' @@)*)?"`
	Limit  *string      `parser:"('LIMIT' @Number)?"`
	Offset *string      `parser:"('OFFSET' @Number)?"`
}

type orExpr struct {
	First *andExpr   `parser:"@@"`
	Rest  []*andExpr `parser:"('OR' @@)*"`
}

type andExpr struct {
	First *unaryExpr   `parser:"@@"`
	Rest  []*unaryExpr `parser:"('AND' @@)*"`
}

type unaryExpr struct {
	Not   *unaryExpr `parser:"'NOT' @@"`
	Group *orExpr    `parser:"| '(' @@ ')'"`
	Term  *termNode  `parser:"| @@"`
}

type termNode struct {
	Field  string     `parser:"@Ident"`
	Param2 *string    `parser:"('{' @(Ident | Number) '}')?"`
	Param1 *string    `parser:"('[' @Ident ']')?"`
	Op     string     `parser:"@Operator"`
	Value  *valueNode `parser:"@@"`
}

type valueNode struct {
	Str    *string `parser:"@String"`
	Number *string `parser:"| @Number"`
	Ident  *string `parser:"| @Ident"`
}

type sortField struct {
	Field string  `parser:"@Ident"`
	Dir   *string `parser:"@('ASC' | 'DESC')?"`
}

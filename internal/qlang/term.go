package qlang

// Term is one parsed `field operator literal` clause with its optional
// bracket qualifiers. A Term is immutable once constructed; NewTerm refuses
// unknown field names and operator symbols so malformed terms never reach
// the compilation pipeline.
type Term struct {
	field  FieldKey
	param1 string // bracket-delimited qualifier, e.g. locale or currency
	param2 string // brace-delimited qualifier, e.g. price list or metadata key
	op     Operator
	lit    string
	quoted bool
}

// NewTerm builds a Term from raw parser tokens. rawField and rawOp are
// validated against the language's closed sets; quoted reports whether the
// literal was written in quotes (some value types forbid or require quoting).
func NewTerm(rawField, param2, param1, rawOp, literal string, quoted bool) (Term, error) {
	field, ok := ParseFieldKey(rawField)
	if !ok {
		return Term{}, Errorf(ErrUnknownField, "unknown field %q", rawField)
	}
	op, ok := ParseOperator(rawOp)
	if !ok {
		return Term{}, Errorf(ErrUnknownOperator, "unknown operator %q", rawOp)
	}
	return Term{
		field:  field,
		param1: param1,
		param2: param2,
		op:     op,
		lit:    literal,
		quoted: quoted,
	}, nil
}

// Field returns the resolved field key.
func (t Term) Field() FieldKey { return t.field }

// Param1 returns the bracket-delimited qualifier, empty when absent.
func (t Term) Param1() string { return t.param1 }

// Param2 returns the brace-delimited qualifier, empty when absent.
func (t Term) Param2() string { return t.param2 }

// Operator returns the resolved comparison operator.
func (t Term) Operator() Operator { return t.op }

// Literal returns the raw literal text, unquoted but not yet resolved.
func (t Term) Literal() string { return t.lit }

// Quoted reports whether the literal was quoted in the query text.
func (t Term) Quoted() bool { return t.quoted }

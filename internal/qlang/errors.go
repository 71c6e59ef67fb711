package qlang

import "fmt"

// ErrorKind tags a ParseError with its failure mode. The message is the
// primary diagnostic; the kind exists so callers and tests can classify
// failures without string matching.
type ErrorKind int

const (
	// ErrSyntax covers malformed query text rejected by the grammar.
	ErrSyntax ErrorKind = iota
	// ErrUnsupportedQueryType is an object-type token with no registered
	// configuration.
	ErrUnsupportedQueryType
	// ErrUnknownFetchType is a fetch-type token outside UID/GUID.
	ErrUnknownFetchType
	// ErrLimitFormat is a non-numeric or negative limit/offset token.
	ErrLimitFormat
	// ErrFieldNotSupported is a field not registered for the current type.
	ErrFieldNotSupported
	// ErrMissingParameter is a required bracket qualifier the term omitted.
	ErrMissingParameter
	// ErrUnexpectedParameter is a bracket qualifier on a field that takes
	// none.
	ErrUnexpectedParameter
	// ErrValueFormat is literal text that fails the field's value type.
	ErrValueFormat
	// ErrUnknownField is a field name outside the language's closed set,
	// raised at Term construction.
	ErrUnknownField
	// ErrUnknownOperator is an operator symbol outside the closed set,
	// raised at Term construction.
	ErrUnknownOperator
)

// ParseError is the single compile-failure signal. A compile stops at the
// first ParseError; there is no accumulation and no partial result.
type ParseError struct {
	Kind    ErrorKind
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

// Errorf builds a ParseError with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

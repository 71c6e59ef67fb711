// Package qlang defines the closed vocabulary of the Finch query language:
// object types, field keys, operators, value types, fetch types, the Term
// model, and the CompiledQuery value object produced by a compile.
//
// Everything here is a closed set fixed at build time. Object types and
// field keys are validated by table lookup, not open-ended string matching,
// which keeps the dispatch in the registry and dialect packages exhaustive.
//
// The single error type for the whole pipeline is ParseError. Every failure
// mode of a compile (unknown type, unknown field, missing qualifier, bad
// literal, bad limit) is a ParseError with a Kind tag; the message is the
// primary diagnostic and is written for the query author, not for code.
//
// qlang has no dependencies on the registry, resolvers, or dialects. Those
// packages all depend on qlang.
package qlang

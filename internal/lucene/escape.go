// Package lucene renders query terms into Lucene query syntax for the
// search dialect. Values are escaped and inlined into the query string;
// the search backend takes no positional parameters.
package lucene

import "strings"

// special holds every byte that must be backslash-escaped in a Lucene
// term, including the space character.
const special = `+-&|!(){}[]^"~*?: `

// Escape backslash-escapes Lucene query metacharacters left to right.
// The backslash itself is escaped first so later escapes are not doubled.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' || strings.IndexByte(special, c) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

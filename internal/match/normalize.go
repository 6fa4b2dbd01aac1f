package match

import (
	"strings"
	"unicode"
)

// NormalizeName reduces a C++ name for fuzzy comparison: the enclosing
// scope is dropped, whitespace and underscores are removed and the rest is
// lower-cased. Template arguments are kept.
//
//	"::geo::Point<2>"  -> "point<2>"
//	"Rectangle_Shape"  -> "rectangleshape"
func NormalizeName(s string) string {
	s = unqualified(s)

	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if r == '_' || unicode.IsSpace(r) {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// unqualified drops everything up to the last "::" that lies outside a
// template argument list.
func unqualified(s string) string {
	head := s
	if i := strings.Index(s, "<"); i >= 0 {
		head = s[:i]
	}

	if i := strings.LastIndex(head, "::"); i >= 0 {
		return s[i+2:]
	}

	return s
}

package common

import (
	"strings"
	"unicode"
)

// UnknownStr is the String() result for enum values outside the known range.
const UnknownStr = "unknown"

// StripSpaces removes every whitespace rune from s.
// "Foo<2, 2 >" -> "Foo<2,2>".
func StripSpaces(s string) string {
	if !strings.ContainsFunc(s, unicode.IsSpace) {
		return s
	}

	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// ContainsAny reports whether any of the needles occurs in s.
func ContainsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}

	return false
}

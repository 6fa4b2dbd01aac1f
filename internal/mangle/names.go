package mangle

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"wrapper-generator/internal/common"
)

// stripChars are removed from every name fragment after replacement.
const stripChars = "<>,: "

// Identifier is the naming input of a type-bearing feature.
type Identifier struct {
	// Name is the C++ name as declared, e.g. "Foo" or "ns::Foo".
	Name string
	// NameOverride replaces Name on the binding side when set.
	NameOverride string
	// TemplateArgLists holds one argument list per instantiation.
	// Nil means the feature is not templated.
	TemplateArgLists [][]string
}

// Templated reports whether the identifier has template instantiations.
func (id Identifier) Templated() bool {
	return id.TemplateArgLists != nil
}

func (id Identifier) bindingName() string {
	if id.NameOverride != "" {
		return id.NameOverride
	}

	return id.Name
}

// ShortNames returns one identifier-safe name per instantiation, e.g.
// Foo with [[2, 2], [3, 3]] gives ["Foo2_2", "Foo3_3"].
// Untemplated identifiers return the override (or name) unchanged.
func ShortNames(id Identifier, table Table) []string {
	if !id.Templated() {
		return []string{id.bindingName()}
	}

	base := Fragment(id.bindingName(), table)
	out := make([]string, 0, len(id.TemplateArgLists))

	for _, args := range id.TemplateArgLists {
		parts := make([]string, len(args))
		for i, arg := range args {
			parts[i] = Fragment(arg, table)
		}

		out = append(out, base+strings.Join(parts, "_"))
	}

	return out
}

// FullNames returns the C++ declaration string of each instantiation in the
// form written by the declaration extractor, e.g. "Foo<2,2 >".
func FullNames(id Identifier) []string {
	if !id.Templated() {
		return []string{id.Name}
	}

	out := make([]string, 0, len(id.TemplateArgLists))
	for _, args := range id.TemplateArgLists {
		out = append(out, id.Name+"<"+strings.Join(args, ",")+" >")
	}

	return out
}

// Fragment canonicalizes one name piece: replacements in table order, then
// stripping of template punctuation and spaces, then upper-casing the first
// rune when the result is longer than one rune.
func Fragment(s string, table Table) string {
	s = table.Apply(s)
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(stripChars, r) {
			return -1
		}

		return r
	}, s)

	if utf8.RuneCountInString(s) > 1 {
		r, size := utf8.DecodeRuneInString(s)
		s = string(unicode.ToUpper(r)) + s[size:]
	}

	return s
}

// Compact removes all whitespace so that "Foo<2,2 >" and "Foo<2, 2>" compare equal.
func Compact(s string) string {
	return common.StripSpaces(s)
}

// SplitTemplateName splits a declaration name such as "Foo<2, Bar<int> >"
// into its base name and top-level arguments. ok is false when s carries no
// template argument list.
func SplitTemplateName(s string) (base string, args []string, ok bool) {
	s = strings.TrimSpace(s)

	open := strings.Index(s, "<")
	if open <= 0 || !strings.HasSuffix(s, ">") {
		return s, nil, false
	}

	base = strings.TrimSpace(s[:open])
	inner := s[open+1 : len(s)-1]

	depth, start := 0, 0
	args = []string{}

	for i, r := range inner {
		switch r {
		case '<', '(':
			depth++
		case '>', ')':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}

	if last := strings.TrimSpace(inner[start:]); last != "" || len(args) > 0 {
		args = append(args, last)
	}

	return base, args, true
}

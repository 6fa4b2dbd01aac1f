package decl

import (
	"strings"

	"wrapper-generator/internal/mangle"
)

// Set is the collection of declarations found in the parsed sources.
// Classes includes nested classes.
type Set struct {
	Classes   []*Class
	Functions []*Function
	Variables []*Variable
}

// nameMatches compares a configured name with a declaration by its plain
// name or its qualified name, with or without the leading "::".
func nameMatches(want string, d interface{ QualifiedName() string }, plain string) bool {
	if mangle.Compact(plain) == want {
		return true
	}

	q := mangle.Compact(d.QualifiedName())

	return q == want || strings.TrimPrefix(q, "::") == want
}

// ClassesNamed returns every class whose name equals name, ignoring whitespace.
func (s *Set) ClassesNamed(name string) []*Class {
	want := mangle.Compact(name)

	var out []*Class

	for _, c := range s.Classes {
		if nameMatches(want, c, c.Name) {
			out = append(out, c)
		}
	}

	return out
}

// FunctionsNamed returns every free function (all overloads) named name.
func (s *Set) FunctionsNamed(name string) []*Function {
	want := mangle.Compact(name)

	var out []*Function

	for _, f := range s.Functions {
		if nameMatches(want, f, f.Name) {
			out = append(out, f)
		}
	}

	return out
}

// VariablesNamed returns every variable named name.
func (s *Set) VariablesNamed(name string) []*Variable {
	want := mangle.Compact(name)

	var out []*Variable

	for _, v := range s.Variables {
		if nameMatches(want, v, v.Name) {
			out = append(out, v)
		}
	}

	return out
}

// Filter returns the declarations whose location satisfies keep.
// Nested classes follow their own location.
func (s *Set) Filter(keep func(Location) bool) *Set {
	out := &Set{}

	for _, c := range s.Classes {
		if keep(c.Location) {
			out.Classes = append(out.Classes, c)
		}
	}

	for _, f := range s.Functions {
		if keep(f.Location) {
			out.Functions = append(out.Functions, f)
		}
	}

	for _, v := range s.Variables {
		if keep(v.Location) {
			out.Variables = append(out.Variables, v)
		}
	}

	return out
}

// Under returns the declarations whose file name contains one of the prefixes.
// With no prefixes the set itself is returned.
func (s *Set) Under(prefixes ...string) *Set {
	if len(prefixes) == 0 {
		return s
	}

	return s.Filter(func(loc Location) bool {
		for _, p := range prefixes {
			if strings.Contains(loc.File, p) {
				return true
			}
		}

		return false
	})
}

// Len returns the number of declarations of all kinds.
func (s *Set) Len() int {
	return len(s.Classes) + len(s.Functions) + len(s.Variables)
}

// ClassNames returns the names of all classes, for suggestions.
func (s *Set) ClassNames() []string {
	out := make([]string, len(s.Classes))
	for i, c := range s.Classes {
		out[i] = c.Name
	}

	return out
}

// FunctionNames returns the names of all free functions without duplicates.
func (s *Set) FunctionNames() []string {
	seen := map[string]struct{}{}

	var out []string

	for _, f := range s.Functions {
		if _, ok := seen[f.Name]; ok {
			continue
		}

		seen[f.Name] = struct{}{}
		out = append(out, f.Name)
	}

	return out
}

// VariableNames returns the names of all variables.
func (s *Set) VariableNames() []string {
	out := make([]string, len(s.Variables))
	for i, v := range s.Variables {
		out[i] = v.Name
	}

	return out
}

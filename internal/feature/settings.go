package feature

import (
	"wrapper-generator/internal/mangle"
)

// Settings are the inheritable options of a node. Empty strings, nil
// slices and nil pointers mean "not set here".
type Settings struct {
	SourceIncludes             []string
	CalldefExcludes            []string
	SmartPtrType               string
	TemplateSubstitutions      []TemplateSubstitution
	PointerCallPolicy          string
	ReferenceCallPolicy        string
	ExcludedMethods            []string
	ExcludedVariables          []string
	ConstructorArgTypeExcludes []string
	ReturnTypeExcludes         []string
	ArgTypeExcludes            []string
	NameReplacements           mangle.Table
	CustomGenerator            string
	CommonIncludeFile          *bool
	ExtraCode                  []string
	PrefixCode                 []string
}

// TemplateSubstitution maps a header template signature to instantiations.
type TemplateSubstitution struct {
	Signature   string
	Replacement [][]string
}

// nearest walks from id to the root and returns the first value get reports as set.
func nearest[T any](t *Tree, id ID, get func(*Node) (T, bool)) (T, bool) {
	for n := t.Node(id); n != nil; n = t.Node(n.Parent) {
		if v, ok := get(n); ok {
			return v, true
		}
	}

	var zero T

	return zero, false
}

// gather concatenates get over id and its ancestors, child values first.
func gather[T any](t *Tree, id ID, get func(*Node) []T) []T {
	var out []T
	for n := t.Node(id); n != nil; n = t.Node(n.Parent) {
		out = append(out, get(n)...)
	}

	return out
}

func nearestString(t *Tree, id ID, get func(*Settings) string) string {
	v, _ := nearest(t, id, func(n *Node) (string, bool) {
		s := get(&n.Settings)
		return s, s != ""
	})

	return v
}

// SmartPtrType returns the nearest smart pointer holder, e.g. "std::shared_ptr".
func (t *Tree) SmartPtrType(id ID) string {
	return nearestString(t, id, func(s *Settings) string { return s.SmartPtrType })
}

// PointerCallPolicy returns the nearest ownership policy for pointer returns.
func (t *Tree) PointerCallPolicy(id ID) string {
	return nearestString(t, id, func(s *Settings) string { return s.PointerCallPolicy })
}

// ReferenceCallPolicy returns the nearest ownership policy for reference returns.
func (t *Tree) ReferenceCallPolicy(id ID) string {
	return nearestString(t, id, func(s *Settings) string { return s.ReferenceCallPolicy })
}

// CustomGenerator returns the nearest custom generator name.
func (t *Tree) CustomGenerator(id ID) string {
	return nearestString(t, id, func(s *Settings) string { return s.CustomGenerator })
}

// NameReplacements returns the nearest replacement table.
func (t *Tree) NameReplacements(id ID) mangle.Table {
	v, _ := nearest(t, id, func(n *Node) (mangle.Table, bool) {
		return n.Settings.NameReplacements, n.Settings.NameReplacements != nil
	})

	return v
}

// CommonIncludeFile reports whether wrappers include the header collection.
func (t *Tree) CommonIncludeFile(id ID) bool {
	v, ok := nearest(t, id, func(n *Node) (bool, bool) {
		if n.Settings.CommonIncludeFile == nil {
			return false, false
		}

		return *n.Settings.CommonIncludeFile, true
	})

	return ok && v
}

// SourceHppPatterns returns the header patterns of the package.
func (t *Tree) SourceHppPatterns() []string {
	if r := t.Root(); r != nil && r.Package != nil {
		return r.Package.SourceHppPatterns
	}

	return nil
}

// SourceIncludes gathers include lines, most specific first.
func (t *Tree) SourceIncludes(id ID) []string {
	return gather(t, id, func(n *Node) []string { return n.Settings.SourceIncludes })
}

// CalldefExcludes gathers types that make a function unbindable.
func (t *Tree) CalldefExcludes(id ID) []string {
	return gather(t, id, func(n *Node) []string { return n.Settings.CalldefExcludes })
}

// TemplateSubstitutions gathers substitutions, most specific first.
func (t *Tree) TemplateSubstitutions(id ID) []TemplateSubstitution {
	return gather(t, id, func(n *Node) []TemplateSubstitution { return n.Settings.TemplateSubstitutions })
}

// ExcludedMethods gathers method names not to bind.
func (t *Tree) ExcludedMethods(id ID) []string {
	return gather(t, id, func(n *Node) []string { return n.Settings.ExcludedMethods })
}

// ExcludedVariables gathers variable names not to bind.
func (t *Tree) ExcludedVariables(id ID) []string {
	return gather(t, id, func(n *Node) []string { return n.Settings.ExcludedVariables })
}

// ConstructorArgTypeExcludes gathers substrings that exclude a constructor argument.
func (t *Tree) ConstructorArgTypeExcludes(id ID) []string {
	return gather(t, id, func(n *Node) []string { return n.Settings.ConstructorArgTypeExcludes })
}

// ReturnTypeExcludes gathers substrings that exclude a return type.
func (t *Tree) ReturnTypeExcludes(id ID) []string {
	return gather(t, id, func(n *Node) []string { return n.Settings.ReturnTypeExcludes })
}

// ArgTypeExcludes gathers substrings that exclude an argument type.
func (t *Tree) ArgTypeExcludes(id ID) []string {
	return gather(t, id, func(n *Node) []string { return n.Settings.ArgTypeExcludes })
}

// ExtraCode returns the node's own extra wrapper code. It is not inherited.
func (t *Tree) ExtraCode(id ID) []string {
	if n := t.Node(id); n != nil {
		return n.Settings.ExtraCode
	}

	return nil
}

// PrefixCode returns the node's own prefix code. It is not inherited.
func (t *Tree) PrefixCode(id ID) []string {
	if n := t.Node(id); n != nil {
		return n.Settings.PrefixCode
	}

	return nil
}

// Attribute looks up a scalar setting by its ruleset key, walking up from id.
// Unknown keys and unset values report false.
func (t *Tree) Attribute(id ID, key string) (any, bool) {
	switch key {
	case "smart_ptr_type":
		return nonEmpty(t.SmartPtrType(id))
	case "pointer_call_policy":
		return nonEmpty(t.PointerCallPolicy(id))
	case "reference_call_policy":
		return nonEmpty(t.ReferenceCallPolicy(id))
	case "custom_generator":
		return nonEmpty(t.CustomGenerator(id))
	case "name_replacements":
		if table := t.NameReplacements(id); table != nil {
			return table, true
		}

		return nil, false
	case "common_include_file":
		return nearest(t, id, func(n *Node) (any, bool) {
			if n.Settings.CommonIncludeFile == nil {
				return nil, false
			}

			return *n.Settings.CommonIncludeFile, true
		})
	default:
		return nil, false
	}
}

func nonEmpty(s string) (any, bool) {
	if s == "" {
		return nil, false
	}

	return s, true
}

// Gather collects a string list setting by its ruleset key from id and its
// ancestors. Unknown keys give an empty result. Substitutions are gathered
// with TemplateSubstitutions.
func (t *Tree) Gather(id ID, key string) []string {
	switch key {
	case "source_includes":
		return t.SourceIncludes(id)
	case "calldef_excludes":
		return t.CalldefExcludes(id)
	case "excluded_methods":
		return t.ExcludedMethods(id)
	case "excluded_variables":
		return t.ExcludedVariables(id)
	case "constructor_arg_type_excludes":
		return t.ConstructorArgTypeExcludes(id)
	case "return_type_excludes":
		return t.ReturnTypeExcludes(id)
	case "arg_type_excludes":
		return t.ArgTypeExcludes(id)
	default:
		return nil
	}
}

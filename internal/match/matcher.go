package match

import (
	"fmt"
	"path/filepath"
	"strings"

	"wrapper-generator/internal/decl"
	"wrapper-generator/internal/diagnostic"
	"wrapper-generator/internal/feature"
	"wrapper-generator/internal/mangle"
)

// Options tune resolution.
type Options struct {
	// Strict reports unresolved and ambiguous features as errors instead of warnings.
	Strict bool
	// Suggestions caps the names offered for an unresolved feature; zero means DefaultSuggestions.
	Suggestions int
}

// Summary counts what Resolve did, per instantiation slot.
type Summary struct {
	Synthesized int
	Resolved    int
	Unresolved  int
	Ambiguous   int
}

// Matcher binds features to the declarations of one parsed source tree.
type Matcher struct {
	set  *decl.Set
	opts Options
}

// New returns a Matcher over set.
func New(set *decl.Set, opts Options) *Matcher {
	if opts.Suggestions == 0 {
		opts.Suggestions = DefaultSuggestions
	}

	return &Matcher{set: set, opts: opts}
}

// Resolve fills the Decls of every type-bearing feature in tree. Modules
// exposing all declarations of a kind first get one synthesized feature per
// declaration found under their source locations.
func (m *Matcher) Resolve(tree *feature.Tree, diags *diagnostic.Diagnostics) Summary {
	var sum Summary

	for _, mod := range tree.Modules() {
		sum.Synthesized += m.synthesize(tree, mod)

		for _, n := range tree.Children(mod.ID, feature.KindClass, feature.KindFreeFunction, feature.KindVariable) {
			if n.Synthesized {
				continue
			}

			m.bind(tree, n, diags, &sum)
		}
	}

	return sum
}

// Lookup classifies the declarations of kind named name.
func (m *Matcher) Lookup(kind feature.Kind, name string) Result {
	switch kind {
	case feature.KindClass:
		return Classify(m.set.ClassesNamed(name))
	case feature.KindFreeFunction:
		return Classify(m.set.FunctionsNamed(name))
	case feature.KindVariable:
		return Classify(m.set.VariablesNamed(name))
	default:
		return Result{Kind: Unresolved}
	}
}

func (m *Matcher) bind(tree *feature.Tree, n *feature.Node, diags *diagnostic.Diagnostics, sum *Summary) {
	names := tree.FullNames(n.ID)
	n.Decls = make([]decl.Decl, len(names))

	for i, name := range names {
		res := m.Lookup(n.Kind, name)

		switch res.Kind {
		case Resolved:
			n.Decls[i] = res.Decl()
			sum.Resolved++
		case Unresolved:
			sum.Unresolved++
			diags.Add(diagnostic.Diagnostic{
				Severity:    m.severity(),
				Code:        diagnostic.CodeUnresolved,
				Message:     fmt.Sprintf("no %s declaration found", kindNoun(n.Kind)),
				Feature:     tree.Label(n.ID),
				Location:    name,
				Suggestions: Suggest(name, m.candidates(n.Kind), m.opts.Suggestions),
			})
		case Ambiguous:
			sum.Ambiguous++
			diags.Add(diagnostic.Diagnostic{
				Severity: m.severity(),
				Code:     diagnostic.CodeAmbiguous,
				Message: fmt.Sprintf("%d %s declarations match (%s); none bound",
					len(res.Candidates), kindNoun(n.Kind), qualifiedNames(res.Candidates)),
				Feature:  tree.Label(n.ID),
				Location: name,
			})
		}
	}
}

func (m *Matcher) severity() diagnostic.DiagnosticSeverity {
	if m.opts.Strict {
		return diagnostic.DiagnosticError
	}

	return diagnostic.DiagnosticWarning
}

func (m *Matcher) candidates(kind feature.Kind) []string {
	switch kind {
	case feature.KindClass:
		return m.set.ClassNames()
	case feature.KindFreeFunction:
		return m.set.FunctionNames()
	default:
		return m.set.VariableNames()
	}
}

// synthesize adds the features of an expose-all module and returns how many it added.
func (m *Matcher) synthesize(tree *feature.Tree, mod *feature.Node) int {
	opts := mod.Module
	if opts == nil || !(opts.UseAllClasses || opts.UseAllFreeFunctions || opts.UseAllVariables) {
		return 0
	}

	scope := m.set.Under(moduleLocations(tree.SourceRoot(), opts.SourceLocations)...)
	added := 0

	if opts.UseAllClasses {
		for _, c := range scope.Classes {
			if c.IsNested() || c.Incomplete {
				continue
			}

			n := tree.Add(mod.ID, feature.KindClass, c.Name)
			if base, args, ok := mangle.SplitTemplateName(c.Name); ok && len(args) > 0 {
				n.Name = base
				n.TemplateArgLists = [][]string{args}
			}

			adopt(n, c)
			added++
		}
	}

	if opts.UseAllFreeFunctions {
		for _, f := range scope.Functions {
			adopt(tree.Add(mod.ID, feature.KindFreeFunction, f.Name), f)
			added++
		}
	}

	if opts.UseAllVariables {
		for _, v := range scope.Variables {
			adopt(tree.Add(mod.ID, feature.KindVariable, v.Name), v)
			added++
		}
	}

	return added
}

func adopt(n *feature.Node, d decl.Decl) {
	n.Synthesized = true
	n.Decls = []decl.Decl{d}

	if file := d.SourceLocation().File; file != "" {
		n.SourceFileFullPath = file
		n.SourceFile = filepath.Base(file)
	}
}

// moduleLocations returns the path fragments a declaration file must contain
// to belong to a module, "<root>/<location>/" each. None means every file.
func moduleLocations(root string, locations []string) []string {
	out := make([]string, 0, len(locations))
	for _, loc := range locations {
		out = append(out, strings.TrimSuffix(root, "/")+"/"+strings.Trim(loc, "/")+"/")
	}

	return out
}

func qualifiedNames(ds []decl.Decl) string {
	names := make([]string, len(ds))
	for i, d := range ds {
		names[i] = d.QualifiedName()
	}

	return strings.Join(names, ", ")
}

func kindNoun(k feature.Kind) string {
	switch k {
	case feature.KindClass:
		return "class"
	case feature.KindFreeFunction:
		return "free function"
	case feature.KindVariable:
		return "variable"
	default:
		return strings.ToLower(k.String())
	}
}

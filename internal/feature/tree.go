package feature

import (
	"wrapper-generator/internal/decl"
	"wrapper-generator/internal/mangle"
)

// ID indexes a node in its Tree.
type ID int

// NoParent is the parent of the root node.
const NoParent ID = -1

// Node is one feature in the hierarchy.
type Node struct {
	ID     ID
	Parent ID
	Kind   Kind
	Name   string

	// Settings holds only what this node sets; reads go through the Tree.
	Settings Settings

	// NameOverride, SourceFile and SourceFileFullPath apply to type-bearing nodes.
	NameOverride       string
	SourceFile         string
	SourceFileFullPath string

	// TemplateArgLists holds one argument list per instantiation; nil means untemplated.
	TemplateArgLists [][]string

	// Decls has one slot per instantiation, nil where resolution failed.
	Decls []decl.Decl

	// Synthesized marks nodes created for a CPPWG_ALL module rather than configured.
	Synthesized bool

	Module  *ModuleOptions
	Package *PackageOptions

	children []ID
}

// ModuleOptions are the settings only modules carry.
type ModuleOptions struct {
	SourceLocations     []string
	UseAllClasses       bool
	UseAllFreeFunctions bool
	UseAllVariables     bool
}

// PackageOptions are the settings only the package carries.
type PackageOptions struct {
	SourceRoot        string
	SourceHppPatterns []string
}

// Tree is an append-only arena of nodes. Node 0 is the package.
type Tree struct {
	nodes []*Node
}

// NewTree returns a tree holding only a package node with the default settings.
func NewTree(name string) *Tree {
	t := &Tree{}
	root := t.add(NoParent, KindPackage, name)
	root.Settings.NameReplacements = mangle.DefaultTable()
	root.Settings.CommonIncludeFile = boolPtr(true)
	root.Package = &PackageOptions{SourceHppPatterns: []string{"*.hpp"}}

	return t
}

func boolPtr(v bool) *bool {
	return &v
}

func (t *Tree) add(parent ID, kind Kind, name string) *Node {
	n := &Node{ID: ID(len(t.nodes)), Parent: parent, Kind: kind, Name: name}
	t.nodes = append(t.nodes, n)

	if p := t.Node(parent); p != nil {
		p.children = append(p.children, n.ID)
	}

	return n
}

// Add appends a node under parent and returns it.
func (t *Tree) Add(parent ID, kind Kind, name string) *Node {
	n := t.add(parent, kind, name)
	if kind == KindModule && n.Module == nil {
		n.Module = &ModuleOptions{}
	}

	return n
}

// Node returns the node with the given ID, or nil.
func (t *Tree) Node(id ID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}

	return t.nodes[id]
}

// Root returns the package node.
func (t *Tree) Root() *Node {
	return t.Node(0)
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Children returns the direct children of id in insertion order.
func (t *Tree) Children(id ID, kinds ...Kind) []*Node {
	n := t.Node(id)
	if n == nil {
		return nil
	}

	out := make([]*Node, 0, len(n.children))

	for _, c := range n.children {
		child := t.nodes[c]
		if len(kinds) == 0 || containsKind(kinds, child.Kind) {
			out = append(out, child)
		}
	}

	return out
}

func containsKind(kinds []Kind, k Kind) bool {
	for _, want := range kinds {
		if want == k {
			return true
		}
	}

	return false
}

// Modules returns the module nodes of the package in order.
func (t *Tree) Modules() []*Node {
	return t.Children(0, KindModule)
}

// ModuleOf returns the module enclosing id, or nil for the package.
func (t *Tree) ModuleOf(id ID) *Node {
	for n := t.Node(id); n != nil; n = t.Node(n.Parent) {
		if n.Kind == KindModule {
			return n
		}
	}

	return nil
}

// Label names a node for diagnostics, e.g. "geometry/Point".
func (t *Tree) Label(id ID) string {
	n := t.Node(id)
	if n == nil {
		return ""
	}

	if m := t.ModuleOf(id); m != nil && m != n {
		return m.Name + "/" + n.Name
	}

	return n.Name
}

// Identifier returns the naming input of a node.
func (t *Tree) Identifier(id ID) mangle.Identifier {
	n := t.Node(id)
	if n == nil {
		return mangle.Identifier{}
	}

	return mangle.Identifier{Name: n.Name, NameOverride: n.NameOverride, TemplateArgLists: n.TemplateArgLists}
}

// ShortNames returns the binding-side names of each instantiation of id.
func (t *Tree) ShortNames(id ID) []string {
	return mangle.ShortNames(t.Identifier(id), t.NameReplacements(id))
}

// FullNames returns the C++ names of each instantiation of id.
func (t *Tree) FullNames(id ID) []string {
	return mangle.FullNames(t.Identifier(id))
}

// SourceRoot returns the package source root.
func (t *Tree) SourceRoot() string {
	if r := t.Root(); r != nil && r.Package != nil {
		return r.Package.SourceRoot
	}

	return ""
}

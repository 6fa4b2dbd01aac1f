package decl

import (
	"path/filepath"
	"strings"
)

// Decl is implemented by every top-level declaration a feature can bind to.
type Decl interface {
	// QualifiedName returns the fully qualified name, e.g. "::geo::Point<2>".
	QualifiedName() string
	// SourceLocation returns where the declaration is written.
	SourceLocation() Location
}

// Location is a position in a source file.
type Location struct {
	File string
	Line int
}

// Base returns the file name without its directory.
func (l Location) Base() string {
	return filepath.Base(l.File)
}

// Type is a resolved type in declaration string form, e.g. "::Foo<2> const &".
type Type struct {
	Decl string
	// IsPointer is set when the type is a pointer after removing cv and typedefs.
	IsPointer bool
	// IsReference is set when the type is a reference after removing cv and typedefs.
	IsReference bool
}

// String returns the declaration string.
func (t Type) String() string {
	return t.Decl
}

// FirstToken returns the declaration string up to its first space.
func (t Type) FirstToken() string {
	tok, _, _ := strings.Cut(t.Decl, " ")
	return tok
}

// Argument of a function or constructor.
type Argument struct {
	Name    string
	Type    Type
	Default string
}

// Function is a free function, member function or constructor.
type Function struct {
	Name    string
	Context string
	// Owner is the class declaring the member. Nil for free functions.
	Owner      *Class
	Access     Access
	Virtuality Virtuality
	Const      bool
	Static     bool
	Artificial bool
	Returns    Type
	Arguments  []Argument
	Location   Location
}

// QualifiedName returns the function name with its enclosing scope.
func (f *Function) QualifiedName() string {
	return qualify(f.Context, f.Name)
}

// SourceLocation returns where the function is declared.
func (f *Function) SourceLocation() Location {
	return f.Location
}

// ArgumentTypes returns the argument declaration strings.
func (f *Function) ArgumentTypes() []string {
	out := make([]string, len(f.Arguments))
	for i, a := range f.Arguments {
		out[i] = a.Type.Decl
	}

	return out
}

// SameSignature reports whether g has the same name and argument types as f.
func (f *Function) SameSignature(g *Function) bool {
	if f.Name != g.Name || len(f.Arguments) != len(g.Arguments) {
		return false
	}

	for i := range f.Arguments {
		if f.Arguments[i].Type.Decl != g.Arguments[i].Type.Decl {
			return false
		}
	}

	return true
}

// Base is an inheritance edge.
type Base struct {
	// Class is the base declaration, nil when castxml did not describe it.
	Class   *Class
	Name    string
	Access  Access
	Virtual bool
}

// EnumValue is one enumerator.
type EnumValue struct {
	Name  string
	Value string
}

// Enum is an enumeration declaration.
type Enum struct {
	Name     string
	Context  string
	Owner    *Class
	Access   Access
	Values   []EnumValue
	Location Location
}

// QualifiedName returns the enum name with its enclosing scope.
func (e *Enum) QualifiedName() string {
	return qualify(e.Context, e.Name)
}

// SourceLocation returns where the enum is declared.
func (e *Enum) SourceLocation() Location {
	return e.Location
}

// Class is a class, struct or union declaration.
type Class struct {
	// Name as castxml writes it, template arguments included, e.g. "Foo<2>".
	Name    string
	Context string
	Kind    ClassKind
	Access  Access
	// Abstract is castxml's own abstract flag.
	Abstract   bool
	Incomplete bool
	Location   Location

	// Owner is the enclosing class of a nested class.
	Owner *Class

	Bases        []Base
	Constructors []*Function
	Methods      []*Function
	Enums        []*Enum
	Nested       []*Class
}

// QualifiedName returns the class name with its enclosing scope.
func (c *Class) QualifiedName() string {
	return qualify(c.Context, c.Name)
}

// SourceLocation returns where the class is declared.
func (c *Class) SourceLocation() Location {
	return c.Location
}

// IsStruct reports whether the record was declared with the struct keyword.
func (c *Class) IsStruct() bool {
	return c.Kind == KindStruct
}

// AllMethods returns the methods of the class followed by those of its nested
// classes, depth first. Callers compare Owner to tell them apart.
func (c *Class) AllMethods() []*Function {
	out := append([]*Function(nil), c.Methods...)
	for _, n := range c.Nested {
		out = append(out, n.AllMethods()...)
	}

	return out
}

// AllConstructors returns constructors of the class and its nested classes, depth first.
func (c *Class) AllConstructors() []*Function {
	out := append([]*Function(nil), c.Constructors...)
	for _, n := range c.Nested {
		out = append(out, n.AllConstructors()...)
	}

	return out
}

// IsNested reports whether the class is declared inside another class.
func (c *Class) IsNested() bool {
	return c.Owner != nil
}

// Variable is a namespace-scope variable.
type Variable struct {
	Name     string
	Context  string
	Type     Type
	Location Location
}

// QualifiedName returns the variable name with its enclosing scope.
func (v *Variable) QualifiedName() string {
	return qualify(v.Context, v.Name)
}

// SourceLocation returns where the variable is declared.
func (v *Variable) SourceLocation() Location {
	return v.Location
}

// qualify joins a scope such as "::geo" and a name. The global scope is "".
func qualify(context, name string) string {
	return context + "::" + name
}

package plan

import (
	"wrapper-generator/internal/decl"
	"wrapper-generator/internal/feature"
)

// Plan is the binding decision for a whole package.
type Plan struct {
	Package string
	Modules []*ModulePlan
}

// ModulePlan holds the decisions for one output module.
type ModulePlan struct {
	Name    string
	Feature feature.ID
	// Classes holds one plan per bound class instantiation in registration
	// order: every class comes after its exposed bases.
	Classes       []*ClassPlan
	FreeFunctions []*FunctionPlan
	Variables     []*VariablePlan
	// Exposed holds the compact full names of every class instantiation the
	// module selects, bound or not.
	Exposed []string
}

// ClassPlan is the decision for one class instantiation.
type ClassPlan struct {
	Feature   feature.ID
	Label     string
	ShortName string
	FullName  string
	Decl      *decl.Class

	// StructEnum is set for a struct holding exactly one enum. Such a class
	// is registered as an opaque struct with its enum values and carries no
	// other decisions.
	StructEnum *decl.Enum

	Abstract     bool
	Overrides    []Override
	Typedefs     []Typedef
	Constructors []Constructor
	Methods      []Method
	// Bases are the base class names to register, in declaration order.
	Bases        []string
	SmartPtrType string
}

// HasOverrides reports whether the class needs a trampoline class.
func (c *ClassPlan) HasOverrides() bool {
	return len(c.Overrides) > 0
}

// IncludedConstructors returns the constructors to emit.
func (c *ClassPlan) IncludedConstructors() []Constructor {
	var out []Constructor

	for _, ctor := range c.Constructors {
		if ctor.Included {
			out = append(out, ctor)
		}
	}

	return out
}

// IncludedMethods returns the methods to emit.
func (c *ClassPlan) IncludedMethods() []Method {
	var out []Method

	for _, m := range c.Methods {
		if m.Included {
			out = append(out, m)
		}
	}

	return out
}

// Override is a virtual method forwarded through the trampoline class.
type Override struct {
	Decl *decl.Function
	Pure bool
	// ReturnType is the return type as written in the override macro: the
	// typedef name when the declared type needs one, else the type itself.
	ReturnType string
}

// Typedef aliases a return type that cannot be written inside a macro argument.
type Typedef struct {
	Name string
	Type string
}

// Constructor is one constructor and whether it is emitted.
type Constructor struct {
	Decl      *decl.Function
	Signature string
	Included  bool
	Reason    ExclusionReason
}

// Method is one member function and whether it is emitted.
type Method struct {
	Decl      *decl.Function
	Signature string
	Included  bool
	Reason    ExclusionReason
	// CallPolicy is the return value policy for pointer and reference
	// returns; empty means the binding runtime default.
	CallPolicy string
}

// FunctionPlan is the decision for one free function.
type FunctionPlan struct {
	Feature   feature.ID
	Label     string
	Decl      *decl.Function
	Signature string
	Included  bool
	Reason    ExclusionReason
}

// VariablePlan is the decision for one variable.
type VariablePlan struct {
	Feature  feature.ID
	Label    string
	Decl     *decl.Variable
	Included bool
	Reason   ExclusionReason
}

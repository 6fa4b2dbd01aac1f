package plan

//go:generate go tool stringer -type=ExclusionReason -trimprefix=Reason -output=reason_string.go

// ExclusionReason tells why a constructor, method, function or variable is
// left out of the bindings. ReasonNone marks an included entry.
type ExclusionReason int

const (
	ReasonNone ExclusionReason = iota
	// ReasonNotPublic: private or protected member.
	ReasonNotPublic
	// ReasonNestedType: declared in a nested class, not the class itself.
	ReasonNestedType
	// ReasonArtificial: compiler generated constructor.
	ReasonArtificial
	// ReasonCalldefExclude: a type listed in calldef_excludes.
	ReasonCalldefExclude
	// ReasonConstructorArgExclude: an argument containing a constructor_arg_type_excludes entry.
	ReasonConstructorArgExclude
	// ReasonIteratorArg: a constructor argument type mentioning an iterator.
	ReasonIteratorArg
	// ReasonPrivatePureVirtual: the class has a private pure virtual method.
	ReasonPrivatePureVirtual
	// ReasonAbstractBase: the class is abstract and so is one of its bases.
	ReasonAbstractBase
	// ReasonExcludedMethod: listed in excluded_methods.
	ReasonExcludedMethod
	// ReasonReturnTypeExclude: return type containing a return_type_excludes entry.
	ReasonReturnTypeExclude
	// ReasonArgTypeExclude: an argument containing an arg_type_excludes entry.
	ReasonArgTypeExclude
	// ReasonExcludedVariable: listed in excluded_variables.
	ReasonExcludedVariable
)

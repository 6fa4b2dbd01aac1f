package decl

//go:generate go tool stringer -type=Access -output=access_string.go
//go:generate go tool stringer -type=Virtuality -output=virtuality_string.go
//go:generate go tool stringer -type=ClassKind -output=classkind_string.go

// Access is a C++ access specifier.
type Access int

const (
	AccessPublic Access = iota
	AccessProtected
	AccessPrivate
)

// ParseAccess converts a castxml access attribute. Empty means public.
func ParseAccess(s string) Access {
	switch s {
	case "protected":
		return AccessProtected
	case "private":
		return AccessPrivate
	default:
		return AccessPublic
	}
}

// Virtuality of a member function.
type Virtuality int

const (
	NotVirtual Virtuality = iota
	Virtual
	PureVirtual
)

// IsVirtual reports whether v is Virtual or PureVirtual.
func (v Virtuality) IsVirtual() bool {
	return v == Virtual || v == PureVirtual
}

// ClassKind distinguishes class, struct and union records.
type ClassKind int

const (
	KindClass ClassKind = iota
	KindStruct
	KindUnion
)

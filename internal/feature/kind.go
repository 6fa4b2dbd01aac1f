package feature

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind of a feature node.
type Kind int

const (
	KindPackage Kind = iota
	KindModule
	KindClass
	KindFreeFunction
	KindVariable
	KindMethod
)

// TypeBearing reports whether nodes of this kind bind to declarations.
func (k Kind) TypeBearing() bool {
	return k == KindClass || k == KindFreeFunction || k == KindVariable
}

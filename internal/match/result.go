package match

import (
	"wrapper-generator/internal/common"
	"wrapper-generator/internal/decl"
)

//go:generate go tool stringer -type=ResultKind -output=resultkind_string.go

// ResultKind tells how many declarations a lookup found.
type ResultKind int

const (
	Unresolved ResultKind = iota
	Resolved
	Ambiguous
)

// Result is the outcome of looking up one name.
type Result struct {
	Kind ResultKind
	// Candidates holds the declarations found: one when resolved, several when ambiguous.
	Candidates []decl.Decl
}

// Decl returns the bound declaration, or nil unless the result is resolved.
func (r Result) Decl() decl.Decl {
	if r.Kind != Resolved {
		return nil
	}

	d, _ := common.First(r.Candidates)

	return d
}

// Classify turns the declarations found for a name into a Result.
func Classify[D decl.Decl](found []D) Result {
	candidates := make([]decl.Decl, len(found))
	for i, d := range found {
		candidates[i] = d
	}

	switch {
	case common.IsEmpty(found):
		return Result{Kind: Unresolved}
	case common.IsSingle(found):
		return Result{Kind: Resolved, Candidates: candidates}
	default:
		return Result{Kind: Ambiguous, Candidates: candidates}
	}
}

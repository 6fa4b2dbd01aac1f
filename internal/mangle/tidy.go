package mangle

import "strings"

// tidyTable is applied in order; later entries must not re-match text
// produced by earlier ones.
var tidyTable = []Replacement{
	{Pattern: " ", Replacement: ""},
	{Pattern: ",", Replacement: "_"},
	{Pattern: "<", Replacement: "_lt_"},
	{Pattern: ">", Replacement: "_gt_"},
	{Pattern: "::", Replacement: "_"},
	{Pattern: "*", Replacement: "Ptr"},
	{Pattern: "&", Replacement: "Ref"},
	{Pattern: "-", Replacement: "neg"},
}

// unsafeTokens mark a type string that cannot be used verbatim in a typedef name.
var unsafeTokens = []string{"<", ">", ",", "*", "&", "-", "::"}

// TidyName turns a C++ type string into an identifier usable as a typedef name,
// e.g. "std::vector<double> const &" gives "std_vector_lt_double_gt_constRef".
func TidyName(typeName string) string {
	for _, r := range tidyTable {
		typeName = strings.ReplaceAll(typeName, r.Pattern, r.Replacement)
	}

	return typeName
}

// NeedsTypedef reports whether a type string contains characters unsafe for
// use in a generated name.
func NeedsTypedef(typeName string) bool {
	for _, tok := range unsafeTokens {
		if strings.Contains(typeName, tok) {
			return true
		}
	}

	return false
}

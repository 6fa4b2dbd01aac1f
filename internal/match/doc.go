// Package match binds configured features to parsed C++ declarations.
//
// Explicit features are looked up by their full names; modules that expose
// everything get one synthesized feature per declaration under their source
// locations. A lookup yields a Result, which is unresolved, resolved or
// ambiguous. Unresolved names are reported with suggestions ranked by
// NameScore, a normalized Levenshtein similarity.
package match

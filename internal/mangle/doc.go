// Package mangle turns C++ feature names and template arguments into
// identifier-safe names for the binding side.
//
// It owns the ordered name-replacement table, the short/full name
// derivation for each template instantiation, and the fixed tidy table
// used to name typedefs of unsafe return types.
package mangle

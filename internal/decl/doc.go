// Package decl models the C++ declarations extracted from a header
// collection and reads them from castxml output.
//
// The model only carries what wrapper decisions need: qualified names,
// source locations, member access and virtuality, return and argument
// types in declaration string form, bases and enumerators.
package decl

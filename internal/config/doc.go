// Package config handles the YAML ruleset that describes which C++
// features a wrapper package exposes.
//
// A ruleset has one package with modules. Each module lists classes, free
// functions and variables, or asks for everything under its source
// locations with CPPWG_ALL. Every level may carry the shared settings in
// Common; unset settings are inherited from the enclosing level later, by
// the feature tree.
package config

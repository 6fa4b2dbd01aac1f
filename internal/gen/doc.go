// Package gen renders binding plans into C++ wrapper sources.
//
// Output text comes from a keyed set of text/template templates. The
// default set targets pybind11; a YAML file can replace individual keys.
//
// Files produced per run:
//   - wrapper_header_collection.hpp, the aggregate header handed to castxml
//   - <module>/<Short>.cppwg.hpp and <module>/<Short>.cppwg.cpp per class instantiation
//   - <module>/<module>.main.cpp per module
//
// Custom generators registered with RegisterCustomGenerator add code around
// class definitions and inside module definitions.
package gen

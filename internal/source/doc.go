// Package source works on the C++ source tree before declarations are
// extracted: it collects headers, maps features to the headers that
// declare them, and infers template instantiations from header text.
package source

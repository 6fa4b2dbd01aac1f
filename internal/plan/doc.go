// Package plan decides what gets bound for every resolved feature.
//
// Build walks the feature tree after resolution and produces a Plan: per
// class instantiation the virtual overrides, return type aliases, the
// constructors and methods with their inclusion decisions, the exposed
// bases and call policies; per module the free functions, the variables and
// the class registration order. Exclusions are recorded as plan data with
// an ExclusionReason, never as diagnostics.
package plan

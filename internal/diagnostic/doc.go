// Package diagnostic provides structured warnings, errors and infos
// collected while resolving a wrapper ruleset.
//
// Key capabilities:
//   - Unresolved feature warnings with closest-name suggestions
//   - Ambiguous declaration reports
//   - Template inference misses and missing call policies
//   - Terminal-aware report rendering
package diagnostic

// Package feature holds the configuration hierarchy: a tree of package,
// module and type-bearing feature nodes whose settings are inherited from
// the nearest ancestor that sets them.
//
// Inheritance is resolved on every read by walking parent IDs, so a node
// gives consistent answers while the tree is still being built.
package feature

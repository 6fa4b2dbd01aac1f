package mangle

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Replacement is a single substring substitution.
type Replacement struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// Table is an ordered list of replacements applied first to last.
// Order is part of the contract: "unsigned int" must run before "unsigned".
type Table []Replacement

// DefaultTable returns the replacement table used when a ruleset does not configure one.
func DefaultTable() Table {
	return Table{
		{Pattern: "double", Replacement: "Double"},
		{Pattern: "unsigned int", Replacement: "Unsigned"},
		{Pattern: "Unsigned int", Replacement: "Unsigned"},
		{Pattern: "unsigned", Replacement: "Unsigned"},
		{Pattern: "std::vector", Replacement: "Vector"},
		{Pattern: "std::pair", Replacement: "Pair"},
		{Pattern: "std::map", Replacement: "Map"},
		{Pattern: "std::string", Replacement: "String"},
		{Pattern: "boost::shared_ptr", Replacement: "SharedPtr"},
		{Pattern: "*", Replacement: "Ptr"},
		{Pattern: "c_vector", Replacement: "CVector"},
		{Pattern: "std::set", Replacement: "Set"},
	}
}

// Apply runs every replacement over s in table order.
func (t Table) Apply(s string) string {
	for _, r := range t {
		if r.Pattern == "" {
			continue
		}

		s = strings.ReplaceAll(s, r.Pattern, r.Replacement)
	}

	return s
}

// Clone returns a copy that can be modified without touching t.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}

	out := make(Table, len(t))
	copy(out, t)

	return out
}

var (
	// ErrEmptyPattern is returned when a replacement has no pattern.
	ErrEmptyPattern = errors.New("empty replacement pattern")
	// ErrSelfMatching is returned when a pattern occurs inside a replacement value.
	ErrSelfMatching = errors.New("pattern re-matches a replacement value")
)

// Validate checks that applying the table twice gives the same result as applying it once.
// That holds when no pattern is empty and no pattern occurs inside any replacement value.
func (t Table) Validate() error {
	for i, r := range t {
		if r.Pattern == "" {
			return fmt.Errorf("entry %d: %w", i, ErrEmptyPattern)
		}

		for _, other := range t {
			if strings.Contains(other.Replacement, r.Pattern) {
				return fmt.Errorf("pattern %q in replacement %q: %w", r.Pattern, other.Replacement, ErrSelfMatching)
			}
		}
	}

	return nil
}

// UnmarshalYAML accepts either an ordered mapping (pattern: replacement)
// or a sequence of {pattern, replacement} entries.
func (t *Table) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		out := make(Table, 0, len(node.Content)/2)

		for i := 0; i+1 < len(node.Content); i += 2 {
			var r Replacement

			if err := node.Content[i].Decode(&r.Pattern); err != nil {
				return fmt.Errorf("invalid replacement pattern: %w", err)
			}

			if err := node.Content[i+1].Decode(&r.Replacement); err != nil {
				return fmt.Errorf("invalid replacement for %q: %w", r.Pattern, err)
			}

			out = append(out, r)
		}

		*t = out

		return nil

	case yaml.SequenceNode:
		var list []Replacement

		if err := node.Decode(&list); err != nil {
			return err
		}

		*t = list

		return nil

	default:
		return fmt.Errorf("expected mapping or list of replacements, got %v", node.Kind)
	}
}

// MarshalYAML writes the table as an ordered mapping.
func (t Table) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, r := range t {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.Pattern},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.Replacement},
		)
	}

	return node, nil
}

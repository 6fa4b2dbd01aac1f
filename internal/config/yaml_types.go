package config

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	trueStrings  = []string{"ON", "YES", "Y", "TRUE", "T"}
	falseStrings = []string{"OFF", "NO", "N", "FALSE", "F"}
)

// IsAll reports whether s is the CPPWG_ALL marker, ignoring case.
func IsAll(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), AllString)
}

// --- FeatureList YAML methods ---

// UnmarshalYAML accepts CPPWG_ALL, a list of feature mappings, or bare
// feature names inside the list.
func (f *FeatureList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*f = FeatureList{}
			return nil
		}

		if !IsAll(node.Value) {
			return fmt.Errorf("line %d: expected %s or a list of features, got %q", node.Line, AllString, node.Value)
		}

		*f = FeatureList{All: true}

		return nil

	case yaml.SequenceNode:
		items := make([]FeatureConfig, 0, len(node.Content))

		for _, item := range node.Content {
			switch item.Kind {
			case yaml.ScalarNode:
				items = append(items, FeatureConfig{Name: item.Value})

			case yaml.MappingNode:
				var fc FeatureConfig

				if err := item.Decode(&fc); err != nil {
					return err
				}

				items = append(items, fc)

			default:
				return fmt.Errorf("line %d: expected feature name or mapping, got %v", item.Line, item.Kind)
			}
		}

		*f = FeatureList{Items: items}

		return nil

	default:
		return fmt.Errorf("line %d: expected %s or a list of features, got %v", node.Line, AllString, node.Kind)
	}
}

// MarshalYAML writes CPPWG_ALL or the item list.
func (f FeatureList) MarshalYAML() (any, error) {
	if f.All {
		return AllString, nil
	}

	return f.Items, nil
}

// IsZero lets omitempty drop an empty list.
func (f FeatureList) IsZero() bool {
	return !f.All && len(f.Items) == 0
}

// --- ArgLists YAML methods ---

// UnmarshalYAML accepts a list of lists of scalars, e.g. [[2, 2], ["unsigned int", 3]].
func (a *ArgLists) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: expected a list of template argument lists, got %v", node.Line, node.Kind)
	}

	out := make(ArgLists, 0, len(node.Content))

	for _, list := range node.Content {
		if list.Kind != yaml.SequenceNode {
			return fmt.Errorf("line %d: expected a template argument list, got %v", list.Line, list.Kind)
		}

		args := make([]string, 0, len(list.Content))

		for _, arg := range list.Content {
			if arg.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: expected a scalar template argument, got %v", arg.Line, arg.Kind)
			}

			args = append(args, arg.Value)
		}

		out = append(out, args)
	}

	*a = out

	return nil
}

// --- Toggle YAML methods ---

// UnmarshalYAML accepts YAML booleans and ON/OFF, YES/NO, Y/N, TRUE/FALSE, T/F strings.
func (t *Toggle) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a boolean, got %v", node.Line, node.Kind)
	}

	v := strings.ToUpper(strings.TrimSpace(node.Value))

	switch {
	case slices.Contains(trueStrings, v):
		*t = true
	case slices.Contains(falseStrings, v):
		*t = false
	default:
		return fmt.Errorf("line %d: expected a boolean, got %q", node.Line, node.Value)
	}

	return nil
}

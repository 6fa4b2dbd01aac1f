package config

import (
	"wrapper-generator/internal/mangle"
)

const (
	// AllString asks a module to expose every declaration of a kind.
	AllString = "CPPWG_ALL"
	// SourceRootString is replaced by the source root in path settings.
	SourceRootString = "CPPWG_SOURCEROOT"

	// DefaultPackageName is used when the ruleset does not name the package.
	DefaultPackageName = "cppwg_package"
	// DefaultHppPattern is used when the ruleset lists no header patterns.
	DefaultHppPattern = "*.hpp"
)

// PackageFile represents the root of a ruleset file.
type PackageFile struct {
	// Name of the binding package.
	Name string `yaml:"name"`

	// SourceHppPatterns are glob patterns selecting headers under the source root.
	SourceHppPatterns []string `yaml:"source_hpp_patterns,omitempty"`

	Common `yaml:",inline"`

	// Modules are the output units of the package.
	Modules []ModuleConfig `yaml:"modules"`
}

// ModuleConfig is one output unit of the package.
type ModuleConfig struct {
	Name string `yaml:"name"`

	// SourceLocations restrict CPPWG_ALL discovery to these directories
	// relative to the source root.
	SourceLocations []string `yaml:"source_locations,omitempty"`

	Classes       FeatureList `yaml:"classes,omitempty"`
	FreeFunctions FeatureList `yaml:"free_functions,omitempty"`
	Variables     FeatureList `yaml:"variables,omitempty"`

	Common `yaml:",inline"`
}

// FeatureConfig configures one class, free function or variable.
type FeatureConfig struct {
	Name string `yaml:"name"`

	// NameOverride is the name used on the binding side.
	NameOverride string `yaml:"name_override,omitempty"`

	// SourceFile is the header basename declaring the feature.
	SourceFile string `yaml:"source_file,omitempty"`

	// TemplateArgLists lists explicit instantiations, e.g. [[2, 2], [3, 3]].
	// Nil means instantiations are inferred from template_substitutions.
	TemplateArgLists ArgLists `yaml:"template_arg_lists,omitempty"`

	Common `yaml:",inline"`
}

// Common holds the settings every level of the ruleset may carry.
// Scalars left empty and lists left nil are inherited.
type Common struct {
	SourceIncludes             []string               `yaml:"source_includes,omitempty"`
	CalldefExcludes            []string               `yaml:"calldef_excludes,omitempty"`
	SmartPtrType               string                 `yaml:"smart_ptr_type,omitempty"`
	TemplateSubstitutions      []TemplateSubstitution `yaml:"template_substitutions,omitempty"`
	PointerCallPolicy          string                 `yaml:"pointer_call_policy,omitempty"`
	ReferenceCallPolicy        string                 `yaml:"reference_call_policy,omitempty"`
	ExcludedMethods            []string               `yaml:"excluded_methods,omitempty"`
	ExcludedVariables          []string               `yaml:"excluded_variables,omitempty"`
	ConstructorArgTypeExcludes []string               `yaml:"constructor_arg_type_excludes,omitempty"`
	ReturnTypeExcludes         []string               `yaml:"return_type_excludes,omitempty"`
	ArgTypeExcludes            []string               `yaml:"arg_type_excludes,omitempty"`
	NameReplacements           mangle.Table           `yaml:"name_replacements,omitempty"`
	CustomGenerator            string                 `yaml:"custom_generator,omitempty"`
	ExtraCode                  []string               `yaml:"extra_code,omitempty"`
	PrefixCode                 []string               `yaml:"prefix_code,omitempty"`

	// CommonIncludeFile makes wrappers include the header collection
	// instead of their own headers.
	CommonIncludeFile *Toggle `yaml:"common_include_file,omitempty"`
}

// TemplateSubstitution maps a template signature found in a header to the
// instantiations to generate, e.g. {signature: "<unsigned DIM>", replacement: [[2], [3]]}.
type TemplateSubstitution struct {
	Signature   string   `yaml:"signature"`
	Replacement ArgLists `yaml:"replacement"`
}

// FeatureList is either CPPWG_ALL or an explicit list of features.
type FeatureList struct {
	All   bool
	Items []FeatureConfig
}

// ArgLists are template argument lists, one per instantiation.
// Arguments are kept as their literal YAML text.
type ArgLists [][]string

// Toggle is a boolean that also accepts ON/OFF style strings.
type Toggle bool

// Bool returns the toggle value, or def when t is nil.
func (t *Toggle) Bool(def bool) bool {
	if t == nil {
		return def
	}

	return bool(*t)
}

// NewToggle returns a pointer to a toggle holding v.
func NewToggle(v bool) *Toggle {
	t := Toggle(v)
	return &t
}

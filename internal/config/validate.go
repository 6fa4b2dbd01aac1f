package config

import (
	"fmt"
	"path/filepath"

	"wrapper-generator/internal/diagnostic"
)

// Validate checks the structural rules of a ruleset. Errors are fatal for a run.
func Validate(pf *PackageFile) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if pf == nil {
		res.AddError("package_is_nil", "package info is nil", "", "")
		return res
	}

	for _, pattern := range pf.SourceHppPatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			res.AddError(diagnostic.CodeInvalidValue,
				fmt.Sprintf("invalid header pattern %q: %v", pattern, err), pf.Name, "source_hpp_patterns")
		}
	}

	validateCommon(res, pf.Name, &pf.Common)

	seenModules := map[string]struct{}{}

	for i := range pf.Modules {
		m := &pf.Modules[i]
		if m.Name == "" {
			res.AddError(diagnostic.CodeMissingName, "module has no name", "", fmt.Sprintf("modules[%d]", i))
			continue
		}

		if _, ok := seenModules[m.Name]; ok {
			res.AddError(diagnostic.CodeDuplicateName, fmt.Sprintf("duplicate module %q", m.Name), m.Name, "")
			continue
		}

		seenModules[m.Name] = struct{}{}

		validateCommon(res, m.Name, &m.Common)
		validateFeatures(res, m.Name, "classes", m.Classes.Items)
		validateFeatures(res, m.Name, "free_functions", m.FreeFunctions.Items)
		validateFeatures(res, m.Name, "variables", m.Variables.Items)
	}

	return res
}

func validateFeatures(res *diagnostic.Diagnostics, module, key string, items []FeatureConfig) {
	seen := map[string]struct{}{}

	for i := range items {
		fc := &items[i]
		if fc.Name == "" {
			res.AddError(diagnostic.CodeMissingName, "feature has no name", module, fmt.Sprintf("%s[%d]", key, i))
			continue
		}

		feature := module + "/" + fc.Name
		if _, ok := seen[fc.Name]; ok {
			res.AddWarning(diagnostic.CodeDuplicateName, fmt.Sprintf("feature %q listed more than once", fc.Name), feature, key)
		}

		seen[fc.Name] = struct{}{}

		if fc.TemplateArgLists != nil && len(fc.TemplateArgLists) == 0 {
			res.AddWarning(diagnostic.CodeInvalidValue, "template_arg_lists is empty; nothing will be generated", feature, "template_arg_lists")
		}

		validateCommon(res, feature, &fc.Common)
	}
}

func validateCommon(res *diagnostic.Diagnostics, feature string, c *Common) {
	if c.NameReplacements != nil {
		if err := c.NameReplacements.Validate(); err != nil {
			res.AddError(diagnostic.CodeInvalidValue, fmt.Sprintf("invalid name_replacements: %v", err), feature, "name_replacements")
		}
	}

	for i, ts := range c.TemplateSubstitutions {
		loc := fmt.Sprintf("template_substitutions[%d]", i)
		if ts.Signature == "" {
			res.AddError(diagnostic.CodeInvalidValue, "template substitution has no signature", feature, loc)
		}

		if len(ts.Replacement) == 0 {
			res.AddError(diagnostic.CodeInvalidValue, "template substitution has no replacement", feature, loc)
		}
	}
}

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML ruleset from the given path.
func LoadFile(path string) (*PackageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read package info file %s: %w", path, err)
	}

	pf, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return pf, nil
}

// Parse parses YAML data into a PackageFile.
func Parse(data []byte) (*PackageFile, error) {
	var pf PackageFile

	err := yaml.Unmarshal(data, &pf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse package info YAML: %w", err)
	}

	applyDefaults(&pf)

	return &pf, nil
}

// Default returns the ruleset used when no package info file is given:
// one module named after the package that exposes every class, free
// function and variable.
func Default() *PackageFile {
	pf := &PackageFile{
		Modules: []ModuleConfig{{
			Name:          DefaultPackageName,
			Classes:       FeatureList{All: true},
			FreeFunctions: FeatureList{All: true},
			Variables:     FeatureList{All: true},
		}},
	}
	applyDefaults(pf)

	return pf
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(pf *PackageFile) {
	if pf.Name == "" {
		pf.Name = DefaultPackageName
	}

	if len(pf.SourceHppPatterns) == 0 {
		pf.SourceHppPatterns = []string{DefaultHppPattern}
	}

	if pf.CommonIncludeFile == nil {
		pf.CommonIncludeFile = NewToggle(true)
	}
}

// ExpandSourceRoot replaces CPPWG_SOURCEROOT with root in every path-like setting.
func ExpandSourceRoot(pf *PackageFile, root string) {
	expand := func(s string) string {
		return strings.ReplaceAll(s, SourceRootString, root)
	}

	expandAll := func(list []string) {
		for i := range list {
			list[i] = expand(list[i])
		}
	}

	expandFeatures := func(items []FeatureConfig) {
		for i := range items {
			items[i].SourceFile = expand(items[i].SourceFile)
			expandAll(items[i].SourceIncludes)
		}
	}

	expandAll(pf.SourceIncludes)

	for i := range pf.Modules {
		m := &pf.Modules[i]
		expandAll(m.SourceLocations)
		expandAll(m.SourceIncludes)
		expandFeatures(m.Classes.Items)
		expandFeatures(m.FreeFunctions.Items)
		expandFeatures(m.Variables.Items)
	}
}

// Marshal serializes a PackageFile to YAML.
func Marshal(pf *PackageFile) ([]byte, error) {
	return yaml.Marshal(pf)
}

package feature

import (
	"slices"

	"wrapper-generator/internal/config"
	"wrapper-generator/internal/mangle"
)

// Build creates the hierarchy described by a ruleset. Settings are copied
// as written; nothing is inherited at this point.
func Build(pf *config.PackageFile, sourceRoot string) *Tree {
	t := NewTree(pf.Name)
	root := t.Root()

	applyCommon(&root.Settings, &pf.Common)

	if pf.NameReplacements == nil {
		root.Settings.NameReplacements = mangle.DefaultTable()
	}

	root.Settings.CommonIncludeFile = boolPtr(pf.CommonIncludeFile.Bool(true))
	root.Package.SourceRoot = sourceRoot

	if len(pf.SourceHppPatterns) > 0 {
		root.Package.SourceHppPatterns = slices.Clone(pf.SourceHppPatterns)
	}

	for i := range pf.Modules {
		mc := &pf.Modules[i]

		m := t.Add(root.ID, KindModule, mc.Name)
		applyCommon(&m.Settings, &mc.Common)
		m.Module = &ModuleOptions{
			SourceLocations:     slices.Clone(mc.SourceLocations),
			UseAllClasses:       mc.Classes.All,
			UseAllFreeFunctions: mc.FreeFunctions.All,
			UseAllVariables:     mc.Variables.All,
		}

		addFeatures(t, m.ID, KindClass, mc.Classes.Items)
		addFeatures(t, m.ID, KindFreeFunction, mc.FreeFunctions.Items)
		addFeatures(t, m.ID, KindVariable, mc.Variables.Items)
	}

	return t
}

func addFeatures(t *Tree, module ID, kind Kind, items []config.FeatureConfig) {
	for i := range items {
		fc := &items[i]

		n := t.Add(module, kind, fc.Name)
		applyCommon(&n.Settings, &fc.Common)
		n.NameOverride = fc.NameOverride
		n.SourceFile = fc.SourceFile

		if fc.TemplateArgLists != nil {
			n.TemplateArgLists = cloneArgLists(fc.TemplateArgLists)
		}
	}
}

func applyCommon(s *Settings, c *config.Common) {
	s.SourceIncludes = slices.Clone(c.SourceIncludes)
	s.CalldefExcludes = slices.Clone(c.CalldefExcludes)
	s.SmartPtrType = c.SmartPtrType
	s.PointerCallPolicy = c.PointerCallPolicy
	s.ReferenceCallPolicy = c.ReferenceCallPolicy
	s.ExcludedMethods = slices.Clone(c.ExcludedMethods)
	s.ExcludedVariables = slices.Clone(c.ExcludedVariables)
	s.ConstructorArgTypeExcludes = slices.Clone(c.ConstructorArgTypeExcludes)
	s.ReturnTypeExcludes = slices.Clone(c.ReturnTypeExcludes)
	s.ArgTypeExcludes = slices.Clone(c.ArgTypeExcludes)
	s.NameReplacements = c.NameReplacements.Clone()
	s.CustomGenerator = c.CustomGenerator
	s.ExtraCode = slices.Clone(c.ExtraCode)
	s.PrefixCode = slices.Clone(c.PrefixCode)

	if c.CommonIncludeFile != nil {
		s.CommonIncludeFile = boolPtr(bool(*c.CommonIncludeFile))
	}

	for _, ts := range c.TemplateSubstitutions {
		s.TemplateSubstitutions = append(s.TemplateSubstitutions, TemplateSubstitution{
			Signature:   ts.Signature,
			Replacement: cloneArgLists(ts.Replacement),
		})
	}
}

func cloneArgLists(in [][]string) [][]string {
	out := make([][]string, len(in))
	for i, args := range in {
		out[i] = slices.Clone(args)
	}

	return out
}

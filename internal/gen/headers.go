package gen

import (
	"path/filepath"
	"strings"

	"wrapper-generator/internal/common"
	"wrapper-generator/internal/feature"
	"wrapper-generator/internal/mangle"
)

// HeaderCollectionFile is the name of the aggregate header, relative to the wrapper root.
const HeaderCollectionFile = "wrapper_header_collection.hpp"

// Instantiation is an explicit template instantiation with its typedef.
type Instantiation struct {
	FullName  string
	ShortName string
}

type headerCollectionData struct {
	Package        string
	Includes       []string
	Instantiations []Instantiation
}

// HeaderCollection renders the aggregate header. If any module exposes all
// of a kind, every header is included; otherwise only the headers of
// configured features.
func HeaderCollection(tree *feature.Tree, headers []string, t Templates) (GeneratedFile, error) {
	data := headerCollectionData{
		Package:        tree.Root().Name,
		Includes:       collectionIncludes(tree, headers),
		Instantiations: instantiations(tree),
	}

	text, err := t.Render(KeyHeaderCollection, data)
	if err != nil {
		return GeneratedFile{}, err
	}

	return GeneratedFile{Path: HeaderCollectionFile, Content: []byte(text)}, nil
}

func collectionIncludes(tree *feature.Tree, headers []string) []string {
	var out []string

	exposeAll := false

	for _, m := range tree.Modules() {
		if o := m.Module; o != nil && (o.UseAllClasses || o.UseAllFreeFunctions || o.UseAllVariables) {
			exposeAll = true
			break
		}
	}

	if exposeAll {
		for _, h := range headers {
			out = append(out, filepath.Base(h))
		}

		return common.Unique(out)
	}

	for _, m := range tree.Modules() {
		for _, n := range tree.Children(m.ID, feature.KindClass, feature.KindFreeFunction, feature.KindVariable) {
			switch {
			case n.Kind == feature.KindClass && n.SourceFile != "":
				out = append(out, n.SourceFile)
			case n.SourceFileFullPath != "":
				out = append(out, filepath.Base(n.SourceFileFullPath))
			}
		}
	}

	return common.Unique(out)
}

func instantiations(tree *feature.Tree) []Instantiation {
	var out []Instantiation

	seen := map[string]struct{}{}

	for _, m := range tree.Modules() {
		for _, n := range tree.Children(m.ID, feature.KindClass) {
			if len(n.TemplateArgLists) == 0 {
				continue
			}

			fulls, shorts := tree.FullNames(n.ID), tree.ShortNames(n.ID)
			for i, full := range fulls {
				full = mangle.Compact(full)
				if _, ok := seen[full]; ok {
					continue
				}

				seen[full] = struct{}{}
				out = append(out, Instantiation{FullName: full, ShortName: shorts[i]})
			}
		}
	}

	return out
}

// includeLine renders one include directive. Entries written with angle
// brackets are kept as system includes.
func includeLine(inc string) string {
	if strings.HasPrefix(inc, "<") {
		return "#include " + inc + "\n"
	}

	return `#include "` + inc + `"` + "\n"
}

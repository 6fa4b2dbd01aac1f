package source

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"wrapper-generator/internal/feature"
)

// WrapperExt is the inner extension of generated files, e.g. Foo.cppwg.hpp.
const WrapperExt = ".cppwg"

// ErrNoHeaders is returned when the source tree holds no matching header.
var ErrNoHeaders = errors.New("no header files found")

// CollectHeaders walks root and returns the absolute paths of files whose
// basename matches one of patterns. Files under wrapperRoot and generated
// wrapper files are skipped. A root that is a symlink is followed.
func CollectHeaders(root string, patterns []string, wrapperRoot string) ([]string, error) {
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source root %s: %w", root, err)
	}

	resolved, err = filepath.Abs(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source root %s: %w", root, err)
	}

	skip := ""
	if wrapperRoot != "" {
		if skip, err = filepath.Abs(wrapperRoot); err != nil {
			return nil, fmt.Errorf("failed to resolve wrapper root %s: %w", wrapperRoot, err)
		}

		if r, err := filepath.EvalSymlinks(skip); err == nil {
			skip = r
		}
	}

	var headers []string

	err = filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if skip != "" && path == skip {
				return filepath.SkipDir
			}

			return nil
		}

		name := d.Name()
		if filepath.Ext(strings.TrimSuffix(name, filepath.Ext(name))) == WrapperExt {
			return nil
		}

		for _, pattern := range patterns {
			ok, err := filepath.Match(pattern, name)
			if err != nil {
				return fmt.Errorf("invalid header pattern %q: %w", pattern, err)
			}

			if ok {
				headers = append(headers, path)
				break
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk source root %s: %w", root, err)
	}

	if len(headers) == 0 {
		return nil, fmt.Errorf("%w in source root %s", ErrNoHeaders, root)
	}

	return headers, nil
}

// MapHeaders assigns header paths to type-bearing features. A feature with
// source_file set gets the header with that basename; otherwise a class
// named like a header basename gets that header.
func MapHeaders(tree *feature.Tree, headers []string) {
	for _, m := range tree.Modules() {
		for _, n := range tree.Children(m.ID, feature.KindClass, feature.KindFreeFunction, feature.KindVariable) {
			if n.SourceFileFullPath != "" {
				continue
			}

			if h, ok := headerFor(n, headers); ok {
				n.SourceFileFullPath = h
				if n.SourceFile == "" {
					n.SourceFile = filepath.Base(h)
				}
			}
		}
	}
}

func headerFor(n *feature.Node, headers []string) (string, bool) {
	for _, h := range headers {
		base := filepath.Base(h)

		if n.SourceFile != "" {
			if base == n.SourceFile {
				return h, true
			}

			continue
		}

		if n.Kind == feature.KindClass && strings.TrimSuffix(base, filepath.Ext(base)) == n.Name {
			return h, true
		}
	}

	return "", false
}

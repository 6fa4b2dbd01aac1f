// Package pipeline runs a whole wrapper generation: ruleset, headers,
// template inference, header collection, declaration extraction,
// resolution, planning and output.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"wrapper-generator/internal/config"
	"wrapper-generator/internal/decl"
	"wrapper-generator/internal/diagnostic"
	"wrapper-generator/internal/feature"
	"wrapper-generator/internal/gen"
	"wrapper-generator/internal/match"
	"wrapper-generator/internal/plan"
	"wrapper-generator/internal/source"
)

var (
	// ErrSourceRoot is returned when the source root is not a directory.
	ErrSourceRoot = errors.New("source root is not a directory")
	// ErrInvalidRuleset is returned when the ruleset fails validation.
	ErrInvalidRuleset = errors.New("invalid package info")
	// ErrStrict is returned when strict resolution reported errors.
	ErrStrict = errors.New("unresolved or ambiguous features in strict mode")
)

// Options configure one run.
type Options struct {
	SourceRoot  string
	WrapperRoot string
	// PackageInfo is the ruleset path; empty means the default ruleset.
	PackageInfo string
	// Templates replaces the default template set when not nil.
	Templates *gen.Templates
	// Strict turns unresolved and ambiguous features into errors.
	Strict bool
	// Workers bounds concurrent class planning; zero means GOMAXPROCS.
	Workers int
	// DumpPlan logs the full binding plan at debug level.
	DumpPlan bool
}

// Result is what a run produced.
type Result struct {
	Tree        *feature.Tree
	Headers     []string
	Plan        *plan.Plan
	Files       []gen.GeneratedFile
	Summary     match.Summary
	Diagnostics *diagnostic.Diagnostics
}

// Runner executes the stages in order.
type Runner struct {
	extractor decl.Extractor
	scanner   source.Scanner
	logger    *slog.Logger
}

// NewRunner returns a runner extracting declarations with ex.
func NewRunner(ex decl.Extractor, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Runner{extractor: ex, scanner: source.LineAdjacency{}, logger: logger}
}

// Run generates the wrappers described by opts. The returned result holds
// the diagnostics gathered so far even when err is not nil.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	res := &Result{Diagnostics: &diagnostic.Diagnostics{}}
	diags := res.Diagnostics

	root, err := sourceRoot(opts.SourceRoot)
	if err != nil {
		return res, err
	}

	wrapperRoot, err := filepath.Abs(opts.WrapperRoot)
	if err != nil {
		return res, fmt.Errorf("failed to resolve wrapper root %s: %w", opts.WrapperRoot, err)
	}

	templates := gen.DefaultTemplates()
	if opts.Templates != nil {
		templates = *opts.Templates
	}

	pf, err := r.ruleset(opts.PackageInfo, root, diags)
	if err != nil {
		return res, err
	}

	tree := feature.Build(pf, root)
	res.Tree = tree

	if err := gen.CheckCustomGenerators(tree); err != nil {
		return res, err
	}

	res.Headers, err = source.CollectHeaders(root, tree.SourceHppPatterns(), wrapperRoot)
	if err != nil {
		return res, err
	}

	r.logger.Info("collected headers", "path", root, "count", len(res.Headers))
	source.MapHeaders(tree, res.Headers)

	if err := source.InferTemplates(tree, r.scanner, diags); err != nil {
		return res, err
	}

	collection, err := gen.HeaderCollection(tree, res.Headers, templates)
	if err != nil {
		return res, err
	}

	if err := gen.WriteFiles([]gen.GeneratedFile{collection}, wrapperRoot); err != nil {
		return res, err
	}

	collectionPath := filepath.Join(wrapperRoot, collection.Path)
	r.logger.Info("wrote header collection", "path", collectionPath)

	set, err := r.extractor.Extract(ctx, collectionPath)
	if err != nil {
		return res, fmt.Errorf("failed to extract declarations: %w", err)
	}

	set = set.Filter(keepLocation(root))
	r.logger.Info("extracted declarations", "count", set.Len())

	res.Summary = match.New(set, match.Options{Strict: opts.Strict}).Resolve(tree, diags)
	r.logger.Info("resolved features",
		"resolved", res.Summary.Resolved,
		"synthesized", res.Summary.Synthesized,
		"unresolved", res.Summary.Unresolved,
		"ambiguous", res.Summary.Ambiguous)

	if opts.Strict && diags.HasErrors() {
		return res, fmt.Errorf("%w: %w", ErrStrict, diags.Error())
	}

	res.Plan, err = plan.Build(ctx, tree, plan.Options{Workers: opts.Workers}, diags)
	if err != nil {
		return res, err
	}

	for _, mp := range res.Plan.Modules {
		r.logger.Debug("planned module", "module", mp.Name, "count", len(mp.Classes))
	}

	if opts.DumpPlan {
		r.logger.Debug("binding plan", "plan", dumpConfig.Sdump(res.Plan))
	}

	res.Files, err = gen.NewGenerator(tree, templates).Generate(res.Plan)
	if err != nil {
		return res, err
	}

	if err := gen.WriteFiles(res.Files, wrapperRoot); err != nil {
		return res, err
	}

	r.logger.Info("wrote wrappers", "path", wrapperRoot, "count", len(res.Files))

	return res, nil
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	MaxDepth:                6,
}

func sourceRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve source root %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSourceRoot, err)
	}

	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrSourceRoot, path)
	}

	return abs, nil
}

func (r *Runner) ruleset(path, root string, diags *diagnostic.Diagnostics) (*config.PackageFile, error) {
	pf := config.Default()

	if path != "" {
		var err error
		if pf, err = config.LoadFile(path); err != nil {
			return nil, err
		}

		r.logger.Info("loaded package info", "path", path, "count", len(pf.Modules))
	} else {
		r.logger.Warn("no package info file, using defaults")
	}

	config.ExpandSourceRoot(pf, root)

	found := config.Validate(pf)
	diags.Merge(*found)

	if found.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRuleset, found.Error())
	}

	return pf, nil
}

// keepLocation accepts declarations written under the source root or in
// the header collection.
func keepLocation(roots ...string) func(decl.Location) bool {
	var clean []string

	for _, r := range roots {
		if r == "" {
			continue
		}

		clean = append(clean, filepath.Clean(r))
		if resolved, err := filepath.EvalSymlinks(r); err == nil {
			clean = append(clean, resolved)
		}
	}

	return func(loc decl.Location) bool {
		if filepath.Base(loc.File) == gen.HeaderCollectionFile {
			return true
		}

		for _, r := range clean {
			if strings.Contains(loc.File, r) {
				return true
			}
		}

		return false
	}
}

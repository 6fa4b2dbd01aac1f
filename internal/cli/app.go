package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"wrapper-generator/internal/decl"
	"wrapper-generator/internal/diagnostic"
	"wrapper-generator/internal/gen"
	"wrapper-generator/internal/pipeline"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ErrIncludeDir is returned for an include directory that does not exist.
var ErrIncludeDir = errors.New("include directory not found")

// ExtractorFactory builds the declaration extractor for a run.
type ExtractorFactory func(ctx context.Context, cfg *Config, includes []string) (decl.Extractor, error)

// App is the command with its process boundaries.
type App struct {
	Version string
	Stdout  io.Writer
	Stderr  io.Writer
	// WorkDir is searched for the default package info file; empty means
	// the process working directory.
	WorkDir string
	// NewExtractor defaults to CastXMLExtractor.
	NewExtractor ExtractorFactory
}

// CastXMLExtractor locates castxml and returns an extractor running it.
func CastXMLExtractor(_ context.Context, cfg *Config, includes []string) (decl.Extractor, error) {
	bin, err := decl.FindCastXML(cfg.CastXMLBinary)
	if err != nil {
		return nil, err
	}

	return &decl.CastXML{Binary: bin, Includes: includes, CFlags: cfg.CastXMLCFlags}, nil
}

// NewLogger returns a text logger on w at the level the flags ask for.
func NewLogger(w io.Writer, cfg *Config) *slog.Logger {
	level := slog.LevelInfo

	switch {
	case cfg.Quiet:
		level = slog.LevelWarn
	case cfg.Verbose, cfg.DumpPlan:
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Run executes the command and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	cfg, err := ParseArgs(args, a.Stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return ExitOK
		}

		fmt.Fprintf(a.Stderr, "error: %v\n", err)

		return ExitUsage
	}

	if cfg.ShowVersion {
		fmt.Fprintln(a.Stdout, a.Version)
		return ExitOK
	}

	logger := NewLogger(a.Stderr, cfg)

	res, err := a.generate(ctx, cfg, logger)
	if res != nil && res.Diagnostics.Len() > 0 {
		if werr := diagnostic.Write(a.Stderr, res.Diagnostics, diagnostic.ReportOptions{
			Color:        colorOutput(a.Stderr),
			IncludeInfos: cfg.Verbose,
		}); werr != nil {
			logger.Error("failed to write diagnostics", "err", werr)
		}
	}

	if err != nil {
		logger.Error("generation failed", "err", err)
		return ExitFailure
	}

	return ExitOK
}

func (a *App) generate(ctx context.Context, cfg *Config, logger *slog.Logger) (*pipeline.Result, error) {
	root, err := filepath.Abs(cfg.SourceRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source root %s: %w", cfg.SourceRoot, err)
	}

	opts := pipeline.Options{
		SourceRoot:  root,
		WrapperRoot: cfg.WrapperRoot,
		Strict:      cfg.Strict,
		DumpPlan:    cfg.DumpPlan,
	}

	if opts.WrapperRoot == "" {
		opts.WrapperRoot = DefaultWrapperRoot(root)
		logger.Info("wrapper root not given", "path", opts.WrapperRoot)
	}

	workDir := a.WorkDir
	if workDir == "" {
		if workDir, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	opts.PackageInfo = packageInfoOrDefault(cfg.PackageInfo, workDir)

	if cfg.Templates != "" {
		t, err := gen.LoadTemplates(cfg.Templates)
		if err != nil {
			return nil, err
		}

		opts.Templates = &t
	}

	includes, err := includeDirs(cfg.Includes, root)
	if err != nil {
		return nil, err
	}

	newExtractor := a.NewExtractor
	if newExtractor == nil {
		newExtractor = CastXMLExtractor
	}

	ex, err := newExtractor(ctx, cfg, includes)
	if err != nil {
		return nil, err
	}

	if c, ok := ex.(*decl.CastXML); ok {
		if v, err := decl.Version(ctx, c.Binary); err == nil {
			logger.Info("found castxml", "path", c.Binary, "version", v)
		}
	}

	return pipeline.NewRunner(ex, logger).Run(ctx, opts)
}

// includeDirs returns the absolute include directories, defaulting to root.
func includeDirs(dirs []string, root string) ([]string, error) {
	if len(dirs) == 0 {
		return []string{root}, nil
	}

	out := make([]string, 0, len(dirs))

	for _, d := range dirs {
		abs, err := filepath.Abs(d)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve include directory %s: %w", d, err)
		}

		if info, err := os.Stat(abs); err != nil || !info.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrIncludeDir, d)
		}

		out = append(out, abs)
	}

	return out, nil
}

func colorOutput(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && diagnostic.IsTerminal(f)
}

// Package cli implements the wrapper-generator command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// ErrUsage marks a command line that cannot be run.
var ErrUsage = errors.New("usage")

// ParseArgs parses command line arguments into Config. Help output goes to w.
func ParseArgs(args []string, w io.Writer) (*Config, error) {
	cfg := &Config{}

	fs := pflag.NewFlagSet("wrapper-generator", pflag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() {
		fmt.Fprintln(w, "Usage: wrapper-generator [flags] SOURCE_ROOT")
		fmt.Fprintln(w)
		fmt.Fprint(w, fs.FlagUsages())
	}

	fs.StringVarP(&cfg.WrapperRoot, "wrapper-root", "w", "", "output directory for the wrappers (default SOURCE_ROOT/cppwg_wrapper_<id>)")
	fs.StringVarP(&cfg.PackageInfo, "package-info", "p", "", "package info YAML file (default ./"+DefaultPackageInfo+" if present)")
	fs.StringVarP(&cfg.CastXMLBinary, "castxml-binary", "c", "", "castxml executable (default castxml on PATH)")
	fs.StringVarP(&cfg.CastXMLCFlags, "castxml-cflags", "f", "", "extra compiler flags for castxml, e.g. \"-std=c++17\"")
	fs.StringSliceVarP(&cfg.Includes, "includes", "i", nil, "include directories for castxml (default SOURCE_ROOT)")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", false, "only log warnings and errors")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "log debug output and report infos")
	fs.BoolVar(&cfg.Strict, "strict", false, "treat unresolved and ambiguous features as errors")
	fs.StringVar(&cfg.Templates, "templates", "", "YAML file overriding output templates")
	fs.BoolVar(&cfg.DumpPlan, "dump-plan", false, "log the binding plan at debug level")
	fs.BoolVar(&cfg.ShowVersion, "version", false, "show version")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	if cfg.ShowVersion {
		return cfg, nil
	}

	if fs.NArg() != 1 {
		return nil, fmt.Errorf("%w: expected exactly one SOURCE_ROOT, got %d arguments", ErrUsage, fs.NArg())
	}

	cfg.SourceRoot = fs.Arg(0)

	if strings.TrimSpace(cfg.SourceRoot) == "" {
		return nil, fmt.Errorf("%w: SOURCE_ROOT is empty", ErrUsage)
	}

	if cfg.Quiet && cfg.Verbose {
		return nil, fmt.Errorf("%w: --quiet and --verbose are mutually exclusive", ErrUsage)
	}

	return cfg, nil
}

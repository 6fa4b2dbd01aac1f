package diagnostic

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

// ReportOptions controls how Write renders diagnostics.
type ReportOptions struct {
	// Color wraps severity labels in ANSI colour codes.
	Color bool
	// IncludeInfos also prints info diagnostics.
	IncludeInfos bool
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Write prints the diagnostics to w, errors first, one per line, followed by a summary line.
func Write(w io.Writer, d *Diagnostics, opts ReportOptions) error {
	groups := [][]Diagnostic{d.Errors, d.Warnings}
	if opts.IncludeInfos {
		groups = append(groups, d.Infos)
	}

	for _, group := range groups {
		for _, diag := range group {
			label := diag.Severity.String()
			if opts.Color {
				label = colorFor(diag.Severity) + label + ansiReset
			}

			if _, err := fmt.Fprintf(w, "%s: %s\n", label, diag.String()); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "%d error(s), %d warning(s), %d info(s)\n",
		len(d.Errors), len(d.Warnings), len(d.Infos))

	return err
}

func colorFor(s DiagnosticSeverity) string {
	switch s {
	case DiagnosticError:
		return ansiRed
	case DiagnosticWarning:
		return ansiYellow
	default:
		return ansiCyan
	}
}

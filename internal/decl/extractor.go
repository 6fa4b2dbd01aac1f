package decl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

// Extractor produces the declarations visible from a header.
type Extractor interface {
	Extract(ctx context.Context, header string) (*Set, error)
}

// ErrCastXMLNotFound is returned when no castxml binary can be located.
var ErrCastXMLNotFound = errors.New("castxml binary not found")

// CastXML runs the castxml binary and reads its XML output.
type CastXML struct {
	// Binary is the castxml executable.
	Binary string
	// Includes are passed as -I flags.
	Includes []string
	// CFlags are extra compiler flags, split on whitespace, e.g. "-std=c++17".
	CFlags string
	// Compiler is passed as --castxml-cc-gnu when set.
	Compiler string
}

// Args returns the command line arguments for parsing header into xmlPath.
func (c *CastXML) Args(header, xmlPath string) []string {
	args := []string{"-c", "-x", "c++"}

	if c.Compiler != "" {
		args = append(args, "--castxml-cc-gnu", c.Compiler)
	}

	args = append(args, strings.Fields(c.CFlags)...)

	for _, inc := range c.Includes {
		args = append(args, "-I"+inc)
	}

	return append(args, "--castxml-output=1", "-o", xmlPath, header)
}

// Extract runs castxml on header. Any failure is returned as is; there are no retries.
func (c *CastXML) Extract(ctx context.Context, header string) (*Set, error) {
	tmp, err := os.CreateTemp("", "wrapper-generator-*.xml")
	if err != nil {
		return nil, fmt.Errorf("failed to create castxml output file: %w", err)
	}

	xmlPath := tmp.Name()
	_ = tmp.Close()

	defer os.Remove(xmlPath)

	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, c.Binary, c.Args(header, xmlPath)...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to run castxml on %s: %w: %s", header, err, strings.TrimSpace(stderr.String()))
	}

	f, err := os.Open(xmlPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open castxml output: %w", err)
	}
	defer f.Close()

	set, err := ReadCastXML(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read castxml output for %s: %w", header, err)
	}

	return set, nil
}

// FindCastXML returns binary when it names an executable file, and otherwise
// searches PATH for castxml.
func FindCastXML(binary string) (string, error) {
	if binary != "" {
		if info, err := os.Stat(binary); err == nil && !info.IsDir() && info.Mode()&0o111 != 0 {
			return binary, nil
		}
	}

	path, err := exec.LookPath("castxml")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCastXMLNotFound, err)
	}

	return path, nil
}

var versionRe = regexp.MustCompile(`castxml version \d+\.\d+\.\d+`)

// Version returns the "castxml version X.Y.Z" line reported by the binary.
func Version(ctx context.Context, binary string) (string, error) {
	out, err := exec.CommandContext(ctx, binary, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("failed to query castxml version: %w", err)
	}

	if v := versionRe.Find(out); v != nil {
		return string(v), nil
	}

	return strings.TrimSpace(string(out)), nil
}

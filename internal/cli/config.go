package cli

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DefaultPackageInfo is looked up in the working directory when no ruleset is given.
const DefaultPackageInfo = "package_info.yaml"

// Config stores CLI options for a single generation run.
type Config struct {
	SourceRoot    string
	WrapperRoot   string
	PackageInfo   string
	CastXMLBinary string
	CastXMLCFlags string
	Includes      []string
	Templates     string
	Quiet         bool
	Verbose       bool
	Strict        bool
	DumpPlan      bool
	ShowVersion   bool
}

// DefaultWrapperRoot returns a fresh output directory name under sourceRoot,
// e.g. "src/cppwg_wrapper_1a2b3c4d".
func DefaultWrapperRoot(sourceRoot string) string {
	return filepath.Join(sourceRoot, "cppwg_wrapper_"+uuid.NewString()[:8])
}

// packageInfoOrDefault returns path, or the default ruleset file in dir if
// it exists, or "".
func packageInfoOrDefault(path, dir string) string {
	if path != "" {
		return path
	}

	candidate := filepath.Join(dir, DefaultPackageInfo)
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate
	}

	return ""
}

package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes files under root, creating directories as needed.
func WriteFiles(files []GeneratedFile, root string) error {
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return fmt.Errorf("failed to create wrapper root: %w", err)
	}

	for _, file := range files {
		target := filepath.Join(root, filepath.FromSlash(file.Path))

		if err := os.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", file.Path, err)
		}

		if err := os.WriteFile(target, file.Content, filePerm); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Path, err)
		}
	}

	return nil
}

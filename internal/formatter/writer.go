package formatter

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteDocument writes content as the full contents of <dir>/<filename>,
// creating the directory (recursively, idempotently) when missing. An
// existing file is overwritten. Returns the written path.
func WriteDocument(content []byte, filename, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

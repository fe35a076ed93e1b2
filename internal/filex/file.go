// Package filex contains small filesystem helpers for reading upload
// candidates and preparing output directories.
package filex

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/dkozyrev/jobtrack/internal/client/models"
)

// EnsureSubDir creates (if needed) a subdirectory of the current working
// directory and returns its absolute path.
func EnsureSubDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// LoadInputFile reads the file at path into an InputFile ready for the
// attachment store. The display name is the file's base name and the content
// kind is guessed from the extension, falling back to
// application/octet-stream. Zero-byte files are valid input.
func LoadInputFile(path string) (*models.InputFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	kind := mime.TypeByExtension(filepath.Ext(path))
	if kind == "" {
		kind = models.ContentKindDefault
	}

	return &models.InputFile{
		DisplayName: filepath.Base(path),
		ContentKind: kind,
		Payload:     data,
	}, nil
}

package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	ErrPathEscapes  = errors.New("path escapes data directory")
	ErrAbsolutePath = errors.New("absolute paths are not allowed")
	ErrEmptyPath    = errors.New("empty path not allowed")
)

// DataDir confines data file lookups to one directory using os.Root
type DataDir struct {
	root *os.Root
	path string
}

// OpenDataDir opens dir for confined lookups. It fails if dir does not
// exist or is not a directory.
func OpenDataDir(dir string) (*DataDir, error) {
	if dir == "" {
		return nil, ErrEmptyPath
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	root, err := os.OpenRoot(absPath)
	if err != nil {
		return nil, err
	}

	return &DataDir{root: root, path: absPath}, nil
}

// Close releases the directory handle
func (d *DataDir) Close() error {
	if d.root != nil {
		return d.root.Close()
	}
	return nil
}

// Path returns the absolute directory path
func (d *DataDir) Path() string {
	return d.path
}

// ValidateFileName checks that name is a non-empty relative path that stays
// inside its directory, and returns it cleaned.
func ValidateFileName(name string) (string, error) {
	if name == "" {
		return "", ErrEmptyPath
	}

	// IsLocal also rejects reserved names such as NUL on Windows
	if !filepath.IsLocal(name) {
		if filepath.IsAbs(name) {
			return "", fmt.Errorf("%w: %s", ErrAbsolutePath, name)
		}
		return "", fmt.Errorf("%w: %s", ErrPathEscapes, name)
	}
	return filepath.Clean(name), nil
}

// Join validates name and returns its absolute path inside the directory
func (d *DataDir) Join(name string) (string, error) {
	clean, err := ValidateFileName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(d.path, clean), nil
}

// Stat validates name and stats it without following links out of the directory
func (d *DataDir) Stat(name string) (os.FileInfo, error) {
	clean, err := ValidateFileName(name)
	if err != nil {
		return nil, err
	}
	return d.root.Stat(clean)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileNames are the config files looked up in every directory, in order.
var FileNames = []string{".docsniff.toml", ".docsniff.yaml", ".docsniff.yml"}

// ErrNotFound is returned when no config file exists on the way to the
// filesystem root.
var ErrNotFound = errors.New("no .docsniff.toml or .docsniff.yaml found")

// Find walks up from start (a file or a directory) to locate a config file.
func Find(start string) (string, error) {
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ErrNotFound
}

// Root returns the directory holding the nearest config file, if any.
func Root(start string) (string, bool, error) {
	path, err := Find(start)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return filepath.Dir(path), true, nil
}

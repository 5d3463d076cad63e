package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"docsniff/internal/config"
)

// skipDirs are never descended into.
var skipDirs = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	".idea":        {},
	"node_modules": {},
}

// Discover lists the files to check under target. A file target is returned
// as is, whatever its extension. For directories, files are kept when their
// extension is configured and neither the root .gitignore nor the config
// ignore patterns match them. The result is sorted.
func Discover(target string, cfg *config.Config) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", target, err)
	}
	if !info.IsDir() {
		return []string{target}, nil
	}

	gi, err := loadIgnore(target, cfg)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == target {
				return nil
			}
			if _, skip := skipDirs[d.Name()]; skip {
				return filepath.SkipDir
			}
			if rel := relSlash(target, path); gi != nil && gi.MatchesPath(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&os.ModeSymlink != 0 || !cfg.HasExtension(path) {
			return nil
		}
		if gi != nil && gi.MatchesPath(relSlash(target, path)) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// loadIgnore merges the root .gitignore with the config patterns.
func loadIgnore(root string, cfg *config.Config) (*ignore.GitIgnore, error) {
	lines := append([]string(nil), cfg.Ignore...)
	gitignore := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(gitignore); err == nil {
		gi, err := ignore.CompileIgnoreFileAndLines(gitignore, lines...)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", gitignore, err)
		}
		return gi, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", gitignore, err)
	}
	if len(lines) == 0 {
		return nil, nil
	}
	return ignore.CompileIgnoreLines(lines...), nil
}

func relSlash(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return strings.TrimPrefix(filepath.ToSlash(rel), "./")
}

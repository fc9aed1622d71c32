// Package walker discovers header files under a directory tree for the
// `cppdecl index` subcommand.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// defaultExtensions are the header suffixes walked when Config.Extensions
// is empty.
var defaultExtensions = []string{".h", ".hpp", ".hh", ".hxx"}

// skipDirs are directory basenames never descended into.
var skipDirs = []string{".git", "vendor", "node_modules", "dist", "build", ".cppdecl"}

// Config controls a Walk call.
type Config struct {
	Extensions   []string // file suffixes to include; defaults to header suffixes
	IncludeGlobs []string // doublestar patterns a path must match at least one of, if non-empty
	ExcludeGlobs []string // doublestar patterns that exclude a path
}

// Walk returns every file under root matching cfg, in a deterministic
// (directory-order) sequence.
func Walk(root string, cfg Config) ([]string, error) {
	exts := cfg.Extensions
	if len(exts) == 0 {
		exts = defaultExtensions
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && shouldSkipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !shouldProcess(path, exts, cfg.IncludeGlobs, cfg.ExcludeGlobs) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

func shouldSkipDir(name string) bool {
	if slices.Contains(skipDirs, name) {
		return true
	}
	return strings.HasPrefix(name, ".") && name != "."
}

func shouldProcess(path string, exts, includeGlobs, excludeGlobs []string) bool {
	if len(exts) > 0 {
		ext := filepath.Ext(path)
		if !slices.ContainsFunc(exts, func(e string) bool { return strings.EqualFold(e, ext) }) {
			return false
		}
	}

	rel := path
	if len(includeGlobs) > 0 {
		matched := false
		for _, pattern := range includeGlobs {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, pattern := range excludeGlobs {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return false
		}
	}
	return true
}

// ReadFile is a thin wrapper kept for callers that want a single import for
// walk-then-read (the index subcommand reads every discovered header).
func ReadFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(b), nil
}

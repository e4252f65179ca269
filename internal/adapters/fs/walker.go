// Package fs provides file system adapters for walking, hashing and verifying files.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files below root in lexical order, skipping VCS metadata and ignored
// entries. An ignore without a path separator is matched against entry names, one with a
// separator against the full path, so a nested output directory can be excluded.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if path != root && w.ignored(path, d.Name(), ignores) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func (w *Walker) ignored(path, name string, ignores []string) bool {
	if name == ".git" || name == ".jj" {
		return true
	}

	for _, ignore := range ignores {
		if strings.ContainsRune(ignore, filepath.Separator) {
			if filepath.Clean(ignore) == path {
				return true
			}
			continue
		}
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}

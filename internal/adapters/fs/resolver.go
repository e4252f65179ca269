package fs

import (
	"path/filepath"
	"slices"

	"go.trai.ch/libpack/internal/core/domain"
	"go.trai.ch/libpack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.InputResolver = (*Resolver)(nil)

// Resolver expands configured path patterns, such as style include paths, with filepath.Glob.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveInputs expands patterns relative to root into a sorted list of existing paths
// without duplicates. Absolute patterns ignore root. A pattern that matches nothing fails
// with domain.ErrInputNotFound.
func (r *Resolver) ResolveInputs(patterns []string, root string) ([]string, error) {
	var resolved []string
	for _, pattern := range patterns {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(root, pattern)
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidPattern, err.Error()), "pattern", pattern)
		}
		if len(matches) == 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrInputNotFound, "resolve pattern"), "pattern", pattern)
		}
		resolved = append(resolved, matches...)
	}

	slices.Sort(resolved)
	return slices.Compact(resolved), nil
}

// Package cas implements the persistent build info store.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/libpack/internal/core/domain"
	"go.trai.ch/libpack/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.BuildInfoStore = (*Store)(nil)
	_ ports.ProjectBinder  = (*Store)(nil)
)

// Store implements ports.BuildInfoStore using a flat JSON file keyed by entry point.
// A store without a path keeps its records in memory only.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.BuildInfo
}

// NewStore creates a new BuildInfoStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{cache: make(map[string]domain.BuildInfo)}
	if path == "" {
		return s, nil
	}
	if err := s.open(path); err != nil {
		return nil, err
	}
	return s, nil
}

// Bind points the store at the state file of project, replacing any loaded records.
func (s *Store) Bind(project *domain.Project) error {
	return s.open(project.StorePath())
}

func (s *Store) open(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.path = filepath.Clean(path)
	s.cache = make(map[string]domain.BuildInfo)

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(domain.ErrStoreReadFailed, err.Error()), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreReadFailed, err.Error()), "path", s.path)
	}
	return nil
}

// save must be called with the write lock held.
func (s *Store) save() error {
	if s.path == "" {
		return nil
	}

	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal build info store")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", s.path)
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", s.path)
	}
	return nil
}

// Get retrieves the build info of an entry point.
func (s *Store) Get(entryPoint string) (*domain.BuildInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.cache[entryPoint]
	if !ok {
		return nil, nil
	}
	return &info, nil
}

// Put stores the build info and persists the store.
func (s *Store) Put(info domain.BuildInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[info.EntryPoint] = info
	return s.save()
}

// Delete drops the build info of an entry point and persists the store.
func (s *Store) Delete(entryPoint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cache[entryPoint]; !ok {
		return nil
	}
	delete(s.cache, entryPoint)
	return s.save()
}

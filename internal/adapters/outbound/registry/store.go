package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/compvet/compvet/internal/domain"
)

// DefaultPath is the hash registry location relative to the working
// directory.
const DefaultPath = ".compvet/registry.json"

// Store is a file-backed implementation of domain.RegistryStore. The
// registry file is read once when the store opens, so a batch sees a
// consistent snapshot; writes mutate memory under a mutex and reach disk
// in a single Flush.
type Store struct {
	path string

	mu      sync.Mutex
	entries map[string]domain.RegistryEntry
	dirty   bool
}

// Open loads the registry file at path. A missing file yields an empty
// registry; a corrupt file is an error rather than a silent reset.
func Open(path string) (*Store, error) {
	s := &Store{path: path, entries: make(map[string]domain.RegistryEntry)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("parsing registry %s: %w", path, err)
	}
	return s, nil
}

// Get returns the baseline entry for a component path, if registered.
func (s *Store) Get(path string) (*domain.RegistryEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[path]
	if !ok {
		return nil, false
	}
	return &entry, true
}

// Put records a baseline entry. The write reaches disk on Flush.
func (s *Store) Put(path string, entry domain.RegistryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[path] = entry
	s.dirty = true
}

// Flush writes the registry to disk if anything changed, creating parent
// directories as needed. Serialized by the store mutex so concurrent
// component validation never interleaves partial writes.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Entries returns all registered baselines sorted by component path, for
// registry inspection.
func (s *Store) Entries() []domain.RegistryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]domain.RegistryEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries
}

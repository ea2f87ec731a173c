// Package store implements the JSON-file-backed record store: one
// pretty-printed JSON array per named collection, loaded and saved whole.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

type Store struct {
	dir string
	mu  sync.RWMutex
}

// New creates the data directory if needed and returns a store rooted there.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Load returns the named collection. A collection whose file does not exist
// yet is an empty collection; any other read or parse failure propagates.
func Load[T any](s *Store, name string) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return load[T](s, name)
}

// Save replaces the named collection's file contents with the full slice.
func Save[T any](s *Store, name string, records []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return save(s, name, records)
}

// Update runs load, fn, save for one collection under the store's write
// lock, so concurrent in-process mutations cannot lose updates. If fn
// returns an error nothing is written.
func Update[T any](s *Store, name string, fn func(records []T) ([]T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := load[T](s, name)
	if err != nil {
		return err
	}
	updated, err := fn(records)
	if err != nil {
		return err
	}
	return save(s, name, updated)
}

// UpdatePair is Update across two collections in one critical section.
// Both files are rewritten; there is no crash atomicity between the two
// writes.
func UpdatePair[T, U any](s *Store, nameA, nameB string, fn func(a []T, b []U) ([]T, []U, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := load[T](s, nameA)
	if err != nil {
		return err
	}
	b, err := load[U](s, nameB)
	if err != nil {
		return err
	}
	updatedA, updatedB, err := fn(a, b)
	if err != nil {
		return err
	}
	if err := save(s, nameA, updatedA); err != nil {
		return err
	}
	return save(s, nameB, updatedB)
}

// NextID allocates the next record identifier: max existing id + 1, or 1
// for an empty collection.
func NextID[T any](records []T, idOf func(T) int) int {
	next := 1
	for _, record := range records {
		if id := idOf(record); id >= next {
			next = id + 1
		}
	}
	return next
}

func load[T any](s *Store, name string) ([]T, error) {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", name, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", name, err)
	}
	return records, nil
}

func save[T any](s *Store, name string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", name, err)
	}
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return fmt.Errorf("write collection %s: %w", name, err)
	}
	return nil
}

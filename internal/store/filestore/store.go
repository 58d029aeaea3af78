// Package filestore implements store.Store on flat JSON files: one array
// file per entity under the data directory, rewritten wholesale on every
// mutation. A per-file mutex guards each read-modify-write so concurrent
// requests cannot clobber each other's writes.
//
// No ecosystem library models "JSON array file as a table", and the on-disk
// layout (data/users.json etc.) is part of the product surface, so this
// backend stays on encoding/json.
package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type Store struct {
	users    *table[userRecord]
	eateries *table[eateryRecord]
	reviews  *table[reviewRecord]
}

// Open prepares the data directory and the three entity files.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &Store{
		users:    &table[userRecord]{path: filepath.Join(dir, "users.json")},
		eateries: &table[eateryRecord]{path: filepath.Join(dir, "eateries.json")},
		reviews:  &table[reviewRecord]{path: filepath.Join(dir, "reviews.json")},
	}, nil
}

func (s *Store) Ping() error {
	_, err := s.users.load()
	return err
}

func (s *Store) Close() error {
	return nil
}

// table is one JSON-array file. All exported store methods hold mu for the
// full read-modify-write, so a mutation is never interleaved with another.
type table[T any] struct {
	mu   sync.Mutex
	path string
}

// load reads the whole file. A missing file is an empty table; anything
// else that fails surfaces as a storage error.
func (t *table[T]) load() ([]T, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", t.path, err)
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", t.path, err)
	}
	return items, nil
}

// save rewrites the whole file.
func (t *table[T]) save(items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", t.path, err)
	}
	if err := os.WriteFile(t.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", t.path, err)
	}
	return nil
}

// nextID assigns max existing id + 1.
func nextID[T any](items []T, id func(T) uint) uint {
	var max uint
	for _, item := range items {
		if v := id(item); v > max {
			max = v
		}
	}
	return max + 1
}

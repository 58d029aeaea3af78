package filestore

import (
	"sort"
	"time"

	"github.com/sentreats/sentreats-server/internal/models"
	"github.com/sentreats/sentreats-server/internal/store"
)

// Eateries serialize with their API shape as-is.
type eateryRecord = models.Eatery

func (s *Store) EateryByID(id uint) (*models.Eatery, error) {
	s.eateries.mu.Lock()
	defer s.eateries.mu.Unlock()

	records, err := s.eateries.load()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			e := records[i]
			return &e, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) EateryByAddress(normalized string) (*models.Eatery, error) {
	s.eateries.mu.Lock()
	defer s.eateries.mu.Unlock()

	records, err := s.eateries.load()
	if err != nil {
		return nil, err
	}
	// Oldest matching eatery wins, mirroring the relational backend.
	var found *models.Eatery
	for i := range records {
		if models.NormalizeAddress(records[i].Address) == normalized {
			if found == nil || records[i].ID < found.ID {
				found = &records[i]
			}
		}
	}
	if found == nil {
		return nil, store.ErrNotFound
	}
	e := *found
	return &e, nil
}

func (s *Store) Eateries(ownerID uint) ([]models.Eatery, error) {
	s.eateries.mu.Lock()
	defer s.eateries.mu.Unlock()

	records, err := s.eateries.load()
	if err != nil {
		return nil, err
	}

	eateries := make([]models.Eatery, 0, len(records))
	for _, e := range records {
		if ownerID == 0 || e.UserID == ownerID {
			eateries = append(eateries, e)
		}
	}
	sortNewestFirst(eateries, func(e models.Eatery) (time.Time, uint) {
		return e.CreatedAt, e.ID
	})
	return eateries, nil
}

func (s *Store) CreateEatery(e *models.Eatery) error {
	s.eateries.mu.Lock()
	defer s.eateries.mu.Unlock()

	records, err := s.eateries.load()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	e.ID = nextID(records, func(r eateryRecord) uint { return r.ID })
	e.CreatedAt = now
	e.UpdatedAt = now

	return s.eateries.save(append(records, *e))
}

func (s *Store) UpdateEatery(e *models.Eatery) error {
	s.eateries.mu.Lock()
	defer s.eateries.mu.Unlock()

	records, err := s.eateries.load()
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID == e.ID {
			e.UpdatedAt = time.Now().UTC()
			records[i] = *e
			return s.eateries.save(records)
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteEatery(id uint) error {
	s.eateries.mu.Lock()
	defer s.eateries.mu.Unlock()

	records, err := s.eateries.load()
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID == id {
			return s.eateries.save(append(records[:i], records[i+1:]...))
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteEateriesByOwner(ownerID uint) error {
	s.eateries.mu.Lock()
	defer s.eateries.mu.Unlock()

	records, err := s.eateries.load()
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, e := range records {
		if e.UserID != ownerID {
			kept = append(kept, e)
		}
	}
	return s.eateries.save(kept)
}

// sortNewestFirst orders by creation time descending, id descending as the
// tie-break so same-instant writes still list deterministically.
func sortNewestFirst[T any](items []T, key func(T) (time.Time, uint)) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if ti.Equal(tj) {
			return idi > idj
		}
		return ti.After(tj)
	})
}

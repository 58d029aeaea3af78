package filestore

import (
	"time"

	"github.com/sentreats/sentreats-server/internal/models"
	"github.com/sentreats/sentreats-server/internal/store"
)

type reviewRecord = models.Review

func (s *Store) ReviewByID(id uint) (*models.Review, error) {
	s.reviews.mu.Lock()
	defer s.reviews.mu.Unlock()

	records, err := s.reviews.load()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			r := records[i]
			return &r, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ReviewsByEatery(eateryID uint) ([]models.Review, error) {
	return s.filterReviews(func(r models.Review) bool { return r.EateryID == eateryID })
}

func (s *Store) ReviewsByUser(userID uint) ([]models.Review, error) {
	return s.filterReviews(func(r models.Review) bool { return r.UserID == userID })
}

func (s *Store) filterReviews(match func(models.Review) bool) ([]models.Review, error) {
	s.reviews.mu.Lock()
	defer s.reviews.mu.Unlock()

	records, err := s.reviews.load()
	if err != nil {
		return nil, err
	}
	reviews := make([]models.Review, 0, len(records))
	for _, r := range records {
		if match(r) {
			reviews = append(reviews, r)
		}
	}
	sortNewestFirst(reviews, func(r models.Review) (time.Time, uint) {
		return r.CreatedAt, r.ID
	})
	return reviews, nil
}

func (s *Store) CreateReview(r *models.Review) error {
	s.reviews.mu.Lock()
	defer s.reviews.mu.Unlock()

	records, err := s.reviews.load()
	if err != nil {
		return err
	}

	r.ID = nextID(records, func(rec reviewRecord) uint { return rec.ID })
	r.CreatedAt = time.Now().UTC()

	return s.reviews.save(append(records, *r))
}

func (s *Store) DeleteReview(id uint) error {
	s.reviews.mu.Lock()
	defer s.reviews.mu.Unlock()

	records, err := s.reviews.load()
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID == id {
			return s.reviews.save(append(records[:i], records[i+1:]...))
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteReviewsByEatery(eateryID uint) error {
	return s.deleteReviews(func(r models.Review) bool { return r.EateryID == eateryID })
}

func (s *Store) DeleteReviewsByOwner(userID uint) error {
	return s.deleteReviews(func(r models.Review) bool { return r.UserID == userID })
}

func (s *Store) deleteReviews(match func(models.Review) bool) error {
	s.reviews.mu.Lock()
	defer s.reviews.mu.Unlock()

	records, err := s.reviews.load()
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, r := range records {
		if !match(r) {
			kept = append(kept, r)
		}
	}
	return s.reviews.save(kept)
}

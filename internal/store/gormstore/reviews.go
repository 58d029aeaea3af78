package gormstore

import (
	"fmt"

	"github.com/sentreats/sentreats-server/internal/models"
	"github.com/sentreats/sentreats-server/internal/store"
)

func (s *Store) ReviewByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, id).Error; err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

func (s *Store) ReviewsByEatery(eateryID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("eatery_id = ?", eateryID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (s *Store) ReviewsByUser(userID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (s *Store) CreateReview(r *models.Review) error {
	if err := s.db.Create(r).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (s *Store) DeleteReview(id uint) error {
	result := s.db.Delete(&models.Review{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete review: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteReviewsByEatery(eateryID uint) error {
	if err := s.db.Where("eatery_id = ?", eateryID).Delete(&models.Review{}).Error; err != nil {
		return fmt.Errorf("failed to delete reviews: %w", err)
	}
	return nil
}

func (s *Store) DeleteReviewsByOwner(userID uint) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&models.Review{}).Error; err != nil {
		return fmt.Errorf("failed to delete reviews: %w", err)
	}
	return nil
}

package gormstore

import (
	"fmt"

	"github.com/sentreats/sentreats-server/internal/models"
	"github.com/sentreats/sentreats-server/internal/store"
)

func (s *Store) EateryByID(id uint) (*models.Eatery, error) {
	var eatery models.Eatery
	if err := s.db.First(&eatery, id).Error; err != nil {
		return nil, translate(err)
	}
	return &eatery, nil
}

func (s *Store) EateryByAddress(normalized string) (*models.Eatery, error) {
	var eatery models.Eatery
	err := s.db.Where("LOWER(TRIM(address)) = ?", normalized).
		Order("id ASC").
		First(&eatery).Error
	if err != nil {
		return nil, translate(err)
	}
	return &eatery, nil
}

func (s *Store) Eateries(ownerID uint) ([]models.Eatery, error) {
	var eateries []models.Eatery
	err := s.db.Scopes(byOwner(ownerID)).
		Order("created_at DESC, id DESC").
		Find(&eateries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list eateries: %w", err)
	}
	return eateries, nil
}

func (s *Store) CreateEatery(e *models.Eatery) error {
	if err := s.db.Create(e).Error; err != nil {
		return fmt.Errorf("failed to create eatery: %w", err)
	}
	return nil
}

func (s *Store) UpdateEatery(e *models.Eatery) error {
	if err := s.db.Save(e).Error; err != nil {
		return fmt.Errorf("failed to update eatery: %w", err)
	}
	return nil
}

func (s *Store) DeleteEatery(id uint) error {
	result := s.db.Delete(&models.Eatery{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete eatery: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteEateriesByOwner(ownerID uint) error {
	if err := s.db.Where("user_id = ?", ownerID).Delete(&models.Eatery{}).Error; err != nil {
		return fmt.Errorf("failed to delete eateries: %w", err)
	}
	return nil
}

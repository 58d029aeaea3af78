package services

import (
	"errors"
	"fmt"

	"gorm.io/datatypes"

	"github.com/sentreats/sentreats-server/internal/dto"
	"github.com/sentreats/sentreats-server/internal/models"
	"github.com/sentreats/sentreats-server/internal/store"
)

var (
	ErrEateryNotFound   = errors.New("eatery not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrNotOwner         = errors.New("entity belongs to another user")
	ErrUnknownPlaceType = errors.New("unknown place type")
)

type EateryService struct {
	store store.Store
}

func NewEateryService(st store.Store) *EateryService {
	return &EateryService{store: st}
}

// List returns eateries newest-first, optionally restricted to one owner.
func (s *EateryService) List(ownerID uint) ([]models.Eatery, error) {
	return s.store.Eateries(ownerID)
}

// CreateSubmission records one user's submission. A submission whose
// normalized address matches an existing eatery attaches a review to it and
// back-fills empty descriptive fields; otherwise a new eatery is created
// together with its first review. The merge never overwrites non-empty
// fields and never changes the eatery's owner.
func (s *EateryService) CreateSubmission(authorID uint, req *dto.SubmissionRequest) (*models.Eatery, *models.Review, bool, error) {
	if _, err := s.store.UserByID(authorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, false, ErrUserNotFound
		}
		return nil, nil, false, err
	}
	if !models.ValidPlaceType(req.Type) {
		return nil, nil, false, ErrUnknownPlaceType
	}

	normalized := models.NormalizeAddress(req.Address)

	existing, err := s.store.EateryByAddress(normalized)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, nil, false, fmt.Errorf("failed to look up address: %w", err)
	}

	if existing != nil {
		review := buildReview(existing.ID, authorID, req)
		if err := s.store.CreateReview(review); err != nil {
			return nil, nil, false, err
		}
		if backfill(existing, req) {
			if err := s.store.UpdateEatery(existing); err != nil {
				return nil, nil, false, err
			}
		}
		return existing, review, true, nil
	}

	eatery := &models.Eatery{
		Name:           req.Name,
		Address:        req.Address,
		Type:           req.Type,
		Cuisine:        req.Cuisine,
		Rating:         req.Rating,
		Price:          req.Price,
		Comment:        req.Comment,
		DietaryOptions: datatypes.NewJSONType(req.DietaryOptions),
		Images:         datatypes.NewJSONSlice(req.Images),
		Coordinates:    datatypes.NewJSONType(req.Coordinates),
		UserID:         authorID,
	}
	if err := s.store.CreateEatery(eatery); err != nil {
		return nil, nil, false, err
	}

	review := buildReview(eatery.ID, authorID, req)
	if err := s.store.CreateReview(review); err != nil {
		return nil, nil, false, err
	}
	return eatery, review, false, nil
}

// backfill fills empty optional fields on a merged-into eatery and reports
// whether anything changed.
func backfill(e *models.Eatery, req *dto.SubmissionRequest) bool {
	changed := false
	if e.Comment == "" && req.Comment != "" {
		e.Comment = req.Comment
		changed = true
	}
	if len(e.Images) == 0 && len(req.Images) > 0 {
		e.Images = datatypes.NewJSONSlice(req.Images)
		changed = true
	}
	if e.Coordinates.Data() == nil && req.Coordinates != nil {
		e.Coordinates = datatypes.NewJSONType(req.Coordinates)
		changed = true
	}
	return changed
}

// DeleteEatery removes an eatery and its reviews. Only the owner may delete.
func (s *EateryService) DeleteEatery(id, requesterID uint) error {
	eatery, err := s.store.EateryByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrEateryNotFound
		}
		return err
	}
	if eatery.UserID != requesterID {
		return ErrNotOwner
	}

	if err := s.store.DeleteReviewsByEatery(id); err != nil {
		return err
	}
	return s.store.DeleteEatery(id)
}

// ReviewsByEatery lists an eatery's reviews newest-first; the eatery must exist.
func (s *EateryService) ReviewsByEatery(eateryID uint) ([]models.Review, error) {
	if _, err := s.store.EateryByID(eateryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEateryNotFound
		}
		return nil, err
	}
	return s.store.ReviewsByEatery(eateryID)
}

// ReviewsByUser lists a user's reviews newest-first.
func (s *EateryService) ReviewsByUser(userID uint) ([]models.Review, error) {
	return s.store.ReviewsByUser(userID)
}

// CreateReview attaches a review to an existing eatery by id.
func (s *EateryService) CreateReview(authorID uint, req *dto.ReviewRequest) (*models.Review, error) {
	if _, err := s.store.UserByID(authorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := s.store.EateryByID(req.EateryID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEateryNotFound
		}
		return nil, err
	}
	if !models.ValidPlaceType(req.Type) {
		return nil, ErrUnknownPlaceType
	}

	review := &models.Review{
		EateryID:       req.EateryID,
		UserID:         authorID,
		Type:           req.Type,
		Cuisine:        req.Cuisine,
		Rating:         req.Rating,
		Price:          req.Price,
		Comment:        req.Comment,
		DietaryOptions: datatypes.NewJSONType(req.DietaryOptions),
		Images:         datatypes.NewJSONSlice(req.Images),
	}
	if err := s.store.CreateReview(review); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview removes a review. Only its author may delete it.
func (s *EateryService) DeleteReview(id, requesterID uint) error {
	review, err := s.store.ReviewByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if review.UserID != requesterID {
		return ErrNotOwner
	}
	return s.store.DeleteReview(id)
}

func buildReview(eateryID, authorID uint, req *dto.SubmissionRequest) *models.Review {
	return &models.Review{
		EateryID:       eateryID,
		UserID:         authorID,
		Type:           req.Type,
		Cuisine:        req.Cuisine,
		Rating:         req.Rating,
		Price:          req.Price,
		Comment:        req.Comment,
		DietaryOptions: datatypes.NewJSONType(req.DietaryOptions),
		Images:         datatypes.NewJSONSlice(req.Images),
	}
}

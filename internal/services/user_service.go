package services

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/crypto/bcrypt"

	"github.com/sentreats/sentreats-server/internal/dto"
	"github.com/sentreats/sentreats-server/internal/models"
	"github.com/sentreats/sentreats-server/internal/store"
)

type UserService struct {
	store store.Store
}

func NewUserService(st store.Store) *UserService {
	return &UserService{store: st}
}

// UpdateProfile applies the provided fields after re-checking username and
// email uniqueness against everyone except the user themselves.
func (s *UserService) UpdateProfile(userID uint, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.store.UserByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		if other, err := s.store.UserByUsername(*req.Username); err == nil && other.ID != userID {
			return nil, ErrUsernameTaken
		} else if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		user.Username = *req.Username
	}

	if req.Email != nil && *req.Email != user.Email {
		if other, err := s.store.UserByEmail(*req.Email); err == nil && other.ID != userID {
			return nil, ErrEmailTaken
		} else if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		user.Email = *req.Email
	}

	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if err := s.store.UpdateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword requires the current password before accepting a new one.
func (s *UserService) ChangePassword(userID uint, current, newPassword string) error {
	user, err := s.store.UserByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = string(hash)
	return s.store.UpdateUser(user)
}

// DeleteAccount removes the user and cascades to their eateries, the
// reviews on those eateries and the user's reviews elsewhere. The steps are
// best-effort: there is no transaction spanning them.
func (s *UserService) DeleteAccount(userID uint) error {
	if _, err := s.store.UserByID(userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	owned, err := s.store.Eateries(userID)
	if err != nil {
		return err
	}
	for _, e := range owned {
		if err := s.store.DeleteReviewsByEatery(e.ID); err != nil {
			slog.Error("failed to delete eatery reviews during account deletion",
				"eatery_id", e.ID, "error", err)
		}
	}
	if err := s.store.DeleteEateriesByOwner(userID); err != nil {
		return err
	}
	if err := s.store.DeleteReviewsByOwner(userID); err != nil {
		return err
	}
	return s.store.DeleteUser(userID)
}

// Stats scans the user's eateries at call time; nothing is materialized.
func (s *UserService) Stats(userID uint) (*dto.Stats, error) {
	eateries, err := s.store.Eateries(userID)
	if err != nil {
		return nil, err
	}

	stats := dto.Stats{Count: len(eateries)}
	if len(eateries) == 0 {
		return &stats, nil
	}

	sum := 0
	for _, e := range eateries {
		sum += e.Rating
		if e.DietaryOptions.Data().Vegan {
			stats.VeganCount++
		}
	}
	avg := float64(sum) / float64(len(eateries))
	stats.AverageRating = math.Round(avg*10) / 10

	return &stats, nil
}

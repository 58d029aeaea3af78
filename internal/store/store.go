// Package store defines the persistence contract shared by the relational
// and file-backed backends. Services depend only on these interfaces; the
// backend is chosen by configuration at startup.
package store

import (
	"errors"

	"github.com/sentreats/sentreats-server/internal/models"
)

// ErrNotFound is returned when a lookup matches no entity.
var ErrNotFound = errors.New("store: not found")

// UserStore persists accounts with unique username/email lookups.
type UserStore interface {
	UserByID(id uint) (*models.User, error)
	UserByUsername(username string) (*models.User, error)
	UserByEmail(email string) (*models.User, error)
	// CreateUser assigns the id and timestamps on the passed user.
	CreateUser(u *models.User) error
	UpdateUser(u *models.User) error
	DeleteUser(id uint) error
}

// EateryStore persists eateries with a normalized-address secondary lookup.
type EateryStore interface {
	EateryByID(id uint) (*models.Eatery, error)
	// EateryByAddress looks up by normalized (lowercased, trimmed) address.
	EateryByAddress(normalized string) (*models.Eatery, error)
	// Eateries lists newest-first; ownerID 0 means all owners.
	Eateries(ownerID uint) ([]models.Eatery, error)
	CreateEatery(e *models.Eatery) error
	UpdateEatery(e *models.Eatery) error
	DeleteEatery(id uint) error
	DeleteEateriesByOwner(ownerID uint) error
}

// ReviewStore persists reviews keyed by eatery and author.
type ReviewStore interface {
	ReviewByID(id uint) (*models.Review, error)
	ReviewsByEatery(eateryID uint) ([]models.Review, error)
	ReviewsByUser(userID uint) ([]models.Review, error)
	CreateReview(r *models.Review) error
	DeleteReview(id uint) error
	DeleteReviewsByEatery(eateryID uint) error
	DeleteReviewsByOwner(userID uint) error
}

// Store is the full persistence surface.
type Store interface {
	UserStore
	EateryStore
	ReviewStore

	Ping() error
	Close() error
}

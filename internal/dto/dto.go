package dto

import (
	"github.com/sentreats/sentreats-server/internal/models"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Bio      string `json:"bio" validate:"max=500"`
}

type LoginRequest struct {
	// Identifier matches either username or email.
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Bio      *string `json:"bio" validate:"omitempty,max=500"`
	Avatar   *string `json:"avatar" validate:"omitempty,max=512"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// SubmissionRequest is one user's eatery submission. The place type is
// checked against models.PlaceTypes in the service.
type SubmissionRequest struct {
	Name           string                `json:"name" validate:"required,max=255"`
	Address        string                `json:"address" validate:"required,max=255"`
	Type           string                `json:"type" validate:"required"`
	Cuisine        string                `json:"cuisine" validate:"required,max=100"`
	Rating         int                   `json:"rating" validate:"gte=0,lte=5"`
	Price          string                `json:"price" validate:"required,oneof=$ $$ $$$ $$$$"`
	Comment        string                `json:"comment"`
	DietaryOptions models.DietaryOptions `json:"dietaryOptions"`
	Images         []string              `json:"images" validate:"omitempty,dive,max=1024"`
	Coordinates    *models.Coordinates   `json:"coordinates"`
}

// ReviewRequest attaches a review to an already-known eatery id.
type ReviewRequest struct {
	EateryID       uint                  `json:"eateryId" validate:"required"`
	Type           string                `json:"type" validate:"required"`
	Cuisine        string                `json:"cuisine" validate:"required,max=100"`
	Rating         int                   `json:"rating" validate:"gte=0,lte=5"`
	Price          string                `json:"price" validate:"required,oneof=$ $$ $$$ $$$$"`
	Comment        string                `json:"comment"`
	DietaryOptions models.DietaryOptions `json:"dietaryOptions"`
	Images         []string              `json:"images" validate:"omitempty,dive,max=1024"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type UserResponse struct {
	User models.User `json:"user"`
}

type EateriesResponse struct {
	Count    int             `json:"count"`
	Eateries []models.Eatery `json:"eateries"`
}

// SubmissionResponse reports the eatery a submission landed on. Merged is
// true when it attached to an existing eatery instead of creating one.
type SubmissionResponse struct {
	Eatery models.Eatery `json:"eatery"`
	Review models.Review `json:"review"`
	Merged bool          `json:"merged"`
}

type ReviewsResponse struct {
	Count   int             `json:"count"`
	Reviews []models.Review `json:"reviews"`
}

type ReviewResponse struct {
	Review models.Review `json:"review"`
}

type StatsResponse struct {
	Stats Stats `json:"stats"`
}

type Stats struct {
	Count         int     `json:"count"`
	AverageRating float64 `json:"averageRating"`
	VeganCount    int     `json:"veganCount"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Storage   string `json:"storage"`
}

type ErrorResponse struct {
	Error   bool         `json:"error"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

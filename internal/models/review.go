package models

import (
	"time"

	"gorm.io/datatypes"
)

// Review is one user's submission for an eatery. Authorship is fixed at
// creation; only the author may delete it.
type Review struct {
	ID             uint                               `gorm:"primaryKey" json:"id"`
	EateryID       uint                               `gorm:"not null;index" json:"eateryId"`
	UserID         uint                               `gorm:"not null;index" json:"userId"`
	Type           string                             `gorm:"size:50;not null" json:"type"`
	Cuisine        string                             `gorm:"size:100;not null" json:"cuisine"`
	Rating         int                                `gorm:"not null" json:"rating"`
	Price          string                             `gorm:"size:8;not null" json:"price"`
	Comment        string                             `gorm:"type:text" json:"comment"`
	DietaryOptions datatypes.JSONType[DietaryOptions] `json:"dietaryOptions"`
	Images         datatypes.JSONSlice[string]        `json:"images"`
	CreatedAt      time.Time                          `json:"createdAt"`
}

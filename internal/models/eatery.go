package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// DietaryOptions is the fixed set of menu-accommodation flags. Unknown keys
// are dropped on decode; the wire shape never grows beyond these five.
type DietaryOptions struct {
	GlutenFree bool `json:"glutenFree"`
	Vegan      bool `json:"vegan"`
	Vegetarian bool `json:"vegetarian"`
	DairyFree  bool `json:"dairyFree"`
	NutFree    bool `json:"nutFree"`
}

// Coordinates is an optional map position for an eatery.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlaceTypes is the accepted set of eatery types.
var PlaceTypes = []string{
	"Restaurant", "Cafe", "Bar", "Ice Cream Shop", "Boba Shop", "Bakery",
	"Food Truck", "Food Court", "Diner", "Pizzeria", "Sushi Bar",
	"Steakhouse", "Other",
}

// ValidPlaceType reports whether t is one of PlaceTypes.
func ValidPlaceType(t string) bool {
	for _, p := range PlaceTypes {
		if p == t {
			return true
		}
	}
	return false
}

// NormalizeAddress lowercases and trims an address. Two submissions whose
// normalized addresses are equal are treated as the same location; differently
// formatted near-duplicates stay distinct.
func NormalizeAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// Eatery is the central reviewable entity: a named place at an address,
// owned by the user who first submitted it.
type Eatery struct {
	ID             uint                                 `gorm:"primaryKey" json:"id"`
	Name           string                               `gorm:"size:255;not null" json:"name"`
	Address        string                               `gorm:"size:255;not null;index" json:"address"`
	Type           string                               `gorm:"size:50;not null" json:"type"`
	Cuisine        string                               `gorm:"size:100;not null" json:"cuisine"`
	Rating         int                                  `gorm:"not null" json:"rating"`
	Price          string                               `gorm:"size:8;not null" json:"price"`
	Comment        string                               `gorm:"type:text" json:"comment"`
	DietaryOptions datatypes.JSONType[DietaryOptions]   `json:"dietaryOptions"`
	Images         datatypes.JSONSlice[string]          `json:"images"`
	Coordinates    datatypes.JSONType[*Coordinates]     `json:"coordinates"`
	UserID         uint                                 `gorm:"not null;index" json:"userId"`
	CreatedAt      time.Time                            `json:"createdAt"`
	UpdatedAt      time.Time                            `json:"updatedAt"`
}

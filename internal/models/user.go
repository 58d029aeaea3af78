package models

import (
	"time"
)

// User is an account that owns eateries and authors reviews.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email       string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	Bio         string    `gorm:"type:text" json:"bio"`
	Avatar      string    `gorm:"size:512" json:"avatar"`
	AvatarColor string    `gorm:"size:7" json:"avatarColor"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AvatarColors is the brand palette an avatar color is picked from at signup.
var AvatarColors = []string{
	"#7553ff", "#ff45a8", "#ee8019", "#fdb81b", "#92dd00", "#226dfc",
}

// AvatarColorFor deterministically picks a palette color from the username.
func AvatarColorFor(name string) string {
	if name == "" {
		return AvatarColors[0]
	}
	var hash int32
	for _, r := range name {
		hash = int32(r) + (hash << 5) - hash
	}
	if hash < 0 {
		hash = -hash
	}
	return AvatarColors[int(hash)%len(AvatarColors)]
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              string     `gorm:"primaryKey;type:uuid" json:"id"`
	Username        string     `gorm:"uniqueIndex;not null" json:"username"`
	Email           string     `gorm:"uniqueIndex;not null" json:"email"`
	Password        string     `gorm:"column:password_hash;not null" json:"-"` // Not shown in JSON
	Role            string     `gorm:"default:'user';not null" json:"role"`    // "user" or "admin"
	AvatarURL       *string    `json:"avatar_url,omitempty"`
	Bio             *string    `json:"bio,omitempty"`
	BackgroundTheme *string    `json:"background_theme,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	LastLogin       *time.Time `json:"last_login,omitempty"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}

// TopFavorite is one of a user's curated favorite shows. At most three rows
// per user; position preserves the order the user picked them in.
type TopFavorite struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string `gorm:"type:uuid;not null;uniqueIndex:idx_top_favorites_user_show" json:"user_id"`
	ShowID    int64  `gorm:"not null;uniqueIndex:idx_top_favorites_user_show" json:"show_id"`
	Position  int    `gorm:"not null" json:"position"`
	ShowName  string `json:"show_name"`
	PosterURL *string `json:"poster_url,omitempty"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (TopFavorite) TableName() string {
	return "top_favorites"
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Suggestion is a message from a user to the fixed administrative inbox.
// Only admins may read or delete suggestions; that check lives in the
// service and route middleware, not here.
type Suggestion struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Username  string    `gorm:"not null" json:"username"`
	Content   string    `gorm:"not null;type:text" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (s *Suggestion) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}

func (Suggestion) TableName() string {
	return "suggestions"
}

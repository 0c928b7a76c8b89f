package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review holds a user's written take on a show. Rating is a snapshot taken at
// authoring time; it is never recomputed from the live ratings table.
type Review struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Username  string    `gorm:"not null" json:"username"`
	ShowID    int64     `gorm:"not null;index" json:"show_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Content   string    `gorm:"not null;type:text" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User    User          `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Likes   []ReviewLike  `json:"likes,omitempty" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
	Replies []ReviewReply `json:"replies,omitempty" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
}

func (review *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	return
}

func (Review) TableName() string {
	return "reviews"
}

// ReviewLike is one user's like on a review. Likes live as rows with a unique
// (review_id, user_id) pair so concurrent togglers serialize on the store's
// constraint instead of racing over an array field.
type ReviewLike struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ReviewID string    `gorm:"type:uuid;not null;uniqueIndex:idx_review_likes_review_user" json:"review_id"`
	UserID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_review_likes_review_user" json:"user_id"`
	LikedAt  time.Time `gorm:"autoCreateTime" json:"liked_at"`
}

func (ReviewLike) TableName() string {
	return "review_likes"
}

// ReviewReply is an appended reply under a review. Replies get UUID ids so
// two replies written in the same instant never collide.
type ReviewReply struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	ReviewID  string    `gorm:"type:uuid;not null;index" json:"review_id"`
	UserID    string    `gorm:"type:uuid;not null" json:"user_id"`
	Username  string    `gorm:"not null" json:"username"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Content   string    `gorm:"not null;type:text" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (reply *ReviewReply) BeforeCreate(tx *gorm.DB) (err error) {
	if reply.ID == "" {
		reply.ID = uuid.New().String()
	}
	return
}

func (ReviewReply) TableName() string {
	return "review_replies"
}

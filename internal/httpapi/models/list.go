package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// List is a user-curated, shareable collection of shows. IsPrivate gates
// visibility to anyone but the owner.
type List struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Username    string    `gorm:"not null" json:"username"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsPrivate   bool      `gorm:"default:false;not null" json:"is_private"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User     User          `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Items    []ListItem    `json:"items,omitempty" gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE;"`
	Likes    []ListLike    `json:"likes,omitempty" gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE;"`
	Comments []ListComment `json:"comments,omitempty" gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE;"`
}

func (list *List) BeforeCreate(tx *gorm.DB) (err error) {
	if list.ID == "" {
		list.ID = uuid.New().String()
	}
	return
}

func (List) TableName() string {
	return "lists"
}

// ListItem is one show on a list. Each show appears at most once per list;
// position preserves insertion order. Name and poster are snapshots so list
// pages render without a metadata round trip.
type ListItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ListID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_list_items_list_show" json:"list_id"`
	ShowID    int64     `gorm:"not null;uniqueIndex:idx_list_items_list_show" json:"show_id"`
	Position  int       `gorm:"not null" json:"position"`
	ShowName  string    `json:"show_name"`
	PosterURL *string   `json:"poster_url,omitempty"`
	AddedAt   time.Time `gorm:"autoCreateTime" json:"added_at"`
}

func (ListItem) TableName() string {
	return "list_items"
}

// ListLike mirrors ReviewLike for lists.
type ListLike struct {
	ID      int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ListID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_list_likes_list_user" json:"list_id"`
	UserID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_list_likes_list_user" json:"user_id"`
	LikedAt time.Time `gorm:"autoCreateTime" json:"liked_at"`
}

func (ListLike) TableName() string {
	return "list_likes"
}

// ListComment mirrors ReviewReply for lists.
type ListComment struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	ListID    string    `gorm:"type:uuid;not null;index" json:"list_id"`
	UserID    string    `gorm:"type:uuid;not null" json:"user_id"`
	Username  string    `gorm:"not null" json:"username"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Content   string    `gorm:"not null;type:text" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (comment *ListComment) BeforeCreate(tx *gorm.DB) (err error) {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	return
}

func (ListComment) TableName() string {
	return "list_comments"
}

package models

import "time"

// WatchlistItem marks a show a user intends to watch. The (user_id, show_id)
// unique index makes re-adds no-ops at the store level.
type WatchlistItem struct {
	ID      int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_watchlist_user_show" json:"user_id"`
	ShowID  int64     `gorm:"not null;uniqueIndex:idx_watchlist_user_show;index" json:"show_id"`
	AddedAt time.Time `gorm:"autoCreateTime" json:"added_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
}

func (WatchlistItem) TableName() string {
	return "watchlist_items"
}

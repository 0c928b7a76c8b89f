package dto

import "time"

// AddToWatchlistDTO: payload to add a show to the user's watchlist
type AddToWatchlistDTO struct {
	ShowID int64 `json:"show_id" binding:"required"`
}

// WatchlistItemResponse: one watchlist row
type WatchlistItemResponse struct {
	ShowID  int64     `json:"show_id"`
	AddedAt time.Time `json:"added_at"`
}

// WatchlistResponse: the full watchlist
type WatchlistResponse struct {
	Items []WatchlistItemResponse `json:"items"`
	Total int                     `json:"total"`
}

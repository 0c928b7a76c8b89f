package dto

import "showhub/internal/tmdb"

// ShowScore is one row of the community-favorites ranking.
type ShowScore struct {
	ShowID int64   `json:"show_id"`
	Score  float64 `json:"score"`
}

// ShowCount is one row of the most-watchlisted ranking.
type ShowCount struct {
	ShowID int64 `json:"show_id"`
	Count  int   `json:"count"`
}

// RankedShowsResponse is a page of ranked shows resolved to catalog details.
type RankedShowsResponse struct {
	Shows []tmdb.Show `json:"shows"`
	Page  int         `json:"page"`
}

package dto

import (
	"time"

	"showhub/internal/httpapi/models"
)

type UpdateProfileDTO struct {
	AvatarURL       *string `json:"avatar_url"`
	Bio             *string `json:"bio"`
	BackgroundTheme *string `json:"background_theme"`
}

type TopFavoriteDTO struct {
	ShowID    int64   `json:"show_id" binding:"required"`
	ShowName  string  `json:"show_name"`
	PosterURL *string `json:"poster_url"`
}

type SetTopFavoritesDTO struct {
	Favorites []TopFavoriteDTO `json:"favorites"`
}

type TopFavoriteResponse struct {
	ShowID    int64   `json:"show_id"`
	Position  int     `json:"position"`
	ShowName  string  `json:"show_name"`
	PosterURL *string `json:"poster_url,omitempty"`
}

// ProfileResponse is the full profile page payload: identity, curated
// favorites, and everything the user tracks.
type ProfileResponse struct {
	ID              string                `json:"id"`
	Username        string                `json:"username"`
	Role            string                `json:"role"`
	AvatarURL       *string               `json:"avatar_url,omitempty"`
	Bio             *string               `json:"bio,omitempty"`
	BackgroundTheme *string               `json:"background_theme,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	TopFavorites    []TopFavoriteResponse `json:"top_favorites"`
	Ratings         map[int64]int         `json:"ratings"`
	Watchlist       []int64               `json:"watchlist"`
	Lists           []ListResponse        `json:"lists"`
}

// MemberResponse is a directory entry with tracking volume only, no
// per-show detail.
type MemberResponse struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	AvatarURL      *string   `json:"avatar_url,omitempty"`
	Bio            *string   `json:"bio,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	RatingCount    int64     `json:"rating_count"`
	WatchlistCount int64     `json:"watchlist_count"`
}

func FromModelToTopFavoriteResponse(fav *models.TopFavorite) TopFavoriteResponse {
	return TopFavoriteResponse{
		ShowID:    fav.ShowID,
		Position:  fav.Position,
		ShowName:  fav.ShowName,
		PosterURL: fav.PosterURL,
	}
}

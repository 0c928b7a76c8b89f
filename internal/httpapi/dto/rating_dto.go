package dto

// SetRatingDTO: payload for setting a show rating. Zero clears the rating.
type SetRatingDTO struct {
	Rating *int `json:"rating" binding:"required,min=0,max=5"`
}

// RatingResponse: one rating row for a show
type RatingResponse struct {
	ShowID int64 `json:"show_id"`
	Rating int   `json:"rating"`
}

// RatingsResponse: all of a user's ratings keyed by show id
type RatingsResponse struct {
	Ratings map[int64]int `json:"ratings"`
}

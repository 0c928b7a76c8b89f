package dto

import (
	"time"

	"showhub/internal/httpapi/models"
)

// SubmitSuggestionDTO: payload for filing a suggestion
type SubmitSuggestionDTO struct {
	Content string `json:"content" binding:"required,max=2000"`
}

// SuggestionResponse: one inbox entry
type SuggestionResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func FromModelToSuggestionResponse(s *models.Suggestion) SuggestionResponse {
	return SuggestionResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		Username:  s.Username,
		Content:   s.Content,
		CreatedAt: s.CreatedAt,
	}
}

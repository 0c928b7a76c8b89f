package dto

import (
	"time"

	"showhub/internal/httpapi/models"
)

// CreateListDTO is the payload for creating a list.
type CreateListDTO struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
	IsPrivate   bool   `json:"is_private"`
}

// AddListItemDTO adds one show to a list. Name and poster snapshot the show
// so list pages render without a metadata round trip.
type AddListItemDTO struct {
	ShowID    int64   `json:"show_id" binding:"required"`
	ShowName  string  `json:"show_name" binding:"required"`
	PosterURL *string `json:"poster_url"`
}

// ListItemResponse is one show on a list.
type ListItemResponse struct {
	ShowID    int64     `json:"show_id"`
	ShowName  string    `json:"show_name"`
	PosterURL *string   `json:"poster_url,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

// ListResponse is a list with items, likes and comments expanded.
type ListResponse struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	Username    string             `json:"username"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	IsPrivate   bool               `json:"is_private"`
	CreatedAt   time.Time          `json:"created_at"`
	Items       []ListItemResponse `json:"items"`
	Likes       []string           `json:"likes"`
	Comments    []ReplyResponse    `json:"comments"`
}

// FromModelToListResponse converts a List model with preloaded associations.
func FromModelToListResponse(list *models.List) *ListResponse {
	items := make([]ListItemResponse, 0, len(list.Items))
	for _, item := range list.Items {
		items = append(items, ListItemResponse{
			ShowID:    item.ShowID,
			ShowName:  item.ShowName,
			PosterURL: item.PosterURL,
			AddedAt:   item.AddedAt,
		})
	}

	likes := make([]string, 0, len(list.Likes))
	for _, like := range list.Likes {
		likes = append(likes, like.UserID)
	}

	comments := make([]ReplyResponse, 0, len(list.Comments))
	for _, comment := range list.Comments {
		comments = append(comments, ReplyResponse{
			ID:        comment.ID,
			UserID:    comment.UserID,
			Username:  comment.Username,
			AvatarURL: comment.AvatarURL,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		})
	}

	return &ListResponse{
		ID:          list.ID,
		UserID:      list.UserID,
		Username:    list.Username,
		Name:        list.Name,
		Description: list.Description,
		IsPrivate:   list.IsPrivate,
		CreatedAt:   list.CreatedAt,
		Items:       items,
		Likes:       likes,
		Comments:    comments,
	}
}

package dto

import (
	"time"

	"showhub/internal/httpapi/models"
)

// CreateReviewDTO is the payload for authoring a review. The rating is
// snapshotted onto the review as written; later rating changes do not touch
// it.
type CreateReviewDTO struct {
	ShowID  int64  `json:"show_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Content string `json:"content" binding:"required"`
}

// AppendReplyDTO is the payload for replying under a review or commenting on
// a list.
type AppendReplyDTO struct {
	Content string `json:"content" binding:"required"`
}

// ReplyResponse is one reply/comment row.
type ReplyResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewResponse is a review with its likes and replies expanded.
type ReviewResponse struct {
	ID         string          `json:"id"`
	ShowID     int64           `json:"show_id"`
	ShowName   string          `json:"show_name,omitempty"`
	ShowPoster *string         `json:"show_poster,omitempty"`
	UserID     string          `json:"user_id"`
	Username   string          `json:"username"`
	Rating     int             `json:"rating"`
	Content    string          `json:"content"`
	CreatedAt  time.Time       `json:"created_at"`
	Likes      []string        `json:"likes"`
	Replies    []ReplyResponse `json:"replies"`
}

// ToggleLikeResponse reports the post-toggle state.
type ToggleLikeResponse struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

// FromModelToReviewResponse converts a Review model with preloaded likes and
// replies into the response shape.
func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	likes := make([]string, 0, len(review.Likes))
	for _, like := range review.Likes {
		likes = append(likes, like.UserID)
	}

	replies := make([]ReplyResponse, 0, len(review.Replies))
	for _, reply := range review.Replies {
		replies = append(replies, FromModelToReplyResponse(&reply))
	}

	return &ReviewResponse{
		ID:        review.ID,
		ShowID:    review.ShowID,
		UserID:    review.UserID,
		Username:  review.Username,
		Rating:    review.Rating,
		Content:   review.Content,
		CreatedAt: review.CreatedAt,
		Likes:     likes,
		Replies:   replies,
	}
}

// FromModelToReplyResponse converts a ReviewReply model.
func FromModelToReplyResponse(reply *models.ReviewReply) ReplyResponse {
	return ReplyResponse{
		ID:        reply.ID,
		UserID:    reply.UserID,
		Username:  reply.Username,
		AvatarURL: reply.AvatarURL,
		Content:   reply.Content,
		CreatedAt: reply.CreatedAt,
	}
}

package service

import (
	"context"
	"errors"

	"showhub/internal/httpapi/dto"
	"showhub/internal/httpapi/models"
	"showhub/internal/httpapi/repository"
	"showhub/internal/logger"

	"gorm.io/gorm"
)

type ReviewService interface {
	CreateReview(ctx context.Context, userID, username string, req *dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	GetReview(ctx context.Context, reviewID string) (*dto.ReviewResponse, error)
	GetReviewsByShow(ctx context.Context, showID int64) ([]dto.ReviewResponse, error)
	GetReviewsByUser(ctx context.Context, userID string) ([]dto.ReviewResponse, error)
	DeleteReview(ctx context.Context, actorID, reviewID string) error

	ToggleLike(ctx context.Context, reviewID, userID string) (*dto.ToggleLikeResponse, error)
	AppendReply(ctx context.Context, reviewID string, user *models.User, content string) (*dto.ReplyResponse, error)
	DeleteReply(ctx context.Context, actorID, reviewID, replyID string) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	resolver   ShowResolver
}

func NewReviewService(reviewRepo repository.ReviewRepository, resolver ShowResolver) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		resolver:   resolver,
	}
}

// CreateReview writes the review with the rating snapshotted as given. The
// snapshot is intentionally never synced with the user's live rating.
func (s *reviewService) CreateReview(ctx context.Context, userID, username string, req *dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	review := &models.Review{
		UserID:   userID,
		Username: username,
		ShowID:   req.ShowID,
		Rating:   req.Rating,
		Content:  req.Content,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) GetReview(ctx context.Context, reviewID string) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) GetReviewsByShow(ctx context.Context, showID int64) ([]dto.ReviewResponse, error) {
	reviews, err := s.reviewRepo.ListByShow(ctx, showID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&reviews[i]))
	}
	return responses, nil
}

// GetReviewsByUser lists a user's reviews with show names and posters
// resolved through the metadata client. When the upstream is down the
// reviews still come back, just without the show decoration.
func (s *reviewService) GetReviewsByUser(ctx context.Context, userID string) ([]dto.ReviewResponse, error) {
	reviews, err := s.reviewRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&reviews[i]))
	}

	s.decorateWithShows(ctx, responses)
	return responses, nil
}

func (s *reviewService) decorateWithShows(ctx context.Context, responses []dto.ReviewResponse) {
	seen := make(map[int64]bool)
	ids := make([]int64, 0)
	for _, r := range responses {
		if !seen[r.ShowID] {
			seen[r.ShowID] = true
			ids = append(ids, r.ShowID)
		}
	}

	shows, err := s.resolver.GetShowsByIds(ctx, ids)
	if err != nil {
		logger.Warn("review show decoration degraded", "err", err)
		return
	}

	byID := make(map[int64]int, len(shows))
	for i, show := range shows {
		byID[show.ID] = i
	}
	for i := range responses {
		if idx, ok := byID[responses[i].ShowID]; ok {
			responses[i].ShowName = shows[idx].Name
			responses[i].ShowPoster = shows[idx].PosterPath
		} else {
			responses[i].ShowName = "Unknown"
		}
	}
}

// DeleteReview removes the review outright. Only the owner may delete;
// likes and replies go with the row.
func (s *reviewService) DeleteReview(ctx context.Context, actorID, reviewID string) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // already gone
		}
		return err
	}
	if review.UserID != actorID {
		return ErrForbidden
	}
	return s.reviewRepo.Delete(ctx, reviewID)
}

func (s *reviewService) ToggleLike(ctx context.Context, reviewID, userID string) (*dto.ToggleLikeResponse, error) {
	if _, err := s.reviewRepo.GetByID(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	liked, err := s.reviewRepo.ToggleLike(ctx, reviewID, userID)
	if err != nil {
		return nil, err
	}

	likes, err := s.reviewRepo.ListLikes(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	return &dto.ToggleLikeResponse{Liked: liked, LikeCount: len(likes)}, nil
}

func (s *reviewService) AppendReply(ctx context.Context, reviewID string, user *models.User, content string) (*dto.ReplyResponse, error) {
	if _, err := s.reviewRepo.GetByID(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	reply := &models.ReviewReply{
		ReviewID:  reviewID,
		UserID:    user.ID,
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
		Content:   content,
	}
	if err := s.reviewRepo.AppendReply(ctx, reply); err != nil {
		return nil, err
	}

	response := dto.FromModelToReplyResponse(reply)
	return &response, nil
}

// DeleteReply removes a reply by id. Allowed for the reply's author and for
// the review's owner; enforced here regardless of what the UI gates.
func (s *reviewService) DeleteReply(ctx context.Context, actorID, reviewID, replyID string) error {
	reply, err := s.reviewRepo.GetReply(ctx, replyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // deleting a missing reply is a no-op
		}
		return err
	}

	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if reply.UserID != actorID && review.UserID != actorID {
		return ErrForbidden
	}
	return s.reviewRepo.DeleteReply(ctx, reviewID, replyID)
}

package service

import (
	"context"
	"errors"

	"showhub/internal/httpapi/repository"

	"gorm.io/gorm"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type RatingService interface {
	// SetRating stores the user's 1-5 rating for a show. A value of 0 removes
	// any existing rating; removing an absent rating is a no-op.
	SetRating(ctx context.Context, userID string, showID int64, rating int) error
	// GetRating returns the user's rating for a show, 0 when unrated.
	GetRating(ctx context.Context, userID string, showID int64) (int, error)
	// GetRatings returns all of the user's ratings as a showID -> rating map.
	GetRatings(ctx context.Context, userID string) (map[int64]int, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
}

func NewRatingService(ratingRepo repository.RatingRepository) RatingService {
	return &ratingService{ratingRepo: ratingRepo}
}

func (s *ratingService) SetRating(ctx context.Context, userID string, showID int64, rating int) error {
	if rating == 0 {
		return s.ratingRepo.Delete(ctx, userID, showID)
	}
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	return s.ratingRepo.Upsert(ctx, userID, showID, rating)
}

func (s *ratingService) GetRating(ctx context.Context, userID string, showID int64) (int, error) {
	rating, err := s.ratingRepo.GetByUserAndShow(ctx, userID, showID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return rating.Rating, nil
}

func (s *ratingService) GetRatings(ctx context.Context, userID string) (map[int64]int, error) {
	ratings, err := s.ratingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := make(map[int64]int, len(ratings))
	for _, r := range ratings {
		result[r.ShowID] = r.Rating
	}
	return result, nil
}

package service

import (
	"context"
	"testing"

	"showhub/internal/httpapi/models"

	"github.com/stretchr/testify/assert"
)

type recordingRatingRepo struct {
	ratingRepoStub
	upserts int
	deletes int
	stored  map[int64]int
}

func newRecordingRatingRepo() *recordingRatingRepo {
	return &recordingRatingRepo{stored: make(map[int64]int)}
}

func (r *recordingRatingRepo) Upsert(ctx context.Context, userID string, showID int64, rating int) error {
	r.upserts++
	r.stored[showID] = rating
	return nil
}

func (r *recordingRatingRepo) Delete(ctx context.Context, userID string, showID int64) error {
	r.deletes++
	delete(r.stored, showID)
	return nil
}

func (r *recordingRatingRepo) ListByUser(ctx context.Context, userID string) ([]models.Rating, error) {
	ratings := make([]models.Rating, 0, len(r.stored))
	for showID, rating := range r.stored {
		ratings = append(ratings, models.Rating{UserID: userID, ShowID: showID, Rating: rating})
	}
	return ratings, nil
}

func TestSetRatingStoresValidValues(t *testing.T) {
	ctx := context.Background()
	repo := newRecordingRatingRepo()
	svc := NewRatingService(repo)

	for rating := 1; rating <= 5; rating++ {
		assert.NoError(t, svc.SetRating(ctx, "user-1", 100, rating))
	}
	assert.Equal(t, 5, repo.upserts)
	assert.Equal(t, 5, repo.stored[100])
}

func TestSetRatingZeroDeletes(t *testing.T) {
	ctx := context.Background()
	repo := newRecordingRatingRepo()
	svc := NewRatingService(repo)

	assert.NoError(t, svc.SetRating(ctx, "user-1", 100, 4))
	assert.NoError(t, svc.SetRating(ctx, "user-1", 100, 0))

	assert.Equal(t, 1, repo.deletes)
	assert.NotContains(t, repo.stored, int64(100))
}

func TestSetRatingRejectsOutOfRange(t *testing.T) {
	ctx := context.Background()
	repo := newRecordingRatingRepo()
	svc := NewRatingService(repo)

	assert.ErrorIs(t, svc.SetRating(ctx, "user-1", 100, 6), ErrInvalidRating)
	assert.ErrorIs(t, svc.SetRating(ctx, "user-1", 100, -1), ErrInvalidRating)
	assert.Zero(t, repo.upserts)
	assert.Zero(t, repo.deletes)
}

func TestGetRatingsMapsByShow(t *testing.T) {
	ctx := context.Background()
	repo := newRecordingRatingRepo()
	svc := NewRatingService(repo)

	assert.NoError(t, svc.SetRating(ctx, "user-1", 100, 3))
	assert.NoError(t, svc.SetRating(ctx, "user-1", 200, 5))

	ratings, err := svc.GetRatings(ctx, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, map[int64]int{100: 3, 200: 5}, ratings)
}

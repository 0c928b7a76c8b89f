package service

import (
	"context"

	"showhub/internal/httpapi/models"

	"gorm.io/gorm"
)

// ratingRepoStub satisfies repository.RatingRepository with empty results so
// tests can override only the methods they care about.
type ratingRepoStub struct{}

func (ratingRepoStub) Upsert(ctx context.Context, userID string, showID int64, rating int) error {
	return nil
}
func (ratingRepoStub) Delete(ctx context.Context, userID string, showID int64) error { return nil }
func (ratingRepoStub) GetByUserAndShow(ctx context.Context, userID string, showID int64) (*models.Rating, error) {
	return nil, gorm.ErrRecordNotFound
}
func (ratingRepoStub) ListByUser(ctx context.Context, userID string) ([]models.Rating, error) {
	return nil, nil
}
func (ratingRepoStub) Sample(ctx context.Context, limit int) ([]models.Rating, error) {
	return nil, nil
}
func (ratingRepoStub) CountByUser(ctx context.Context, userID string) (int64, error) { return 0, nil }

// watchlistRepoStub satisfies repository.WatchlistRepository.
type watchlistRepoStub struct{}

func (watchlistRepoStub) Add(ctx context.Context, userID string, showID int64) error    { return nil }
func (watchlistRepoStub) Remove(ctx context.Context, userID string, showID int64) error { return nil }
func (watchlistRepoStub) List(ctx context.Context, userID string) ([]models.WatchlistItem, error) {
	return nil, nil
}
func (watchlistRepoStub) Exists(ctx context.Context, userID string, showID int64) (bool, error) {
	return false, nil
}
func (watchlistRepoStub) SampleShowIDs(ctx context.Context, limit int) ([]int64, error) {
	return nil, nil
}
func (watchlistRepoStub) CountByUser(ctx context.Context, userID string) (int64, error) {
	return 0, nil
}

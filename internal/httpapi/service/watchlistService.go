package service

import (
	"context"

	"showhub/internal/httpapi/models"
	"showhub/internal/httpapi/repository"
)

type WatchlistService interface {
	Add(ctx context.Context, userID string, showID int64) error
	Remove(ctx context.Context, userID string, showID int64) error
	List(ctx context.Context, userID string) ([]models.WatchlistItem, error)
}

type watchlistService struct {
	repo repository.WatchlistRepository
}

func NewWatchlistService(repo repository.WatchlistRepository) WatchlistService {
	return &watchlistService{repo: repo}
}

// Add puts the show on the user's watchlist. Adding a show that is already
// there succeeds without a second row.
func (s *watchlistService) Add(ctx context.Context, userID string, showID int64) error {
	return s.repo.Add(ctx, userID, showID)
}

// Remove takes the show off the watchlist; absent shows are a no-op.
func (s *watchlistService) Remove(ctx context.Context, userID string, showID int64) error {
	return s.repo.Remove(ctx, userID, showID)
}

func (s *watchlistService) List(ctx context.Context, userID string) ([]models.WatchlistItem, error) {
	return s.repo.List(ctx, userID)
}

package repository

import (
	"context"
	"fmt"

	"showhub/internal/httpapi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WatchlistRepository interface {
	Add(ctx context.Context, userID string, showID int64) error
	Remove(ctx context.Context, userID string, showID int64) error
	List(ctx context.Context, userID string) ([]models.WatchlistItem, error)
	Exists(ctx context.Context, userID string, showID int64) (bool, error)
	SampleShowIDs(ctx context.Context, limit int) ([]int64, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type watchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

// Add inserts a watchlist row for (userID, showID). Re-adding a show that is
// already on the watchlist is a no-op; the unique index absorbs the conflict.
func (r *watchlistRepository) Add(ctx context.Context, userID string, showID int64) error {
	item := &models.WatchlistItem{
		UserID: userID,
		ShowID: showID,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "show_id"}},
			DoNothing: true,
		}).
		Create(item).Error
	if err != nil {
		return fmt.Errorf("add to watchlist: %w", err)
	}
	return nil
}

// Remove deletes the matching row. Removing a show that is not on the
// watchlist is a no-op, not an error.
func (r *watchlistRepository) Remove(ctx context.Context, userID string, showID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND show_id = ?", userID, showID).
		Delete(&models.WatchlistItem{})
	if result.Error != nil {
		return fmt.Errorf("remove from watchlist: %w", result.Error)
	}
	return nil
}

func (r *watchlistRepository) List(ctx context.Context, userID string) ([]models.WatchlistItem, error) {
	var items []models.WatchlistItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	return items, nil
}

func (r *watchlistRepository) Exists(ctx context.Context, userID string, showID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.WatchlistItem{}).
		Where("user_id = ? AND show_id = ?", userID, showID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SampleShowIDs returns the show ids of up to limit watchlist rows, newest
// first, for the most-watchlisted aggregation.
func (r *watchlistRepository) SampleShowIDs(ctx context.Context, limit int) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&models.WatchlistItem{}).
		Order("added_at DESC").
		Limit(limit).
		Pluck("show_id", &ids).Error
	return ids, err
}

func (r *watchlistRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.WatchlistItem{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

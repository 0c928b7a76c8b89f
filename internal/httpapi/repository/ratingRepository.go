package repository

import (
	"context"

	"showhub/internal/httpapi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingRepository interface {
	Upsert(ctx context.Context, userID string, showID int64, rating int) error
	Delete(ctx context.Context, userID string, showID int64) error
	GetByUserAndShow(ctx context.Context, userID string, showID int64) (*models.Rating, error)
	ListByUser(ctx context.Context, userID string) ([]models.Rating, error)
	Sample(ctx context.Context, limit int) ([]models.Rating, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert inserts or replaces the rating for (userID, showID) in one statement.
// The composite unique index guarantees at most one row per pair, so two
// concurrent raters cannot produce duplicates.
func (r *ratingRepository) Upsert(ctx context.Context, userID string, showID int64, rating int) error {
	row := models.Rating{
		UserID: userID,
		ShowID: showID,
		Rating: rating,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "show_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
		}).
		Create(&row).Error
}

// Delete removes the rating for (userID, showID). Deleting an absent rating
// is not an error.
func (r *ratingRepository) Delete(ctx context.Context, userID string, showID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND show_id = ?", userID, showID).
		Delete(&models.Rating{}).Error
}

// GetByUserAndShow retrieves a user's rating for a specific show.
func (r *ratingRepository) GetByUserAndShow(ctx context.Context, userID string, showID int64) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND show_id = ?", userID, showID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListByUser retrieves all of a user's ratings.
func (r *ratingRepository) ListByUser(ctx context.Context, userID string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&ratings).Error
	return ratings, err
}

// Sample returns up to limit rating rows, newest first. This is the bounded
// sample the community-favorites aggregation runs over.
func (r *ratingRepository) Sample(ctx context.Context, limit int) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&ratings).Error
	return ratings, err
}

// CountByUser counts how many shows a user has rated.
func (r *ratingRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

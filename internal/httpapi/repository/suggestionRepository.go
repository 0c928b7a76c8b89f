package repository

import (
	"context"

	"showhub/internal/httpapi/models"

	"gorm.io/gorm"
)

type SuggestionRepository interface {
	Create(ctx context.Context, suggestion *models.Suggestion) error
	List(ctx context.Context) ([]models.Suggestion, error)
	Delete(ctx context.Context, suggestionID string) error
}

type suggestionRepository struct {
	db *gorm.DB
}

func NewSuggestionRepository(db *gorm.DB) SuggestionRepository {
	return &suggestionRepository{db: db}
}

func (r *suggestionRepository) Create(ctx context.Context, suggestion *models.Suggestion) error {
	return r.db.WithContext(ctx).Create(suggestion).Error
}

func (r *suggestionRepository) List(ctx context.Context) ([]models.Suggestion, error) {
	var suggestions []models.Suggestion
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&suggestions).Error
	return suggestions, err
}

func (r *suggestionRepository) Delete(ctx context.Context, suggestionID string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", suggestionID).
		Delete(&models.Suggestion{}).Error
}

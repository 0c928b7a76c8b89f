package repository

import (
	"context"

	"showhub/internal/httpapi/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ListMembers(ctx context.Context, limit int) ([]models.User, error)

	ReplaceTopFavorites(ctx context.Context, userID string, favorites []models.TopFavorite) error
	ListTopFavorites(ctx context.Context, userID string) ([]models.TopFavorite, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListMembers returns up to limit users for the member directory, newest first.
func (r *userRepository) ListMembers(ctx context.Context, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// ReplaceTopFavorites swaps the user's curated favorites wholesale inside a
// transaction. Callers have already truncated to three and deduplicated.
func (r *userRepository) ReplaceTopFavorites(ctx context.Context, userID string, favorites []models.TopFavorite) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.TopFavorite{}).Error; err != nil {
			return err
		}
		if len(favorites) == 0 {
			return nil
		}
		return tx.Create(&favorites).Error
	})
}

func (r *userRepository) ListTopFavorites(ctx context.Context, userID string) ([]models.TopFavorite, error) {
	var favorites []models.TopFavorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC").
		Find(&favorites).Error
	return favorites, err
}

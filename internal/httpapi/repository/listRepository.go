package repository

import (
	"context"

	"showhub/internal/httpapi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListRepository interface {
	Create(ctx context.Context, list *models.List) error
	GetByID(ctx context.Context, listID string) (*models.List, error)
	ListByUser(ctx context.Context, userID string) ([]models.List, error)
	ListPublic(ctx context.Context, limit int) ([]models.List, error)
	Delete(ctx context.Context, listID string) error

	AddItem(ctx context.Context, item *models.ListItem) error
	RemoveItem(ctx context.Context, listID string, showID int64) error
	NextPosition(ctx context.Context, listID string) (int, error)

	ToggleLike(ctx context.Context, listID, userID string) (liked bool, err error)
	ListLikes(ctx context.Context, listID string) ([]string, error)

	AppendComment(ctx context.Context, comment *models.ListComment) error
	GetComment(ctx context.Context, commentID string) (*models.ListComment, error)
	DeleteComment(ctx context.Context, listID, commentID string) error
}

type listRepository struct {
	db *gorm.DB
}

func NewListRepository(db *gorm.DB) ListRepository {
	return &listRepository{db: db}
}

func (r *listRepository) Create(ctx context.Context, list *models.List) error {
	return r.db.WithContext(ctx).Create(list).Error
}

func (r *listRepository) GetByID(ctx context.Context, listID string) (*models.List, error) {
	var list models.List
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("list_items.position ASC")
		}).
		Preload("Likes").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("list_comments.created_at ASC")
		}).
		First(&list, "id = ?", listID).Error
	if err != nil {
		return nil, err
	}
	return &list, nil
}

func (r *listRepository) ListByUser(ctx context.Context, userID string) ([]models.List, error) {
	var lists []models.List
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("list_items.position ASC")
		}).
		Preload("Likes").
		Preload("Comments").
		Order("created_at DESC").
		Find(&lists).Error
	return lists, err
}

// ListPublic returns the newest public lists for the shared index page.
func (r *listRepository) ListPublic(ctx context.Context, limit int) ([]models.List, error) {
	var lists []models.List
	err := r.db.WithContext(ctx).
		Where("is_private = ?", false).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("list_items.position ASC")
		}).
		Preload("Likes").
		Preload("Comments").
		Order("created_at DESC").
		Limit(limit).
		Find(&lists).Error
	return lists, err
}

// Delete removes the list row; items, likes and comments cascade.
func (r *listRepository) Delete(ctx context.Context, listID string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", listID).
		Delete(&models.List{}).Error
}

// AddItem appends a show to the list. A show already on the list stays as it
// was; the unique (list_id, show_id) index absorbs the duplicate insert.
func (r *listRepository) AddItem(ctx context.Context, item *models.ListItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "list_id"}, {Name: "show_id"}},
			DoNothing: true,
		}).
		Create(item).Error
}

func (r *listRepository) RemoveItem(ctx context.Context, listID string, showID int64) error {
	return r.db.WithContext(ctx).
		Where("list_id = ? AND show_id = ?", listID, showID).
		Delete(&models.ListItem{}).Error
}

// NextPosition returns the position for the next appended item.
func (r *listRepository) NextPosition(ctx context.Context, listID string) (int, error) {
	var max struct {
		Max int
	}
	err := r.db.WithContext(ctx).
		Model(&models.ListItem{}).
		Select("COALESCE(MAX(position), 0) as max").
		Where("list_id = ?", listID).
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max.Max + 1, nil
}

// ToggleLike mirrors the review like toggle: insert-or-delete against the
// unique (list_id, user_id) pair.
func (r *listRepository) ToggleLike(ctx context.Context, listID, userID string) (bool, error) {
	like := models.ListLike{
		ListID: listID,
		UserID: userID,
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "list_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&like)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	err := r.db.WithContext(ctx).
		Where("list_id = ? AND user_id = ?", listID, userID).
		Delete(&models.ListLike{}).Error
	return false, err
}

func (r *listRepository) ListLikes(ctx context.Context, listID string) ([]string, error) {
	var userIDs []string
	err := r.db.WithContext(ctx).
		Model(&models.ListLike{}).
		Where("list_id = ?", listID).
		Order("liked_at ASC").
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}

func (r *listRepository) AppendComment(ctx context.Context, comment *models.ListComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *listRepository) GetComment(ctx context.Context, commentID string) (*models.ListComment, error) {
	var comment models.ListComment
	err := r.db.WithContext(ctx).First(&comment, "id = ?", commentID).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *listRepository) DeleteComment(ctx context.Context, listID, commentID string) error {
	return r.db.WithContext(ctx).
		Where("list_id = ? AND id = ?", listID, commentID).
		Delete(&models.ListComment{}).Error
}

package repository

import (
	"context"

	"showhub/internal/httpapi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, reviewID string) (*models.Review, error)
	ListByShow(ctx context.Context, showID int64) ([]models.Review, error)
	ListByUser(ctx context.Context, userID string) ([]models.Review, error)
	Delete(ctx context.Context, reviewID string) error

	ToggleLike(ctx context.Context, reviewID, userID string) (liked bool, err error)
	ListLikes(ctx context.Context, reviewID string) ([]string, error)

	AppendReply(ctx context.Context, reply *models.ReviewReply) error
	GetReply(ctx context.Context, replyID string) (*models.ReviewReply, error)
	DeleteReply(ctx context.Context, reviewID, replyID string) error
	ListReplies(ctx context.Context, reviewID string) ([]models.ReviewReply, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) GetByID(ctx context.Context, reviewID string) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("Likes").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("review_replies.created_at ASC")
		}).
		First(&review, "id = ?", reviewID).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByShow(ctx context.Context, showID int64) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("show_id = ?", showID).
		Preload("Likes").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("review_replies.created_at ASC")
		}).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Likes").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("review_replies.created_at ASC")
		}).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// Delete removes the review row; likes and replies go with it via FK cascade.
func (r *reviewRepository) Delete(ctx context.Context, reviewID string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", reviewID).
		Delete(&models.Review{}).Error
}

// ToggleLike flips userID's like on the review. The like is a row keyed
// uniquely by (review_id, user_id): the insert either lands (now liked) or
// conflicts away, in which case the existing row is deleted (now unliked).
// Toggling twice always restores the original state.
func (r *reviewRepository) ToggleLike(ctx context.Context, reviewID, userID string) (bool, error) {
	like := models.ReviewLike{
		ReviewID: reviewID,
		UserID:   userID,
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "review_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&like)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	// Already liked: remove.
	err := r.db.WithContext(ctx).
		Where("review_id = ? AND user_id = ?", reviewID, userID).
		Delete(&models.ReviewLike{}).Error
	return false, err
}

func (r *reviewRepository) ListLikes(ctx context.Context, reviewID string) ([]string, error) {
	var userIDs []string
	err := r.db.WithContext(ctx).
		Model(&models.ReviewLike{}).
		Where("review_id = ?", reviewID).
		Order("liked_at ASC").
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}

func (r *reviewRepository) AppendReply(ctx context.Context, reply *models.ReviewReply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

func (r *reviewRepository) GetReply(ctx context.Context, replyID string) (*models.ReviewReply, error) {
	var reply models.ReviewReply
	err := r.db.WithContext(ctx).First(&reply, "id = ?", replyID).Error
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// DeleteReply removes the reply with the given id from the review. Deleting
// an id that is not there is a no-op.
func (r *reviewRepository) DeleteReply(ctx context.Context, reviewID, replyID string) error {
	return r.db.WithContext(ctx).
		Where("review_id = ? AND id = ?", reviewID, replyID).
		Delete(&models.ReviewReply{}).Error
}

func (r *reviewRepository) ListReplies(ctx context.Context, reviewID string) ([]models.ReviewReply, error) {
	var replies []models.ReviewReply
	err := r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

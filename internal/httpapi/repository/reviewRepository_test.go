package repository_test

import (
	"context"
	"testing"

	"showhub/internal/httpapi/models"
	"showhub/internal/httpapi/repository"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupReviewDB(t *testing.T) *gorm.DB {
	t.Helper()
	return setupTestDB(t, &models.User{}, &models.Review{}, &models.ReviewLike{}, &models.ReviewReply{})
}

func createReview(t *testing.T, repo repository.ReviewRepository) *models.Review {
	t.Helper()
	review := &models.Review{
		UserID:   "author-1",
		Username: "author",
		ShowID:   100,
		Rating:   4,
		Content:  "solid season",
	}
	if err := repo.Create(context.Background(), review); err != nil {
		t.Fatalf("failed to create review: %v", err)
	}
	return review
}

func TestReviewToggleLikeParity(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewReviewRepository(setupReviewDB(t))
	review := createReview(t, repo)

	liked, err := repo.ToggleLike(ctx, review.ID, "user-2")
	assert.NoError(t, err)
	assert.True(t, liked)

	likes, err := repo.ListLikes(ctx, review.ID)
	assert.NoError(t, err)
	assert.Equal(t, []string{"user-2"}, likes)

	// second toggle removes the like
	liked, err = repo.ToggleLike(ctx, review.ID, "user-2")
	assert.NoError(t, err)
	assert.False(t, liked)

	likes, err = repo.ListLikes(ctx, review.ID)
	assert.NoError(t, err)
	assert.Empty(t, likes)

	// an even number of toggles always lands back at not-liked
	for i := 0; i < 4; i++ {
		_, err = repo.ToggleLike(ctx, review.ID, "user-2")
		assert.NoError(t, err)
	}
	likes, _ = repo.ListLikes(ctx, review.ID)
	assert.Empty(t, likes)
}

func TestReviewLikesAreDistinctPerUser(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewReviewRepository(setupReviewDB(t))
	review := createReview(t, repo)

	_, err := repo.ToggleLike(ctx, review.ID, "user-2")
	assert.NoError(t, err)
	_, err = repo.ToggleLike(ctx, review.ID, "user-3")
	assert.NoError(t, err)

	likes, err := repo.ListLikes(ctx, review.ID)
	assert.NoError(t, err)
	assert.Len(t, likes, 2)
}

func TestReplyAppendDeleteRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewReviewRepository(setupReviewDB(t))
	review := createReview(t, repo)

	reply := &models.ReviewReply{
		ReviewID: review.ID,
		UserID:   "user-2",
		Username: "replier",
		Content:  "agreed",
	}
	assert.NoError(t, repo.AppendReply(ctx, reply))
	assert.NotEmpty(t, reply.ID)

	replies, err := repo.ListReplies(ctx, review.ID)
	assert.NoError(t, err)
	assert.Len(t, replies, 1)
	assert.Equal(t, "agreed", replies[0].Content)

	assert.NoError(t, repo.DeleteReply(ctx, review.ID, reply.ID))

	replies, err = repo.ListReplies(ctx, review.ID)
	assert.NoError(t, err)
	assert.Empty(t, replies)

	// deleting an id that no longer exists is a no-op
	assert.NoError(t, repo.DeleteReply(ctx, review.ID, reply.ID))
}

func TestReviewGetByIDPreloads(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewReviewRepository(setupReviewDB(t))
	review := createReview(t, repo)

	_, err := repo.ToggleLike(ctx, review.ID, "user-2")
	assert.NoError(t, err)
	assert.NoError(t, repo.AppendReply(ctx, &models.ReviewReply{
		ReviewID: review.ID,
		UserID:   "user-3",
		Username: "other",
		Content:  "nice",
	}))

	loaded, err := repo.GetByID(ctx, review.ID)
	assert.NoError(t, err)
	assert.Len(t, loaded.Likes, 1)
	assert.Len(t, loaded.Replies, 1)
}

func TestReviewDelete(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewReviewRepository(setupReviewDB(t))
	review := createReview(t, repo)

	assert.NoError(t, repo.Delete(ctx, review.ID))

	_, err := repo.GetByID(ctx, review.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestReviewListByShowAndUser(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewReviewRepository(setupReviewDB(t))

	for _, r := range []*models.Review{
		{UserID: "user-1", Username: "a", ShowID: 100, Rating: 3, Content: "ok"},
		{UserID: "user-1", Username: "a", ShowID: 200, Rating: 5, Content: "great"},
		{UserID: "user-2", Username: "b", ShowID: 100, Rating: 2, Content: "meh"},
	} {
		assert.NoError(t, repo.Create(ctx, r))
	}

	byShow, err := repo.ListByShow(ctx, 100)
	assert.NoError(t, err)
	assert.Len(t, byShow, 2)

	byUser, err := repo.ListByUser(ctx, "user-1")
	assert.NoError(t, err)
	assert.Len(t, byUser, 2)
}

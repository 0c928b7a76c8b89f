package service

import (
	"context"
	"errors"
	"testing"

	"showhub/internal/httpapi/dto"
	"showhub/internal/httpapi/models"
	"showhub/internal/httpapi/repository"
	"showhub/internal/tmdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReviewFixture(t *testing.T, resolver ShowResolver) ReviewService {
	t.Helper()
	db := setupServiceDB(t, &models.User{}, &models.Review{}, &models.ReviewLike{}, &models.ReviewReply{})
	return NewReviewService(repository.NewReviewRepository(db), resolver)
}

func mustCreateReview(t *testing.T, svc ReviewService, userID string) *dto.ReviewResponse {
	t.Helper()
	review, err := svc.CreateReview(context.Background(), userID, "author", &dto.CreateReviewDTO{
		ShowID:  100,
		Rating:  4,
		Content: "worth a watch",
	})
	require.NoError(t, err)
	return review
}

func TestCreateReviewSnapshotsRating(t *testing.T) {
	svc := newReviewFixture(t, &stubResolver{})
	review := mustCreateReview(t, svc, "author-1")
	assert.Equal(t, 4, review.Rating)

	_, err := svc.CreateReview(context.Background(), "author-1", "author", &dto.CreateReviewDTO{
		ShowID: 100, Rating: 0, Content: "x",
	})
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestDeleteReviewOwnerOnly(t *testing.T) {
	ctx := context.Background()
	svc := newReviewFixture(t, &stubResolver{})
	review := mustCreateReview(t, svc, "author-1")

	assert.ErrorIs(t, svc.DeleteReview(ctx, "stranger", review.ID), ErrForbidden)
	assert.NoError(t, svc.DeleteReview(ctx, "author-1", review.ID))
	// already gone
	assert.NoError(t, svc.DeleteReview(ctx, "author-1", review.ID))
}

func TestReviewToggleLikeReportsCount(t *testing.T) {
	ctx := context.Background()
	svc := newReviewFixture(t, &stubResolver{})
	review := mustCreateReview(t, svc, "author-1")

	result, err := svc.ToggleLike(ctx, review.ID, "user-2")
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 1, result.LikeCount)

	result, err = svc.ToggleLike(ctx, review.ID, "user-3")
	require.NoError(t, err)
	assert.Equal(t, 2, result.LikeCount)

	result, err = svc.ToggleLike(ctx, review.ID, "user-2")
	require.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, 1, result.LikeCount)

	_, err = svc.ToggleLike(ctx, "missing", "user-2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteReplyAuthorOrReviewOwner(t *testing.T) {
	ctx := context.Background()
	svc := newReviewFixture(t, &stubResolver{})
	review := mustCreateReview(t, svc, "author-1")

	replier := &models.User{ID: "user-2", Username: "replier"}
	reply, err := svc.AppendReply(ctx, review.ID, replier, "agreed")
	require.NoError(t, err)

	// a third party may not delete
	assert.ErrorIs(t, svc.DeleteReply(ctx, "user-3", review.ID, reply.ID), ErrForbidden)

	// the review owner may
	assert.NoError(t, svc.DeleteReply(ctx, "author-1", review.ID, reply.ID))

	// the author may delete their own
	reply, err = svc.AppendReply(ctx, review.ID, replier, "again")
	require.NoError(t, err)
	assert.NoError(t, svc.DeleteReply(ctx, "user-2", review.ID, reply.ID))

	// absent ids are a no-op
	assert.NoError(t, svc.DeleteReply(ctx, "user-2", review.ID, reply.ID))
}

func TestGetReviewsByUserDecoratesShows(t *testing.T) {
	ctx := context.Background()
	resolver := &stubResolver{shows: map[int64]tmdb.Show{
		100: {ID: 100, Name: "Resolved Show"},
	}}
	svc := newReviewFixture(t, resolver)
	mustCreateReview(t, svc, "author-1")

	reviews, err := svc.GetReviewsByUser(ctx, "author-1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Resolved Show", reviews[0].ShowName)
}

func TestGetReviewsByUserDegradesWithoutUpstream(t *testing.T) {
	ctx := context.Background()
	svc := newReviewFixture(t, &stubResolver{err: errors.New("upstream down")})
	mustCreateReview(t, svc, "author-1")

	// reviews still come back, just undecorated
	reviews, err := svc.GetReviewsByUser(ctx, "author-1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Empty(t, reviews[0].ShowName)
}

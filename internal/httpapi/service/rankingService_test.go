package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"showhub/internal/cache"
	"showhub/internal/httpapi/dto"
	"showhub/internal/httpapi/models"
	"showhub/internal/tmdb"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommunityFavoriteScores(t *testing.T) {
	sample := []models.Rating{
		{UserID: "u1", ShowID: 1, Rating: 3},
		{UserID: "u2", ShowID: 1, Rating: 5},
		{UserID: "u3", ShowID: 2, Rating: 1},
	}

	scores := communityFavoriteScores(sample)

	assert.Equal(t, []dto.ShowScore{
		{ShowID: 1, Score: 4.0},
		{ShowID: 2, Score: 1.0},
	}, scores)
}

func TestCommunityFavoriteScoresEmptySample(t *testing.T) {
	assert.Empty(t, communityFavoriteScores(nil))
	assert.Empty(t, communityFavoriteScores([]models.Rating{}))
}

func TestCommunityFavoriteScoresTiesKeepFirstSeenOrder(t *testing.T) {
	sample := []models.Rating{
		{UserID: "u1", ShowID: 7, Rating: 4},
		{UserID: "u2", ShowID: 9, Rating: 4},
		{UserID: "u3", ShowID: 3, Rating: 4},
	}

	scores := communityFavoriteScores(sample)

	assert.Equal(t, []int64{7, 9, 3}, []int64{scores[0].ShowID, scores[1].ShowID, scores[2].ShowID})
}

func TestMostWatchlistedCounts(t *testing.T) {
	counts := mostWatchlistedCounts([]int64{1, 1, 2})

	assert.Equal(t, []dto.ShowCount{
		{ShowID: 1, Count: 2},
		{ShowID: 2, Count: 1},
	}, counts)
}

func TestMostWatchlistedCountsEmptySample(t *testing.T) {
	assert.Empty(t, mostWatchlistedCounts(nil))
}

func TestSortStableDesc(t *testing.T) {
	items := []dto.ShowCount{
		{ShowID: 1, Count: 1},
		{ShowID: 2, Count: 3},
		{ShowID: 3, Count: 3},
		{ShowID: 4, Count: 2},
	}

	sortStableDesc(items, func(c dto.ShowCount) float64 { return float64(c.Count) })

	assert.Equal(t, []dto.ShowCount{
		{ShowID: 2, Count: 3},
		{ShowID: 3, Count: 3},
		{ShowID: 4, Count: 2},
		{ShowID: 1, Count: 1},
	}, items)
}

// stub repos for the cached ranking paths

type stubRatingSampler struct {
	ratingRepoStub
	sample []models.Rating
	calls  int
}

func (s *stubRatingSampler) Sample(ctx context.Context, limit int) ([]models.Rating, error) {
	s.calls++
	if len(s.sample) > limit {
		return s.sample[:limit], nil
	}
	return s.sample, nil
}

type stubWatchlistSampler struct {
	watchlistRepoStub
	ids   []int64
	calls int
}

func (s *stubWatchlistSampler) SampleShowIDs(ctx context.Context, limit int) ([]int64, error) {
	s.calls++
	if len(s.ids) > limit {
		return s.ids[:limit], nil
	}
	return s.ids, nil
}

type stubResolver struct {
	shows map[int64]tmdb.Show
	err   error
}

func (r *stubResolver) GetShowsByIds(ctx context.Context, ids []int64) ([]tmdb.Show, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]tmdb.Show, 0, len(ids))
	for _, id := range ids {
		if show, ok := r.shows[id]; ok {
			out = append(out, show)
		}
	}
	return out, nil
}

func newTestCache(t *testing.T) *cache.RedisCache {
	t.Helper()
	mr := miniredis.RunT(t)
	return &cache.RedisCache{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
}

func TestCommunityFavoriteScoresCached(t *testing.T) {
	ctx := context.Background()
	ratings := &stubRatingSampler{sample: []models.Rating{
		{UserID: "u1", ShowID: 1, Rating: 5},
	}}
	svc := NewRankingService(ratings, &stubWatchlistSampler{}, &stubResolver{}, newTestCache(t), time.Minute)

	first, err := svc.CommunityFavoriteScores(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, ratings.calls)

	// second read is served from the snapshot
	second, err := svc.CommunityFavoriteScores(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, ratings.calls)
	assert.Equal(t, first, second)
}

func TestRankingCacheFailureFallsBackToRecompute(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	redisCache := &cache.RedisCache{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	mr.Close()

	ratings := &stubRatingSampler{sample: []models.Rating{
		{UserID: "u1", ShowID: 1, Rating: 2},
	}}
	svc := NewRankingService(ratings, &stubWatchlistSampler{}, &stubResolver{}, redisCache, time.Minute)

	scores, err := svc.CommunityFavoriteScores(ctx)
	require.NoError(t, err)
	assert.Equal(t, []dto.ShowScore{{ShowID: 1, Score: 2.0}}, scores)
	assert.Equal(t, 1, ratings.calls)
}

func TestMostWatchlistedShowsResolvesPage(t *testing.T) {
	ctx := context.Background()
	watchlists := &stubWatchlistSampler{ids: []int64{1, 1, 2}}
	resolver := &stubResolver{shows: map[int64]tmdb.Show{
		1: {ID: 1, Name: "Show One"},
		2: {ID: 2, Name: "Show Two"},
	}}
	svc := NewRankingService(&stubRatingSampler{}, watchlists, resolver, newTestCache(t), time.Minute)

	result, err := svc.MostWatchlistedShows(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	require.Len(t, result.Shows, 2)
	assert.Equal(t, "Show One", result.Shows[0].Name)

	// pages past the ranking are empty, not an error
	empty, err := svc.MostWatchlistedShows(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, empty.Shows)
}

func TestRankingResolutionDegradesOnUpstreamFailure(t *testing.T) {
	ctx := context.Background()
	ratings := &stubRatingSampler{sample: []models.Rating{
		{UserID: "u1", ShowID: 1, Rating: 5},
	}}
	resolver := &stubResolver{err: errors.New("upstream down")}
	svc := NewRankingService(ratings, &stubWatchlistSampler{}, resolver, newTestCache(t), time.Minute)

	result, err := svc.CommunityFavoriteShows(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, result.Shows)
}

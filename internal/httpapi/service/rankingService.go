package service

import (
	"context"
	"encoding/json"
	"time"

	"showhub/internal/cache"
	"showhub/internal/httpapi/dto"
	"showhub/internal/httpapi/models"
	"showhub/internal/httpapi/repository"
	"showhub/internal/logger"
	"showhub/internal/tmdb"
)

const (
	// Sampling caps keep the rankings a bounded scan rather than a full-table
	// aggregate. Past these, use a maintained materialized aggregate instead.
	ratingSampleCap    = 1000
	watchlistSampleCap = 2000

	rankingPageSize = 20
)

// ShowResolver resolves ranked show ids to catalog details. Satisfied by
// *tmdb.Client.
type ShowResolver interface {
	GetShowsByIds(ctx context.Context, ids []int64) ([]tmdb.Show, error)
}

type RankingService interface {
	// CommunityFavoriteScores ranks shows by mean rating over a bounded
	// sample of recent ratings, highest first.
	CommunityFavoriteScores(ctx context.Context) ([]dto.ShowScore, error)
	// MostWatchlistedCounts ranks shows by watchlist membership over a
	// bounded sample of recent watchlist rows, highest first.
	MostWatchlistedCounts(ctx context.Context) ([]dto.ShowCount, error)
	// CommunityFavoriteShows resolves a page of the favorites ranking to
	// show details; unresolvable shows are omitted.
	CommunityFavoriteShows(ctx context.Context, page int) (*dto.RankedShowsResponse, error)
	// MostWatchlistedShows resolves a page of the watchlist ranking.
	MostWatchlistedShows(ctx context.Context, page int) (*dto.RankedShowsResponse, error)
}

type rankingService struct {
	ratingRepo    repository.RatingRepository
	watchlistRepo repository.WatchlistRepository
	resolver      ShowResolver
	cache         *cache.RedisCache
	cacheTTL      time.Duration
}

func NewRankingService(
	ratingRepo repository.RatingRepository,
	watchlistRepo repository.WatchlistRepository,
	resolver ShowResolver,
	redisCache *cache.RedisCache,
	cacheTTL time.Duration,
) RankingService {
	return &rankingService{
		ratingRepo:    ratingRepo,
		watchlistRepo: watchlistRepo,
		resolver:      resolver,
		cache:         redisCache,
		cacheTTL:      cacheTTL,
	}
}

// communityFavoriteScores partitions the sample by show, scores each show by
// its mean rating and sorts descending. Shows absent from the sample are
// absent from the output. Ties keep first-seen order; callers must not rely
// on any particular order among equal scores.
func communityFavoriteScores(sample []models.Rating) []dto.ShowScore {
	type tally struct {
		total int
		count int
	}
	tallies := make(map[int64]*tally)
	order := make([]int64, 0)

	for _, r := range sample {
		t, ok := tallies[r.ShowID]
		if !ok {
			t = &tally{}
			tallies[r.ShowID] = t
			order = append(order, r.ShowID)
		}
		t.total += r.Rating
		t.count++
	}

	scores := make([]dto.ShowScore, 0, len(order))
	for _, showID := range order {
		t := tallies[showID]
		scores = append(scores, dto.ShowScore{
			ShowID: showID,
			Score:  float64(t.total) / float64(t.count),
		})
	}

	sortStableDesc(scores, func(s dto.ShowScore) float64 { return s.Score })
	return scores
}

// mostWatchlistedCounts partitions the sample by show and sorts by
// occurrence count descending, first-seen order among ties.
func mostWatchlistedCounts(sample []int64) []dto.ShowCount {
	counts := make(map[int64]int)
	order := make([]int64, 0)

	for _, showID := range sample {
		if _, ok := counts[showID]; !ok {
			order = append(order, showID)
		}
		counts[showID]++
	}

	result := make([]dto.ShowCount, 0, len(order))
	for _, showID := range order {
		result = append(result, dto.ShowCount{
			ShowID: showID,
			Count:  counts[showID],
		})
	}

	sortStableDesc(result, func(c dto.ShowCount) float64 { return float64(c.Count) })
	return result
}

// sortStableDesc is an insertion sort, stable by construction. Ranking
// samples are small and mostly pre-grouped, so this stays cheap.
func sortStableDesc[T any](items []T, key func(T) float64) {
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && key(items[j-1]) < key(items[j]); j-- {
			items[j-1], items[j] = items[j], items[j-1]
		}
	}
}

func (s *rankingService) CommunityFavoriteScores(ctx context.Context) ([]dto.ShowScore, error) {
	var cached []dto.ShowScore
	if s.tryCache(ctx, cache.KeyCommunityFavorites, &cached) {
		return cached, nil
	}

	sample, err := s.ratingRepo.Sample(ctx, ratingSampleCap)
	if err != nil {
		return nil, err
	}

	scores := communityFavoriteScores(sample)
	s.putCache(ctx, cache.KeyCommunityFavorites, scores)
	return scores, nil
}

func (s *rankingService) MostWatchlistedCounts(ctx context.Context) ([]dto.ShowCount, error) {
	var cached []dto.ShowCount
	if s.tryCache(ctx, cache.KeyMostWatchlisted, &cached) {
		return cached, nil
	}

	sample, err := s.watchlistRepo.SampleShowIDs(ctx, watchlistSampleCap)
	if err != nil {
		return nil, err
	}

	counts := mostWatchlistedCounts(sample)
	s.putCache(ctx, cache.KeyMostWatchlisted, counts)
	return counts, nil
}

func (s *rankingService) CommunityFavoriteShows(ctx context.Context, page int) (*dto.RankedShowsResponse, error) {
	scores, err := s.CommunityFavoriteScores(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(scores))
	for _, score := range scores {
		ids = append(ids, score.ShowID)
	}
	return s.resolvePage(ctx, ids, page)
}

func (s *rankingService) MostWatchlistedShows(ctx context.Context, page int) (*dto.RankedShowsResponse, error) {
	counts, err := s.MostWatchlistedCounts(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(counts))
	for _, count := range counts {
		ids = append(ids, count.ShowID)
	}
	return s.resolvePage(ctx, ids, page)
}

// resolvePage slices one page out of the ranked ids and resolves it through
// the metadata client. Upstream failures degrade to fewer (or zero) shows,
// never an error: the ranking view renders what it can.
func (s *rankingService) resolvePage(ctx context.Context, ids []int64, page int) (*dto.RankedShowsResponse, error) {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * rankingPageSize
	if start >= len(ids) {
		return &dto.RankedShowsResponse{Shows: []tmdb.Show{}, Page: page}, nil
	}
	end := start + rankingPageSize
	if end > len(ids) {
		end = len(ids)
	}

	shows, err := s.resolver.GetShowsByIds(ctx, ids[start:end])
	if err != nil {
		logger.Warn("ranking resolution degraded", "err", err)
		shows = []tmdb.Show{}
	}
	return &dto.RankedShowsResponse{Shows: shows, Page: page}, nil
}

// tryCache loads a cached ranking snapshot. Any cache failure is treated as
// a miss; rankings always have the direct recompute to fall back on.
func (s *rankingService) tryCache(ctx context.Context, key string, target interface{}) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		logger.Warn("discarding malformed ranking cache entry", "key", key, "err", err)
		return false
	}
	return true
}

func (s *rankingService) putCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
		logger.Warn("failed to cache ranking snapshot", "key", key, "err", err)
	}
}

package service

import (
	"context"
	"testing"
	"time"

	"showhub/internal/httpapi/models"
	"showhub/internal/tmdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type watchlistWithItems struct {
	watchlistRepoStub
	items []models.WatchlistItem
}

func (w *watchlistWithItems) List(ctx context.Context, userID string) ([]models.WatchlistItem, error) {
	return w.items, nil
}

type stubDetailsResolver struct {
	details map[int64]*tmdb.ShowDetails
}

func (r *stubDetailsResolver) GetShowDetails(ctx context.Context, showID int64) (*tmdb.ShowDetails, error) {
	return r.details[showID], nil
}

func newNotificationFixture(items []models.WatchlistItem, details map[int64]*tmdb.ShowDetails, now time.Time) *notificationService {
	svc := NewNotificationService(
		&watchlistWithItems{items: items},
		&stubDetailsResolver{details: details},
		NewMemoryNotifiedLog(),
	).(*notificationService)
	svc.now = func() time.Time { return now }
	return svc
}

func showAiring(id int64, name, airDate string, season, episode int) *tmdb.ShowDetails {
	return &tmdb.ShowDetails{
		Show: tmdb.Show{ID: id, Name: name},
		NextEpisodeToAir: &tmdb.Episode{
			Name:          "Next",
			AirDate:       airDate,
			SeasonNumber:  season,
			EpisodeNumber: episode,
		},
	}
}

func TestUpcomingEpisodesWithinWindow(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc := newNotificationFixture(
		[]models.WatchlistItem{{UserID: "u1", ShowID: 1}, {UserID: "u1", ShowID: 2}, {UserID: "u1", ShowID: 3}},
		map[int64]*tmdb.ShowDetails{
			1: showAiring(1, "Today Show", "2026-09-01", 2, 5),
			2: showAiring(2, "Tomorrow Show", "2026-09-02", 1, 1),
			3: showAiring(3, "Far Future Show", "2026-10-01", 1, 1),
		},
		now,
	)

	alerts, err := svc.UpcomingEpisodes(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "Today Show", alerts[0].ShowName)
	assert.Equal(t, "Tomorrow Show", alerts[1].ShowName)
}

func TestUpcomingEpisodesDeduplicated(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc := newNotificationFixture(
		[]models.WatchlistItem{{UserID: "u1", ShowID: 1}},
		map[int64]*tmdb.ShowDetails{1: showAiring(1, "Today Show", "2026-09-01", 2, 5)},
		now,
	)

	alerts, err := svc.UpcomingEpisodes(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, alerts, 1)

	// same episode never alerts twice
	alerts, err = svc.UpcomingEpisodes(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestUpcomingEpisodesNewEpisodeAlertsAgain(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	details := map[int64]*tmdb.ShowDetails{1: showAiring(1, "Weekly Show", "2026-09-01", 2, 5)}
	svc := newNotificationFixture(
		[]models.WatchlistItem{{UserID: "u1", ShowID: 1}},
		details,
		now,
	)

	alerts, err := svc.UpcomingEpisodes(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, alerts, 1)

	// the next episode gets its own alert
	details[1] = showAiring(1, "Weekly Show", "2026-09-01", 2, 6)
	alerts, err = svc.UpcomingEpisodes(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, alerts, 1)
	assert.Equal(t, 6, alerts[0].EpisodeNumber)
}

func TestUpcomingEpisodesSkipsMissingMetadata(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	svc := newNotificationFixture(
		[]models.WatchlistItem{{UserID: "u1", ShowID: 1}, {UserID: "u1", ShowID: 2}},
		map[int64]*tmdb.ShowDetails{
			// show 1 has no metadata at all; show 2 has no scheduled episode
			2: {Show: tmdb.Show{ID: 2, Name: "Ended Show"}},
		},
		now,
	)

	alerts, err := svc.UpcomingEpisodes(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestMemoryNotifiedLogIsPerUser(t *testing.T) {
	log := NewMemoryNotifiedLog()
	ctx := context.Background()

	fresh, err := log.MarkIfNew(ctx, "u1", "1_S2E5")
	require.NoError(t, err)
	assert.True(t, fresh)

	fresh, err = log.MarkIfNew(ctx, "u1", "1_S2E5")
	require.NoError(t, err)
	assert.False(t, fresh)

	// a different user still gets their alert
	fresh, err = log.MarkIfNew(ctx, "u2", "1_S2E5")
	require.NoError(t, err)
	assert.True(t, fresh)
}

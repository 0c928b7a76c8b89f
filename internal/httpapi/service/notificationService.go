package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"showhub/internal/httpapi/repository"
	"showhub/internal/tmdb"
)

// airingWindow is how far ahead an episode may air and still count as
// "airing soon".
const airingWindow = 24 * time.Hour

// EpisodeAlert is one upcoming-episode notice for a watchlisted show.
type EpisodeAlert struct {
	ShowID        int64   `json:"show_id"`
	ShowName      string  `json:"show_name"`
	EpisodeName   string  `json:"episode_name"`
	SeasonNumber  int     `json:"season_number"`
	EpisodeNumber int     `json:"episode_number"`
	AirDate       string  `json:"air_date"`
	PosterPath    *string `json:"poster_path,omitempty"`
}

// NotifiedLog records which episodes a user has already been alerted
// about, one entry per (user, show, season, episode).
type NotifiedLog interface {
	// MarkIfNew records the key and reports whether it was absent before.
	MarkIfNew(ctx context.Context, userID, key string) (bool, error)
}

// MemoryNotifiedLog is a process-lifetime NotifiedLog. It starts empty,
// so a restart re-alerts once per still-upcoming episode.
type MemoryNotifiedLog struct {
	mu   sync.Mutex
	seen map[string]bool
}

func NewMemoryNotifiedLog() *MemoryNotifiedLog {
	return &MemoryNotifiedLog{seen: make(map[string]bool)}
}

func (l *MemoryNotifiedLog) MarkIfNew(_ context.Context, userID, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	full := userID + ":" + key
	if l.seen[full] {
		return false, nil
	}
	l.seen[full] = true
	return true, nil
}

// DetailsResolver fetches the full detail payload for one show.
type DetailsResolver interface {
	GetShowDetails(ctx context.Context, showID int64) (*tmdb.ShowDetails, error)
}

type NotificationService interface {
	// UpcomingEpisodes scans the user's watchlist and returns one alert per
	// episode airing within the next day that the user has not been alerted
	// about yet.
	UpcomingEpisodes(ctx context.Context, userID string) ([]EpisodeAlert, error)
}

type notificationService struct {
	watchlistRepo repository.WatchlistRepository
	resolver      DetailsResolver
	log           NotifiedLog
	now           func() time.Time
}

func NewNotificationService(watchlistRepo repository.WatchlistRepository, resolver DetailsResolver, log NotifiedLog) NotificationService {
	return &notificationService{
		watchlistRepo: watchlistRepo,
		resolver:      resolver,
		log:           log,
		now:           time.Now,
	}
}

func (s *notificationService) UpcomingEpisodes(ctx context.Context, userID string) ([]EpisodeAlert, error) {
	items, err := s.watchlistRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	alerts := []EpisodeAlert{}
	for _, item := range items {
		details, err := s.resolver.GetShowDetails(ctx, item.ShowID)
		if err != nil || details == nil || details.NextEpisodeToAir == nil {
			// Metadata gaps never fail the scan, the show is skipped.
			continue
		}
		ep := details.NextEpisodeToAir
		if !s.airsSoon(ep.AirDate) {
			continue
		}

		key := episodeKey(item.ShowID, ep.SeasonNumber, ep.EpisodeNumber)
		fresh, err := s.log.MarkIfNew(ctx, userID, key)
		if err != nil {
			return nil, err
		}
		if !fresh {
			continue
		}

		alerts = append(alerts, EpisodeAlert{
			ShowID:        item.ShowID,
			ShowName:      details.Name,
			EpisodeName:   ep.Name,
			SeasonNumber:  ep.SeasonNumber,
			EpisodeNumber: ep.EpisodeNumber,
			AirDate:       ep.AirDate,
			PosterPath:    details.PosterPath,
		})
	}
	return alerts, nil
}

// airsSoon reports whether airDate falls between now and now+airingWindow.
// Air dates are calendar days, so "today" always qualifies.
func (s *notificationService) airsSoon(airDate string) bool {
	aired, err := time.Parse("2006-01-02", airDate)
	if err != nil {
		return false
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !aired.Before(today) && aired.Sub(today) <= airingWindow
}

func episodeKey(showID int64, season, episode int) string {
	return fmt.Sprintf("%d_S%dE%d", showID, season, episode)
}

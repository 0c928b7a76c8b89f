package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"showhub/internal/logger"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"

	// Rate limiting: TMDB allows ~50 requests per second; stay well under
	rateLimit = 20
	rateBurst = 40

	// Retry configuration
	maxRetries   = 3
	initialDelay = 1 * time.Second
	maxDelay     = 32 * time.Second

	// Concurrency cap for bulk id resolution
	maxConcurrentFetches = 8
)

// ErrUpstreamUnavailable reports that TMDB could not be reached after
// retries. Read paths that aggregate over many shows swallow it and omit the
// missing entries instead of failing the whole view.
var ErrUpstreamUnavailable = errors.New("metadata upstream unavailable")

// Client handles TMDB API requests with rate limiting and retry logic.
type Client struct {
	baseURL     string
	apiKey      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

// NewClient creates a new TMDB API client.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// DiscoverFilters narrows a discover query. Zero values mean "no filter".
type DiscoverFilters struct {
	WithGenres       string // comma-joined genre ids, ANDed
	WithoutGenres    string // comma-joined genre ids to subtract
	FirstAirDateYear string
	Status           string
	Language         string
	MinVoteCount     int
}

// GetShowDetails fetches full details for one show. Fails soft: a missing
// show or an exhausted upstream yields (nil, nil) so aggregate callers can
// simply omit the entry.
func (c *Client) GetShowDetails(ctx context.Context, showID int64) (*ShowDetails, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,external_ids")

	var raw rawShowDetails
	err := c.doRequest(ctx, fmt.Sprintf("/tv/%d", showID), params, &raw)
	if err != nil {
		if errors.Is(err, errNotFound) || errors.Is(err, ErrUpstreamUnavailable) {
			logger.Warn("show details unavailable", "show_id", showID, "err", err)
			return nil, nil
		}
		return nil, err
	}
	return raw.toShowDetails(), nil
}

// GetShowsByIds resolves many show ids concurrently and reassembles the
// results in input order. Shows that cannot be resolved are omitted.
func (c *Client) GetShowsByIds(ctx context.Context, ids []int64) ([]Show, error) {
	if len(ids) == 0 {
		return []Show{}, nil
	}

	results := make([]*ShowDetails, len(ids))
	sem := make(chan struct{}, maxConcurrentFetches)
	var wg sync.WaitGroup

	for i, id := range ids {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			details, err := c.GetShowDetails(ctx, id)
			if err != nil {
				logger.Warn("failed to resolve show", "show_id", id, "err", err)
				return
			}
			results[i] = details
		}(i, id)
	}
	wg.Wait()

	shows := make([]Show, 0, len(ids))
	for _, details := range results {
		if details != nil {
			shows = append(shows, details.Show)
		}
	}
	return shows, nil
}

// SearchShows searches the catalog by free text.
func (c *Client) SearchShows(ctx context.Context, query string) ([]Show, error) {
	if query == "" {
		return []Show{}, nil
	}
	params := url.Values{}
	params.Set("query", query)

	var resp pagedShowsResponse
	if err := c.doRequest(ctx, "/search/tv", params, &resp); err != nil {
		return nil, err
	}
	return mapShows(resp.Results), nil
}

// DiscoverShows runs a filtered, sorted catalog query.
func (c *Client) DiscoverShows(ctx context.Context, page int, sortBy string, filters DiscoverFilters) ([]Show, error) {
	if page < 1 {
		page = 1
	}
	if sortBy == "" {
		sortBy = "popularity.desc"
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("sort_by", sortBy)

	// Vote-average sorts need a floor to filter out junk entries
	if sortBy == "vote_average.desc" || sortBy == "vote_average.asc" {
		if filters.MinVoteCount == 0 {
			filters.MinVoteCount = 300
		}
	}
	if filters.MinVoteCount > 0 {
		params.Set("vote_count.gte", strconv.Itoa(filters.MinVoteCount))
	}
	if filters.WithGenres != "" {
		params.Set("with_genres", filters.WithGenres)
	}
	if filters.WithoutGenres != "" {
		params.Set("without_genres", filters.WithoutGenres)
	}
	if filters.FirstAirDateYear != "" {
		params.Set("first_air_date_year", filters.FirstAirDateYear)
	}
	if filters.Status != "" {
		params.Set("with_status", filters.Status)
	}
	if filters.Language != "" {
		params.Set("with_original_language", filters.Language)
	}

	var resp pagedShowsResponse
	if err := c.doRequest(ctx, "/discover/tv", params, &resp); err != nil {
		return nil, err
	}
	return mapShows(resp.Results), nil
}

// GetTrendingShows fetches this week's trending shows.
func (c *Client) GetTrendingShows(ctx context.Context, page int) ([]Show, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var resp pagedShowsResponse
	if err := c.doRequest(ctx, "/trending/tv/week", params, &resp); err != nil {
		return nil, err
	}
	return mapShows(resp.Results), nil
}

// GetTopRatedShows fetches the externally top-rated catalog page.
func (c *Client) GetTopRatedShows(ctx context.Context, page int) ([]Show, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var resp pagedShowsResponse
	if err := c.doRequest(ctx, "/tv/top_rated", params, &resp); err != nil {
		return nil, err
	}
	return mapShows(resp.Results), nil
}

func mapShows(raws []rawShow) []Show {
	shows := make([]Show, 0, len(raws))
	for _, r := range raws {
		shows = append(shows, r.toShow())
	}
	return shows
}

var errNotFound = errors.New("not found")

// doRequest performs an HTTP request with rate limiting and retry logic.
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	params.Set("language", "en-US")
	params.Set("include_adult", "false")

	fullURL := c.baseURL + endpoint + "?" + params.Encode()

	var lastErr error
	delay := initialDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if sleepErr := sleepWithContext(ctx, delay); sleepErr != nil {
				return sleepErr
			}
			delay = nextDelay(delay)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if readErr != nil {
				return fmt.Errorf("failed to read response: %w", readErr)
			}
			if err := json.Unmarshal(body, result); err != nil {
				return fmt.Errorf("failed to decode response: %w", err)
			}
			return nil

		case resp.StatusCode == http.StatusNotFound:
			return errNotFound

		case resp.StatusCode == http.StatusTooManyRequests:
			retryAfter := delay
			if s := resp.Header.Get("Retry-After"); s != "" {
				if seconds, err := strconv.Atoi(s); err == nil {
					retryAfter = time.Duration(seconds) * time.Second
				}
			}
			lastErr = fmt.Errorf("rate limited by upstream")
			if sleepErr := sleepWithContext(ctx, retryAfter); sleepErr != nil {
				return sleepErr
			}
			delay = nextDelay(delay)

		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("upstream error: status %d", resp.StatusCode)
			if sleepErr := sleepWithContext(ctx, delay); sleepErr != nil {
				return sleepErr
			}
			delay = nextDelay(delay)

		default:
			return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
		}
	}

	return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, lastErr)
}

func nextDelay(current time.Duration) time.Duration {
	next := current * 2
	if next > maxDelay {
		return maxDelay
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.themoviedb.org"
const defaultCacheTTL = 24 * time.Hour

// ErrNotFound is returned when a title doesn't exist in TMDB.
var ErrNotFound = errors.New("not found in tmdb")

type seasonKey struct {
	id     int64
	season int
}

// Client is a TMDB API client. Lookups by ID are cached.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
	ttl        time.Duration

	movies  *cache[int64, *Movie]
	shows   *cache[int64, *TV]
	seasons *cache[seasonKey, *Season]
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithCacheTTL sets the cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.ttl = ttl
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLanguage requests localized titles, e.g. "en-US".
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.language = lang
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		ttl: defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.movies = newCache[int64, *Movie](c.ttl)
	c.shows = newCache[int64, *TV](c.ttl)
	c.seasons = newCache[seasonKey, *Season](c.ttl)
	return c
}

// GetMovie fetches movie metadata by TMDB ID.
func (c *Client) GetMovie(ctx context.Context, tmdbID int64) (*Movie, error) {
	if movie, ok := c.movies.get(tmdbID); ok {
		return movie, nil
	}
	var movie Movie
	if err := c.get(ctx, fmt.Sprintf("/3/movie/%d", tmdbID), nil, &movie); err != nil {
		return nil, err
	}
	c.movies.set(tmdbID, &movie)
	return &movie, nil
}

// GetTV fetches series metadata by TMDB ID.
func (c *Client) GetTV(ctx context.Context, tmdbID int64) (*TV, error) {
	if tv, ok := c.shows.get(tmdbID); ok {
		return tv, nil
	}
	var tv TV
	if err := c.get(ctx, fmt.Sprintf("/3/tv/%d", tmdbID), nil, &tv); err != nil {
		return nil, err
	}
	c.shows.set(tmdbID, &tv)
	return &tv, nil
}

// GetSeason fetches one season with its episode list.
func (c *Client) GetSeason(ctx context.Context, tmdbID int64, season int) (*Season, error) {
	key := seasonKey{tmdbID, season}
	if s, ok := c.seasons.get(key); ok {
		return s, nil
	}
	var s Season
	if err := c.get(ctx, fmt.Sprintf("/3/tv/%d/season/%d", tmdbID, season), nil, &s); err != nil {
		return nil, err
	}
	c.seasons.set(key, &s)
	return &s, nil
}

// SearchMovie searches movies by title, narrowed by year when non-zero.
func (c *Client) SearchMovie(ctx context.Context, query string, year int) ([]SearchResult, error) {
	params := url.Values{"query": {query}}
	if year > 0 {
		params.Set("year", strconv.Itoa(year))
	}
	var resp searchResponse
	if err := c.get(ctx, "/3/search/movie", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// SearchTV searches series by name, narrowed by first-air year when non-zero.
func (c *Client) SearchTV(ctx context.Context, query string, year int) ([]SearchResult, error) {
	params := url.Values{"query": {query}}
	if year > 0 {
		params.Set("first_air_date_year", strconv.Itoa(year))
	}
	var resp searchResponse
	if err := c.get(ctx, "/3/search/tv", params, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB API error: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

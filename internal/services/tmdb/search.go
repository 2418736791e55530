package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"github.com/amaumene/gowatcharr/internal/models"
	"github.com/cenkalti/backoff/v4"
)

const maxSearchResults = 20

// SearchResult is a single catalog entry from TMDB search/discovery
type SearchResult struct {
	TMDBID       int                `json:"tmdb_id"`
	Title        string             `json:"title"`
	ContentType  models.ContentType `json:"content_type"`
	Overview     string             `json:"overview"`
	ReleaseDate  string             `json:"release_date"`
	PosterPath   string             `json:"poster_path"`
	BackdropPath string             `json:"backdrop_path"`
	Rating       float64            `json:"tmdb_rating"`
	Popularity   float64            `json:"popularity"`
}

type listPayload struct {
	Results []listEntry `json:"results"`
}

type listEntry struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	Popularity   float64 `json:"popularity"`
}

// doRequestWithRetry wraps doRequest in an exponential backoff. Used for the
// interactive search/discovery endpoints only; the enrichment lookup during
// content creation stays single-shot.
func (c *Client) doRequestWithRetry(ctx context.Context, path string, params url.Values, result interface{}) error {
	op := func() error {
		if err := c.doRequest(ctx, path, params, result); err != nil {
			if err == ErrNotConfigured {
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
	return backoff.Retry(op, bo)
}

// Search searches TMDB for movies and/or TV shows. An empty contentType
// searches both. Results are merged, sorted by popularity and capped at 20.
func (c *Client) Search(ctx context.Context, query string, contentType models.ContentType) ([]SearchResult, error) {
	cacheKey := fmt.Sprintf("search/%s/%s", contentType, query)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]SearchResult), nil
	}

	var results []SearchResult

	if contentType == "" || contentType == models.ContentTypeMovie {
		movies, err := c.searchOne(ctx, "/search/movie", query, models.ContentTypeMovie)
		if err != nil {
			return nil, err
		}
		results = append(results, movies...)
	}

	if contentType == "" || contentType == models.ContentTypeTV {
		shows, err := c.searchOne(ctx, "/search/tv", query, models.ContentTypeTV)
		if err != nil {
			return nil, err
		}
		results = append(results, shows...)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Popularity > results[j].Popularity
	})
	if len(results) > maxSearchResults {
		results = results[:maxSearchResults]
	}

	c.cache.Set(cacheKey, results, cacheTTL)
	return results, nil
}

func (c *Client) searchOne(ctx context.Context, endpoint, query string, contentType models.ContentType) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)

	var payload listPayload
	if err := c.doRequestWithRetry(ctx, endpoint, params, &payload); err != nil {
		return nil, fmt.Errorf("tmdb search failed: %w", err)
	}

	return c.convertEntries(payload.Results, contentType), nil
}

// Trending fetches trending content. contentType may be empty for both kinds;
// timeWindow is "day" or "week".
func (c *Client) Trending(ctx context.Context, contentType models.ContentType, timeWindow string) ([]SearchResult, error) {
	kind := "all"
	if contentType != "" {
		kind = string(contentType)
	}
	cacheKey := fmt.Sprintf("trending/%s/%s", kind, timeWindow)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]SearchResult), nil
	}

	var payload listPayload
	endpoint := fmt.Sprintf("/trending/%s/%s", kind, timeWindow)
	if err := c.doRequestWithRetry(ctx, endpoint, nil, &payload); err != nil {
		return nil, fmt.Errorf("tmdb trending failed: %w", err)
	}

	results := c.convertEntries(payload.Results, "")
	c.cache.Set(cacheKey, results, cacheTTL)
	return results, nil
}

// Popular fetches popular movies or TV shows
func (c *Client) Popular(ctx context.Context, contentType models.ContentType) ([]SearchResult, error) {
	cacheKey := fmt.Sprintf("popular/%s", contentType)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]SearchResult), nil
	}

	var payload listPayload
	endpoint := fmt.Sprintf("/%s/popular", contentType)
	if err := c.doRequestWithRetry(ctx, endpoint, nil, &payload); err != nil {
		return nil, fmt.Errorf("tmdb popular failed: %w", err)
	}

	results := c.convertEntries(payload.Results, contentType)
	c.cache.Set(cacheKey, results, cacheTTL)
	return results, nil
}

// convertEntries maps raw TMDB list entries to search results. When
// contentType is empty the kind is inferred from which title field is set
// (movies carry "title", TV shows carry "name").
func (c *Client) convertEntries(entries []listEntry, contentType models.ContentType) []SearchResult {
	results := make([]SearchResult, 0, len(entries))
	for _, entry := range entries {
		kind := contentType
		if kind == "" {
			if entry.Title != "" {
				kind = models.ContentTypeMovie
			} else {
				kind = models.ContentTypeTV
			}
		}

		title := entry.Title
		releaseDate := entry.ReleaseDate
		if kind == models.ContentTypeTV {
			title = entry.Name
			releaseDate = entry.FirstAirDate
		}

		results = append(results, SearchResult{
			TMDBID:       entry.ID,
			Title:        title,
			ContentType:  kind,
			Overview:     entry.Overview,
			ReleaseDate:  releaseDate,
			PosterPath:   c.imageURL(entry.PosterPath),
			BackdropPath: c.imageURL(entry.BackdropPath),
			Rating:       entry.VoteAverage,
			Popularity:   entry.Popularity,
		})
	}
	return results
}

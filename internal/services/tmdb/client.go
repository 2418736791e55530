package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/amaumene/gowatcharr/internal/config"
	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p/w500"

	cacheTTL      = time.Hour
	cacheInterval = 10 * time.Minute
)

// ErrNotConfigured indicates no TMDB API key is set. Callers treat this like
// any other provider failure: skip enrichment, never fail the operation.
var ErrNotConfigured = errors.New("tmdb api key not configured")

// Client handles communication with the TMDB API
type Client struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	httpClient   *http.Client
	cache        *gocache.Cache
	logger       *logrus.Logger
}

// NewClient creates a new TMDB API client. The client is usable without an
// API key; every call then returns ErrNotConfigured.
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		baseURL:      defaultBaseURL,
		imageBaseURL: defaultImageBaseURL,
		apiKey:       cfg.TMDBAPIKey,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		cache:        gocache.New(cacheTTL, cacheInterval),
		logger:       logger,
	}
}

// Configured reports whether an API key is available
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// doRequest performs a single GET request against the TMDB API
func (c *Client) doRequest(ctx context.Context, path string, params url.Values, result interface{}) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	apiURL, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("invalid tmdb URL: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	apiURL.RawQuery = params.Encode()

	c.logger.WithFields(logrus.Fields{
		"path": path,
	}).Debug("Making TMDB API request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("tmdb API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to parse tmdb response: %w", err)
	}

	return nil
}

// imageURL prefixes a TMDB image path with the image CDN base URL
func (c *Client) imageURL(path string) string {
	if path == "" {
		return ""
	}
	return c.imageBaseURL + path
}

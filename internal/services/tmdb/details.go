package tmdb

import (
	"context"
	"fmt"
	"time"

	"github.com/amaumene/gowatcharr/internal/models"
)

// Details is the canonical metadata payload for a movie or TV show
type Details struct {
	TMDBID       int
	Title        string
	ContentType  models.ContentType
	Overview     string
	ReleaseDate  *time.Time
	Runtime      *int
	PosterPath   string
	BackdropPath string
	Rating       *float64

	Genres              []string
	Cast                []string // top 10 billed
	Director            string
	ProductionCompanies []string
	Countries           []string
	Languages           []string

	// TV only
	NumberOfSeasons  *int
	NumberOfEpisodes *int
	EpisodeRunTime   []int
}

// detailsPayload covers both the movie and tv detail responses
type detailsPayload struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	Runtime      *int    `json:"runtime"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`

	Genres              []namedEntry `json:"genres"`
	ProductionCompanies []namedEntry `json:"production_companies"`
	ProductionCountries []namedEntry `json:"production_countries"`
	SpokenLanguages     []struct {
		EnglishName string `json:"english_name"`
	} `json:"spoken_languages"`

	NumberOfSeasons  *int  `json:"number_of_seasons"`
	NumberOfEpisodes *int  `json:"number_of_episodes"`
	EpisodeRunTime   []int `json:"episode_run_time"`
}

type namedEntry struct {
	Name string `json:"name"`
}

type creditsPayload struct {
	Cast []namedEntry `json:"cast"`
	Crew []struct {
		Name string `json:"name"`
		Job  string `json:"job"`
	} `json:"crew"`
}

// GetDetails fetches canonical metadata for a TMDB id. This is a single
// attempt with no retry; any failure should degrade to "no enrichment" at
// the caller. Responses are cached.
func (c *Client) GetDetails(ctx context.Context, tmdbID int, contentType models.ContentType) (*Details, error) {
	cacheKey := fmt.Sprintf("details/%s/%d", contentType, tmdbID)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.(*Details), nil
	}

	endpoint := fmt.Sprintf("/movie/%d", tmdbID)
	if contentType == models.ContentTypeTV {
		endpoint = fmt.Sprintf("/tv/%d", tmdbID)
	}

	var payload detailsPayload
	if err := c.doRequest(ctx, endpoint, nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to get details: %w", err)
	}

	details := c.convertDetails(&payload, contentType)

	// Credits are best-effort: details without cast are still useful
	var credits creditsPayload
	if err := c.doRequest(ctx, endpoint+"/credits", nil, &credits); err != nil {
		c.logger.WithError(err).Debug("Failed to get TMDB credits")
	} else {
		for i, member := range credits.Cast {
			if i >= 10 {
				break
			}
			details.Cast = append(details.Cast, member.Name)
		}
		for _, member := range credits.Crew {
			if member.Job == "Director" {
				details.Director = member.Name
				break
			}
		}
	}

	c.cache.Set(cacheKey, details, cacheTTL)
	return details, nil
}

func (c *Client) convertDetails(payload *detailsPayload, contentType models.ContentType) *Details {
	details := &Details{
		TMDBID:       payload.ID,
		Title:        payload.Title,
		ContentType:  contentType,
		Overview:     payload.Overview,
		Runtime:      payload.Runtime,
		PosterPath:   c.imageURL(payload.PosterPath),
		BackdropPath: c.imageURL(payload.BackdropPath),
	}

	if contentType == models.ContentTypeTV {
		details.Title = payload.Name
		details.NumberOfSeasons = payload.NumberOfSeasons
		details.NumberOfEpisodes = payload.NumberOfEpisodes
		details.EpisodeRunTime = payload.EpisodeRunTime
	}

	rawDate := payload.ReleaseDate
	if contentType == models.ContentTypeTV {
		rawDate = payload.FirstAirDate
	}
	if rawDate != "" {
		if parsed, err := time.Parse("2006-01-02", rawDate); err == nil {
			details.ReleaseDate = &parsed
		}
	}

	if payload.VoteAverage > 0 {
		rating := payload.VoteAverage
		details.Rating = &rating
	}

	for _, genre := range payload.Genres {
		details.Genres = append(details.Genres, genre.Name)
	}
	for _, company := range payload.ProductionCompanies {
		details.ProductionCompanies = append(details.ProductionCompanies, company.Name)
	}
	for _, country := range payload.ProductionCountries {
		details.Countries = append(details.Countries, country.Name)
	}
	for _, lang := range payload.SpokenLanguages {
		details.Languages = append(details.Languages, lang.EnglishName)
	}

	return details
}

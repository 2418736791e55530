package controllers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/amaumene/gowatcharr/internal/models"
	"github.com/amaumene/gowatcharr/internal/services/tmdb"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
)

const (
	maxListLimit    = 1000
	maxSimilarLimit = 50
	maxTitleLength  = 500

	titleSearchLimit = 20

	// Levenshtein distance at or below which two titles are considered
	// near-duplicates
	nearDuplicateDistance = 2
)

// ContentController handles business logic for the content watchlist
type ContentController struct {
	db         *models.Database
	tmdbClient *tmdb.Client
	logger     *logrus.Logger
}

// NewContentController creates a new content controller
func NewContentController(db *models.Database, tmdbClient *tmdb.Client, logger *logrus.Logger) *ContentController {
	return &ContentController{
		db:         db,
		tmdbClient: tmdbClient,
		logger:     logger,
	}
}

// ContentListInput holds the filters for listing content
type ContentListInput struct {
	ContentType models.ContentType
	Status      models.Status
	Genre       string
	Skip        int
	Limit       int
}

// Validate checks ranges and applies the default limit
func (in *ContentListInput) Validate() error {
	if in.Skip < 0 {
		return fmt.Errorf("%w: skip must be >= 0", models.ErrValidation)
	}
	if in.Limit == 0 {
		in.Limit = 100
	}
	if in.Limit < 1 || in.Limit > maxListLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d", models.ErrValidation, maxListLimit)
	}
	if in.ContentType != "" && !in.ContentType.IsValid() {
		return fmt.Errorf("%w: invalid content_type %q", models.ErrValidation, in.ContentType)
	}
	return nil
}

// ContentCreateInput holds the fields for creating a content item
type ContentCreateInput struct {
	Title       string             `json:"title"`
	ContentType models.ContentType `json:"content_type"`
	TMDBID      *int               `json:"tmdb_id"`
	IMDBID      *string            `json:"imdb_id"`

	Overview     string     `json:"overview"`
	ReleaseDate  *time.Time `json:"release_date"`
	Runtime      *int       `json:"runtime"`
	PosterPath   string     `json:"poster_path"`
	BackdropPath string     `json:"backdrop_path"`

	TMDBRating     *float64 `json:"tmdb_rating"`
	PersonalRating *float64 `json:"personal_rating"`
	PersonalReview string   `json:"personal_review"`

	Genres              []string `json:"genres"`
	Cast                []string `json:"cast"`
	Director            string   `json:"director"`
	ProductionCompanies []string `json:"production_companies"`
	Countries           []string `json:"countries"`
	Languages           []string `json:"languages"`

	Status     models.Status `json:"status"`
	IsFavorite bool          `json:"is_favorite"`

	NumberOfSeasons  *int  `json:"number_of_seasons"`
	NumberOfEpisodes *int  `json:"number_of_episodes"`
	EpisodeRunTime   []int `json:"episode_run_time"`
}

// Validate checks required fields and ranges, applying the default status
func (in *ContentCreateInput) Validate() error {
	if in.Title == "" || len(in.Title) > maxTitleLength {
		return fmt.Errorf("%w: title must be 1-%d characters", models.ErrValidation, maxTitleLength)
	}
	if !in.ContentType.IsValid() {
		return fmt.Errorf("%w: invalid content_type %q", models.ErrValidation, in.ContentType)
	}
	if in.Status == "" {
		in.Status = models.StatusPlanned
	}
	if !in.Status.IsValid() {
		return fmt.Errorf("%w: invalid status %q", models.ErrValidation, in.Status)
	}
	if in.Runtime != nil && *in.Runtime < 1 {
		return fmt.Errorf("%w: runtime must be >= 1", models.ErrValidation)
	}
	if in.TMDBRating != nil && (*in.TMDBRating < 0 || *in.TMDBRating > 10) {
		return fmt.Errorf("%w: tmdb_rating must be between 0 and 10", models.ErrValidation)
	}
	if in.PersonalRating != nil && (*in.PersonalRating < 1 || *in.PersonalRating > 10) {
		return fmt.Errorf("%w: personal_rating must be between 1 and 10", models.ErrValidation)
	}
	if in.NumberOfSeasons != nil && *in.NumberOfSeasons < 1 {
		return fmt.Errorf("%w: number_of_seasons must be >= 1", models.ErrValidation)
	}
	if in.NumberOfEpisodes != nil && *in.NumberOfEpisodes < 1 {
		return fmt.Errorf("%w: number_of_episodes must be >= 1", models.ErrValidation)
	}
	return nil
}

// ContentUpdateInput holds a sparse field set for updating a content item.
// Nil pointers mean "leave untouched".
type ContentUpdateInput struct {
	Title          *string        `json:"title"`
	Overview       *string        `json:"overview"`
	Runtime        *int           `json:"runtime"`
	PersonalRating *float64       `json:"personal_rating"`
	PersonalReview *string        `json:"personal_review"`
	Status         *models.Status `json:"status"`
	IsFavorite     *bool          `json:"is_favorite"`
	AITags         *[]string      `json:"ai_tags"`
	MoodTags       *[]string      `json:"mood_tags"`
}

// Validate checks ranges on the fields that are present
func (in *ContentUpdateInput) Validate() error {
	if in.Title != nil && (*in.Title == "" || len(*in.Title) > maxTitleLength) {
		return fmt.Errorf("%w: title must be 1-%d characters", models.ErrValidation, maxTitleLength)
	}
	if in.Runtime != nil && *in.Runtime < 1 {
		return fmt.Errorf("%w: runtime must be >= 1", models.ErrValidation)
	}
	if in.PersonalRating != nil && (*in.PersonalRating < 1 || *in.PersonalRating > 10) {
		return fmt.Errorf("%w: personal_rating must be between 1 and 10", models.ErrValidation)
	}
	if in.Status != nil && !in.Status.IsValid() {
		return fmt.Errorf("%w: invalid status %q", models.ErrValidation, *in.Status)
	}
	return nil
}

// Fields returns the column assignments for the fields that are present
func (in *ContentUpdateInput) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Overview != nil {
		fields["overview"] = *in.Overview
	}
	if in.Runtime != nil {
		fields["runtime"] = *in.Runtime
	}
	if in.PersonalRating != nil {
		fields["personal_rating"] = *in.PersonalRating
	}
	if in.PersonalReview != nil {
		fields["personal_review"] = *in.PersonalReview
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	if in.IsFavorite != nil {
		fields["is_favorite"] = *in.IsFavorite
	}
	if in.AITags != nil {
		fields["ai_tags"] = models.StringList(*in.AITags)
	}
	if in.MoodTags != nil {
		fields["mood_tags"] = models.StringList(*in.MoodTags)
	}
	return fields
}

// List retrieves content matching the filters, newest-updated first
func (c *ContentController) List(input ContentListInput) ([]*models.Content, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return c.db.ListContent(models.ContentFilter{
		ContentType: input.ContentType,
		Status:      input.Status,
		Genre:       input.Genre,
		Skip:        input.Skip,
		Limit:       input.Limit,
	})
}

// Create persists a new content item. When a TMDB id is supplied the metadata
// provider is queried once and its payload merged into the input first;
// provider failures never block creation.
func (c *ContentController) Create(ctx context.Context, input ContentCreateInput) (*models.Content, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.TMDBID != nil {
		if existing, err := c.db.GetContentByTMDBID(*input.TMDBID); err == nil {
			return nil, fmt.Errorf("%w: tmdb_id %d already tracked as content %d",
				models.ErrDuplicate, *input.TMDBID, existing.ID)
		}

		details, err := c.tmdbClient.GetDetails(ctx, *input.TMDBID, input.ContentType)
		if err != nil {
			c.logger.WithError(err).WithField("tmdb_id", *input.TMDBID).
				Warn("TMDB lookup failed, creating content without enrichment")
		} else {
			mergeDetails(&input, details)
		}
	} else {
		c.warnNearDuplicate(input.Title, input.ContentType)
	}

	content := &models.Content{
		Title:               input.Title,
		ContentType:         input.ContentType,
		TMDBID:              input.TMDBID,
		IMDBID:              input.IMDBID,
		Overview:            input.Overview,
		ReleaseDate:         input.ReleaseDate,
		Runtime:             input.Runtime,
		PosterPath:          input.PosterPath,
		BackdropPath:        input.BackdropPath,
		TMDBRating:          input.TMDBRating,
		PersonalRating:      input.PersonalRating,
		PersonalReview:      input.PersonalReview,
		Genres:              input.Genres,
		Cast:                input.Cast,
		Director:            input.Director,
		ProductionCompanies: input.ProductionCompanies,
		Countries:           input.Countries,
		Languages:           input.Languages,
		Status:              input.Status,
		IsFavorite:          input.IsFavorite,
		NumberOfSeasons:     input.NumberOfSeasons,
		NumberOfEpisodes:    input.NumberOfEpisodes,
		EpisodeRunTime:      input.EpisodeRunTime,
	}

	if err := c.db.CreateContent(content); err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"id":    content.ID,
		"title": content.Title,
		"type":  content.ContentType,
	}).Info("Content created")

	return content, nil
}

// mergeDetails merges canonical provider metadata into the create input.
// Provider values win for catalog fields; personal fields are left alone.
func mergeDetails(input *ContentCreateInput, details *tmdb.Details) {
	if details == nil {
		return
	}
	if details.Title != "" {
		input.Title = details.Title
	}
	if details.Overview != "" {
		input.Overview = details.Overview
	}
	if details.ReleaseDate != nil {
		input.ReleaseDate = details.ReleaseDate
	}
	if details.Runtime != nil {
		input.Runtime = details.Runtime
	}
	if details.PosterPath != "" {
		input.PosterPath = details.PosterPath
	}
	if details.BackdropPath != "" {
		input.BackdropPath = details.BackdropPath
	}
	if details.Rating != nil {
		input.TMDBRating = details.Rating
	}
	if len(details.Genres) > 0 {
		input.Genres = details.Genres
	}
	if len(details.Cast) > 0 {
		input.Cast = details.Cast
	}
	if details.Director != "" {
		input.Director = details.Director
	}
	if len(details.ProductionCompanies) > 0 {
		input.ProductionCompanies = details.ProductionCompanies
	}
	if len(details.Countries) > 0 {
		input.Countries = details.Countries
	}
	if len(details.Languages) > 0 {
		input.Languages = details.Languages
	}
	if details.NumberOfSeasons != nil {
		input.NumberOfSeasons = details.NumberOfSeasons
	}
	if details.NumberOfEpisodes != nil {
		input.NumberOfEpisodes = details.NumberOfEpisodes
	}
	if len(details.EpisodeRunTime) > 0 {
		input.EpisodeRunTime = details.EpisodeRunTime
	}
}

// warnNearDuplicate logs a warning when a title created without a TMDB id is
// within editing distance of an existing title of the same type
func (c *ContentController) warnNearDuplicate(title string, contentType models.ContentType) {
	existing, err := c.db.ListContent(models.ContentFilter{ContentType: contentType, Limit: maxListLimit})
	if err != nil {
		c.logger.WithError(err).Debug("Duplicate title check skipped")
		return
	}
	for _, item := range existing {
		if titlesNearDuplicate(title, item.Title) {
			c.logger.WithFields(logrus.Fields{
				"title":       title,
				"existing_id": item.ID,
			}).Warn("Possible duplicate title")
			return
		}
	}
}

// titlesNearDuplicate compares two titles case-folded, tolerating small typos
func titlesNearDuplicate(a, b string) bool {
	folded := cases.Fold()
	fa := folded.String(a)
	fb := folded.String(b)
	return levenshtein.ComputeDistance(fa, fb) <= nearDuplicateDistance
}

// Get retrieves a content item by ID
func (c *ContentController) Get(id uint) (*models.Content, error) {
	return c.db.GetContentByID(id)
}

// Update applies a sparse update to a content item and returns the updated row
func (c *ContentController) Update(id uint, input ContentUpdateInput) (*models.Content, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return c.db.UpdateContentFields(id, input.Fields())
}

// Delete removes a content item, reporting whether a row existed
func (c *ContentController) Delete(id uint) (bool, error) {
	deleted, err := c.db.DeleteContent(id)
	if err != nil {
		return false, err
	}
	if deleted {
		c.logger.WithField("id", id).Info("Content deleted")
	}
	return deleted, nil
}

// ToggleFavorite flips the favorite flag and returns the new value
func (c *ContentController) ToggleFavorite(id uint) (bool, error) {
	content, err := c.db.GetContentByID(id)
	if err != nil {
		return false, err
	}

	updated, err := c.db.UpdateContentFields(id, map[string]interface{}{
		"is_favorite": !content.IsFavorite,
	})
	if err != nil {
		return false, err
	}
	return updated.IsFavorite, nil
}

// SearchByTitle performs a case-insensitive substring search over stored
// titles, best-rated first, capped at 20 results
func (c *ContentController) SearchByTitle(query string, contentType models.ContentType) ([]*models.Content, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: query must not be empty", models.ErrValidation)
	}
	if contentType != "" && !contentType.IsValid() {
		return nil, fmt.Errorf("%w: invalid content_type %q", models.ErrValidation, contentType)
	}
	return c.db.SearchContentByTitle(query, contentType, titleSearchLimit)
}

// Similar finds content of the same type sharing at least one genre with the
// given item. A missing source id yields an empty result, not an error.
func (c *ContentController) Similar(id uint, limit int) ([]*models.Content, error) {
	if limit == 0 {
		limit = 10
	}
	if limit < 1 || limit > maxSimilarLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", models.ErrValidation, maxSimilarLimit)
	}

	base, err := c.db.GetContentByID(id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return []*models.Content{}, nil
		}
		return nil, err
	}

	return c.db.FindSimilarContent(base, limit)
}

// Statistics computes aggregate counts over the content table
func (c *ContentController) Statistics() (*models.ContentStats, error) {
	return c.db.ContentStatistics()
}

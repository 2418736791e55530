package controllers

import (
	"fmt"
	"time"

	"github.com/amaumene/gowatcharr/internal/models"
	"github.com/sirupsen/logrus"
)

// WatchController handles business logic for watch history and sessions
type WatchController struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewWatchController creates a new watch controller
func NewWatchController(db *models.Database, logger *logrus.Logger) *WatchController {
	return &WatchController{
		db:     db,
		logger: logger,
	}
}

// WatchCreateInput holds the fields for recording a watch event
type WatchCreateInput struct {
	ContentID  uint      `json:"content_id"`
	WatchedAt  time.Time `json:"watched_at"`
	PlatformID *uint     `json:"platform_id"`

	SeasonNumber  *int   `json:"season_number"`
	EpisodeNumber *int   `json:"episode_number"`
	EpisodeTitle  string `json:"episode_title"`

	DurationWatched      *int     `json:"duration_watched"`
	CompletionPercentage *float64 `json:"completion_percentage"`

	WatchLocation string `json:"watch_location"`
	WatchMood     string `json:"watch_mood"`
	Companions    string `json:"companions"`
	Notes         string `json:"notes"`

	RatingAfterWatch *float64 `json:"rating_after_watch"`
}

// Validate checks required fields and ranges
func (in *WatchCreateInput) Validate() error {
	if in.ContentID == 0 {
		return fmt.Errorf("%w: content_id is required", models.ErrValidation)
	}
	if in.WatchedAt.IsZero() {
		return fmt.Errorf("%w: watched_at is required", models.ErrValidation)
	}
	if in.SeasonNumber != nil && *in.SeasonNumber < 1 {
		return fmt.Errorf("%w: season_number must be >= 1", models.ErrValidation)
	}
	if in.EpisodeNumber != nil && *in.EpisodeNumber < 1 {
		return fmt.Errorf("%w: episode_number must be >= 1", models.ErrValidation)
	}
	if in.DurationWatched != nil && *in.DurationWatched < 1 {
		return fmt.Errorf("%w: duration_watched must be >= 1", models.ErrValidation)
	}
	if in.CompletionPercentage != nil && (*in.CompletionPercentage < 0 || *in.CompletionPercentage > 100) {
		return fmt.Errorf("%w: completion_percentage must be between 0 and 100", models.ErrValidation)
	}
	if in.RatingAfterWatch != nil && (*in.RatingAfterWatch < 1 || *in.RatingAfterWatch > 10) {
		return fmt.Errorf("%w: rating_after_watch must be between 1 and 10", models.ErrValidation)
	}
	return nil
}

// WatchHistoryInput holds filters for the watch history listing
type WatchHistoryInput struct {
	ContentID  *uint
	PlatformID *uint
	StartDate  *time.Time
	EndDate    *time.Time
	Skip       int
	Limit      int
}

// Validate checks ranges and applies the default limit
func (in *WatchHistoryInput) Validate() error {
	if in.Skip < 0 {
		return fmt.Errorf("%w: skip must be >= 0", models.ErrValidation)
	}
	if in.Limit == 0 {
		in.Limit = 100
	}
	if in.Limit < 1 || in.Limit > maxListLimit {
		return fmt.Errorf("%w: limit must be between 1 and %d", models.ErrValidation, maxListLimit)
	}
	return nil
}

// SessionStartInput holds the fields for opening a watch session
type SessionStartInput struct {
	ContentID  uint      `json:"content_id"`
	StartedAt  time.Time `json:"started_at"`
	PlatformID *uint     `json:"platform_id"`

	StartPosition float64 `json:"start_position"`
	DeviceType    string  `json:"device_type"`

	Quality          string `json:"quality"`
	AudioLanguage    string `json:"audio_language"`
	SubtitleLanguage string `json:"subtitle_language"`
	WatchMood        string `json:"watch_mood"`
}

// Validate checks required fields and ranges
func (in *SessionStartInput) Validate() error {
	if in.ContentID == 0 {
		return fmt.Errorf("%w: content_id is required", models.ErrValidation)
	}
	if in.StartedAt.IsZero() {
		return fmt.Errorf("%w: started_at is required", models.ErrValidation)
	}
	if in.StartPosition < 0 || in.StartPosition > 100 {
		return fmt.Errorf("%w: start_position must be between 0 and 100", models.ErrValidation)
	}
	return nil
}

// SessionEndInput holds the fields for closing a watch session. The paused
// duration and interruption counters may only grow.
type SessionEndInput struct {
	EndPosition    float64 `json:"end_position"`
	PausedDuration *int    `json:"paused_duration"`
	Interruptions  *int    `json:"interruptions"`
}

// Validate checks ranges
func (in *SessionEndInput) Validate() error {
	if in.EndPosition < 0 || in.EndPosition > 100 {
		return fmt.Errorf("%w: end_position must be between 0 and 100", models.ErrValidation)
	}
	if in.PausedDuration != nil && *in.PausedDuration < 0 {
		return fmt.Errorf("%w: paused_duration must be >= 0", models.ErrValidation)
	}
	if in.Interruptions != nil && *in.Interruptions < 0 {
		return fmt.Errorf("%w: interruptions must be >= 0", models.ErrValidation)
	}
	return nil
}

// Record persists a new watch event. The referenced content must exist.
func (c *WatchController) Record(input WatchCreateInput) (*models.Watch, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := c.db.GetContentByID(input.ContentID); err != nil {
		return nil, err
	}

	completion := 100.0
	if input.CompletionPercentage != nil {
		completion = *input.CompletionPercentage
	}

	watch := &models.Watch{
		ContentID:            input.ContentID,
		WatchedAt:            input.WatchedAt,
		PlatformID:           input.PlatformID,
		SeasonNumber:         input.SeasonNumber,
		EpisodeNumber:        input.EpisodeNumber,
		EpisodeTitle:         input.EpisodeTitle,
		DurationWatched:      input.DurationWatched,
		CompletionPercentage: completion,
		WatchLocation:        input.WatchLocation,
		WatchMood:            input.WatchMood,
		Companions:           input.Companions,
		Notes:                input.Notes,
		RatingAfterWatch:     input.RatingAfterWatch,
	}

	if err := c.db.CreateWatch(watch); err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"id":         watch.ID,
		"content_id": watch.ContentID,
	}).Info("Watch recorded")

	return watch, nil
}

// History retrieves watch records matching the filter, most recent first
func (c *WatchController) History(input WatchHistoryInput) ([]*models.Watch, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return c.db.ListWatches(models.WatchFilter{
		ContentID:  input.ContentID,
		PlatformID: input.PlatformID,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Skip:       input.Skip,
		Limit:      input.Limit,
	})
}

// Get retrieves a watch record by ID
func (c *WatchController) Get(id uint) (*models.Watch, error) {
	return c.db.GetWatchByID(id)
}

// Delete removes a watch record, reporting whether a row existed
func (c *WatchController) Delete(id uint) (bool, error) {
	return c.db.DeleteWatch(id)
}

// CountForContent counts watch records referencing a content item
func (c *WatchController) CountForContent(contentID uint) (int64, error) {
	return c.db.CountWatchesByContentID(contentID)
}

// StartSession opens a new watch session. The referenced content must exist.
func (c *WatchController) StartSession(input SessionStartInput) (*models.WatchSession, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := c.db.GetContentByID(input.ContentID); err != nil {
		return nil, err
	}

	session := &models.WatchSession{
		ContentID:        input.ContentID,
		StartedAt:        input.StartedAt,
		PlatformID:       input.PlatformID,
		StartPosition:    input.StartPosition,
		DeviceType:       input.DeviceType,
		Quality:          input.Quality,
		AudioLanguage:    input.AudioLanguage,
		SubtitleLanguage: input.SubtitleLanguage,
		WatchMood:        input.WatchMood,
	}

	if err := c.db.CreateWatchSession(session); err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"id":         session.ID,
		"content_id": session.ContentID,
	}).Info("Watch session started")

	return session, nil
}

// EndSession closes a watch session. Closing is one-way: a session that is
// already closed cannot be ended again.
func (c *WatchController) EndSession(id uint, input SessionEndInput) (*models.WatchSession, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	session, err := c.db.GetWatchSessionByID(id)
	if err != nil {
		return nil, err
	}
	if session.EndedAt != nil {
		return nil, fmt.Errorf("%w: session %d is already ended", models.ErrValidation, id)
	}

	now := time.Now()
	session.EndedAt = &now
	session.EndPosition = &input.EndPosition

	if input.PausedDuration != nil {
		if *input.PausedDuration < session.PausedDuration {
			return nil, fmt.Errorf("%w: paused_duration may not decrease", models.ErrValidation)
		}
		session.PausedDuration = *input.PausedDuration
	}
	if input.Interruptions != nil {
		if *input.Interruptions < session.Interruptions {
			return nil, fmt.Errorf("%w: interruptions may not decrease", models.ErrValidation)
		}
		session.Interruptions = *input.Interruptions
	}

	if err := c.db.UpdateWatchSession(session); err != nil {
		return nil, err
	}

	c.logger.WithField("id", session.ID).Info("Watch session ended")
	return session, nil
}

package models

import "time"

// Watch represents a single discrete watch event for a content item
type Watch struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ContentID uint `gorm:"column:content_id;not null;index" json:"content_id"`

	WatchedAt  time.Time `gorm:"column:watched_at;not null;index" json:"watched_at"`
	PlatformID *uint     `gorm:"column:platform_id" json:"platform_id"`

	// Episode coordinates, only set for TV content
	SeasonNumber  *int   `gorm:"column:season_number" json:"season_number"`
	EpisodeNumber *int   `gorm:"column:episode_number" json:"episode_number"`
	EpisodeTitle  string `gorm:"column:episode_title" json:"episode_title"`

	DurationWatched      *int    `gorm:"column:duration_watched" json:"duration_watched"` // minutes
	CompletionPercentage float64 `gorm:"column:completion_percentage;default:100" json:"completion_percentage"`

	// Context
	WatchLocation string `gorm:"column:watch_location" json:"watch_location"`
	WatchMood     string `gorm:"column:watch_mood" json:"watch_mood"`
	Companions    string `gorm:"type:text" json:"companions"`

	Notes            string   `gorm:"type:text" json:"notes"`
	RatingAfterWatch *float64 `gorm:"column:rating_after_watch" json:"rating_after_watch"` // 1-10

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the gorm default
func (Watch) TableName() string {
	return "watches"
}

// WatchSession represents a continuous viewing session. A session is open
// while EndedAt is nil and closed once it is set.
type WatchSession struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	ContentID uint `gorm:"column:content_id;not null;index" json:"content_id"`

	StartedAt      time.Time  `gorm:"column:started_at;not null" json:"started_at"`
	EndedAt        *time.Time `gorm:"column:ended_at" json:"ended_at"`
	PausedDuration int        `gorm:"column:paused_duration;default:0" json:"paused_duration"` // minutes

	// Progress as a percentage of the content (0-100)
	StartPosition float64  `gorm:"column:start_position;default:0" json:"start_position"`
	EndPosition   *float64 `gorm:"column:end_position" json:"end_position"`

	DeviceType string `gorm:"column:device_type" json:"device_type"`
	PlatformID *uint  `gorm:"column:platform_id" json:"platform_id"`

	Quality          string `json:"quality"`
	AudioLanguage    string `gorm:"column:audio_language" json:"audio_language"`
	SubtitleLanguage string `gorm:"column:subtitle_language" json:"subtitle_language"`

	Interruptions int    `gorm:"default:0" json:"interruptions"`
	WatchMood     string `gorm:"column:watch_mood" json:"watch_mood"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the gorm default
func (WatchSession) TableName() string {
	return "watch_sessions"
}

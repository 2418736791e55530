package models

import "time"

// Content represents a trackable movie or TV show
type Content struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Title       string      `gorm:"not null;index" json:"title"`
	ContentType ContentType `gorm:"column:content_type;not null;index" json:"content_type"`

	// External IDs (each unique when present, used for TMDB de-duplication)
	TMDBID *int    `gorm:"column:tmdb_id;uniqueIndex" json:"tmdb_id"`
	IMDBID *string `gorm:"column:imdb_id;uniqueIndex" json:"imdb_id"`

	// Basic info
	Overview     string     `gorm:"type:text" json:"overview"`
	ReleaseDate  *time.Time `gorm:"column:release_date" json:"release_date"`
	Runtime      *int       `json:"runtime"` // minutes
	PosterPath   string     `gorm:"column:poster_path" json:"poster_path"`
	BackdropPath string     `gorm:"column:backdrop_path" json:"backdrop_path"`

	// Ratings and reviews
	TMDBRating     *float64 `gorm:"column:tmdb_rating" json:"tmdb_rating"`
	PersonalRating *float64 `gorm:"column:personal_rating" json:"personal_rating"` // 1-10
	PersonalReview string   `gorm:"column:personal_review;type:text" json:"personal_review"`

	// Collections, stored as JSON arrays in text columns
	Genres              StringList `gorm:"type:text" json:"genres"`
	Cast                StringList `gorm:"column:cast;type:text" json:"cast"`
	Director            string     `json:"director"`
	ProductionCompanies StringList `gorm:"column:production_companies;type:text" json:"production_companies"`
	Countries           StringList `gorm:"type:text" json:"countries"`
	Languages           StringList `gorm:"type:text" json:"languages"`

	// Tracking
	Status     Status `gorm:"not null;default:planned;index" json:"status"`
	IsFavorite bool   `gorm:"column:is_favorite;not null;default:false" json:"is_favorite"`

	// TV show specific fields, nil for movies
	NumberOfSeasons  *int    `gorm:"column:number_of_seasons" json:"number_of_seasons"`
	NumberOfEpisodes *int    `gorm:"column:number_of_episodes" json:"number_of_episodes"`
	EpisodeRunTime   IntList `gorm:"column:episode_run_time;type:text" json:"episode_run_time"`

	// AI fields, attached by external tooling and never computed here
	Embedding FloatList  `gorm:"type:text" json:"embedding"`
	AITags    StringList `gorm:"column:ai_tags;type:text" json:"ai_tags"`
	MoodTags  StringList `gorm:"column:mood_tags;type:text" json:"mood_tags"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the gorm pluralized default
func (Content) TableName() string {
	return "content"
}

// Platform represents a streaming service
type Platform struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"not null;uniqueIndex" json:"name"`
	LogoPath string `gorm:"column:logo_path" json:"logo_path"`
	Homepage string `json:"homepage"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// ContentPlatform records availability of a content item on a platform
type ContentPlatform struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ContentID  uint   `gorm:"column:content_id;not null;index" json:"content_id"`
	PlatformID uint   `gorm:"column:platform_id;not null;index" json:"platform_id"`
	Available  bool   `gorm:"not null;default:true" json:"available"`
	URL        string `gorm:"column:url" json:"url"` // direct link on the platform

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

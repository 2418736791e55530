package controllers

import (
	"fmt"
	"sort"
	"time"

	"github.com/amaumene/gowatcharr/internal/models"
	"github.com/sirupsen/logrus"
)

// StatsController computes viewing statistics. All aggregation is done
// in-memory over the full row sets, which is fine at personal-watchlist scale.
type StatsController struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewStatsController creates a new stats controller
func NewStatsController(db *models.Database, logger *logrus.Logger) *StatsController {
	return &StatsController{
		db:     db,
		logger: logger,
	}
}

// OverviewStats summarizes the whole library
type OverviewStats struct {
	TotalContent     int64   `json:"total_content"`
	TotalWatches     int     `json:"total_watches"`
	TotalHours       float64 `json:"total_hours"`
	FavoriteGenre    string  `json:"favorite_genre"`
	ThisMonthWatches int     `json:"this_month_watches"`
}

// ViewingTimeStats summarizes time spent watching within a period
type ViewingTimeStats struct {
	Period                string  `json:"period"`
	TotalHours            float64 `json:"total_hours"`
	AverageSessionMinutes float64 `json:"average_session"`
	MostActiveDay         string  `json:"most_active_day"`
}

// GenreStat is a single genre with its occurrence count across the library
type GenreStat struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// GenreStats holds the genre distribution
type GenreStats struct {
	Genres      []GenreStat `json:"genres"`
	TotalGenres int         `json:"total_genres"`
}

// RatingStats holds the personal rating distribution
type RatingStats struct {
	AverageRating float64     `json:"average_rating"`
	Distribution  map[int]int `json:"distribution"`
}

// CompletionStats holds completion rate figures
type CompletionStats struct {
	CompletionRate float64 `json:"completion_rate"`
	CompletedCount int64   `json:"completed_count"`
	DroppedCount   int64   `json:"dropped_content"`
}

// PlatformUsageStat is a single platform with its watch activity
type PlatformUsageStat struct {
	PlatformID uint   `json:"platform_id"`
	Name       string `json:"name"`
	WatchCount int    `json:"watch_count"`
}

// PlatformStats holds the platform usage distribution
type PlatformStats struct {
	Platforms []PlatformUsageStat `json:"platforms"`
	MostUsed  string              `json:"most_used"`
}

// TrendingEntry is a content item ranked by recent watch activity
type TrendingEntry struct {
	Content    *models.Content `json:"content"`
	WatchCount int             `json:"watch_count"`
}

// periodCutoff maps a period name to its inclusive lower time bound. The
// zero time means "no bound".
func periodCutoff(period string) (time.Time, error) {
	now := time.Now()
	switch period {
	case "day":
		return now.AddDate(0, 0, -1), nil
	case "week":
		return now.AddDate(0, 0, -7), nil
	case "month":
		return now.AddDate(0, -1, 0), nil
	case "quarter":
		return now.AddDate(0, -3, 0), nil
	case "year":
		return now.AddDate(-1, 0, 0), nil
	case "all":
		return time.Time{}, nil
	}
	return time.Time{}, fmt.Errorf("%w: unknown period %q", models.ErrValidation, period)
}

// Overview computes the library overview
func (c *StatsController) Overview() (*OverviewStats, error) {
	contentStats, err := c.db.ContentStatistics()
	if err != nil {
		return nil, err
	}

	watches, err := c.db.GetAllWatches()
	if err != nil {
		return nil, err
	}

	stats := &OverviewStats{
		TotalContent: contentStats.Total,
		TotalWatches: len(watches),
	}

	monthAgo := time.Now().AddDate(0, -1, 0)
	totalMinutes := 0
	for _, watch := range watches {
		if watch.DurationWatched != nil {
			totalMinutes += *watch.DurationWatched
		}
		if watch.WatchedAt.After(monthAgo) {
			stats.ThisMonthWatches++
		}
	}
	stats.TotalHours = float64(totalMinutes) / 60

	stats.FavoriteGenre = c.favoriteGenre()
	return stats, nil
}

// favoriteGenre returns the most frequent genre across the library, or an
// empty string when the library has no genres at all
func (c *StatsController) favoriteGenre() string {
	items, err := c.db.GetAllContent()
	if err != nil {
		c.logger.WithError(err).Debug("Favorite genre computation skipped")
		return ""
	}

	counts := make(map[string]int)
	for _, item := range items {
		for _, genre := range item.Genres {
			counts[genre]++
		}
	}

	best := ""
	bestCount := 0
	for genre, count := range counts {
		if count > bestCount || (count == bestCount && genre < best) {
			best = genre
			bestCount = count
		}
	}
	return best
}

// ViewingTime computes time-spent statistics for a period
func (c *StatsController) ViewingTime(period string) (*ViewingTimeStats, error) {
	cutoff, err := periodCutoff(period)
	if err != nil {
		return nil, err
	}

	watches, err := c.db.GetAllWatches()
	if err != nil {
		return nil, err
	}

	stats := &ViewingTimeStats{Period: period}

	totalMinutes := 0
	dayCounts := make(map[time.Weekday]int)
	for _, watch := range watches {
		if !cutoff.IsZero() && watch.WatchedAt.Before(cutoff) {
			continue
		}
		if watch.DurationWatched != nil {
			totalMinutes += *watch.DurationWatched
		}
		dayCounts[watch.WatchedAt.Weekday()]++
	}
	stats.TotalHours = float64(totalMinutes) / 60

	bestCount := 0
	for day, count := range dayCounts {
		if count > bestCount {
			stats.MostActiveDay = day.String()
			bestCount = count
		}
	}

	sessions, err := c.db.GetAllWatchSessions()
	if err != nil {
		return nil, err
	}

	sessionMinutes := 0.0
	sessionCount := 0
	for _, session := range sessions {
		if session.EndedAt == nil {
			continue
		}
		if !cutoff.IsZero() && session.StartedAt.Before(cutoff) {
			continue
		}
		minutes := session.EndedAt.Sub(session.StartedAt).Minutes() - float64(session.PausedDuration)
		if minutes > 0 {
			sessionMinutes += minutes
			sessionCount++
		}
	}
	if sessionCount > 0 {
		stats.AverageSessionMinutes = sessionMinutes / float64(sessionCount)
	}

	return stats, nil
}

// Genres computes the genre distribution across the library
func (c *StatsController) Genres(limit int) (*GenreStats, error) {
	if limit < 1 || limit > maxSimilarLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", models.ErrValidation, maxSimilarLimit)
	}

	items, err := c.db.GetAllContent()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, item := range items {
		for _, genre := range item.Genres {
			counts[genre]++
		}
	}

	stats := &GenreStats{
		Genres:      make([]GenreStat, 0, len(counts)),
		TotalGenres: len(counts),
	}
	for genre, count := range counts {
		stats.Genres = append(stats.Genres, GenreStat{Genre: genre, Count: count})
	}
	sort.Slice(stats.Genres, func(i, j int) bool {
		if stats.Genres[i].Count != stats.Genres[j].Count {
			return stats.Genres[i].Count > stats.Genres[j].Count
		}
		return stats.Genres[i].Genre < stats.Genres[j].Genre
	})
	if len(stats.Genres) > limit {
		stats.Genres = stats.Genres[:limit]
	}

	return stats, nil
}

// Ratings computes the personal rating distribution
func (c *StatsController) Ratings() (*RatingStats, error) {
	items, err := c.db.GetAllContent()
	if err != nil {
		return nil, err
	}

	stats := &RatingStats{Distribution: make(map[int]int)}
	sum := 0.0
	rated := 0
	for _, item := range items {
		if item.PersonalRating == nil {
			continue
		}
		sum += *item.PersonalRating
		rated++
		stats.Distribution[int(*item.PersonalRating)]++
	}
	if rated > 0 {
		stats.AverageRating = sum / float64(rated)
	}

	return stats, nil
}

// Completion computes completion rate figures over the library
func (c *StatsController) Completion() (*CompletionStats, error) {
	contentStats, err := c.db.ContentStatistics()
	if err != nil {
		return nil, err
	}

	stats := &CompletionStats{
		CompletedCount: contentStats.StatusBreakdown[string(models.StatusCompleted)],
		DroppedCount:   contentStats.StatusBreakdown[string(models.StatusDropped)],
	}
	if contentStats.Total > 0 {
		stats.CompletionRate = float64(stats.CompletedCount) / float64(contentStats.Total)
	}

	return stats, nil
}

// Platforms ranks platforms by watch activity within a period. Watches
// recorded without a platform are ignored.
func (c *StatsController) Platforms(period string) (*PlatformStats, error) {
	cutoff, err := periodCutoff(period)
	if err != nil {
		return nil, err
	}

	watches, err := c.db.GetAllWatches()
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int)
	for _, watch := range watches {
		if watch.PlatformID == nil {
			continue
		}
		if !cutoff.IsZero() && watch.WatchedAt.Before(cutoff) {
			continue
		}
		counts[*watch.PlatformID]++
	}

	platforms, err := c.db.ListPlatforms()
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(platforms))
	for _, platform := range platforms {
		names[platform.ID] = platform.Name
	}

	stats := &PlatformStats{Platforms: make([]PlatformUsageStat, 0, len(counts))}
	for platformID, count := range counts {
		name, ok := names[platformID]
		if !ok {
			// Watch rows may reference a platform that was removed; skip orphans
			continue
		}
		stats.Platforms = append(stats.Platforms, PlatformUsageStat{
			PlatformID: platformID,
			Name:       name,
			WatchCount: count,
		})
	}
	sort.Slice(stats.Platforms, func(i, j int) bool {
		if stats.Platforms[i].WatchCount != stats.Platforms[j].WatchCount {
			return stats.Platforms[i].WatchCount > stats.Platforms[j].WatchCount
		}
		return stats.Platforms[i].Name < stats.Platforms[j].Name
	})
	if len(stats.Platforms) > 0 {
		stats.MostUsed = stats.Platforms[0].Name
	}

	return stats, nil
}

// Trending ranks content by watch activity within a period
func (c *StatsController) Trending(period string, limit int) ([]TrendingEntry, error) {
	if limit < 1 || limit > maxSimilarLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", models.ErrValidation, maxSimilarLimit)
	}
	cutoff, err := periodCutoff(period)
	if err != nil {
		return nil, err
	}

	watches, err := c.db.GetAllWatches()
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int)
	for _, watch := range watches {
		if !cutoff.IsZero() && watch.WatchedAt.Before(cutoff) {
			continue
		}
		counts[watch.ContentID]++
	}

	entries := make([]TrendingEntry, 0, len(counts))
	for contentID, count := range counts {
		content, err := c.db.GetContentByID(contentID)
		if err != nil {
			// Watch rows may outlive their content row; skip orphans
			continue
		}
		entries = append(entries, TrendingEntry{Content: content, WatchCount: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].WatchCount != entries[j].WatchCount {
			return entries[i].WatchCount > entries[j].WatchCount
		}
		return entries[i].Content.ID < entries[j].Content.ID
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

// PersonalRecords is not implemented yet
func (c *StatsController) PersonalRecords() error {
	return models.ErrNotImplemented
}

// MonthlySummary is not implemented yet
func (c *StatsController) MonthlySummary(year, month int) error {
	return models.ErrNotImplemented
}

// YearInReview is not implemented yet
func (c *StatsController) YearInReview(year int) error {
	return models.ErrNotImplemented
}

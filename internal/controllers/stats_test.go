package controllers

import (
	"errors"
	"testing"
	"time"

	"github.com/amaumene/gowatcharr/internal/models"
	"github.com/amaumene/gowatcharr/internal/utils"
)

func newStatsController(t *testing.T) (*StatsController, *models.Database) {
	t.Helper()
	db := newTestDatabase(t)
	return NewStatsController(db, utils.NewSilentLogger()), db
}

func seedStatsLibrary(t *testing.T, db *models.Database) (*models.Content, *models.Content) {
	t.Helper()

	movie := &models.Content{
		Title:          "Movie",
		ContentType:    models.ContentTypeMovie,
		Status:         models.StatusCompleted,
		Genres:         models.StringList{"Drama", "Sci-Fi"},
		PersonalRating: floatPtr(8),
	}
	show := &models.Content{
		Title:          "Show",
		ContentType:    models.ContentTypeTV,
		Status:         models.StatusDropped,
		Genres:         models.StringList{"Drama"},
		PersonalRating: floatPtr(6),
	}
	for _, item := range []*models.Content{movie, show} {
		if err := db.CreateContent(item); err != nil {
			t.Fatalf("Failed to seed content: %v", err)
		}
	}
	return movie, show
}

func TestOverview(t *testing.T) {
	ctrl, db := newStatsController(t)
	movie, show := seedStatsLibrary(t, db)

	now := time.Now()
	watches := []*models.Watch{
		{ContentID: movie.ID, WatchedAt: now.Add(-24 * time.Hour), DurationWatched: intPtr(90), CompletionPercentage: 100},
		{ContentID: movie.ID, WatchedAt: now.AddDate(0, -2, 0), DurationWatched: intPtr(30), CompletionPercentage: 100},
		{ContentID: show.ID, WatchedAt: now.Add(-2 * time.Hour), CompletionPercentage: 100},
	}
	for _, watch := range watches {
		if err := db.CreateWatch(watch); err != nil {
			t.Fatalf("Failed to seed watch: %v", err)
		}
	}

	stats, err := ctrl.Overview()
	if err != nil {
		t.Fatalf("Failed to compute overview: %v", err)
	}
	if stats.TotalContent != 2 {
		t.Errorf("Expected 2 content rows, got %d", stats.TotalContent)
	}
	if stats.TotalWatches != 3 {
		t.Errorf("Expected 3 watches, got %d", stats.TotalWatches)
	}
	if stats.TotalHours != 2 {
		t.Errorf("Expected 2 total hours, got %v", stats.TotalHours)
	}
	if stats.ThisMonthWatches != 2 {
		t.Errorf("Expected 2 watches this month, got %d", stats.ThisMonthWatches)
	}
	if stats.FavoriteGenre != "Drama" {
		t.Errorf("Expected favorite genre Drama, got %q", stats.FavoriteGenre)
	}
}

func TestOverviewEmptyLibrary(t *testing.T) {
	ctrl, _ := newStatsController(t)

	stats, err := ctrl.Overview()
	if err != nil {
		t.Fatalf("Overview of empty library should succeed: %v", err)
	}
	if stats.TotalContent != 0 || stats.TotalWatches != 0 || stats.FavoriteGenre != "" {
		t.Errorf("Expected zeroed stats, got %+v", stats)
	}
}

func TestViewingTime(t *testing.T) {
	ctrl, db := newStatsController(t)
	movie, _ := seedStatsLibrary(t, db)

	now := time.Now()
	watches := []*models.Watch{
		{ContentID: movie.ID, WatchedAt: now.Add(-2 * time.Hour), DurationWatched: intPtr(60), CompletionPercentage: 100},
		{ContentID: movie.ID, WatchedAt: now.AddDate(0, 0, -30), DurationWatched: intPtr(600), CompletionPercentage: 100},
	}
	for _, watch := range watches {
		if err := db.CreateWatch(watch); err != nil {
			t.Fatalf("Failed to seed watch: %v", err)
		}
	}

	started := now.Add(-100 * time.Minute)
	ended := now.Add(-10 * time.Minute)
	session := &models.WatchSession{
		ContentID:      movie.ID,
		StartedAt:      started,
		EndedAt:        &ended,
		PausedDuration: 10,
	}
	if err := db.CreateWatchSession(session); err != nil {
		t.Fatalf("Failed to seed session: %v", err)
	}
	open := &models.WatchSession{ContentID: movie.ID, StartedAt: now}
	if err := db.CreateWatchSession(open); err != nil {
		t.Fatalf("Failed to seed open session: %v", err)
	}

	stats, err := ctrl.ViewingTime("week")
	if err != nil {
		t.Fatalf("Failed to compute viewing time: %v", err)
	}
	if stats.Period != "week" {
		t.Errorf("Period not echoed: %q", stats.Period)
	}
	if stats.TotalHours != 1 {
		t.Errorf("Expected 1 hour within the week, got %v", stats.TotalHours)
	}
	// 90 minutes wall time minus 10 paused; the open session is ignored
	if stats.AverageSessionMinutes < 79 || stats.AverageSessionMinutes > 81 {
		t.Errorf("Expected ~80 minute average session, got %v", stats.AverageSessionMinutes)
	}
	if stats.MostActiveDay == "" {
		t.Error("Expected a most active day")
	}

	all, err := ctrl.ViewingTime("all")
	if err != nil {
		t.Fatalf("Failed to compute all-time viewing: %v", err)
	}
	if all.TotalHours != 11 {
		t.Errorf("Expected 11 all-time hours, got %v", all.TotalHours)
	}

	if _, err := ctrl.ViewingTime("fortnight"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrValidation for unknown period, got %v", err)
	}
}

func TestGenres(t *testing.T) {
	ctrl, db := newStatsController(t)
	seedStatsLibrary(t, db)

	stats, err := ctrl.Genres(10)
	if err != nil {
		t.Fatalf("Failed to compute genres: %v", err)
	}
	if stats.TotalGenres != 2 {
		t.Errorf("Expected 2 distinct genres, got %d", stats.TotalGenres)
	}
	if len(stats.Genres) != 2 || stats.Genres[0].Genre != "Drama" || stats.Genres[0].Count != 2 {
		t.Errorf("Genre ranking mismatch: %v", stats.Genres)
	}

	top, err := ctrl.Genres(1)
	if err != nil {
		t.Fatalf("Failed to compute top genre: %v", err)
	}
	if len(top.Genres) != 1 || top.TotalGenres != 2 {
		t.Errorf("Limit not applied: %+v", top)
	}

	if _, err := ctrl.Genres(0); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrValidation for zero limit, got %v", err)
	}
}

func TestRatings(t *testing.T) {
	ctrl, db := newStatsController(t)
	seedStatsLibrary(t, db)

	unrated := &models.Content{Title: "Unrated", ContentType: models.ContentTypeMovie, Status: models.StatusPlanned}
	if err := db.CreateContent(unrated); err != nil {
		t.Fatalf("Failed to create unrated content: %v", err)
	}

	stats, err := ctrl.Ratings()
	if err != nil {
		t.Fatalf("Failed to compute ratings: %v", err)
	}
	if stats.AverageRating != 7 {
		t.Errorf("Expected average 7, got %v", stats.AverageRating)
	}
	if stats.Distribution[8] != 1 || stats.Distribution[6] != 1 {
		t.Errorf("Distribution mismatch: %v", stats.Distribution)
	}
}

func TestCompletion(t *testing.T) {
	ctrl, db := newStatsController(t)
	seedStatsLibrary(t, db)

	stats, err := ctrl.Completion()
	if err != nil {
		t.Fatalf("Failed to compute completion: %v", err)
	}
	if stats.CompletedCount != 1 || stats.DroppedCount != 1 {
		t.Errorf("Counts mismatch: %+v", stats)
	}
	if stats.CompletionRate != 0.5 {
		t.Errorf("Expected completion rate 0.5, got %v", stats.CompletionRate)
	}
}

func TestTrending(t *testing.T) {
	ctrl, db := newStatsController(t)
	movie, show := seedStatsLibrary(t, db)

	now := time.Now()
	watchCounts := map[uint]int{movie.ID: 1, show.ID: 3}
	for contentID, n := range watchCounts {
		for i := 0; i < n; i++ {
			if err := db.CreateWatch(&models.Watch{ContentID: contentID, WatchedAt: now.Add(-time.Hour), CompletionPercentage: 100}); err != nil {
				t.Fatalf("Failed to seed watch: %v", err)
			}
		}
	}
	// Old activity must not count toward the weekly window
	if err := db.CreateWatch(&models.Watch{ContentID: movie.ID, WatchedAt: now.AddDate(0, 0, -30), CompletionPercentage: 100}); err != nil {
		t.Fatalf("Failed to seed old watch: %v", err)
	}

	entries, err := ctrl.Trending("week", 10)
	if err != nil {
		t.Fatalf("Failed to compute trending: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Content.ID != show.ID || entries[0].WatchCount != 3 {
		t.Errorf("Top entry mismatch: %+v", entries[0])
	}
	if entries[1].Content.ID != movie.ID || entries[1].WatchCount != 1 {
		t.Errorf("Second entry mismatch: %+v", entries[1])
	}

	if _, err := ctrl.Trending("fortnight", 10); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrValidation for unknown period, got %v", err)
	}
}

func TestPlatformUsage(t *testing.T) {
	ctrl, db := newStatsController(t)
	movie, _ := seedStatsLibrary(t, db)

	netflix := &models.Platform{Name: "Netflix"}
	cinema := &models.Platform{Name: "Cinema"}
	for _, platform := range []*models.Platform{netflix, cinema} {
		if err := db.CreatePlatform(platform); err != nil {
			t.Fatalf("Failed to seed platform: %v", err)
		}
	}

	now := time.Now()
	watches := []*models.Watch{
		{ContentID: movie.ID, WatchedAt: now.Add(-time.Hour), PlatformID: &netflix.ID, CompletionPercentage: 100},
		{ContentID: movie.ID, WatchedAt: now.Add(-2 * time.Hour), PlatformID: &netflix.ID, CompletionPercentage: 100},
		{ContentID: movie.ID, WatchedAt: now.Add(-3 * time.Hour), PlatformID: &cinema.ID, CompletionPercentage: 100},
		// No platform recorded
		{ContentID: movie.ID, WatchedAt: now.Add(-4 * time.Hour), CompletionPercentage: 100},
		// Outside the monthly window
		{ContentID: movie.ID, WatchedAt: now.AddDate(0, -2, 0), PlatformID: &cinema.ID, CompletionPercentage: 100},
	}
	for _, watch := range watches {
		if err := db.CreateWatch(watch); err != nil {
			t.Fatalf("Failed to seed watch: %v", err)
		}
	}

	stats, err := ctrl.Platforms("month")
	if err != nil {
		t.Fatalf("Failed to compute platform usage: %v", err)
	}
	if len(stats.Platforms) != 2 {
		t.Fatalf("Expected 2 platforms, got %d", len(stats.Platforms))
	}
	if stats.Platforms[0].Name != "Netflix" || stats.Platforms[0].WatchCount != 2 {
		t.Errorf("Top platform mismatch: %+v", stats.Platforms[0])
	}
	if stats.Platforms[1].Name != "Cinema" || stats.Platforms[1].WatchCount != 1 {
		t.Errorf("Second platform mismatch: %+v", stats.Platforms[1])
	}
	if stats.MostUsed != "Netflix" {
		t.Errorf("Expected most used Netflix, got %q", stats.MostUsed)
	}

	all, err := ctrl.Platforms("all")
	if err != nil {
		t.Fatalf("Failed to compute all-time usage: %v", err)
	}
	if all.Platforms[1].WatchCount != 2 {
		t.Errorf("All-time window should include the old watch: %+v", all.Platforms)
	}

	if _, err := ctrl.Platforms("fortnight"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrValidation for unknown period, got %v", err)
	}
}

func TestPlatformUsageEmpty(t *testing.T) {
	ctrl, _ := newStatsController(t)

	stats, err := ctrl.Platforms("month")
	if err != nil {
		t.Fatalf("Platform usage of empty library should succeed: %v", err)
	}
	if len(stats.Platforms) != 0 || stats.MostUsed != "" {
		t.Errorf("Expected empty usage, got %+v", stats)
	}
}

func TestUnimplementedStats(t *testing.T) {
	ctrl, _ := newStatsController(t)

	if err := ctrl.PersonalRecords(); !errors.Is(err, models.ErrNotImplemented) {
		t.Errorf("Expected ErrNotImplemented, got %v", err)
	}
	if err := ctrl.MonthlySummary(2026, 8); !errors.Is(err, models.ErrNotImplemented) {
		t.Errorf("Expected ErrNotImplemented, got %v", err)
	}
	if err := ctrl.YearInReview(2025); !errors.Is(err, models.ErrNotImplemented) {
		t.Errorf("Expected ErrNotImplemented, got %v", err)
	}
}

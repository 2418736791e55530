package controllers

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/amaumene/gowatcharr/internal/config"
	"github.com/amaumene/gowatcharr/internal/models"
	"github.com/amaumene/gowatcharr/internal/services/tmdb"
	"github.com/amaumene/gowatcharr/internal/utils"
)

var testDBCounter int64

func newTestDatabase(t *testing.T) *models.Database {
	t.Helper()

	name := atomic.AddInt64(&testDBCounter, 1)
	db, err := models.NewDatabase(fmt.Sprintf("file:ctrltest%d?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// newContentController wires a controller with no TMDB API key, so every
// enrichment attempt degrades to an unenriched create.
func newContentController(t *testing.T) (*ContentController, *models.Database) {
	t.Helper()
	db := newTestDatabase(t)
	logger := utils.NewSilentLogger()
	client := tmdb.NewClient(&config.Config{}, logger)
	return NewContentController(db, client, logger), db
}

func intPtr(v int) *int                        { return &v }
func floatPtr(v float64) *float64              { return &v }
func strPtr(v string) *string                  { return &v }
func boolPtr(v bool) *bool                     { return &v }
func statusPtr(s models.Status) *models.Status { return &s }

func TestCreateWithoutProvider(t *testing.T) {
	ctrl, _ := newContentController(t)

	content, err := ctrl.Create(context.Background(), ContentCreateInput{
		Title:       "Dune",
		ContentType: models.ContentTypeMovie,
		Genres:      []string{"Sci-Fi"},
	})
	if err != nil {
		t.Fatalf("Failed to create content: %v", err)
	}
	if content.ID == 0 {
		t.Fatal("Expected generated ID")
	}
	if content.Status != models.StatusPlanned {
		t.Errorf("Expected default status planned, got %q", content.Status)
	}
	if len(content.AITags) != 0 || len(content.MoodTags) != 0 {
		t.Error("Expected AI fields to start empty")
	}
}

func TestCreateWithProviderUnavailable(t *testing.T) {
	ctrl, _ := newContentController(t)

	// No API key configured: enrichment fails but creation proceeds
	content, err := ctrl.Create(context.Background(), ContentCreateInput{
		Title:       "Dune",
		ContentType: models.ContentTypeMovie,
		TMDBID:      intPtr(438631),
	})
	if err != nil {
		t.Fatalf("Create with unavailable provider should succeed: %v", err)
	}
	if content.Overview != "" {
		t.Error("Expected no enrichment")
	}
	if content.TMDBID == nil || *content.TMDBID != 438631 {
		t.Errorf("TMDB ID not kept: %v", content.TMDBID)
	}
}

func TestCreateDuplicateTMDBID(t *testing.T) {
	ctrl, _ := newContentController(t)

	input := ContentCreateInput{Title: "Dune", ContentType: models.ContentTypeMovie, TMDBID: intPtr(438631)}
	if _, err := ctrl.Create(context.Background(), input); err != nil {
		t.Fatalf("Failed to create first content: %v", err)
	}
	if _, err := ctrl.Create(context.Background(), input); !errors.Is(err, models.ErrDuplicate) {
		t.Fatalf("Expected ErrDuplicate, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	ctrl, _ := newContentController(t)

	cases := []ContentCreateInput{
		{Title: "", ContentType: models.ContentTypeMovie},
		{Title: "X", ContentType: "documentary"},
		{Title: "X", ContentType: models.ContentTypeMovie, Status: "paused"},
		{Title: "X", ContentType: models.ContentTypeMovie, Runtime: intPtr(0)},
		{Title: "X", ContentType: models.ContentTypeMovie, PersonalRating: floatPtr(0.5)},
		{Title: "X", ContentType: models.ContentTypeMovie, TMDBRating: floatPtr(10.5)},
		{Title: "X", ContentType: models.ContentTypeTV, NumberOfSeasons: intPtr(0)},
	}
	for i, input := range cases {
		if _, err := ctrl.Create(context.Background(), input); !errors.Is(err, models.ErrValidation) {
			t.Errorf("Case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestUpdateSparse(t *testing.T) {
	ctrl, _ := newContentController(t)

	content, err := ctrl.Create(context.Background(), ContentCreateInput{
		Title:       "Original",
		ContentType: models.ContentTypeMovie,
		Overview:    "An overview",
	})
	if err != nil {
		t.Fatalf("Failed to create content: %v", err)
	}

	updated, err := ctrl.Update(content.ID, ContentUpdateInput{
		Status:         statusPtr(models.StatusCompleted),
		PersonalRating: floatPtr(9),
	})
	if err != nil {
		t.Fatalf("Failed to update content: %v", err)
	}
	if updated.Status != models.StatusCompleted {
		t.Errorf("Status not updated: %q", updated.Status)
	}
	if updated.PersonalRating == nil || *updated.PersonalRating != 9 {
		t.Errorf("Rating not updated: %v", updated.PersonalRating)
	}
	if updated.Title != "Original" || updated.Overview != "An overview" {
		t.Error("Untouched fields changed")
	}

	// Empty update is a no-op on every content field
	same, err := ctrl.Update(content.ID, ContentUpdateInput{})
	if err != nil {
		t.Fatalf("Empty update should succeed: %v", err)
	}
	if same.Status != models.StatusCompleted || same.Title != "Original" {
		t.Error("Empty update changed fields")
	}

	// External AI tooling writes its tags through the same sparse update
	tagged, err := ctrl.Update(content.ID, ContentUpdateInput{
		AITags: &[]string{"epic", "slow-burn"},
	})
	if err != nil {
		t.Fatalf("Failed to update AI tags: %v", err)
	}
	if len(tagged.AITags) != 2 || tagged.AITags[0] != "epic" {
		t.Errorf("AI tags not persisted: %v", tagged.AITags)
	}

	if _, err := ctrl.Update(9999, ContentUpdateInput{Title: strPtr("X")}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := ctrl.Update(content.ID, ContentUpdateInput{PersonalRating: floatPtr(11)}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
}

func TestToggleFavoriteTwice(t *testing.T) {
	ctrl, _ := newContentController(t)

	content, err := ctrl.Create(context.Background(), ContentCreateInput{
		Title:       "Toggle me",
		ContentType: models.ContentTypeMovie,
	})
	if err != nil {
		t.Fatalf("Failed to create content: %v", err)
	}

	on, err := ctrl.ToggleFavorite(content.ID)
	if err != nil {
		t.Fatalf("Failed to toggle favorite: %v", err)
	}
	if !on {
		t.Error("Expected first toggle to set the flag")
	}

	off, err := ctrl.ToggleFavorite(content.ID)
	if err != nil {
		t.Fatalf("Failed to toggle favorite back: %v", err)
	}
	if off {
		t.Error("Expected second toggle to clear the flag")
	}

	if _, err := ctrl.ToggleFavorite(9999); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteContent(t *testing.T) {
	ctrl, _ := newContentController(t)

	content, err := ctrl.Create(context.Background(), ContentCreateInput{
		Title:       "Doomed",
		ContentType: models.ContentTypeMovie,
	})
	if err != nil {
		t.Fatalf("Failed to create content: %v", err)
	}

	deleted, err := ctrl.Delete(content.ID)
	if err != nil || !deleted {
		t.Fatalf("Expected deletion, got deleted=%v err=%v", deleted, err)
	}

	deleted, err = ctrl.Delete(content.ID)
	if err != nil {
		t.Fatalf("Repeat delete should not error: %v", err)
	}
	if deleted {
		t.Error("Expected repeat delete to report false")
	}
}

func TestSimilar(t *testing.T) {
	ctrl, _ := newContentController(t)

	source, err := ctrl.Create(context.Background(), ContentCreateInput{
		Title: "Source", ContentType: models.ContentTypeMovie, Genres: []string{"Action", "Sci-Fi"},
	})
	if err != nil {
		t.Fatalf("Failed to create source: %v", err)
	}
	overlap, err := ctrl.Create(context.Background(), ContentCreateInput{
		Title: "Overlap", ContentType: models.ContentTypeMovie, Genres: []string{"Sci-Fi"},
	})
	if err != nil {
		t.Fatalf("Failed to create overlap: %v", err)
	}
	if _, err := ctrl.Create(context.Background(), ContentCreateInput{
		Title: "Unrelated", ContentType: models.ContentTypeMovie, Genres: []string{"Romance"},
	}); err != nil {
		t.Fatalf("Failed to create unrelated: %v", err)
	}

	similar, err := ctrl.Similar(source.ID, 0)
	if err != nil {
		t.Fatalf("Failed to find similar: %v", err)
	}
	if len(similar) != 1 || similar[0].ID != overlap.ID {
		t.Errorf("Similar mismatch: %v", similar)
	}

	// Missing source yields an empty result, not an error
	empty, err := ctrl.Similar(9999, 10)
	if err != nil {
		t.Fatalf("Similar for missing id should not error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected empty result, got %d items", len(empty))
	}

	if _, err := ctrl.Similar(source.ID, maxSimilarLimit+1); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrValidation for oversized limit, got %v", err)
	}
}

func TestSearchByTitle(t *testing.T) {
	ctrl, _ := newContentController(t)

	if _, err := ctrl.Create(context.Background(), ContentCreateInput{
		Title: "The Matrix", ContentType: models.ContentTypeMovie,
	}); err != nil {
		t.Fatalf("Failed to create content: %v", err)
	}

	results, err := ctrl.SearchByTitle("matrix", "")
	if err != nil {
		t.Fatalf("Failed to search: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected 1 result, got %d", len(results))
	}

	if _, err := ctrl.SearchByTitle("", ""); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrValidation for empty query, got %v", err)
	}
	if _, err := ctrl.SearchByTitle("matrix", "documentary"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrValidation for bad content_type, got %v", err)
	}
}

func TestListValidation(t *testing.T) {
	ctrl, _ := newContentController(t)

	if _, err := ctrl.List(ContentListInput{Skip: -1}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrValidation for negative skip, got %v", err)
	}
	if _, err := ctrl.List(ContentListInput{Limit: maxListLimit + 1}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrValidation for oversized limit, got %v", err)
	}
	if _, err := ctrl.List(ContentListInput{ContentType: "documentary"}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrValidation for bad content_type, got %v", err)
	}

	items, err := ctrl.List(ContentListInput{})
	if err != nil {
		t.Fatalf("Default listing should succeed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected empty library, got %d items", len(items))
	}
}

func TestTitlesNearDuplicate(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"Dune", "Dune", true},
		{"Dune", "dune", true},
		{"Dune", "Dunne", true},
		{"Dune", "Dune: Part Two", false},
		{"The Matrix", "The Matrux", true},
		{"The Matrix", "Inception", false},
	}
	for _, tc := range cases {
		if got := titlesNearDuplicate(tc.a, tc.b); got != tc.want {
			t.Errorf("titlesNearDuplicate(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

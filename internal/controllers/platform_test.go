package controllers

import (
	"errors"
	"testing"

	"github.com/amaumene/gowatcharr/internal/models"
	"github.com/amaumene/gowatcharr/internal/utils"
)

func newPlatformController(t *testing.T) (*PlatformController, *models.Database) {
	t.Helper()
	db := newTestDatabase(t)
	return NewPlatformController(db, utils.NewSilentLogger()), db
}

func TestCreatePlatform(t *testing.T) {
	ctrl, _ := newPlatformController(t)

	platform, err := ctrl.Create(PlatformCreateInput{Name: "Netflix", Homepage: "https://netflix.com"})
	if err != nil {
		t.Fatalf("Failed to create platform: %v", err)
	}
	if platform.ID == 0 || platform.Name != "Netflix" {
		t.Errorf("Platform mismatch: %+v", platform)
	}

	if _, err := ctrl.Create(PlatformCreateInput{Name: "Netflix"}); !errors.Is(err, models.ErrDuplicate) {
		t.Errorf("Expected ErrDuplicate for repeated name, got %v", err)
	}
	if _, err := ctrl.Create(PlatformCreateInput{}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrValidation for empty name, got %v", err)
	}
}

func TestListPlatformsOrdered(t *testing.T) {
	ctrl, _ := newPlatformController(t)

	for _, name := range []string{"Netflix", "Apple TV+", "Disney+"} {
		if _, err := ctrl.Create(PlatformCreateInput{Name: name}); err != nil {
			t.Fatalf("Failed to create platform %q: %v", name, err)
		}
	}

	platforms, err := ctrl.List()
	if err != nil {
		t.Fatalf("Failed to list platforms: %v", err)
	}
	if len(platforms) != 3 {
		t.Fatalf("Expected 3 platforms, got %d", len(platforms))
	}
	if platforms[0].Name != "Apple TV+" || platforms[2].Name != "Netflix" {
		t.Errorf("Platforms not ordered by name: %v", platforms)
	}
}

func TestLinkContent(t *testing.T) {
	ctrl, db := newPlatformController(t)

	content := createTestContent(t, db, "Linked")
	platform, err := ctrl.Create(PlatformCreateInput{Name: "Netflix"})
	if err != nil {
		t.Fatalf("Failed to create platform: %v", err)
	}

	link, err := ctrl.LinkContent(content.ID, PlatformLinkInput{PlatformID: platform.ID, URL: "https://netflix.com/watch/1"})
	if err != nil {
		t.Fatalf("Failed to link content: %v", err)
	}
	if !link.Available {
		t.Error("Expected availability to default to true")
	}

	hidden, err := ctrl.LinkContent(content.ID, PlatformLinkInput{PlatformID: platform.ID, Available: boolPtr(false)})
	if err != nil {
		t.Fatalf("Failed to link unavailable content: %v", err)
	}
	if hidden.Available {
		t.Error("Explicit availability not kept")
	}

	links, err := ctrl.LinksForContent(content.ID)
	if err != nil {
		t.Fatalf("Failed to list links: %v", err)
	}
	if len(links) != 2 {
		t.Errorf("Expected 2 links, got %d", len(links))
	}

	if _, err := ctrl.LinkContent(9999, PlatformLinkInput{PlatformID: platform.ID}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing content, got %v", err)
	}
	if _, err := ctrl.LinkContent(content.ID, PlatformLinkInput{PlatformID: 9999}); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing platform, got %v", err)
	}
	if _, err := ctrl.LinkContent(content.ID, PlatformLinkInput{}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected ErrValidation for missing platform_id, got %v", err)
	}
}

package controllers

import (
	"fmt"

	"github.com/amaumene/gowatcharr/internal/models"
	"github.com/sirupsen/logrus"
)

// PlatformController handles business logic for streaming platforms
type PlatformController struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewPlatformController creates a new platform controller
func NewPlatformController(db *models.Database, logger *logrus.Logger) *PlatformController {
	return &PlatformController{
		db:     db,
		logger: logger,
	}
}

// PlatformCreateInput holds the fields for creating a platform
type PlatformCreateInput struct {
	Name     string `json:"name"`
	LogoPath string `json:"logo_path"`
	Homepage string `json:"homepage"`
}

// Validate checks required fields
func (in *PlatformCreateInput) Validate() error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", models.ErrValidation)
	}
	return nil
}

// PlatformLinkInput holds the fields for linking content to a platform
type PlatformLinkInput struct {
	PlatformID uint   `json:"platform_id"`
	Available  *bool  `json:"available"`
	URL        string `json:"url"`
}

// Validate checks required fields
func (in *PlatformLinkInput) Validate() error {
	if in.PlatformID == 0 {
		return fmt.Errorf("%w: platform_id is required", models.ErrValidation)
	}
	return nil
}

// Create persists a new platform. Platform names are unique.
func (c *PlatformController) Create(input PlatformCreateInput) (*models.Platform, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	platform := &models.Platform{
		Name:     input.Name,
		LogoPath: input.LogoPath,
		Homepage: input.Homepage,
	}
	if err := c.db.CreatePlatform(platform); err != nil {
		return nil, err
	}

	c.logger.WithField("name", platform.Name).Info("Platform created")
	return platform, nil
}

// List retrieves all platforms
func (c *PlatformController) List() ([]*models.Platform, error) {
	return c.db.ListPlatforms()
}

// LinkContent records availability of a content item on a platform. Both the
// content item and the platform must exist.
func (c *PlatformController) LinkContent(contentID uint, input PlatformLinkInput) (*models.ContentPlatform, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := c.db.GetContentByID(contentID); err != nil {
		return nil, err
	}
	if _, err := c.db.GetPlatformByID(input.PlatformID); err != nil {
		return nil, err
	}

	available := true
	if input.Available != nil {
		available = *input.Available
	}

	link := &models.ContentPlatform{
		ContentID:  contentID,
		PlatformID: input.PlatformID,
		Available:  available,
		URL:        input.URL,
	}
	if err := c.db.LinkContentPlatform(link); err != nil {
		return nil, err
	}
	return link, nil
}

// LinksForContent retrieves the platform links of a content item
func (c *PlatformController) LinksForContent(contentID uint) ([]*models.ContentPlatform, error) {
	return c.db.ListContentPlatforms(contentID)
}

package controllers

import (
	"github.com/amaumene/gowatcharr/internal/models"
	"github.com/sirupsen/logrus"
)

// RecommendController is the AI recommendation surface. No real recommender
// exists yet: every operation returns ErrNotImplemented instead of fabricated
// results, so callers get an honest 501 rather than canned data.
type RecommendController struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewRecommendController creates a new recommend controller
func NewRecommendController(db *models.Database, logger *logrus.Logger) *RecommendController {
	return &RecommendController{
		db:     db,
		logger: logger,
	}
}

// Recommend is not implemented yet
func (c *RecommendController) Recommend() error {
	return models.ErrNotImplemented
}

// MoodSuggestions is not implemented yet
func (c *RecommendController) MoodSuggestions(mood string) error {
	return models.ErrNotImplemented
}

// Chat is not implemented yet
func (c *RecommendController) Chat(query string) error {
	return models.ErrNotImplemented
}

// SemanticSearch is not implemented yet
func (c *RecommendController) SemanticSearch(query string, limit int) error {
	return models.ErrNotImplemented
}

// AnalyzeViewingPatterns is not implemented yet
func (c *RecommendController) AnalyzeViewingPatterns(timePeriod, analysisType string) error {
	return models.ErrNotImplemented
}

// ViewingInsights is not implemented yet
func (c *RecommendController) ViewingInsights() error {
	return models.ErrNotImplemented
}

// GenerateTags would attach AI tags to a content item. The content must
// exist; tag generation itself is not implemented yet.
func (c *RecommendController) GenerateTags(contentID uint) error {
	if _, err := c.db.GetContentByID(contentID); err != nil {
		return err
	}
	return models.ErrNotImplemented
}

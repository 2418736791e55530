package handlers

import (
	"github.com/amaumene/gowatcharr/internal/controllers"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// AIHandler exposes the AI recommendation surface. Every endpoint currently
// reports not-implemented.
type AIHandler struct {
	recommendCtrl *controllers.RecommendController
	logger        *logrus.Logger
}

// NewAIHandler creates a new AI handler
func NewAIHandler(recommendCtrl *controllers.RecommendController, logger *logrus.Logger) *AIHandler {
	return &AIHandler{
		recommendCtrl: recommendCtrl,
		logger:        logger,
	}
}

// Recommend handles POST /ai/recommend
func (h *AIHandler) Recommend(c *fiber.Ctx) error {
	return respondError(c, h.recommendCtrl.Recommend())
}

// RecommendSimple handles POST /ai/recommendations, the body-light alias of
// /ai/recommend
func (h *AIHandler) RecommendSimple(c *fiber.Ctx) error {
	return respondError(c, h.recommendCtrl.Recommend())
}

// Analyze handles POST /ai/analyze
func (h *AIHandler) Analyze(c *fiber.Ctx) error {
	var req struct {
		TimePeriod   string `json:"time_period"`
		AnalysisType string `json:"analysis_type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}
	return respondError(c, h.recommendCtrl.AnalyzeViewingPatterns(req.TimePeriod, req.AnalysisType))
}

// Insights handles POST /ai/insights
func (h *AIHandler) Insights(c *fiber.Ctx) error {
	return respondError(c, h.recommendCtrl.ViewingInsights())
}

// MoodSuggest handles POST /ai/mood-suggest
func (h *AIHandler) MoodSuggest(c *fiber.Ctx) error {
	var req struct {
		Mood string `json:"mood"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}
	return respondError(c, h.recommendCtrl.MoodSuggestions(req.Mood))
}

// Chat handles POST /ai/chat
func (h *AIHandler) Chat(c *fiber.Ctx) error {
	var req struct {
		Query string `json:"query"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}
	return respondError(c, h.recommendCtrl.Chat(req.Query))
}

// SemanticSearch handles POST /ai/similar-search
func (h *AIHandler) SemanticSearch(c *fiber.Ctx) error {
	var req struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}
	return respondError(c, h.recommendCtrl.SemanticSearch(req.Query, req.Limit))
}

// GenerateTags handles POST /content/:id/generate-tags
func (h *AIHandler) GenerateTags(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	return respondError(c, h.recommendCtrl.GenerateTags(id))
}

package handlers

import (
	"github.com/amaumene/gowatcharr/internal/controllers"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// StatsHandler handles viewing statistics requests
type StatsHandler struct {
	statsCtrl *controllers.StatsController
	logger    *logrus.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsCtrl *controllers.StatsController, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{
		statsCtrl: statsCtrl,
		logger:    logger,
	}
}

// Overview handles GET /stats/overview
func (h *StatsHandler) Overview(c *fiber.Ctx) error {
	stats, err := h.statsCtrl.Overview()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// ViewingTime handles GET /stats/viewing-time
func (h *StatsHandler) ViewingTime(c *fiber.Ctx) error {
	stats, err := h.statsCtrl.ViewingTime(c.Query("period", "month"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// Genres handles GET /stats/genres
func (h *StatsHandler) Genres(c *fiber.Ctx) error {
	stats, err := h.statsCtrl.Genres(c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// Ratings handles GET /stats/ratings
func (h *StatsHandler) Ratings(c *fiber.Ctx) error {
	stats, err := h.statsCtrl.Ratings()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// Completion handles GET /stats/completion
func (h *StatsHandler) Completion(c *fiber.Ctx) error {
	stats, err := h.statsCtrl.Completion()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// Platforms handles GET /stats/platforms
func (h *StatsHandler) Platforms(c *fiber.Ctx) error {
	stats, err := h.statsCtrl.Platforms(c.Query("period", "month"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// Trending handles GET /stats/trending
func (h *StatsHandler) Trending(c *fiber.Ctx) error {
	entries, err := h.statsCtrl.Trending(c.Query("period", "week"), c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"trending": entries})
}

// PersonalRecords handles GET /stats/personal-records
func (h *StatsHandler) PersonalRecords(c *fiber.Ctx) error {
	return respondError(c, h.statsCtrl.PersonalRecords())
}

// MonthlySummary handles GET /stats/monthly-summary
func (h *StatsHandler) MonthlySummary(c *fiber.Ctx) error {
	return respondError(c, h.statsCtrl.MonthlySummary(c.QueryInt("year"), c.QueryInt("month")))
}

// YearInReview handles GET /stats/year-in-review
func (h *StatsHandler) YearInReview(c *fiber.Ctx) error {
	return respondError(c, h.statsCtrl.YearInReview(c.QueryInt("year")))
}

package handlers

import (
	"time"

	"github.com/amaumene/gowatcharr/internal/controllers"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// WatchHandler handles watch history and session requests
type WatchHandler struct {
	watchCtrl *controllers.WatchController
	logger    *logrus.Logger
}

// NewWatchHandler creates a new watch handler
func NewWatchHandler(watchCtrl *controllers.WatchController, logger *logrus.Logger) *WatchHandler {
	return &WatchHandler{
		watchCtrl: watchCtrl,
		logger:    logger,
	}
}

// Record handles POST /watches
func (h *WatchHandler) Record(c *fiber.Ctx) error {
	var input controllers.WatchCreateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}

	watch, err := h.watchCtrl.Record(input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(watch)
}

// History handles GET /watches
func (h *WatchHandler) History(c *fiber.Ctx) error {
	input := controllers.WatchHistoryInput{
		Skip:  c.QueryInt("skip", 0),
		Limit: c.QueryInt("limit", 100),
	}

	if raw := c.QueryInt("content_id", 0); raw > 0 {
		id := uint(raw)
		input.ContentID = &id
	}
	if raw := c.QueryInt("platform_id", 0); raw > 0 {
		id := uint(raw)
		input.PlatformID = &id
	}
	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid start_date"})
		}
		input.StartDate = &parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid end_date"})
		}
		input.EndDate = &parsed
	}

	watches, err := h.watchCtrl.History(input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(watches)
}

// Get handles GET /watches/:id
func (h *WatchHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	watch, err := h.watchCtrl.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(watch)
}

// Delete handles DELETE /watches/:id
func (h *WatchHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	deleted, err := h.watchCtrl.Delete(id)
	if err != nil {
		return respondError(c, err)
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "watch record not found"})
	}
	return c.JSON(fiber.Map{"message": "watch record deleted successfully"})
}

// WatchCount handles GET /content/:id/watch-count
func (h *WatchHandler) WatchCount(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	count, err := h.watchCtrl.CountForContent(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"content_id": id, "watch_count": count})
}

// StartSession handles POST /watches/session/start
func (h *WatchHandler) StartSession(c *fiber.Ctx) error {
	var input controllers.SessionStartInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}

	session, err := h.watchCtrl.StartSession(input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

// EndSession handles POST /watches/session/:id/end
func (h *WatchHandler) EndSession(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var input controllers.SessionEndInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}

	session, err := h.watchCtrl.EndSession(id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(session)
}

package handlers

import (
	"github.com/amaumene/gowatcharr/internal/controllers"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// PlatformHandler handles streaming platform requests
type PlatformHandler struct {
	platformCtrl *controllers.PlatformController
	logger       *logrus.Logger
}

// NewPlatformHandler creates a new platform handler
func NewPlatformHandler(platformCtrl *controllers.PlatformController, logger *logrus.Logger) *PlatformHandler {
	return &PlatformHandler{
		platformCtrl: platformCtrl,
		logger:       logger,
	}
}

// Create handles POST /platforms
func (h *PlatformHandler) Create(c *fiber.Ctx) error {
	var input controllers.PlatformCreateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}

	platform, err := h.platformCtrl.Create(input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(platform)
}

// List handles GET /platforms
func (h *PlatformHandler) List(c *fiber.Ctx) error {
	platforms, err := h.platformCtrl.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(platforms)
}

// LinkContent handles POST /content/:id/platforms
func (h *PlatformHandler) LinkContent(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var input controllers.PlatformLinkInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}

	link, err := h.platformCtrl.LinkContent(id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(link)
}

// ListForContent handles GET /content/:id/platforms
func (h *PlatformHandler) ListForContent(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	links, err := h.platformCtrl.LinksForContent(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(links)
}

package handlers

import (
	"github.com/amaumene/gowatcharr/internal/controllers"
	"github.com/amaumene/gowatcharr/internal/models"
	"github.com/amaumene/gowatcharr/internal/services/tmdb"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ContentHandler handles content watchlist requests
type ContentHandler struct {
	contentCtrl *controllers.ContentController
	tmdbClient  *tmdb.Client
	logger      *logrus.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentCtrl *controllers.ContentController, tmdbClient *tmdb.Client, logger *logrus.Logger) *ContentHandler {
	return &ContentHandler{
		contentCtrl: contentCtrl,
		tmdbClient:  tmdbClient,
		logger:      logger,
	}
}

// List handles GET /content
func (h *ContentHandler) List(c *fiber.Ctx) error {
	input := controllers.ContentListInput{
		ContentType: models.ContentType(c.Query("content_type")),
		Status:      models.Status(c.Query("status")),
		Genre:       c.Query("genre"),
		Skip:        c.QueryInt("skip", 0),
		Limit:       c.QueryInt("limit", 100),
	}

	items, err := h.contentCtrl.List(input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// Create handles POST /content
func (h *ContentHandler) Create(c *fiber.Ctx) error {
	var input controllers.ContentCreateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}

	content, err := h.contentCtrl.Create(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(content)
}

// Get handles GET /content/:id
func (h *ContentHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	content, err := h.contentCtrl.Get(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(content)
}

// Update handles PUT and PATCH /content/:id. Both apply a sparse update:
// only the fields present in the body are touched.
func (h *ContentHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var input controllers.ContentUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}

	content, err := h.contentCtrl.Update(id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(content)
}

// Delete handles DELETE /content/:id
func (h *ContentHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	deleted, err := h.contentCtrl.Delete(id)
	if err != nil {
		return respondError(c, err)
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "content not found"})
	}
	return c.JSON(fiber.Map{"message": "content deleted successfully"})
}

// ToggleFavorite handles POST /content/:id/favorite
func (h *ContentHandler) ToggleFavorite(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	isFavorite, err := h.contentCtrl.ToggleFavorite(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"is_favorite": isFavorite})
}

// Similar handles GET /content/:id/similar
func (h *ContentHandler) Similar(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	similar, err := h.contentCtrl.Similar(id, c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"similar": similar})
}

// SearchLocal handles GET /content/search: substring search over stored titles
func (h *ContentHandler) SearchLocal(c *fiber.Ctx) error {
	items, err := h.contentCtrl.SearchByTitle(c.Query("query"), models.ContentType(c.Query("content_type")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"results": items})
}

// tmdbSearchRequest is the body for the TMDB catalog search
type tmdbSearchRequest struct {
	Query       string             `json:"query"`
	ContentType models.ContentType `json:"content_type"`
}

// SearchTMDB handles POST /content/search: catalog search against TMDB
func (h *ContentHandler) SearchTMDB(c *fiber.Ctx) error {
	var req tmdbSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid request body"})
	}
	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "query must not be empty"})
	}
	if req.ContentType != "" && !req.ContentType.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid content_type"})
	}

	results, err := h.tmdbClient.Search(c.Context(), req.Query, req.ContentType)
	if err != nil {
		h.logger.WithError(err).Warn("TMDB search failed")
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"results": results})
}

// Trending handles GET /content/trending: trending catalog entries from TMDB
func (h *ContentHandler) Trending(c *fiber.Ctx) error {
	contentType := models.ContentType(c.Query("content_type"))
	if contentType != "" && !contentType.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid content_type"})
	}
	window := c.Query("time_window", "week")
	if window != "day" && window != "week" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "time_window must be day or week"})
	}

	results, err := h.tmdbClient.Trending(c.Context(), contentType, window)
	if err != nil {
		h.logger.WithError(err).Warn("TMDB trending failed")
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"results": results})
}

// Popular handles GET /content/popular: popular catalog entries from TMDB
func (h *ContentHandler) Popular(c *fiber.Ctx) error {
	contentType := models.ContentType(c.Query("content_type", string(models.ContentTypeMovie)))
	if !contentType.IsValid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": "invalid content_type"})
	}

	results, err := h.tmdbClient.Popular(c.Context(), contentType)
	if err != nil {
		h.logger.WithError(err).Warn("TMDB popular failed")
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"results": results})
}

// Statistics handles GET /content/statistics
func (h *ContentHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.contentCtrl.Statistics()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

package records

import (
	"errors"
	"net/url"
	"strings"

	"dex-wiki/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for records and the cache.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the record and cache routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/records/:kind/:id", h.HandleGet)

	group := app.Group("/cache")
	group.Get("/stats", h.HandleStats)
	group.Delete("/", h.HandleClear)
	group.Post("/preload", h.HandlePreload)
	group.Put("/size", h.HandleResize)
}

// HandleGet returns one record.
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	id, _ := url.PathUnescape(c.Params("id"))
	rec, ok, err := h.service.Get(c.Params("kind"), id, c.Query("subfolder"))
	if err != nil {
		return h.fail(c, err)
	}
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "record not found"})
	}
	return c.JSON(rec)
}

// HandleStats returns the cache statistics.
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	return c.JSON(h.service.Stats())
}

// HandleClear empties the cache.
func (h *Handler) HandleClear(c *fiber.Ctx) error {
	logger.WithRayID(h.service.logger, c).Info("Clearing record cache")
	h.service.Clear()
	return c.SendStatus(fiber.StatusNoContent)
}

// HandlePreload warms the cache. The optional "subfolders" query parameter is
// a comma separated list.
func (h *Handler) HandlePreload(c *fiber.Ctx) error {
	var subfolders []string
	if raw := c.Query("subfolders"); raw != "" {
		for _, sf := range strings.Split(raw, ",") {
			if sf = strings.TrimSpace(sf); sf != "" {
				subfolders = append(subfolders, sf)
			}
		}
	}

	stats, err := h.service.Preload(c.Context(), subfolders)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(stats)
}

// HandleResize changes the cache bound.
func (h *Handler) HandleResize(c *fiber.Ctx) error {
	var req struct {
		MaxSize int `json:"max_size"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := h.service.Resize(req.MaxSize); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(h.service.Stats())
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrBadRequest) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.service.logger, c).Error("Request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

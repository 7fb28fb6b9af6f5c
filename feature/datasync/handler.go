package datasync

import (
	"dex-wiki/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes the sync operations over HTTP.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Get("/structure", h.HandleStructure)
	group.Post("/pull", h.HandlePull)
}

// HandleStructure reports missing data folders, locally and in the bucket.
func (h *Handler) HandleStructure(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	local, remote, err := h.service.CheckStructure(c.Context())
	if err != nil {
		l.Error("Structure check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if fix := c.QueryBool("fix"); fix && len(local) > 0 {
		if err := h.service.FixLocal(local); err != nil {
			l.Error("Failed to fix data folders", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "fixed", "fixed": local, "remote_missing": remote})
	}

	return c.JSON(fiber.Map{
		"status":         "checked",
		"local_missing":  emptyIfNil(local),
		"remote_missing": emptyIfNil(remote),
	})
}

// HandlePull mirrors the bucket into the data root.
func (h *Handler) HandlePull(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering data pull")

	report, err := h.service.Pull(c.Context())
	if err != nil {
		l.Error("Pull failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

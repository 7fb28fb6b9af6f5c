package catalog

import (
	"net/url"

	"dex-wiki/core/index"
	"dex-wiki/core/logger"
	"dex-wiki/core/slug"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// EntryView is one creature of a reverse index response.
type EntryView[M any] struct {
	Name     string `json:"name"`
	Species  string `json:"species"`
	National *int   `json:"national,omitempty"`
	Meta     M      `json:"meta"`
}

func views[M any](entries []index.Entry[M]) []EntryView[M] {
	out := make([]EntryView[M], 0, len(entries))
	for _, e := range entries {
		v := EntryView[M]{Name: e.Creature.Name, Species: e.Creature.Species, Meta: e.Meta}
		if n, ok := e.Creature.NationalNumber(); ok {
			v.National = &n
		}
		out = append(out, v)
	}
	return out
}

// Handler serves the reverse indexes.
type Handler struct {
	catalog *Catalog
}

// NewHandler creates a new HTTP handler.
func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/abilities", h.keys(func(ix *Indexes) []string { return ix.Abilities.Keys() }))
	group.Get("/abilities/:id", h.HandleAbility)
	group.Get("/moves", h.keys(func(ix *Indexes) []string { return ix.Moves.Keys() }))
	group.Get("/moves/:id", h.HandleMove)
	group.Get("/items", h.keys(func(ix *Indexes) []string { return ix.Items.Keys() }))
	group.Get("/items/:id", h.HandleItem)
	group.Post("/rebuild", h.HandleRebuild)
}

// HandleAbility lists the creatures that can have an ability.
func (h *Handler) HandleAbility(c *fiber.Ctx) error {
	return h.lookup(c, func(ix *Indexes, id string) (any, bool) {
		entries, ok := ix.Abilities[id]
		return views(entries), ok
	})
}

// HandleMove lists the creatures that learn a move.
func (h *Handler) HandleMove(c *fiber.Ctx) error {
	return h.lookup(c, func(ix *Indexes, id string) (any, bool) {
		entries, ok := ix.Moves[id]
		return views(entries), ok
	})
}

// HandleItem lists the creatures that may hold an item.
func (h *Handler) HandleItem(c *fiber.Ctx) error {
	return h.lookup(c, func(ix *Indexes, id string) (any, bool) {
		entries, ok := ix.Items[id]
		return views(entries), ok
	})
}

// HandleRebuild drops the cached indexes and builds them again.
func (h *Handler) HandleRebuild(c *fiber.Ctx) error {
	h.catalog.Invalidate()
	ix, err := h.indexes(c)
	if ix == nil {
		return err
	}
	return c.JSON(fiber.Map{
		"creatures": ix.Creatures,
		"abilities": len(ix.Abilities),
		"moves":     len(ix.Moves),
		"items":     len(ix.Items),
		"built":     ix.Built,
	})
}

func (h *Handler) indexes(c *fiber.Ctx) (*Indexes, error) {
	ix, err := h.catalog.Indexes(c.Context())
	if err != nil {
		logger.WithRayID(h.catalog.logger, c).Error("Failed to build indexes", zap.Error(err))
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ix, nil
}

func (h *Handler) keys(get func(*Indexes) []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ix, err := h.indexes(c)
		if ix == nil {
			return err
		}
		return c.JSON(fiber.Map{"keys": get(ix)})
	}
}

func (h *Handler) lookup(c *fiber.Ctx, find func(*Indexes, string) (any, bool)) error {
	id := slug.Normalize(param(c, "id"))
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id is required"})
	}

	ix, err := h.indexes(c)
	if ix == nil {
		return err
	}

	creatures, ok := find(ix, id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no creature references " + id})
	}
	return c.JSON(fiber.Map{"id": id, "creatures": creatures})
}

// param returns a path parameter with percent-escapes decoded.
func param(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

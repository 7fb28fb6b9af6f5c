package datasync

import (
	"dex-wiki/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	enabled bool
}

// NewFeature creates the sync feature.
func NewFeature(client storage.Client, bucket string, cfg Config, dataDir string, logger *zap.Logger, cache Invalidator) *Feature {
	svc := NewService(client, bucket, cfg, dataDir, logger, cache)
	return &Feature{service: svc, handler: NewHandler(svc), enabled: cfg.Enabled}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "datasync"
}

// IsEnabled reports whether the sync routes are exposed.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

package loader

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature is a pluggable module of the HTTP server.
type Feature interface {
	// Name identifies the feature in logs.
	Name() string
	// IsEnabled reports whether the feature should be loaded.
	IsEnabled() bool
	// Load registers the feature's routes.
	Load(app fiber.Router) error
}

// Manager keeps the registered features in registration order.
type Manager struct {
	logger   *zap.Logger
	features []Feature
}

// NewManager creates an empty feature manager.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{logger: logger}
}

// Register adds a feature. Registering the same name twice is ignored.
func (m *Manager) Register(f Feature) {
	for _, existing := range m.features {
		if existing.Name() == f.Name() {
			m.logger.Warn("Feature already registered", zap.String("feature", f.Name()))
			return
		}
	}
	m.features = append(m.features, f)
}

// Features returns the names of every registered feature.
func (m *Manager) Features() []string {
	names := make([]string, 0, len(m.features))
	for _, f := range m.features {
		names = append(names, f.Name())
	}
	return names
}

// LoadAll loads every enabled feature and stops at the first failure.
func (m *Manager) LoadAll(app fiber.Router) error {
	for _, f := range m.features {
		if !f.IsEnabled() {
			m.logger.Info("Feature disabled, skipping", zap.String("feature", f.Name()))
			continue
		}
		if err := f.Load(app); err != nil {
			return fmt.Errorf("failed to load feature %s: %w", f.Name(), err)
		}
		m.logger.Info("Feature loaded", zap.String("feature", f.Name()))
	}
	return nil
}

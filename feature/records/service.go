package records

import (
	"context"
	"errors"
	"fmt"

	"dex-wiki/core/models"
	"dex-wiki/core/store"

	"go.uber.org/zap"
)

// ErrBadRequest marks errors caused by the caller's input.
var ErrBadRequest = errors.New("bad request")

// Service exposes store operations to the HTTP layer.
type Service struct {
	store   *store.Store
	logger  *zap.Logger
	onClear []func()
}

// NewService creates a records service. onClear hooks run after every cache
// clear, so derived caches can be dropped with it.
func NewService(st *store.Store, logger *zap.Logger, onClear ...func()) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, logger: logger, onClear: onClear}
}

// Get loads one record. The bool is false when no such record exists.
func (s *Service) Get(kind, id, subfolder string) (models.Record, bool, error) {
	k, err := models.ParseKind(kind)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if subfolder != "" {
		if k != models.KindCreature {
			return nil, false, fmt.Errorf("%w: subfolder only applies to creatures", ErrBadRequest)
		}
		if !models.IsSubfolder(subfolder) {
			return nil, false, fmt.Errorf("%w: unknown subfolder %q", ErrBadRequest, subfolder)
		}
	}

	rec, ok := s.store.Load(k, id, subfolder)
	return rec, ok, nil
}

// Stats returns the cache statistics.
func (s *Service) Stats() store.Stats {
	return s.store.Stats()
}

// Clear empties the record cache and runs the clear hooks.
func (s *Service) Clear() {
	s.store.ClearCache()
	for _, fn := range s.onClear {
		fn()
	}
}

// Preload warms the cache with the given creature subfolders.
func (s *Service) Preload(ctx context.Context, subfolders []string) (*store.PreloadStats, error) {
	for _, sf := range subfolders {
		if !models.IsSubfolder(sf) {
			return nil, fmt.Errorf("%w: unknown subfolder %q", ErrBadRequest, sf)
		}
	}
	return s.store.Preload(ctx, subfolders...)
}

// Resize changes the cache bound.
func (s *Service) Resize(n int) error {
	if err := s.store.SetMaxCacheSize(n); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}

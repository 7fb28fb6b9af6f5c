package catalog

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"dex-wiki/core/index"
	"dex-wiki/core/store"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Indexes is one consistent build of every reverse index.
type Indexes struct {
	Abilities index.Reverse[AbilitySlot]
	Moves     index.Reverse[Learnset]
	Items     index.Reverse[HeldItem]
	Creatures int
	Built     time.Time
}

// Catalog builds the reverse indexes from the canonical creatures of a store
// and keeps the result until it expires or is invalidated.
type Catalog struct {
	store  *store.Store
	logger *zap.Logger
	ttl    time.Duration

	// mu guards built and gen. gen is bumped by Invalidate so a build that
	// started earlier does not store its result.
	mu     sync.RWMutex
	built  *Indexes
	gen    uint64
	builds singleflight.Group

	// afterBuild runs between a build finishing and its result being stored.
	afterBuild func()
}

// New creates a catalog. A ttl of zero keeps a build until Invalidate.
func New(st *store.Store, logger *zap.Logger, ttl time.Duration) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{store: st, logger: logger, ttl: ttl}
}

func (c *Catalog) fresh(ix *Indexes) bool {
	return ix != nil && (c.ttl <= 0 || time.Since(ix.Built) <= c.ttl)
}

// Indexes returns the current build, building it when missing or expired.
// Concurrent callers share one build.
func (c *Catalog) Indexes(ctx context.Context) (*Indexes, error) {
	c.mu.RLock()
	ix, gen := c.built, c.gen
	c.mu.RUnlock()
	if c.fresh(ix) {
		return ix, nil
	}

	// Callers arriving after an Invalidate do not join a build started
	// before it.
	result, err, _ := c.builds.Do(fmt.Sprintf("indexes-%d", gen), func() (any, error) {
		c.mu.RLock()
		ix := c.built
		c.mu.RUnlock()
		if c.fresh(ix) {
			return ix, nil
		}

		ix, err := c.build(ctx)
		if err != nil {
			return nil, err
		}
		if c.afterBuild != nil {
			c.afterBuild()
		}

		c.mu.Lock()
		if c.gen == gen {
			c.built = ix
		} else {
			c.logger.Debug("Discarding index build invalidated while running")
		}
		c.mu.Unlock()
		return ix, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Indexes), nil
}

func (c *Catalog) build(ctx context.Context) (*Indexes, error) {
	start := time.Now()
	creatures := slices.Collect(c.store.IterateCanonical())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records := slices.Values(creatures)

	ix := &Indexes{Creatures: len(creatures)}
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		ix.Abilities = Abilities(records)
	}()
	go func() {
		defer wg.Done()
		ix.Moves = Moves(records)
	}()
	go func() {
		defer wg.Done()
		ix.Items = Items(records)
	}()
	wg.Wait()
	ix.Built = time.Now()

	c.logger.Info("Built reverse indexes",
		zap.Int("creatures", ix.Creatures),
		zap.Int("abilities", len(ix.Abilities)),
		zap.Int("moves", len(ix.Moves)),
		zap.Int("items", len(ix.Items)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return ix, nil
}

// Invalidate drops the current build along with any build still running.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	c.built = nil
	c.gen++
	c.mu.Unlock()
}

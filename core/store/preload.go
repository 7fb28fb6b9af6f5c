package store

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"dex-wiki/core/models"
	"dex-wiki/core/slug"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxPreloadWorkers = 32

// PreloadStats summarizes one Preload call.
type PreloadStats struct {
	TotalLoaded     int            `json:"total_loaded"`
	Failed          int            `json:"failed"`
	BySubfolder     map[string]int `json:"by_subfolder"`
	CacheSizeBefore int            `json:"cache_size_before"`
	CacheSizeAfter  int            `json:"cache_size_after"`
	Elapsed         time.Duration  `json:"elapsed"`
}

type preloaded struct {
	key cacheKey
	rec models.Record
}

func (s *Store) preloadWorkers() int {
	if s.workers > 0 {
		return s.workers
	}
	return min(maxPreloadWorkers, runtime.NumCPU()*4)
}

// Preload reads every creature file in the given subfolders (all of them
// when none are given) in parallel and inserts each subfolder's records into
// the cache in a single locked pass. Files that fail to decode are logged and
// skipped. Cancelling ctx stops scheduling further reads.
func (s *Store) Preload(ctx context.Context, subfolders ...string) (*PreloadStats, error) {
	if len(subfolders) == 0 {
		subfolders = models.CreatureSubfolders
	}

	start := time.Now()
	stats := &PreloadStats{
		BySubfolder:     make(map[string]int, len(subfolders)),
		CacheSizeBefore: s.CacheSize(),
	}

	listings := make(map[string][]string, len(subfolders))
	discovered := 0
	for _, sf := range subfolders {
		names, err := listRecordFiles(s.dir(models.KindCreature, sf))
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				s.logger.Warn("Failed to list subfolder", zap.String("subfolder", sf), zap.Error(err))
			}
			continue
		}
		listings[sf] = names
		discovered += len(names)
	}

	maxSize := s.maxCacheSize()
	if discovered > maxSize {
		s.logger.Warn("Preload exceeds cache capacity, earlier records will be evicted",
			zap.Int("files", discovered),
			zap.Int("max_size", maxSize),
		)
	}

	workers := s.preloadWorkers()
	s.logger.Info("Preloading creatures",
		zap.Strings("subfolders", subfolders),
		zap.Int("files", discovered),
		zap.Int("workers", workers),
	)

	for _, sf := range subfolders {
		names, ok := listings[sf]
		if !ok {
			stats.BySubfolder[sf] = 0
			continue
		}

		since := s.saveSequence()
		batch, failed, err := s.readBatch(ctx, sf, names, workers)
		stats.Failed += failed
		if err != nil {
			return stats, err
		}

		s.insertBatch(batch, since)
		stats.BySubfolder[sf] = len(batch)
		stats.TotalLoaded += len(batch)
		s.logger.Debug("Preloaded subfolder", zap.String("subfolder", sf), zap.Int("records", len(batch)))
	}

	stats.CacheSizeAfter = s.CacheSize()
	stats.Elapsed = time.Since(start)
	s.logger.Info("Preload complete",
		zap.Int("loaded", stats.TotalLoaded),
		zap.Int("failed", stats.Failed),
		zap.Int("cache_size", stats.CacheSizeAfter),
		zap.Duration("elapsed", stats.Elapsed),
	)
	return stats, nil
}

// readBatch decodes names concurrently. The result keeps the input order.
func (s *Store) readBatch(ctx context.Context, subfolder string, names []string, workers int) ([]preloaded, int, error) {
	dir := s.dir(models.KindCreature, subfolder)
	results := make([]*preloaded, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range names {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := s.readFile(models.KindCreature, filepath.Join(dir, name))
			if err != nil {
				s.metrics.decodeFailed()
				s.logger.Warn("Skipping unreadable record", zap.String("file", name), zap.Error(err))
				return nil
			}
			id := slug.Normalize(strings.TrimSuffix(name, recordExt))
			results[i] = &preloaded{
				key: cacheKey{Kind: models.KindCreature, ID: id, Subfolder: subfolder},
				rec: rec,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	batch := make([]preloaded, 0, len(results))
	for _, r := range results {
		if r != nil {
			batch = append(batch, *r)
		}
	}
	return batch, len(names) - len(batch), nil
}

// insertBatch adds records under one write lock. A record already in the
// cache is only promoted, and one saved after since is skipped, so a batch
// read from disk never replaces a newer value. A creature keeps the subfolder
// it was first seen in.
func (s *Store) insertBatch(batch []preloaded, since uint64) {
	if len(batch) == 0 {
		return
	}
	s.lock.WithWrite(func() {
		for _, p := range batch {
			if _, cached := s.cache.Get(p.key); !cached && s.savedAt[p.key] <= since {
				s.cache.Add(p.key, p.rec)
			}
			if _, known := s.subfolders[p.key.ID]; !known {
				s.subfolders[p.key.ID] = p.key.Subfolder
			}
		}
		s.metrics.size(s.cache.Len())
	})
}

func (s *Store) maxCacheSize() int {
	var n int
	s.lock.WithRead(func() {
		n = s.maxSize
	})
	return n
}

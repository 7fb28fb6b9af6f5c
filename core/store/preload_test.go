package store

import (
	"context"
	"path/filepath"
	"testing"

	"dex-wiki/core/models"
	"dex-wiki/core/models/modeltest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func seedCreatures(t *testing.T, root string) {
	t.Helper()
	writeCreature(t, root, "default", "bulbasaur", modeltest.Creature("bulbasaur", 1))
	writeCreature(t, root, "default", "ivysaur", modeltest.Creature("ivysaur", 2))
	writeCreature(t, root, "default", "venusaur", modeltest.Creature("venusaur", 3))
	writeCreature(t, root, "variant", "meowth-alola", modeltest.Creature("meowth-alola", 52, modeltest.NonDefault()))
	writeRaw(t, filepath.Join(root, "creature", "variant", "broken.json"), "{")
	writeRaw(t, filepath.Join(root, "creature", "variant", "notes.txt"), "ignored")
}

func TestPreload(t *testing.T) {
	t.Run("AllSubfolders", func(t *testing.T) {
		s, root := newTestStore(t, 100)
		seedCreatures(t, root)

		stats, err := s.Preload(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 4, stats.TotalLoaded)
		assert.Equal(t, 1, stats.Failed)
		assert.Equal(t, map[string]int{
			"default":        3,
			"transformation": 0,
			"variant":        1,
			"cosmetic":       0,
		}, stats.BySubfolder)
		assert.Equal(t, 0, stats.CacheSizeBefore)
		assert.Equal(t, 4, stats.CacheSizeAfter)
		assert.Positive(t, stats.Elapsed)

		reads := s.DiskReads()
		c, ok := s.Creature("meowth-alola", "")
		require.True(t, ok)
		assert.Equal(t, "meowth-alola", c.Name)
		assert.Equal(t, reads, s.DiskReads(), "preloaded records are served from cache")
		assert.Equal(t, uint64(1), s.Stats().Hits)
	})

	t.Run("SelectedSubfolders", func(t *testing.T) {
		s, root := newTestStore(t, 100)
		seedCreatures(t, root)

		stats, err := s.Preload(context.Background(), "variant")
		require.NoError(t, err)
		assert.Equal(t, 1, stats.TotalLoaded)
		assert.Equal(t, map[string]int{"variant": 1}, stats.BySubfolder)
	})

	t.Run("WarnsWhenOverCapacity", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		s, err := New(Config{Dir: t.TempDir(), MaxCacheSize: 2, PreloadWorkers: 2}, zap.New(core))
		require.NoError(t, err)
		seedCreatures(t, s.DataDir())

		stats, err := s.Preload(context.Background(), "default")
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalLoaded)
		assert.Equal(t, 2, stats.CacheSizeAfter)
		assert.Equal(t, 1, logs.FilterMessage("Preload exceeds cache capacity, earlier records will be evicted").Len())
		assert.Equal(t, []string{"ivysaur", "venusaur"}, cachedIDs(s))
	})

	t.Run("KeepsExistingSubfolderIndex", func(t *testing.T) {
		s, root := newTestStore(t, 100)
		writeCreature(t, root, "default", "eevee", modeltest.Creature("eevee", 133))
		writeCreature(t, root, "cosmetic", "eevee", modeltest.Creature("eevee", 133, modeltest.NonDefault()))

		_, err := s.Preload(context.Background())
		require.NoError(t, err)

		c, ok := s.Creature("eevee", "")
		require.True(t, ok)
		assert.True(t, c.IsDefault)
	})

	t.Run("SaveDuringReadWins", func(t *testing.T) {
		s, root := newTestStore(t, 100)
		writeCreature(t, root, "default", "bulbasaur", modeltest.Creature("bulbasaur", 1))

		since := s.saveSequence()
		batch, _, err := s.readBatch(context.Background(), "default", []string{"bulbasaur.json"}, 1)
		require.NoError(t, err)

		saved := modeltest.Creature("bulbasaur", 1)
		saved.Color = "saved"
		_, err = s.Save(models.KindCreature, "bulbasaur", saved, "default")
		require.NoError(t, err)

		s.insertBatch(batch, since)
		c, ok := s.Creature("bulbasaur", "")
		require.True(t, ok)
		assert.Same(t, saved, c)
	})

	t.Run("SavedThenEvictedIsNotRestored", func(t *testing.T) {
		s, root := newTestStore(t, 100)
		writeCreature(t, root, "default", "bulbasaur", modeltest.Creature("bulbasaur", 1))

		since := s.saveSequence()
		batch, _, err := s.readBatch(context.Background(), "default", []string{"bulbasaur.json"}, 1)
		require.NoError(t, err)

		saved := modeltest.Creature("bulbasaur", 1)
		saved.Color = "saved"
		_, err = s.Save(models.KindCreature, "bulbasaur", saved, "default")
		require.NoError(t, err)
		s.ClearCache()

		s.insertBatch(batch, since)
		assert.Zero(t, s.CacheSize())
		c, ok := s.Creature("bulbasaur", "")
		require.True(t, ok)
		assert.Equal(t, "saved", c.Color)
	})

	t.Run("Cancelled", func(t *testing.T) {
		s, root := newTestStore(t, 100)
		seedCreatures(t, root)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := s.Preload(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("MissingDataRoot", func(t *testing.T) {
		s, _ := newTestStore(t, 100)
		stats, err := s.Preload(context.Background())
		require.NoError(t, err)
		assert.Zero(t, stats.TotalLoaded)
		assert.Len(t, stats.BySubfolder, len(models.CreatureSubfolders))
	})
}

func TestPreloadWorkers(t *testing.T) {
	s, _ := newTestStore(t, 10)
	n := s.preloadWorkers()
	assert.Positive(t, n)
	assert.LessOrEqual(t, n, maxPreloadWorkers)

	s.workers = 3
	assert.Equal(t, 3, s.preloadWorkers())
}

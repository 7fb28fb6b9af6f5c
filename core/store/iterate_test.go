package store

import (
	"path/filepath"
	"slices"
	"testing"

	"dex-wiki/core/models"
	"dex-wiki/core/models/modeltest"

	"github.com/stretchr/testify/assert"
)

func names(seq func(func(*models.Creature) bool)) []string {
	var out []string
	for c := range seq {
		out = append(out, c.Name)
	}
	return out
}

func seedIteration(t *testing.T, root string) {
	t.Helper()
	writeCreature(t, root, "default", "ivysaur", modeltest.Creature("ivysaur", 2))
	writeCreature(t, root, "default", "bulbasaur", modeltest.Creature("bulbasaur", 1))
	writeCreature(t, root, "transformation", "castform-sunny",
		modeltest.Creature("castform-sunny", 351, modeltest.NonDefault()))
	// Same identity as default/bulbasaur under a different file name.
	writeCreature(t, root, "cosmetic", "bulbasaur-copy", modeltest.Creature("Bulbasaur", 1))
	writeRaw(t, filepath.Join(root, "creature", "cosmetic", "garbage.json"), "[1, 2")
}

func TestIterateCreatures(t *testing.T) {
	t.Run("CanonicalDeduplicated", func(t *testing.T) {
		s, root := newTestStore(t, 100)
		seedIteration(t, root)

		assert.Equal(t, []string{"bulbasaur", "ivysaur"}, names(s.IterateCanonical()))
	})

	t.Run("KeepDuplicates", func(t *testing.T) {
		s, root := newTestStore(t, 100)
		seedIteration(t, root)

		got := names(s.IterateCreatures(IterateOptions{KeepDuplicates: true}))
		assert.Equal(t, []string{"bulbasaur", "ivysaur", "Bulbasaur"}, got)
	})

	t.Run("IncludeNonDefault", func(t *testing.T) {
		s, root := newTestStore(t, 100)
		seedIteration(t, root)

		got := names(s.IterateCreatures(IterateOptions{IncludeNonDefault: true}))
		assert.Equal(t, []string{"bulbasaur", "ivysaur", "castform-sunny"}, got)
	})

	t.Run("SubfolderOrderDecidesWinner", func(t *testing.T) {
		s, root := newTestStore(t, 100)
		seedIteration(t, root)

		got := names(s.IterateCanonical("cosmetic", "default"))
		assert.Equal(t, []string{"Bulbasaur", "ivysaur"}, got)
	})

	t.Run("SameNameDifferentNumberIsDistinct", func(t *testing.T) {
		s, root := newTestStore(t, 100)
		writeCreature(t, root, "default", "unown", modeltest.Creature("unown", 201))
		writeCreature(t, root, "variant", "unown", modeltest.Creature("unown", 0))

		assert.Equal(t, []string{"unown", "unown"}, names(s.IterateCanonical()))
	})

	t.Run("Restartable", func(t *testing.T) {
		s, root := newTestStore(t, 100)
		seedIteration(t, root)

		seq := s.IterateCanonical()
		first := names(seq)
		second := names(seq)
		assert.Equal(t, first, second)
	})

	t.Run("EarlyStop", func(t *testing.T) {
		s, root := newTestStore(t, 100)
		seedIteration(t, root)

		var got []string
		for c := range s.IterateCanonical() {
			got = append(got, c.Name)
			break
		}
		assert.Equal(t, []string{"bulbasaur"}, got)
	})

	t.Run("UsesCache", func(t *testing.T) {
		s, root := newTestStore(t, 100)
		seedIteration(t, root)

		_ = slices.Collect(s.IterateCanonical())
		reads := s.DiskReads()
		_ = slices.Collect(s.IterateCanonical())
		// Decode failures are not cached, so only cosmetic/garbage.json is
		// read again.
		assert.Equal(t, reads+1, s.DiskReads())
	})
}

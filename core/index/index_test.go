package index_test

import (
	"slices"
	"testing"

	"dex-wiki/core/index"
	"dex-wiki/core/models"
	"dex-wiki/core/models/modeltest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abilities(c *models.Creature) []models.CreatureAbility { return c.Abilities }
func abilityName(a models.CreatureAbility) string        { return a.Name }

func TestBuild(t *testing.T) {
	pikachu := modeltest.Creature("pikachu", 25, modeltest.WithAbility("static", false), modeltest.WithAbility("lightning-rod", true))
	electabuzz := modeltest.Creature("electabuzz", 125, modeltest.WithAbility("static", false))
	fakemon := modeltest.Creature("fakemon", 0, modeltest.WithAbility("static", true))
	voltorb := modeltest.Creature("voltorb", 100, modeltest.WithAbility("static", false))
	magikarp := modeltest.Creature("magikarp", 129)

	records := slices.Values([]*models.Creature{fakemon, electabuzz, pikachu, magikarp, voltorb})

	t.Run("OrderedByNationalNumber", func(t *testing.T) {
		idx := index.Build(records, abilities, abilityName, func(a models.CreatureAbility) bool { return a.IsHidden })

		require.Contains(t, idx, "static")
		assert.Equal(t, []*models.Creature{pikachu, voltorb, electabuzz, fakemon}, idx.Creatures("static"))

		for _, key := range idx.Keys() {
			entries := idx[key]
			assert.True(t, slices.IsSortedFunc(entries, func(a, b index.Entry[bool]) int {
				return index.SortKey(a.Creature) - index.SortKey(b.Creature)
			}), key)
		}
	})

	t.Run("Metadata", func(t *testing.T) {
		idx := index.Build(records, abilities, abilityName, func(a models.CreatureAbility) bool { return a.IsHidden })

		hidden := idx["lightning-rod"]
		require.Len(t, hidden, 1)
		assert.Same(t, pikachu, hidden[0].Creature)
		assert.True(t, hidden[0].Meta)

		last := idx["static"][3]
		assert.Same(t, fakemon, last.Creature)
		assert.True(t, last.Meta)
	})

	t.Run("NilMeta", func(t *testing.T) {
		idx := index.Build[models.CreatureAbility, struct{}](records, abilities, abilityName, nil)
		assert.Len(t, idx["static"], 4)
	})

	t.Run("NoEmptyKeys", func(t *testing.T) {
		idx := index.Build(records, abilities, abilityName, func(a models.CreatureAbility) int { return a.Slot })
		assert.Equal(t, []string{"lightning-rod", "static"}, idx.Keys())
		for _, c := range idx.Creatures("static") {
			assert.NotSame(t, magikarp, c)
		}
	})

	t.Run("EmptyAttributeKeySkipped", func(t *testing.T) {
		blank := modeltest.Creature("blank", 1, func(c *models.Creature) {
			c.Abilities = []models.CreatureAbility{{Name: "", Slot: 1}}
		})
		idx := index.Build[models.CreatureAbility, struct{}](slices.Values([]*models.Creature{blank}), abilities, abilityName, nil)
		assert.Empty(t, idx)
	})

	t.Run("TiesKeepScanOrder", func(t *testing.T) {
		a := modeltest.Creature("a", 0, modeltest.WithAbility("x", false))
		b := modeltest.Creature("b", 0, modeltest.WithAbility("x", false))
		idx := index.Build[models.CreatureAbility, struct{}](slices.Values([]*models.Creature{a, b}), abilities, abilityName, nil)
		assert.Equal(t, []*models.Creature{a, b}, idx.Creatures("x"))
	})
}

func TestSortKey(t *testing.T) {
	assert.Equal(t, 25, index.SortKey(modeltest.Creature("pikachu", 25)))
	assert.Equal(t, index.MissingNumber, index.SortKey(modeltest.Creature("fakemon", 0)))
}

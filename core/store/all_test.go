package store

import (
	"path/filepath"
	"slices"
	"testing"

	"dex-wiki/core/models"
	"dex-wiki/core/models/modeltest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll(t *testing.T) {
	t.Run("Moves", func(t *testing.T) {
		s, root := newTestStore(t, 100)
		writeJSON(t, filepath.Join(root, "move", "tackle.json"), modeltest.Move("tackle", 33))
		writeJSON(t, filepath.Join(root, "move", "pound.json"), modeltest.Move("pound", 1))
		writeRaw(t, filepath.Join(root, "move", "broken.json"), "{")

		var got []string
		for m := range s.Moves() {
			got = append(got, m.Name)
		}
		assert.Equal(t, []string{"pound", "tackle"}, got)
		assert.Equal(t, 2, s.Stats().Sizes[models.KindMove])

		reads := s.DiskReads()
		_ = slices.Collect(s.Moves())
		assert.Equal(t, reads+1, s.DiskReads(), "only the malformed file is read again")
	})

	t.Run("AbilitiesAndItems", func(t *testing.T) {
		s, root := newTestStore(t, 100)
		writeAbility(t, root, "static")
		writeJSON(t, filepath.Join(root, "item", "oran-berry.json"), modeltest.Item("oran-berry", 132))

		abilities := slices.Collect(s.Abilities())
		require.Len(t, abilities, 1)
		assert.Equal(t, "static", abilities[0].Name)

		items := slices.Collect(s.Items())
		require.Len(t, items, 1)
		assert.Equal(t, 132, items[0].ID)
	})

	t.Run("CreaturesKeepFormsAndDuplicates", func(t *testing.T) {
		s, root := newTestStore(t, 100)
		seedIteration(t, root)

		var got []string
		for rec := range s.All(models.KindCreature) {
			got = append(got, rec.(*models.Creature).Name)
		}
		assert.Equal(t, []string{"bulbasaur", "ivysaur", "castform-sunny", "Bulbasaur"}, got)
	})

	t.Run("EarlyStop", func(t *testing.T) {
		s, root := newTestStore(t, 100)
		writeAbility(t, root, "blaze")
		writeAbility(t, root, "static")

		for range s.All(models.KindAbility) {
			break
		}
		assert.Equal(t, 1, s.CacheSize())
	})

	t.Run("MissingDirectory", func(t *testing.T) {
		s, _ := newTestStore(t, 100)
		assert.Empty(t, slices.Collect(s.Items()))
	})
}

func TestFormFiles(t *testing.T) {
	s, root := newTestStore(t, 100)
	wormadam := modeltest.Creature("wormadam", 413)
	wormadam.Forms = []models.Form{
		{Name: "wormadam-plant", Category: models.SubfolderDefault},
		{Name: "wormadam-sandy", Category: models.SubfolderVariant},
	}
	writeCreature(t, root, "default", "wormadam", wormadam)
	writeCreature(t, root, "default", "pikachu", modeltest.Creature("pikachu", 25))

	forms, base, ok := s.FormFiles("Wormadam")
	require.True(t, ok)
	assert.Equal(t, "wormadam", base.Name)
	assert.Equal(t, wormadam.Forms, forms)

	forms[0].Name = "changed"
	again, _, _ := s.FormFiles("wormadam")
	assert.Equal(t, "wormadam-plant", again[0].Name, "callers get a copy")

	forms, _, ok = s.FormFiles("pikachu")
	require.True(t, ok)
	assert.Equal(t, []models.Form{{Name: "pikachu", Category: "default"}}, forms)

	forms, base, ok = s.FormFiles("missingno")
	assert.False(t, ok)
	assert.Nil(t, base)
	assert.Nil(t, forms)
}

func TestCreatureCount(t *testing.T) {
	s, root := newTestStore(t, 100)
	seedCreatures(t, root)

	assert.Equal(t, 3, s.CreatureCount(""))
	assert.Equal(t, 3, s.CreatureCount("default"))
	assert.Equal(t, 2, s.CreatureCount("variant"), "malformed files count, other extensions do not")
	assert.Zero(t, s.CreatureCount("cosmetic"))
	assert.Zero(t, s.DiskReads())
}

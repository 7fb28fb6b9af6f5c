// Package modeltest builds valid records for tests.
package modeltest

import (
	"dex-wiki/core/models"
)

// CreatureOption customizes a test creature.
type CreatureOption func(*models.Creature)

// Creature returns a valid default-form creature. A national number of 0
// leaves the record without one.
func Creature(name string, national int, opts ...CreatureOption) *models.Creature {
	c := &models.Creature{
		ID:            max(national, 1),
		Name:          name,
		Species:       name,
		IsDefault:     true,
		SourceURL:     "https://example.invalid/" + name,
		Types:         []string{"normal"},
		Stats:         models.Stats{HP: 50, Attack: 50, Defense: 50, SpecialAttack: 50, SpecialDefense: 50, Speed: 50},
		EVYield:       []models.EVYield{{Stat: "hp", Effort: 1}},
		Height:        10,
		Weight:        100,
		BaseHappiness: 70,
		CaptureRate:   45,
		HatchCounter:  20,
		GenderRate:    4,
		Order:         max(national, 1),
		GrowthRate:    "medium",
		Color:         "yellow",
		Shape:         "upright",
		EggGroups:     []string{"field"},
		FlavorText:    models.NewVersionMap(map[string]string{"black": "A test creature."}),
		Genus:         "Test Pokémon",
		Generation:    "generation-i",
		HeldItems:     map[string]map[string]int{},
		Changes:       models.ChangeLog{},
	}
	if national > 0 {
		c.PokedexNumbers = map[string]int{models.NationalDex: national}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithAbility appends an ability slot.
func WithAbility(name string, hidden bool) CreatureOption {
	return func(c *models.Creature) {
		c.Abilities = append(c.Abilities, models.CreatureAbility{
			Name:     name,
			IsHidden: hidden,
			Slot:     min(len(c.Abilities)+1, 3),
		})
	}
}

// WithLevelUpMove appends a level-up move.
func WithLevelUpMove(name string, level int) CreatureOption {
	return func(c *models.Creature) {
		c.Moves.LevelUp = append(c.Moves.LevelUp, models.MoveLearn{
			Name:           name,
			LevelLearnedAt: level,
			VersionGroups:  []string{"black-white"},
		})
	}
}

// WithMachineMove appends a machine-taught move.
func WithMachineMove(name string) CreatureOption {
	return func(c *models.Creature) {
		c.Moves.Machine = append(c.Moves.Machine, models.MoveLearn{
			Name:          name,
			VersionGroups: []string{"black-white"},
		})
	}
}

// WithHeldItem records a held item with a rarity per version.
func WithHeldItem(item string, rarity map[string]int) CreatureOption {
	return func(c *models.Creature) {
		c.HeldItems[item] = rarity
	}
}

// NonDefault marks the creature as an alternate form.
func NonDefault() CreatureOption {
	return func(c *models.Creature) {
		c.IsDefault = false
	}
}

// Move returns a valid move.
func Move(name string, id int) *models.Move {
	return &models.Move{
		ID:           id,
		Name:         name,
		Accuracy:     models.UniformVersionMap(100),
		Power:        models.NewVersionMap(map[string]int{"black_white": 40}),
		PP:           models.UniformVersionMap(35),
		DamageClass:  "physical",
		Type:         models.UniformVersionMap("normal"),
		Target:       "selected-pokemon",
		Generation:   "generation-i",
		Effect:       models.UniformVersionMap("Inflicts regular damage."),
		ShortEffect:  models.UniformVersionMap("Inflicts regular damage."),
		FlavorText:   models.NewVersionMap(map[string]string{"black_white": "A test move."}),
		Changes:      models.ChangeLog{},
		EffectChance: models.VersionMap[int]{},
	}
}

// Ability returns a valid ability.
func Ability(name string, id int) *models.Ability {
	return &models.Ability{
		ID:           id,
		Name:         name,
		IsMainSeries: true,
		Effect:       models.UniformVersionMap("Does something."),
		FlavorText:   models.NewVersionMap(map[string]string{"black_white": "A test ability."}),
		Changes:      models.ChangeLog{},
	}
}

// Item returns a valid item.
func Item(name string, id int) *models.Item {
	return &models.Item{
		ID:         id,
		Name:       name,
		Cost:       200,
		Attributes: []string{"holdable"},
		Category:   "held-items",
		FlavorText: models.NewVersionMap(map[string]string{"black_white": "A test item."}),
		Changes:    models.ChangeLog{},
	}
}

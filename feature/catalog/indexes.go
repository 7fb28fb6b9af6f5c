package catalog

import (
	"iter"
	"maps"
	"slices"

	"dex-wiki/core/index"
	"dex-wiki/core/models"
	"dex-wiki/core/slug"
)

// Learn methods, in the order moves are listed on a creature page.
const (
	MethodLevelUp = "level_up"
	MethodMachine = "machine"
	MethodTutor   = "tutor"
	MethodEgg     = "egg"
)

// AbilitySlot is how a creature holds an ability.
type AbilitySlot struct {
	IsHidden bool `json:"is_hidden"`
	Slot     int  `json:"slot"`
}

// Learnset is how a creature learns a move.
type Learnset struct {
	Method        string   `json:"method"`
	Level         int      `json:"level"`
	VersionGroups []string `json:"version_groups,omitempty"`
}

// HeldItem is how often a wild creature holds an item, per version.
type HeldItem struct {
	Rarity map[string]int `json:"rarity"`
}

type ability = models.CreatureAbility

type learn struct {
	method string
	move   models.MoveLearn
}

type held struct {
	item   string
	rarity map[string]int
}

// Abilities files creatures under every ability they can have.
func Abilities(records iter.Seq[*models.Creature]) index.Reverse[AbilitySlot] {
	return index.Build(records,
		func(c *models.Creature) []ability { return c.Abilities },
		func(a ability) string { return slug.Normalize(a.Name) },
		func(a ability) AbilitySlot { return AbilitySlot{IsHidden: a.IsHidden, Slot: a.Slot} },
	)
}

// Moves files creatures under every move they learn, once per learn method.
func Moves(records iter.Seq[*models.Creature]) index.Reverse[Learnset] {
	return index.Build(records,
		learns,
		func(l learn) string { return slug.Normalize(l.move.Name) },
		func(l learn) Learnset {
			return Learnset{Method: l.method, Level: l.move.LevelLearnedAt, VersionGroups: l.move.VersionGroups}
		},
	)
}

func learns(c *models.Creature) []learn {
	var out []learn
	add := func(method string, moves []models.MoveLearn) {
		for _, m := range moves {
			out = append(out, learn{method: method, move: m})
		}
	}
	add(MethodLevelUp, c.Moves.LevelUp)
	add(MethodMachine, c.Moves.Machine)
	add(MethodTutor, c.Moves.Tutor)
	add(MethodEgg, c.Moves.Egg)
	return out
}

// Items files creatures under every item they may hold in the wild.
func Items(records iter.Seq[*models.Creature]) index.Reverse[HeldItem] {
	return index.Build(records,
		func(c *models.Creature) []held {
			out := make([]held, 0, len(c.HeldItems))
			for _, name := range slices.Sorted(maps.Keys(c.HeldItems)) {
				out = append(out, held{item: name, rarity: c.HeldItems[name]})
			}
			return out
		},
		func(h held) string { return slug.Normalize(h.item) },
		func(h held) HeldItem { return HeldItem{Rarity: h.rarity} },
	)
}

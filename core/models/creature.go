package models

// NationalDex is the pokedex_numbers key holding a creature's primary number.
const NationalDex = "national"

// Creature is a single creature form, e.g. "aggron" or "pikachu-cosplay".
type Creature struct {
	ID                   int                       `json:"id" validate:"gt=0"`
	Name                 string                    `json:"name" validate:"notblank"`
	Species              string                    `json:"species" validate:"notblank"`
	IsDefault            bool                      `json:"is_default"`
	SourceURL            string                    `json:"source_url"`
	Types                []string                  `json:"types" validate:"min=1,dive,notblank"`
	Abilities            []CreatureAbility         `json:"abilities" validate:"dive"`
	Stats                Stats                     `json:"stats"`
	EVYield              []EVYield                 `json:"ev_yield" validate:"dive"`
	Height               int                       `json:"height" validate:"gte=0"`
	Weight               int                       `json:"weight" validate:"gte=0"`
	Cries                Document                  `json:"cries,omitempty"`
	Sprites              Document                  `json:"sprites,omitempty"`
	BaseExperience       int                       `json:"base_experience" validate:"gte=0"`
	BaseHappiness        int                       `json:"base_happiness" validate:"gte=0,lte=255"`
	CaptureRate          int                       `json:"capture_rate" validate:"gte=0,lte=255"`
	HatchCounter         int                       `json:"hatch_counter" validate:"gte=0"`
	GenderRate           int                       `json:"gender_rate" validate:"gte=-1,lte=8"`
	HasGenderDifferences bool                      `json:"has_gender_differences"`
	IsBaby               bool                      `json:"is_baby"`
	IsLegendary          bool                      `json:"is_legendary"`
	IsMythical           bool                      `json:"is_mythical"`
	FormsSwitchable      bool                      `json:"forms_switchable"`
	Order                int                       `json:"order"`
	GrowthRate           string                    `json:"growth_rate" validate:"notblank"`
	Habitat              *string                   `json:"habitat"`
	EvolvesFromSpecies   *string                   `json:"evolves_from_species"`
	PokedexNumbers       map[string]int            `json:"pokedex_numbers"`
	Color                string                    `json:"color" validate:"notblank"`
	Shape                string                    `json:"shape" validate:"notblank"`
	EggGroups            []string                  `json:"egg_groups"`
	FlavorText           VersionMap[string]        `json:"flavor_text"`
	Genus                string                    `json:"genus"`
	Generation           string                    `json:"generation" validate:"notblank"`
	EvolutionChain       Document                  `json:"evolution_chain,omitempty"`
	HeldItems            map[string]map[string]int `json:"held_items"`
	Moves                CreatureMoves             `json:"moves"`
	Forms                []Form                    `json:"forms" validate:"dive"`
	Changes              ChangeLog                 `json:"changes"`
}

// CreatureAbility is one ability slot of a creature.
type CreatureAbility struct {
	Name     string `json:"name" validate:"notblank"`
	IsHidden bool   `json:"is_hidden"`
	Slot     int    `json:"slot" validate:"gte=1,lte=3"`
}

// Stats holds base stats.
type Stats struct {
	HP             int `json:"hp" validate:"gte=0"`
	Attack         int `json:"attack" validate:"gte=0"`
	Defense        int `json:"defense" validate:"gte=0"`
	SpecialAttack  int `json:"special_attack" validate:"gte=0"`
	SpecialDefense int `json:"special_defense" validate:"gte=0"`
	Speed          int `json:"speed" validate:"gte=0"`
}

// EVYield is the effort value a creature grants when defeated.
type EVYield struct {
	Stat   string `json:"stat" validate:"oneof=hp attack defense special-attack special-defense speed"`
	Effort int    `json:"effort" validate:"gte=0,lte=3"`
}

// Form names an alternate form and the subfolder it lives in.
type Form struct {
	Name     string `json:"name" validate:"notblank"`
	Category string `json:"category" validate:"oneof=default transformation variant cosmetic"`
}

// MoveLearn describes how a creature learns one move.
type MoveLearn struct {
	Name           string   `json:"name" validate:"notblank"`
	LevelLearnedAt int      `json:"level_learned_at" validate:"gte=0"`
	VersionGroups  []string `json:"version_groups"`
}

// CreatureMoves groups learnable moves by learn method.
type CreatureMoves struct {
	Egg     []MoveLearn `json:"egg" validate:"dive"`
	Tutor   []MoveLearn `json:"tutor" validate:"dive"`
	Machine []MoveLearn `json:"machine" validate:"dive"`
	LevelUp []MoveLearn `json:"level_up" validate:"dive"`
}

// Kind implements Record.
func (c *Creature) Kind() Kind { return KindCreature }

// Validate implements Record.
func (c *Creature) Validate() error { return validateRecord(KindCreature, c.Name, c) }

// ChangeLog implements Record.
func (c *Creature) ChangeLog() *ChangeLog { return &c.Changes }

// NationalNumber returns the national dex number, if the record has one.
func (c *Creature) NationalNumber() (int, bool) {
	n, ok := c.PokedexNumbers[NationalDex]
	return n, ok
}

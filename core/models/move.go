package models

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// Move is a learnable move. Most numeric and text fields vary by version
// group.
type Move struct {
	ID           int                `json:"id" validate:"gt=0"`
	Name         string             `json:"name" validate:"notblank"`
	SourceURL    string             `json:"source_url"`
	Accuracy     VersionMap[int]    `json:"accuracy"`
	Power        VersionMap[int]    `json:"power"`
	PP           VersionMap[int]    `json:"pp"`
	Priority     int                `json:"priority" validate:"gte=-7,lte=5"`
	DamageClass  string             `json:"damage_class" validate:"notblank"`
	Type         VersionMap[string] `json:"type"`
	Target       string             `json:"target" validate:"notblank"`
	Generation   string             `json:"generation" validate:"notblank"`
	EffectChance VersionMap[int]    `json:"effect_chance"`
	Effect       VersionMap[string] `json:"effect"`
	ShortEffect  VersionMap[string] `json:"short_effect"`
	FlavorText   VersionMap[string] `json:"flavor_text"`
	StatChanges  []StatChange       `json:"stat_changes" validate:"dive"`
	Machine      *string            `json:"machine"`
	Metadata     MoveMetadata       `json:"metadata"`
	Changes      ChangeLog          `json:"changes"`
}

// StatChange is a stat stage change applied by a move.
type StatChange struct {
	Change int    `json:"change"`
	Stat   string `json:"stat" validate:"oneof=hp attack defense special-attack special-defense speed accuracy evasion"`
}

// MoveMetadata carries battle mechanics details.
type MoveMetadata struct {
	Ailment       *string `json:"ailment"`
	Category      *string `json:"category"`
	MinHits       *int    `json:"min_hits" validate:"omitempty,gte=0"`
	MaxHits       *int    `json:"max_hits" validate:"omitempty,gte=0"`
	MinTurns      *int    `json:"min_turns" validate:"omitempty,gte=0"`
	MaxTurns      *int    `json:"max_turns" validate:"omitempty,gte=0"`
	Drain         int     `json:"drain" validate:"gte=-100,lte=100"`
	Healing       int     `json:"healing" validate:"gte=-100,lte=100"`
	CritRate      int     `json:"crit_rate" validate:"gte=0,lte=100"`
	AilmentChance int     `json:"ailment_chance" validate:"gte=0,lte=100"`
	FlinchChance  int     `json:"flinch_chance" validate:"gte=0,lte=100"`
	StatChance    int     `json:"stat_chance" validate:"gte=0,lte=100"`
}

type moveAlias Move

// UnmarshalJSON decodes a move. Older exports write an empty list instead of
// null when a move has no machine.
func (m *Move) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	machine := fields["machine"]
	delete(fields, "machine")

	rest, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	var alias moveAlias
	if err := json.Unmarshal(rest, &alias); err != nil {
		return err
	}
	*m = Move(alias)

	m.Machine = nil
	raw := bytes.TrimSpace(machine)
	switch {
	case len(raw) == 0, bytes.Equal(raw, []byte("null")):
	case raw[0] == '[':
		var list []string
		if err := json.Unmarshal(raw, &list); err != nil {
			return fmt.Errorf("machine: %w", err)
		}
		if len(list) > 0 {
			return fmt.Errorf("machine: expected a single machine, got %d", len(list))
		}
	default:
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			return fmt.Errorf("machine: %w", err)
		}
		m.Machine = &name
	}
	return nil
}

// Kind implements Record.
func (m *Move) Kind() Kind { return KindMove }

// Validate implements Record.
func (m *Move) Validate() error { return validateRecord(KindMove, m.Name, m) }

// ChangeLog implements Record.
func (m *Move) ChangeLog() *ChangeLog { return &m.Changes }

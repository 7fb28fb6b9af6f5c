package models

import "fmt"

// Kind identifies one of the four record categories. It doubles as the
// directory name under the data root.
type Kind string

const (
	KindCreature Kind = "creature"
	KindMove     Kind = "move"
	KindAbility  Kind = "ability"
	KindItem     Kind = "item"
)

// Kinds lists every record kind.
var Kinds = []Kind{KindCreature, KindMove, KindAbility, KindItem}

// Creature subfolders, in the order a lookup without an explicit subfolder
// searches them.
const (
	SubfolderDefault        = "default"
	SubfolderTransformation = "transformation"
	SubfolderVariant        = "variant"
	SubfolderCosmetic       = "cosmetic"
)

// CreatureSubfolders is the fallback search order for creature lookups.
var CreatureSubfolders = []string{
	SubfolderDefault,
	SubfolderTransformation,
	SubfolderVariant,
	SubfolderCosmetic,
}

// Record is implemented by every record kind.
type Record interface {
	// Kind reports the record's category.
	Kind() Kind
	// Validate checks field constraints after decoding.
	Validate() error
	// ChangeLog returns the record's audit log for in-place updates.
	ChangeLog() *ChangeLog
}

// ParseKind converts a user supplied kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown record kind %q", s)
}

// New returns an empty record of the given kind, ready for decoding.
func New(kind Kind) (Record, error) {
	switch kind {
	case KindCreature:
		return &Creature{}, nil
	case KindMove:
		return &Move{}, nil
	case KindAbility:
		return &Ability{}, nil
	case KindItem:
		return &Item{}, nil
	default:
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}
}

// IsSubfolder reports whether name is a known creature subfolder.
func IsSubfolder(name string) bool {
	for _, sf := range CreatureSubfolders {
		if sf == name {
			return true
		}
	}
	return false
}

package store

import (
	"errors"
	"io/fs"
	"iter"
	"slices"
	"strings"

	"dex-wiki/core/models"
	"dex-wiki/core/slug"

	"go.uber.org/zap"
)

// All yields every readable record of kind in file name order, loading each
// through the cache. Creatures are walked across every subfolder with
// alternate forms and duplicates kept. Unreadable files are logged and
// skipped.
func (s *Store) All(kind models.Kind) iter.Seq[models.Record] {
	if kind == models.KindCreature {
		return func(yield func(models.Record) bool) {
			for c := range s.IterateCreatures(IterateOptions{IncludeNonDefault: true, KeepDuplicates: true}) {
				if !yield(c) {
					return
				}
			}
		}
	}

	return func(yield func(models.Record) bool) {
		names, err := listRecordFiles(s.dir(kind, ""))
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				s.logger.Warn("Failed to list records", zap.String("kind", string(kind)), zap.Error(err))
			}
			return
		}
		for _, name := range names {
			rec, ok := s.Load(kind, strings.TrimSuffix(name, recordExt), "")
			if !ok {
				s.logger.Warn("Skipping unreadable record", zap.String("kind", string(kind)), zap.String("file", name))
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}

// Moves yields every readable move.
func (s *Store) Moves() iter.Seq[*models.Move] {
	return allAs[*models.Move](s, models.KindMove)
}

// Abilities yields every readable ability.
func (s *Store) Abilities() iter.Seq[*models.Ability] {
	return allAs[*models.Ability](s, models.KindAbility)
}

// Items yields every readable item.
func (s *Store) Items() iter.Seq[*models.Item] {
	return allAs[*models.Item](s, models.KindItem)
}

// Load already panics on a kind mismatch, so the assertion cannot fail.
func allAs[T models.Record](s *Store, kind models.Kind) iter.Seq[T] {
	return func(yield func(T) bool) {
		for rec := range s.All(kind) {
			if !yield(rec.(T)) {
				return
			}
		}
	}
}

// FormFiles returns the forms of creature id with the subfolder each lives
// in, plus the base record. A creature without a forms list is its own only
// form, in "default". ok is false when the creature cannot be loaded.
func (s *Store) FormFiles(id string) (forms []models.Form, base *models.Creature, ok bool) {
	base, ok = s.Creature(id, "")
	if !ok {
		return nil, nil, false
	}
	if len(base.Forms) == 0 {
		return []models.Form{{Name: slug.Normalize(id), Category: models.SubfolderDefault}}, base, true
	}
	return slices.Clone(base.Forms), base, true
}

// CreatureCount returns the number of record files in a creature subfolder,
// "default" when subfolder is empty. A missing subfolder counts zero.
func (s *Store) CreatureCount(subfolder string) int {
	if subfolder == "" {
		subfolder = models.SubfolderDefault
	}
	names, err := listRecordFiles(s.dir(models.KindCreature, subfolder))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("Failed to list subfolder", zap.String("subfolder", subfolder), zap.Error(err))
		}
		return 0
	}
	return len(names)
}

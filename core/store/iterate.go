package store

import (
	"errors"
	"io/fs"
	"iter"
	"strings"

	"dex-wiki/core/models"
	"dex-wiki/core/slug"

	"go.uber.org/zap"
)

// IterateOptions controls IterateCreatures.
type IterateOptions struct {
	// Subfolders to walk, in order. Empty means every creature subfolder.
	Subfolders []string
	// IncludeNonDefault also yields alternate forms.
	IncludeNonDefault bool
	// KeepDuplicates disables dedupe by name and national number.
	KeepDuplicates bool
}

type dedupeKey struct {
	name     string
	national int
	numbered bool
}

// IterateCreatures walks the creature subfolders in order, visiting files in
// name order and loading each through the cache. By default only default
// forms are yielded, and a creature seen under an earlier subfolder is not
// yielded again. Unreadable files are logged and skipped.
//
// Each range over the returned sequence starts a fresh walk.
func (s *Store) IterateCreatures(opts IterateOptions) iter.Seq[*models.Creature] {
	subfolders := opts.Subfolders
	if len(subfolders) == 0 {
		subfolders = models.CreatureSubfolders
	}

	return func(yield func(*models.Creature) bool) {
		seen := make(map[dedupeKey]struct{})
		for _, sf := range subfolders {
			names, err := listRecordFiles(s.dir(models.KindCreature, sf))
			if err != nil {
				if !errors.Is(err, fs.ErrNotExist) {
					s.logger.Warn("Failed to list subfolder", zap.String("subfolder", sf), zap.Error(err))
				}
				continue
			}

			for _, name := range names {
				c, ok := s.Creature(strings.TrimSuffix(name, recordExt), sf)
				if !ok {
					s.logger.Warn("Skipping unreadable creature", zap.String("subfolder", sf), zap.String("file", name))
					continue
				}
				if !opts.IncludeNonDefault && !c.IsDefault {
					continue
				}
				if !opts.KeepDuplicates {
					key := creatureIdentity(c)
					if _, dup := seen[key]; dup {
						continue
					}
					seen[key] = struct{}{}
				}
				if !yield(c) {
					return
				}
			}
		}
	}
}

// IterateCanonical yields deduplicated default-form creatures from the given
// subfolders, or from all of them.
func (s *Store) IterateCanonical(subfolders ...string) iter.Seq[*models.Creature] {
	return s.IterateCreatures(IterateOptions{Subfolders: subfolders})
}

func creatureIdentity(c *models.Creature) dedupeKey {
	n, ok := c.NationalNumber()
	return dedupeKey{name: slug.Normalize(c.Name), national: n, numbered: ok}
}

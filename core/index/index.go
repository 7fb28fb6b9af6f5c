// Package index builds reverse lookups from referenced attributes (abilities,
// moves, held items) to the creatures that reference them.
package index

import (
	"cmp"
	"iter"
	"math"
	"slices"

	"dex-wiki/core/models"
)

// MissingNumber is the sort key for creatures without a national number.
const MissingNumber = math.MaxInt

// Entry is one creature referencing an attribute, plus per-reference data.
type Entry[M any] struct {
	Creature *models.Creature
	Meta     M
}

// Reverse maps an attribute key to the creatures referencing it, ordered by
// national number with unnumbered creatures last.
type Reverse[M any] map[string][]Entry[M]

// Creatures returns the creatures listed under key.
func (r Reverse[M]) Creatures(key string) []*models.Creature {
	entries := r[key]
	out := make([]*models.Creature, len(entries))
	for i, e := range entries {
		out[i] = e.Creature
	}
	return out
}

// Keys returns the index keys in sorted order.
func (r Reverse[M]) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Build scans records once. For every attribute returned by extract it files
// the creature under key(attribute), attaching meta(attribute) when meta is
// non-nil. Attributes with an empty key are ignored, so no key ever maps to
// an empty list. Each list is then stable-sorted by SortKey.
func Build[A, M any](
	records iter.Seq[*models.Creature],
	extract func(*models.Creature) []A,
	key func(A) string,
	meta func(A) M,
) Reverse[M] {
	out := make(Reverse[M])
	for c := range records {
		for _, attr := range extract(c) {
			k := key(attr)
			if k == "" {
				continue
			}
			e := Entry[M]{Creature: c}
			if meta != nil {
				e.Meta = meta(attr)
			}
			out[k] = append(out[k], e)
		}
	}

	for _, entries := range out {
		slices.SortStableFunc(entries, func(a, b Entry[M]) int {
			return cmp.Compare(SortKey(a.Creature), SortKey(b.Creature))
		})
	}
	return out
}

// SortKey returns the creature's national number, or MissingNumber.
func SortKey(c *models.Creature) int {
	if n, ok := c.NationalNumber(); ok {
		return n
	}
	return MissingNumber
}

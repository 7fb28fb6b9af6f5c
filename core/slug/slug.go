// Package slug turns display names into the identifiers used for record file
// names and cache keys.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize folds a name into its canonical slug: diacritics are stripped,
// letters lowercased, anything outside [a-z0-9], whitespace and '-' dropped,
// whitespace runs replaced by a single '-', and leading or trailing '-'
// trimmed. Normalize is idempotent.
//
//	Normalize("Flabébé")   == "flabebe"
//	Normalize("Mr. Mime")  == "mr-mime"
//	Normalize("Farfetch'd") == "farfetchd"
func Normalize(name string) string {
	folded, _, err := transform.String(foldDiacritics(), name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false
	for _, r := range folded {
		switch {
		case unicode.IsSpace(r):
			pendingSpace = true
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-':
			if pendingSpace {
				b.WriteByte('-')
				pendingSpace = false
			}
			b.WriteRune(r)
		}
	}

	return strings.Trim(b.String(), "-")
}

// transform.Chain keeps state, so each call builds its own.
func foldDiacritics() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

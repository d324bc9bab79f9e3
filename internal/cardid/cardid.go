// Package cardid derives a stable content identity for imported cards so
// that re-syncing a source neither duplicates cards nor loses their
// scheduling state.
package cardid

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/conorfennell/braingym/internal/parser"
)

// Normalize cleans both sides of a card before hashing: lowercased,
// trimmed, line endings unified. The sides are joined with a newline so
// content cannot bleed across the front/back boundary.
func Normalize(card parser.ParsedCard) string {
	clean := func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimSpace(s)
		return strings.ReplaceAll(s, "\r\n", "\n")
	}
	return clean(card.Front) + "\n" + clean(card.Back)
}

// Hash returns the SHA-256 of the normalized card as a hex string.
// Cosmetic edits (casing, surrounding whitespace) keep the same identity;
// any change to the actual content produces a new card.
func Hash(card parser.ParsedCard) string {
	sum := sha256.Sum256([]byte(Normalize(card)))
	return fmt.Sprintf("%x", sum)
}

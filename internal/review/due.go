// Package review selects due cards and runs a review session over them.
package review

import (
	"time"

	"github.com/conorfennell/braingym/internal/domain"
)

// MaxSessionCards bounds a review queue so a session stays finishable in
// one sitting. Fixed limit, not user-configurable.
const MaxSessionCards = 20

// IsDue reports whether the card's review is owed at ref. A zero DueAt
// means the card has never been scheduled and is due since the epoch.
func IsDue(card domain.Card, ref time.Time) bool {
	return !card.DueAt.After(ref)
}

// DueCards filters cards owed at ref, preserving deck order. No
// re-ordering by overdue-ness or ease: first in, first served.
func DueCards(cards []domain.Card, ref time.Time) []domain.Card {
	var due []domain.Card
	for _, c := range cards {
		if IsDue(c, ref) {
			due = append(due, c)
		}
	}
	return due
}

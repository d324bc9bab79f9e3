package review

import (
	"time"

	"github.com/google/uuid"

	"github.com/conorfennell/braingym/internal/domain"
	"github.com/conorfennell/braingym/internal/sm2"
)

// State is the lifecycle of a review session.
type State int

const (
	Idle State = iota
	Active
	Complete
)

// Session walks a bounded queue of due cards, one at a time. The queue is
// computed once at start and never refreshed, even if wall-clock time
// crosses newly-due cards mid-session. A Session is not safe for
// concurrent use; the caller serializes access.
type Session struct {
	DeckID    uuid.UUID
	DeckName  string
	StartedAt time.Time

	queue    []domain.Card
	idx      int
	revealed bool
	// announced marks that the current card's first reveal already
	// happened, so hide/show cycles cannot re-fire one-shot side effects
	// such as speech.
	announced bool
	state     State
}

// Start opens a session over the deck's due cards at now, capped at
// MaxSessionCards in deck order. With nothing due the session begins in
// Complete: a valid terminal state, not an error.
func Start(deck domain.Deck, now time.Time) *Session {
	due := DueCards(deck.Cards, now)
	if len(due) > MaxSessionCards {
		due = due[:MaxSessionCards]
	}

	s := &Session{
		DeckID:    deck.ID,
		DeckName:  deck.Name,
		StartedAt: now,
		queue:     due,
		state:     Active,
	}
	if len(due) == 0 {
		s.state = Complete
	}
	return s
}

// State returns the session lifecycle state.
func (s *Session) State() State { return s.state }

// Len is the number of cards queued at start.
func (s *Session) Len() int { return len(s.queue) }

// Position is the 1-based index of the current card, for display.
func (s *Session) Position() int { return s.idx + 1 }

// Current returns the card under review, or false when the session is
// complete.
func (s *Session) Current() (domain.Card, bool) {
	if s.state != Active {
		return domain.Card{}, false
	}
	return s.queue[s.idx], true
}

// Revealed reports whether the current card's back is showing.
func (s *Session) Revealed() bool { return s.state == Active && s.revealed }

// Reveal shows the current card's back. It returns true only on the first
// reveal of that card: callers key one-shot side effects (speech) off the
// return value, so repeated hide/show cycles stay silent.
func (s *Session) Reveal() bool {
	if s.state != Active {
		return false
	}
	s.revealed = true
	if s.announced {
		return false
	}
	s.announced = true
	return true
}

// Hide flips the current card back to its front. Reversible and
// idempotent; it does not reset the reveal event.
func (s *Session) Hide() {
	s.revealed = false
}

// Grade applies a recall grade to the current card via the scheduler and
// advances the session, completing it after the last card. The updated
// card is returned for the caller to persist. Grading with no current
// card is a no-op and reports false.
func (s *Session) Grade(quality int, now time.Time) (domain.Card, bool) {
	current, ok := s.Current()
	if !ok {
		return domain.Card{}, false
	}

	updated := sm2.Schedule(current, quality, now)
	s.queue[s.idx] = updated

	if s.idx >= len(s.queue)-1 {
		s.state = Complete
	} else {
		s.idx++
	}
	s.revealed = false
	s.announced = false

	return updated, true
}

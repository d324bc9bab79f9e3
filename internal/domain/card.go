package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ease factor bounds for the scheduler. A card that has never been graded
// starts at DefaultEase.
const (
	EaseMin     = 1.3
	EaseMax     = 2.8
	DefaultEase = 2.5
)

// Card is a single flashcard together with its scheduling state.
// The scheduling fields (Ease, Repetitions, IntervalDays, DueAt,
// LastQuality, UpdatedAt) are only ever written by the scheduler.
type Card struct {
	ID           uuid.UUID
	Front        string
	Back         string
	Ease         float64
	Repetitions  int
	IntervalDays int
	DueAt        time.Time
	LastQuality  int
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// SourceHash is the stable content identity of a card imported from a
	// markdown source, used to match cards across re-syncs. Empty for
	// cards created in the app.
	SourceHash string
}

// NewCard returns a card that is immediately due for its first review.
func NewCard(front, back string, now time.Time) Card {
	return Card{
		ID:        uuid.New(),
		Front:     front,
		Back:      back,
		Ease:      DefaultEase,
		DueAt:     time.Unix(0, 0).UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Deck is a named, ordered collection of cards. Cards keep their insertion
// order; review queues are built in this order.
type Deck struct {
	ID        uuid.UUID
	Name      string
	Cards     []Card
	CreatedAt time.Time
}

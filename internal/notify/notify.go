// Package notify maintains the in-app notification feed: study-plan
// summaries, session events and the optional motivation jokes.
package notify

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/conorfennell/braingym/internal/domain"
	"github.com/conorfennell/braingym/internal/storage"
	"github.com/conorfennell/braingym/internal/units"
)

// Feed entry types.
const (
	TypePlan = "plan"
	TypeJoke = "joke"
	TypeTip  = "tip"
	TypeDone = "done"
)

var jokes = []string{
	"No review today? Even your biceps studies more than you do.",
	"Do 10 cards and I'll let you skip... half a mental squat.",
	"15 minutes of review. Then you can go back to being a legend.",
	"Future you says thanks. Present you grumbles. That's normal.",
	"Discipline beats motivation. A decent joke helps a little too.",
}

// Joke picks a random motivation line.
func Joke() string {
	return jokes[rand.IntN(len(jokes))]
}

// Feed appends to and trims the stored notification feed.
type Feed struct {
	db *storage.DB
}

func NewFeed(db *storage.DB) *Feed {
	return &Feed{db: db}
}

// Push appends one entry to the feed.
func (f *Feed) Push(kind, text string, now time.Time) error {
	return f.db.InsertNotification(domain.Notification{
		ID:        uuid.New(),
		CreatedAt: now,
		Type:      kind,
		Text:      text,
	})
}

// PlanLogged summarizes the study plan proposed after logging a workout.
func PlanLogged(w domain.Workout, plan domain.StudyPlan) string {
	return fmt.Sprintf("Workout logged: %s. Review suggested in %d min · %s · %s (%s).",
		w.Name, plan.StartInMinutes, units.FormatMinutes(plan.Minutes), plan.Mode, plan.Focus)
}

// SessionStarted announces a fresh review queue.
func SessionStarted(deckName string, queued int) string {
	return fmt.Sprintf("Session started: %d cards (deck: %s).", queued, deckName)
}

// NothingDue is pushed when a session starts with an empty queue.
func NothingDue(deckName string) string {
	return fmt.Sprintf("No cards due in %q. Add cards or come back tomorrow.", deckName)
}

// SessionDone summarizes a finished session.
func SessionDone(count, minutes int) string {
	return fmt.Sprintf("Session complete: %d cards in ~%d min.", count, minutes)
}

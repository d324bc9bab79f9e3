package domain

import (
	"time"

	"github.com/google/uuid"
)

// Recovery is the daily check-in snapshot. Exactly one current snapshot
// exists at a time; each check-in overwrites the previous one.
type Recovery struct {
	SleepHours float64 // expected 4-10
	Stress     int     // 1 best .. 10 worst
	Soreness   int     // 1 best .. 10 worst
	UpdatedAt  time.Time
}

// ReviewMode is the recall strategy a study plan recommends.
type ReviewMode string

const (
	ModeActiveRecall ReviewMode = "active recall"
	ModeMixed        ReviewMode = "mixed (flashcards + short case)"
)

// FocusLevel is how hard a study plan asks the user to push.
type FocusLevel string

const (
	FocusLight     FocusLevel = "light"
	FocusNormal    FocusLevel = "normal"
	FocusIntensive FocusLevel = "intensive"
)

// StudyPlan is the recommendation produced after a workout (or for a rest
// day). Ephemeral: computed fresh on each request, never stored.
type StudyPlan struct {
	Minutes        int
	StartInMinutes int
	Mode           ReviewMode
	Focus          FocusLevel
	MeanRPE        float64 // rounded to one decimal; 0 on rest days
}

// Profile holds user-facing settings.
type Profile struct {
	Name            string
	Goal            string
	JokesEnabled    bool
	VoiceEnabled    bool
	PreferredDeckID uuid.UUID
	MaxStudyMinutes int // 10-60 by convention
}

// Notification is one entry in the in-app feed.
type Notification struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Type      string // "plan", "joke", "tip", "done"
	Text      string
	Read      bool
}

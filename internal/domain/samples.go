package domain

import (
	"time"

	"github.com/google/uuid"
)

// deterministicID derives a stable UUID for seeded content so repeated
// seeding attempts cannot duplicate decks.
func deterministicID(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("braingym/"+name))
}

// SampleDecks returns the starter decks seeded into an empty store so the
// first session has something to review. Every card starts immediately due.
func SampleDecks(now time.Time) []Deck {
	ibd := Deck{
		ID:        deterministicID("deck-ibd"),
		Name:      "IBD — essentials",
		CreatedAt: now,
	}
	for _, qa := range [][2]string{
		{
			"Crohn's vs UC: one key anatomical difference?",
			"Crohn's: discontinuous, transmural, anywhere in the GI tract (often ileum); UC: continuous, mucosal, colon/rectum.",
		},
		{
			"IBD: one common extra-intestinal complication?",
			"Joint involvement (arthritis/arthralgia), skin (erythema nodosum), eyes (uveitis).",
		},
		{
			"UC: which long-term risk increases?",
			"Colorectal cancer risk (depends on duration/extent), hence endoscopic surveillance.",
		},
	} {
		c := NewCard(qa[0], qa[1], now)
		ibd.Cards = append(ibd.Cards, c)
	}

	ra := Deck{
		ID:        deterministicID("deck-ra"),
		Name:      "RA — basics",
		CreatedAt: now,
	}
	for _, qa := range [][2]string{
		{
			"RA: which autoantibodies are typical?",
			"Rheumatoid factor (RF) and anti-CCP (ACPA); anti-CCP is more specific.",
		},
		{
			"RA: classic clinical triad on waking?",
			"Inflammatory pain, prolonged morning stiffness, joint swelling.",
		},
	} {
		c := NewCard(qa[0], qa[1], now)
		ra.Cards = append(ra.Cards, c)
	}

	return []Deck{ibd, ra}
}

// SampleTemplates returns the built-in workout templates.
func SampleTemplates() []WorkoutTemplate {
	return []WorkoutTemplate{
		{
			ID:         "upper-strength",
			Name:       "Upper body — Strength",
			Target:     "Strength",
			EstMinutes: 60,
			Exercises: []Exercise{
				{Name: "Bench press", Sets: 5, Reps: "3-5", RPE: 8},
				{Name: "Barbell row", Sets: 4, Reps: "6-8", RPE: 8},
				{Name: "Overhead press", Sets: 4, Reps: "5-8", RPE: 8},
				{Name: "Pull-ups", Sets: 4, Reps: "AMRAP", RPE: 8},
				{Name: "Lateral raises", Sets: 3, Reps: "12-20", RPE: 7},
			},
		},
		{
			ID:         "lower-strength",
			Name:       "Lower body — Strength",
			Target:     "Strength",
			EstMinutes: 70,
			Exercises: []Exercise{
				{Name: "Squat", Sets: 5, Reps: "3-5", RPE: 8},
				{Name: "Romanian deadlift", Sets: 4, Reps: "6-8", RPE: 8},
				{Name: "Lunges", Sets: 3, Reps: "8-12", RPE: 8},
				{Name: "Calf raises", Sets: 4, Reps: "10-15", RPE: 7},
			},
		},
		{
			ID:         "endurance",
			Name:       "Cardio — Endurance",
			Target:     "Endurance",
			EstMinutes: 45,
			Exercises: []Exercise{
				{Name: "Zone 2 (bike/run)", Sets: 1, Reps: "45 min", RPE: 6},
				{Name: "Mobility", Sets: 1, Reps: "10 min", RPE: 3},
			},
		},
	}
}

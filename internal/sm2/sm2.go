// Package sm2 implements the SM-2 spaced-repetition variant used for all
// card scheduling. Schedule is a pure function: it never reads the clock,
// never errors, and normalizes out-of-range input by clamping.
package sm2

import (
	"math"
	"time"

	"github.com/conorfennell/braingym/internal/domain"
	"github.com/conorfennell/braingym/internal/units"
)

// Grade bounds. Grades below PassingGrade count as failed recall.
const (
	GradeMin     = 0
	GradeMax     = 5
	PassingGrade = 3
)

// Intervals (in days) for the first two consecutive successful recalls.
// From the third on, the interval grows by the card's ease factor.
const (
	firstInterval  = 1
	secondInterval = 6
)

// Schedule applies a recall grade to a card and returns the card's next
// scheduling state. quality is clamped into [0,5]; a zero-valued card is
// treated as fresh (ease 2.5, no repetitions, immediately due).
//
// Failed recall (q < 3) resets the repetition streak and schedules the
// card for tomorrow. Successful recall walks the 1, 6, round(prev*ease)
// interval ladder. The ease factor is nudged by the grade on both
// branches, matching the original SM-2 formula: a failing grade still
// drags ease down even though the interval is reset.
func Schedule(card domain.Card, quality int, now time.Time) domain.Card {
	q := units.Clamp(quality, GradeMin, GradeMax)

	next := card
	if next.Ease == 0 {
		next.Ease = domain.DefaultEase
	}

	if q < PassingGrade {
		next.Repetitions = 0
		next.IntervalDays = firstInterval
	} else {
		next.Repetitions++
		switch next.Repetitions {
		case 1:
			next.IntervalDays = firstInterval
		case 2:
			next.IntervalDays = secondInterval
		default:
			next.IntervalDays = int(math.Round(float64(next.IntervalDays) * next.Ease))
		}
	}

	next.Ease = nextEase(next.Ease, q)

	// Calendar-day addition so due dates follow month/day rollover rules
	// instead of drifting by 24h multiples across DST changes.
	next.DueAt = now.AddDate(0, 0, next.IntervalDays)
	next.UpdatedAt = now
	next.LastQuality = q

	return next
}

// nextEase evaluates the SM-2 ease update
//
//	e' = e + (0.1 - (5-q) * (0.08 + (5-q) * 0.02))
//
// clamped to [EaseMin, EaseMax]. q=5 gains +0.1, q=4 is neutral, and each
// grade below that costs progressively more.
func nextEase(ease float64, q int) float64 {
	miss := float64(GradeMax - q)
	e := ease + (0.1 - miss*(0.08+miss*0.02))
	return units.Clamp(e, domain.EaseMin, domain.EaseMax)
}

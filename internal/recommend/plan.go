package recommend

import (
	"math"

	"github.com/conorfennell/braingym/internal/domain"
	"github.com/conorfennell/braingym/internal/units"
)

// Tuning constants for the study-block recommender. Product choices, not
// architecture: each RPE point above 6 costs 4 minutes of study (capped),
// readiness shifts the block by up to 8 minutes around its 60 midpoint,
// and no plan ever drops below a 10-minute floor.
const (
	rpeBaseline      = 6.0
	penaltyPerRPE    = 4.0
	penaltyCap       = 18.0
	readinessMid     = 60.0
	bonusPerPoint    = 0.2
	bonusCap         = 8.0
	floorMinutes     = 10
	hardRPE          = 8.0
	cooldownHard     = 45
	cooldownLight    = 25
	restDayActiveMax = 50
)

// StudyBlock sizes a review session after a workout. meanRPE is the
// workout's intensity proxy, readiness the 0-100 recovery score and
// maxMinutes the user's configured ceiling. Intensity and readiness act as
// independent clamped adjustments around that ceiling; the result always
// recommends at least the floor rather than skipping review outright.
func StudyBlock(meanRPE float64, readiness, maxMinutes int) domain.StudyPlan {
	intensityPenalty := units.Clamp((meanRPE-rpeBaseline)*penaltyPerRPE, 0, penaltyCap)
	readinessBonus := units.Clamp((float64(readiness)-readinessMid)*bonusPerPoint, -bonusCap, bonusCap)
	minutes := units.Clamp(
		int(math.Round(float64(maxMinutes)-intensityPenalty+readinessBonus)),
		floorMinutes, maxMinutes)

	mode := domain.ModeMixed
	if meanRPE >= hardRPE {
		mode = domain.ModeActiveRecall
	}

	// Hard sessions get a longer cooldown before cognitive load returns.
	startIn := cooldownLight
	if meanRPE >= hardRPE {
		startIn = cooldownHard
	}

	return domain.StudyPlan{
		Minutes:        minutes,
		StartInMinutes: startIn,
		Mode:           mode,
		Focus:          focusFor(readiness),
		MeanRPE:        math.Round(meanRPE*10) / 10,
	}
}

// RestDayBlock sizes a session for a day with no logged workout: the
// ceiling scaled by readiness, startable right away.
func RestDayBlock(readiness, maxMinutes int) domain.StudyPlan {
	minutes := units.Clamp(
		int(math.Round(float64(maxMinutes)*float64(readiness)/100)),
		floorMinutes, maxMinutes)

	mode := domain.ModeMixed
	if readiness < restDayActiveMax {
		mode = domain.ModeActiveRecall
	}

	return domain.StudyPlan{
		Minutes:        minutes,
		StartInMinutes: 0,
		Mode:           mode,
		Focus:          focusFor(readiness),
	}
}

func focusFor(readiness int) domain.FocusLevel {
	switch {
	case readiness < 40:
		return domain.FocusLight
	case readiness < 70:
		return domain.FocusNormal
	default:
		return domain.FocusIntensive
	}
}

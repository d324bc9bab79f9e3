package recommend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/conorfennell/braingym/internal/domain"
)

func TestReadinessBoundaries(t *testing.T) {
	worst := domain.Recovery{SleepHours: 4, Stress: 10, Soreness: 10}
	assert.Equal(t, 0, Readiness(worst))

	best := domain.Recovery{SleepHours: 9, Stress: 1, Soreness: 1}
	assert.Equal(t, 100, Readiness(best))
}

func TestReadinessClampsOutOfRangeInputs(t *testing.T) {
	assert.Equal(t, 100, Readiness(domain.Recovery{SleepHours: 14, Stress: -2, Soreness: 0}))
	assert.Equal(t, 0, Readiness(domain.Recovery{SleepHours: 1, Stress: 99, Soreness: 50}))
}

func TestReadinessWeighting(t *testing.T) {
	// Sleep alone carries half the score.
	sleepOnly := domain.Recovery{SleepHours: 9, Stress: 10, Soreness: 10}
	assert.Equal(t, 50, Readiness(sleepOnly))

	// Stress alone carries 30 points, soreness 20.
	stressOnly := domain.Recovery{SleepHours: 4, Stress: 1, Soreness: 10}
	assert.Equal(t, 30, Readiness(stressOnly))

	sorenessOnly := domain.Recovery{SleepHours: 4, Stress: 10, Soreness: 1}
	assert.Equal(t, 20, Readiness(sorenessOnly))
}

func TestStudyBlockScenario(t *testing.T) {
	// RPE [8,8,9,8] -> mean 8.25: penalty 9, no bonus at readiness 60.
	workout := domain.Workout{
		Exercises: []domain.Exercise{
			{Name: "a", RPE: 8}, {Name: "b", RPE: 8}, {Name: "c", RPE: 9}, {Name: "d", RPE: 8},
		},
	}
	plan := StudyBlock(workout.MeanRPE(), 60, 35)

	assert.Equal(t, 26, plan.Minutes)
	assert.Equal(t, 45, plan.StartInMinutes)
	assert.Equal(t, domain.ModeActiveRecall, plan.Mode)
	assert.Equal(t, domain.FocusNormal, plan.Focus)
	assert.InDelta(t, 8.3, plan.MeanRPE, 1e-9) // 8.25 rounds to one decimal
}

func TestStudyBlockFloorAndCeiling(t *testing.T) {
	// RPE 10 at zero readiness: 35 - 16 - 8.
	plan := StudyBlock(10, 0, 35)
	assert.Equal(t, 11, plan.Minutes)

	// Past RPE 10.5 the penalty saturates at 18 and the floor holds.
	plan = StudyBlock(11, 0, 35)
	assert.Equal(t, 10, plan.Minutes)

	// Easy workout and perfect readiness cannot exceed the ceiling.
	plan = StudyBlock(4, 100, 35)
	assert.Equal(t, 35, plan.Minutes)

	for rpe := 0.0; rpe <= 12; rpe += 0.5 {
		for readiness := 0; readiness <= 100; readiness += 10 {
			p := StudyBlock(rpe, readiness, 35)
			assert.GreaterOrEqual(t, p.Minutes, 10)
			assert.LessOrEqual(t, p.Minutes, 35)
		}
	}
}

func TestStudyBlockModeAndCooldown(t *testing.T) {
	hard := StudyBlock(8, 60, 35)
	assert.Equal(t, domain.ModeActiveRecall, hard.Mode)
	assert.Equal(t, 45, hard.StartInMinutes)

	moderate := StudyBlock(7.9, 60, 35)
	assert.Equal(t, domain.ModeMixed, moderate.Mode)
	assert.Equal(t, 25, moderate.StartInMinutes)
}

func TestFocusThresholds(t *testing.T) {
	assert.Equal(t, domain.FocusLight, StudyBlock(7, 39, 35).Focus)
	assert.Equal(t, domain.FocusNormal, StudyBlock(7, 40, 35).Focus)
	assert.Equal(t, domain.FocusNormal, StudyBlock(7, 69, 35).Focus)
	assert.Equal(t, domain.FocusIntensive, StudyBlock(7, 70, 35).Focus)
}

func TestRestDayBlock(t *testing.T) {
	plan := RestDayBlock(80, 35)
	assert.Equal(t, 28, plan.Minutes) // round(35 * 0.8)
	assert.Equal(t, 0, plan.StartInMinutes)
	assert.Equal(t, domain.ModeMixed, plan.Mode)
	assert.Equal(t, domain.FocusIntensive, plan.Focus)
	assert.Zero(t, plan.MeanRPE)

	// Low readiness: floor holds and the mode flips to pure recall.
	plan = RestDayBlock(10, 35)
	assert.Equal(t, 10, plan.Minutes)
	assert.Equal(t, domain.ModeActiveRecall, plan.Mode)
	assert.Equal(t, domain.FocusLight, plan.Focus)
}

func TestWorkoutMeanRPEFallbacks(t *testing.T) {
	withExercises := domain.Workout{
		SessionRPE: 9,
		Exercises:  []domain.Exercise{{RPE: 6}, {RPE: 8}},
	}
	assert.InDelta(t, 7.0, withExercises.MeanRPE(), 1e-9)

	sessionOnly := domain.Workout{SessionRPE: 9, Exercises: []domain.Exercise{{Name: "walk"}}}
	assert.InDelta(t, 9.0, sessionOnly.MeanRPE(), 1e-9)

	assert.InDelta(t, 7.0, domain.Workout{}.MeanRPE(), 1e-9)
}

func TestLogWorkoutSessionRPE(t *testing.T) {
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	tpl := domain.WorkoutTemplate{
		Name:      "Upper",
		Exercises: []domain.Exercise{{RPE: 8}, {RPE: 8}, {RPE: 7}},
	}
	w := domain.LogWorkout(tpl, now)
	assert.InDelta(t, 8.0, w.SessionRPE, 1e-9) // round(23/3)
	assert.Equal(t, "2025-03-10", w.Date)
	assert.Len(t, w.Exercises, 3)
}

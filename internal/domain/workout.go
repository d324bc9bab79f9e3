package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// fallbackRPE is assumed when a workout carries neither per-exercise RPE
// values nor a session-level RPE.
const fallbackRPE = 7

// Exercise is one movement inside a logged workout. RPE is the 0-10 rate
// of perceived exertion for that movement; 0 means "not recorded".
type Exercise struct {
	Name string
	Sets int
	Reps string
	RPE  float64
}

// Workout is one logged training session.
type Workout struct {
	ID         uuid.UUID
	Name       string
	Target     string
	Date       string // YYYY-MM-DD, local calendar day
	StartedAt  time.Time
	EstMinutes int
	SessionRPE float64
	Exercises  []Exercise
}

// MeanRPE is the workout's intensity proxy: the mean of recorded
// per-exercise RPE values, the session-level RPE when no exercise carries
// one, or a neutral default when neither exists.
func (w Workout) MeanRPE() float64 {
	var sum float64
	var n int
	for _, e := range w.Exercises {
		if e.RPE > 0 {
			sum += e.RPE
			n++
		}
	}
	if n > 0 {
		return sum / float64(n)
	}
	if w.SessionRPE > 0 {
		return w.SessionRPE
	}
	return fallbackRPE
}

// WorkoutTemplate is a reusable workout blueprint the user logs sessions
// from. Templates are not scheduled; logging one stamps a Workout.
type WorkoutTemplate struct {
	ID         string
	Name       string
	Target     string
	EstMinutes int
	Exercises  []Exercise
}

// LogWorkout stamps a workout from a template at now. The session RPE is
// the rounded mean of the template's exercise RPEs.
func LogWorkout(t WorkoutTemplate, now time.Time) Workout {
	var sum float64
	for _, e := range t.Exercises {
		rpe := e.RPE
		if rpe == 0 {
			rpe = fallbackRPE
		}
		sum += rpe
	}
	sessionRPE := 0.0
	if len(t.Exercises) > 0 {
		sessionRPE = math.Round(sum / float64(len(t.Exercises)))
	}

	exercises := make([]Exercise, len(t.Exercises))
	copy(exercises, t.Exercises)

	return Workout{
		ID:         uuid.New(),
		Name:       t.Name,
		Target:     t.Target,
		Date:       now.Format("2006-01-02"),
		StartedAt:  now,
		EstMinutes: t.EstMinutes,
		SessionRPE: sessionRPE,
		Exercises:  exercises,
	}
}

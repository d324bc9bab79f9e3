// Package recommend turns recovery signals and workout intensity into a
// post-workout study plan. Everything here is pure: inputs in, plan out.
package recommend

import (
	"math"

	"github.com/conorfennell/braingym/internal/domain"
	"github.com/conorfennell/braingym/internal/units"
)

// Sub-score weights. Sleep dominates because it is the strongest recovery
// signal; stress outweighs soreness because review quality suffers more
// from mental load than from muscular soreness.
const (
	sleepWeight    = 0.5
	stressWeight   = 0.3
	sorenessWeight = 0.2
)

// Readiness folds the current recovery snapshot into a 0-100 score.
// Sleep maps linearly from 4h (0) to 9h (1); stress and soreness are
// inverted 1-10 scales. Out-of-range inputs are clamped, never rejected.
func Readiness(rec domain.Recovery) int {
	sleep := units.Clamp((rec.SleepHours-4)/5, 0, 1)
	stress := 1 - units.Clamp((float64(rec.Stress)-1)/9, 0, 1)
	soreness := 1 - units.Clamp((float64(rec.Soreness)-1)/9, 0, 1)

	score := sleepWeight*sleep + stressWeight*stress + sorenessWeight*soreness
	return int(math.Round(score * 100))
}

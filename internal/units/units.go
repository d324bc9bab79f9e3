// Package units holds the small numeric helpers shared by the scheduling
// and recommendation packages: clamping, minute arithmetic and duration
// formatting.
package units

import (
	"cmp"
	"fmt"
	"math"
	"time"
)

// Clamp bounds v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(hi, v))
}

// FormatMinutes renders a minute count the way the UI shows durations:
// "45 min", "1 h", "1 h 15 min".
func FormatMinutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if h <= 0 {
		return fmt.Sprintf("%d min", m)
	}
	if m == 0 {
		return fmt.Sprintf("%d h", h)
	}
	return fmt.Sprintf("%d h %d min", h, m)
}

// MinutesBetween is the rounded number of minutes from a to b.
func MinutesBetween(a, b time.Time) int {
	return int(math.Round(b.Sub(a).Minutes()))
}

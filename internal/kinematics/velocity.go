// Package kinematics provides derivative estimation for discretely sampled
// position signals.
package kinematics

import "math"

// minTimeDelta guards divisions against zero or near-zero frame intervals,
// which occur when the presentation loop emits duplicate timestamps.
const minTimeDelta = 1e-12

// Velocity estimates instantaneous velocity from a position sequence y with
// matching timestamps t. Interior samples use the central difference over
// their neighbours; the endpoints fall back to forward/backward differences.
// An empty input yields an empty result and a single sample yields [0].
// The two slices must be the same length; a mismatch is a programming error
// and panics.
func Velocity(y, t []float64) []float64 {
	if len(y) != len(t) {
		panic("kinematics: position and timestamp sequences differ in length")
	}

	n := len(y)
	v := make([]float64, n)
	if n < 2 {
		return v
	}

	v[0] = (y[1] - y[0]) / math.Max(t[1]-t[0], minTimeDelta)
	v[n-1] = (y[n-1] - y[n-2]) / math.Max(t[n-1]-t[n-2], minTimeDelta)
	for i := 1; i < n-1; i++ {
		v[i] = (y[i+1] - y[i-1]) / math.Max(t[i+1]-t[i-1], minTimeDelta)
	}
	return v
}

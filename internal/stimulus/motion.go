// Package stimulus models the ideal target trajectory presented by the
// experiment front-end. The metrics core never calls it directly; it only
// consumes the recorded y_t column. The model lives here for the synthetic
// session generator and for tests.
package stimulus

// BellShape is the minimum-jerk easing profile 10s³−15s⁴+6s⁵ with
// s = t/T clipped to [0, 1]. It maps elapsed motion time to a normalised
// position in [0, 1] with zero velocity and acceleration at both ends.
func BellShape(t, T float64) float64 {
	s := t / T
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	s3 := s * s * s
	return 10*s3 - 15*s3*s + 6*s3*s*s
}

// Position returns the ideal target position at elapsed time t for a trial
// with onset delay tau, travel distance L and motion duration T: held at
// -L/2 before tau, easing along the bell shape to +L/2 over T, held at
// +L/2 afterwards.
func Position(t, tau, L, T float64) float64 {
	switch {
	case t < tau:
		return -L / 2
	case t < tau+T:
		return -L/2 + L*BellShape(t-tau, T)
	default:
		return L / 2
	}
}

// Package detect finds movement events in sampled boolean or position
// sequences. Both detectors are pure single-pass scans that report
// "no event" rather than failing on degenerate input.
package detect

// Direction selects which side of a threshold the crossing detector
// looks for.
type Direction int

const (
	// Up matches samples at or above the threshold.
	Up Direction = iota
	// Down matches samples at or below the threshold.
	Down
)

// FirstSustainTime returns the start time of the first run of consecutive
// true values in cond that lasts at least minDuration seconds. The returned
// timestamp is the run's start, not the instant the duration requirement
// was met. A false sample resets the run. ok is false when no qualifying
// run exists or when the inputs are empty or mismatched in length.
func FirstSustainTime(t []float64, cond []bool, minDuration float64) (event float64, ok bool) {
	if len(t) == 0 || len(cond) == 0 || len(t) != len(cond) {
		return 0, false
	}

	start := -1
	for i := range cond {
		if !cond[i] {
			start = -1
			continue
		}
		if start < 0 {
			start = i
		}
		if t[i]-t[start] >= minDuration {
			return t[start], true
		}
	}
	return 0, false
}

// FirstCrossTime returns the timestamp of the first sample at or beyond
// threshold: y >= threshold for Up, y <= threshold for Down. ok is false
// when no sample qualifies or when the inputs are empty or mismatched in
// length.
func FirstCrossTime(t, y []float64, threshold float64, dir Direction) (event float64, ok bool) {
	if len(t) == 0 || len(y) == 0 || len(t) != len(y) {
		return 0, false
	}

	for i := range y {
		if dir == Up && y[i] >= threshold {
			return t[i], true
		}
		if dir == Down && y[i] <= threshold {
			return t[i], true
		}
	}
	return 0, false
}

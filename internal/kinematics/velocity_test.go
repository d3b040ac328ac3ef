package kinematics

import (
	"math"
	"testing"
)

func TestVelocity(t *testing.T) {
	testCases := []struct {
		name     string
		y        []float64
		t        []float64
		expected []float64
	}{
		{"empty", nil, nil, []float64{}},
		{"single_sample", []float64{5.0}, []float64{0.0}, []float64{0}},
		{"two_samples", []float64{0, 3}, []float64{0, 1.5}, []float64{2, 2}},
		{"endpoints_and_central", []float64{0, 2, 6}, []float64{0, 1, 2}, []float64{2, 3, 4}},
		{"constant_position", []float64{7, 7, 7, 7}, []float64{0, 0.1, 0.2, 0.3}, []float64{0, 0, 0, 0}},
		{"negative_motion", []float64{6, 2, 0}, []float64{0, 1, 2}, []float64{-4, -3, -2}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Velocity(tc.y, tc.t)
			if len(got) != len(tc.expected) {
				t.Fatalf("length mismatch: expected %d, got %d", len(tc.expected), len(got))
			}
			for i, want := range tc.expected {
				if math.Abs(got[i]-want) > 1e-9 {
					t.Errorf("v[%d]: expected %g, got %g", i, want, got[i])
				}
			}
		})
	}
}

func TestVelocityCentralDifferenceIsThreeAtMiddle(t *testing.T) {
	// v[1] spans y[2]-y[0] over t[2]-t[0]: (6-0)/(2-0) = 3, not the
	// one-sided 4.
	v := Velocity([]float64{0, 2, 6}, []float64{0, 1, 2})
	if v[1] != 3 {
		t.Errorf("expected central difference 3 at index 1, got %g", v[1])
	}
}

func TestVelocityZeroTimeDeltaGuard(t *testing.T) {
	// Duplicate timestamps must not divide by zero; the epsilon guard
	// yields a huge but finite value.
	v := Velocity([]float64{0, 1}, []float64{0.5, 0.5})
	for i, vi := range v {
		if math.IsInf(vi, 0) || math.IsNaN(vi) {
			t.Errorf("v[%d] not finite: %g", i, vi)
		}
	}
}

func TestVelocityLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for mismatched input lengths")
		}
	}()
	Velocity([]float64{1, 2, 3}, []float64{0, 1})
}

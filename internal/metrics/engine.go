// Package metrics derives per-trial timing and accuracy measures from
// cleaned session trials and aggregates them per participant × condition.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/motorlab/tracking.report/internal/detect"
	"github.com/motorlab/tracking.report/internal/kinematics"
	"github.com/motorlab/tracking.report/internal/session"
)

// Params is the immutable analysis parameter bundle. It is assembled once
// at the CLI boundary (defaults, config file, flags) and passed by value
// into the engine; the algorithms never consult global state.
type Params struct {
	L              float64 // total travel distance [px]; start is -L/2, goal +L/2
	PosWindowMS    float64 // half width of the truth-centered variance windows [ms]
	StartMarginPx  float64 // position threshold margin above the start position [px]
	EndMarginPx    float64 // position threshold margin below the goal position [px]
	MotionDuration float64 // ideal motion duration T [s]; end window centers on tau+T
	VStart         float64 // onset velocity threshold [px/s]
	VStop          float64 // offset absolute-velocity threshold [px/s]
	HoldStartMS    float64 // onset hold duration [ms]
	HoldStopMS     float64 // offset hold duration [ms]
	UseVelocity    bool    // velocity-based detection; false selects position thresholds
}

// TrialMetrics is the derived record for one trial. Fields that could not
// be computed are None; a missing detection never fails the pipeline.
type TrialMetrics struct {
	Trial       int
	Tau         float64
	TStart      Value // detected movement onset [s]
	TEnd        Value // detected movement offset [s]
	PosVarStart Value // pointer variance in the window centred on tau [px²]
	PosVarEnd   Value // pointer variance in the window centred on tau+T [px²]
	YEndMean    Value // mean pointer position in the end window [px]
	MSETruth    Value // mean squared tracking error over [tau, tau+T] [px²]
}

// TrialRow is a TrialMetrics record tagged with its grouping key, the shape
// emitted by the pipeline and consumed by the summariser and writers.
type TrialRow struct {
	Participant string
	Condition   string
	TrialMetrics
}

// Compute derives the metrics for a single trial. The truth-centered
// windows are positioned on the ideal schedule (tau, tau+T) regardless of
// the detected onset/offset, so window placement never depends on the
// detection strategy in use.
func (p Params) Compute(tr session.Trial) TrialMetrics {
	t := tr.Times()
	yp := tr.PointerY()
	yt := tr.TruthY()
	tau := tr.Tau()

	m := TrialMetrics{Trial: tr.Number, Tau: tau}

	yStart := -p.L / 2
	yGoal := p.L / 2

	if p.UseVelocity {
		v := kinematics.Velocity(yp, t)
		moving := make([]bool, len(v))
		still := make([]bool, len(v))
		for i, vi := range v {
			moving[i] = vi >= p.VStart
			still[i] = math.Abs(vi) <= p.VStop
		}
		if ts, ok := detect.FirstSustainTime(t, moving, p.HoldStartMS/1000); ok {
			m.TStart = Some(ts)
			// The offset search starts at the detected onset: the pointer is
			// at rest before the movement begins, and that lead-in would
			// otherwise always satisfy the stillness condition.
			from := 0
			for from < len(t) && t[from] < ts {
				from++
			}
			if te, ok := detect.FirstSustainTime(t[from:], still[from:], p.HoldStopMS/1000); ok {
				m.TEnd = Some(te)
			}
		} else if te, ok := detect.FirstSustainTime(t, still, p.HoldStopMS/1000); ok {
			m.TEnd = Some(te)
		}
	} else {
		if ts, ok := detect.FirstCrossTime(t, yp, yStart+p.StartMarginPx, detect.Up); ok {
			m.TStart = Some(ts)
		}
		if te, ok := detect.FirstCrossTime(t, yp, yGoal-p.EndMarginPx, detect.Up); ok {
			m.TEnd = Some(te)
		}
	}

	centerStart := tau
	centerEnd := tau + p.MotionDuration
	halfW := p.PosWindowMS / 1000

	startWin := window(t, yp, centerStart-halfW, centerStart+halfW)
	endWin := window(t, yp, centerEnd-halfW, centerEnd+halfW)

	if len(startWin) > 1 {
		m.PosVarStart = Some(stat.Variance(startWin, nil))
	}
	if len(endWin) > 1 {
		m.PosVarEnd = Some(stat.Variance(endWin, nil))
	}
	if len(endWin) > 0 {
		m.YEndMean = Some(stat.Mean(endWin, nil))
	}

	// Tracking error over the ideal motion interval, endpoints included.
	var sq float64
	var n int
	for i := range t {
		if t[i] >= centerStart && t[i] <= centerEnd {
			d := yp[i] - yt[i]
			sq += d * d
			n++
		}
	}
	if n > 0 {
		m.MSETruth = Some(sq / float64(n))
	}

	return m
}

// window selects the y values whose timestamps fall in [lo, hi].
func window(t, y []float64, lo, hi float64) []float64 {
	var out []float64
	for i := range t {
		if t[i] >= lo && t[i] <= hi {
			out = append(out, y[i])
		}
	}
	return out
}

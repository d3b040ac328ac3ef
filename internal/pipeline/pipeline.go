// Package pipeline runs the full trial-metrics extraction: grouped session
// trials in, per-trial metrics and per-condition summaries out. One batch
// pass, no cross-trial state; results are emitted in deterministic
// composite-key order.
package pipeline

import (
	"github.com/motorlab/tracking.report/internal/metrics"
	"github.com/motorlab/tracking.report/internal/session"
)

// Result holds both output tables of one analysis run.
type Result struct {
	Trials  []metrics.TrialRow
	Summary []metrics.ConditionSummary
}

// Run computes metrics for every trial in the session and summarises them
// by participant × condition. Trials are processed independently; ordering
// comes from Session.Trials, which sorts by (participant, condition,
// trial).
func Run(sess *session.Session, p metrics.Params) Result {
	trials := sess.Trials()
	rows := make([]metrics.TrialRow, 0, len(trials))
	for _, tr := range trials {
		rows = append(rows, metrics.TrialRow{
			Participant:  tr.Participant,
			Condition:    tr.Condition,
			TrialMetrics: p.Compute(tr),
		})
	}
	return Result{
		Trials:  rows,
		Summary: metrics.Summarize(rows),
	}
}

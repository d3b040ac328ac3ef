// Package report renders analysis results: the two CSV output tables and
// an optional HTML chart page.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/motorlab/tracking.report/internal/metrics"
)

// TrialHeader is the per-trial table header, in emission order.
var TrialHeader = []string{
	"participant", "condition", "trial", "tau",
	"t_start", "t_end",
	"pos_var_start", "pos_var_end",
	"y_end_mean", "mse_truth",
}

// SummaryHeader is the per-condition table header, in emission order.
var SummaryHeader = []string{
	"participant", "condition", "n_trials",
	"t_start_mean", "t_start_std",
	"t_end_mean", "t_end_std",
	"pos_var_start_mean", "pos_var_start_std",
	"pos_var_end_mean", "pos_var_end_std",
	"y_end_mean_mean", "y_end_mean_std",
	"mse_truth_mean", "mse_truth_std",
}

// WriteTrials writes the per-trial metrics table. Rows are emitted in the
// order given; callers pass pipeline output, which is already sorted by
// (participant, condition, trial). Undefined metrics become empty cells.
func WriteTrials(w io.Writer, rows []metrics.TrialRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TrialHeader); err != nil {
		return fmt.Errorf("failed to write trial header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Participant,
			r.Condition,
			strconv.Itoa(r.Trial),
			formatFloat(r.Tau),
			formatValue(r.TStart),
			formatValue(r.TEnd),
			formatValue(r.PosVarStart),
			formatValue(r.PosVarEnd),
			formatValue(r.YEndMean),
			formatValue(r.MSETruth),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write trial row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummary writes the per-condition summary table, in the order given
// (pipeline output is sorted by participant, condition).
func WriteSummary(w io.Writer, rows []metrics.ConditionSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummaryHeader); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Participant,
			r.Condition,
			strconv.Itoa(r.NTrials),
			formatValue(r.TStartMean),
			formatValue(r.TStartStd),
			formatValue(r.TEndMean),
			formatValue(r.TEndStd),
			formatValue(r.PosVarStartMean),
			formatValue(r.PosVarStartStd),
			formatValue(r.PosVarEndMean),
			formatValue(r.PosVarEndStd),
			formatValue(r.YEndMeanMean),
			formatValue(r.YEndMeanStd),
			formatValue(r.MSETruthMean),
			formatValue(r.MSETruthStd),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatValue renders an optional metric; undefined values become empty
// cells, matching the upstream table convention for missing data.
func formatValue(v metrics.Value) string {
	f, ok := v.Float64()
	if !ok {
		return ""
	}
	return formatFloat(f)
}

// formatFloat uses the shortest representation that round-trips, so
// re-running the pipeline on identical input reproduces the file exactly.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

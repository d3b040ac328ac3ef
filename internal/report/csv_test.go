package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/motorlab/tracking.report/internal/metrics"
)

func TestWriteTrials(t *testing.T) {
	rows := []metrics.TrialRow{
		{
			Participant: "p01",
			Condition:   "1",
			TrialMetrics: metrics.TrialMetrics{
				Trial:       0,
				Tau:         0.5,
				TStart:      metrics.Some(0.55),
				TEnd:        metrics.Some(1.45),
				PosVarStart: metrics.Some(0.25),
				PosVarEnd:   metrics.None(),
				YEndMean:    metrics.Some(199.5),
				MSETruth:    metrics.Some(1.25),
			},
		},
		{
			Participant: "p01",
			Condition:   "2",
			TrialMetrics: metrics.TrialMetrics{
				Trial: 1,
				Tau:   0.42,
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteTrials(&buf, rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := strings.Join([]string{
		"participant,condition,trial,tau,t_start,t_end,pos_var_start,pos_var_end,y_end_mean,mse_truth",
		"p01,1,0,0.5,0.55,1.45,0.25,,199.5,1.25",
		"p01,2,1,0.42,,,,,,",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("trial table mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteSummary(t *testing.T) {
	rows := []metrics.ConditionSummary{
		{
			Participant:  "p01",
			Condition:    "1",
			NTrials:      3,
			TStartMean:   metrics.Some(0.6),
			TStartStd:    metrics.Some(0.1),
			MSETruthMean: metrics.Some(2),
		},
	}

	var buf bytes.Buffer
	if err := WriteSummary(&buf, rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := strings.Join([]string{
		"participant,condition,n_trials,t_start_mean,t_start_std,t_end_mean,t_end_std," +
			"pos_var_start_mean,pos_var_start_std,pos_var_end_mean,pos_var_end_std," +
			"y_end_mean_mean,y_end_mean_std,mse_truth_mean,mse_truth_std",
		"p01,1,3,0.6,0.1,,,,,,,,,2,",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("summary table mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteTrialsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTrials(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != strings.Join(TrialHeader, ",") {
		t.Errorf("expected header only, got %q", got)
	}
}

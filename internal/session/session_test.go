package session

import (
	"errors"
	"strings"
	"testing"
)

const validHeader = "participant,condition,trial,tau,t,y_t,x_p,y_p"

func TestLoadCSV(t *testing.T) {
	input := validHeader + "\n" +
		"p01,1,0,0.5,0.0,-200,0,-200\n" +
		"p01,1,0,0.5,0.016,-200,0,-199.5\n" +
		"p01,1,1,0.42,0.0,-200,0,-200\n"

	sess, err := LoadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sess.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(sess.Records))
	}
	if sess.Dropped != 0 {
		t.Errorf("expected 0 dropped rows, got %d", sess.Dropped)
	}

	r := sess.Records[0]
	if r.Participant != "p01" || r.Condition != "1" || r.Trial != 0 {
		t.Errorf("unexpected first record key: %+v", r)
	}
	if r.Tau != 0.5 || r.YPointer != -200 {
		t.Errorf("unexpected first record values: %+v", r)
	}
}

func TestLoadCSVDropsBadRows(t *testing.T) {
	testCases := []struct {
		name    string
		row     string
		dropped int
	}{
		{"unparseable_tau", "p01,1,0,oops,0.0,-200,0,-200", 1},
		{"empty_required_field", "p01,1,0,,0.0,-200,0,-200", 1},
		{"nan_field", "p01,1,0,NaN,0.0,-200,0,-200", 1},
		{"inf_field", "p01,1,0,0.5,0.0,+Inf,0,-200", 1},
		{"short_row", "p01,1,0,0.5", 1},
		{"non_integer_trial", "p01,1,half,0.5,0.0,-200,0,-200", 1},
		{"float_integer_trial_kept", "p01,1,3.0,0.5,0.0,-200,0,-200", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := validHeader + "\n" + tc.row + "\n"
			sess, err := LoadCSV(strings.NewReader(input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sess.Dropped != tc.dropped {
				t.Errorf("dropped: expected %d, got %d", tc.dropped, sess.Dropped)
			}
			if len(sess.Records) != 1-tc.dropped {
				t.Errorf("records: expected %d, got %d", 1-tc.dropped, len(sess.Records))
			}
		})
	}
}

func TestLoadCSVMissingColumn(t *testing.T) {
	input := "participant,condition,trial,tau,t,y_t,x_p\n" + // y_p missing
		"p01,1,0,0.5,0.0,-200,0\n"

	_, err := LoadCSV(strings.NewReader(input))
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if schemaErr.Column != "y_p" {
		t.Errorf("expected missing column y_p, got %q", schemaErr.Column)
	}
}

func TestLoadCSVEmptyInput(t *testing.T) {
	_, err := LoadCSV(strings.NewReader(""))
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError for empty input, got %v", err)
	}
}

func TestLoadCSVIgnoresExtraColumns(t *testing.T) {
	input := "participant,condition,trial,tau,t,y_t,x_p,y_p,monitor_hz\n" +
		"p01,1,0,0.5,0.0,-200,0,-200,60\n"

	sess, err := LoadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sess.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sess.Records))
	}
}

func TestTrialsGroupingAndOrder(t *testing.T) {
	// Rows arrive interleaved and unsorted in time; grouping must produce
	// time-ordered trials in composite-key order.
	input := validHeader + "\n" +
		"p02,1,0,0.4,0.0,-200,0,-200\n" +
		"p01,2,1,0.5,0.1,-200,0,-190\n" +
		"p01,2,1,0.5,0.0,-200,0,-200\n" +
		"p01,1,0,0.6,0.0,-200,0,-200\n"

	sess, err := LoadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	trials := sess.Trials()
	if len(trials) != 3 {
		t.Fatalf("expected 3 trials, got %d", len(trials))
	}

	wantKeys := []struct {
		participant, condition string
		number                 int
	}{
		{"p01", "1", 0},
		{"p01", "2", 1},
		{"p02", "1", 0},
	}
	for i, want := range wantKeys {
		tr := trials[i]
		if tr.Participant != want.participant || tr.Condition != want.condition || tr.Number != want.number {
			t.Errorf("trial %d: expected %v, got %s/%s/%d",
				i, want, tr.Participant, tr.Condition, tr.Number)
		}
	}

	// The p01/2/1 trial's samples must be re-ordered by timestamp.
	p012 := trials[1]
	if len(p012.Samples) != 2 || p012.Samples[0].T != 0.0 || p012.Samples[1].T != 0.1 {
		t.Errorf("expected samples sorted by t, got %+v", p012.Samples)
	}
	if p012.Tau() != 0.5 {
		t.Errorf("tau: expected 0.5, got %g", p012.Tau())
	}
}

func TestTrialColumnAccessors(t *testing.T) {
	tr := Trial{Samples: []Record{
		{T: 0, YTruth: -200, YPointer: -199},
		{T: 0.1, YTruth: -180, YPointer: -185},
	}}

	if got := tr.Times(); got[0] != 0 || got[1] != 0.1 {
		t.Errorf("Times: got %v", got)
	}
	if got := tr.TruthY(); got[0] != -200 || got[1] != -180 {
		t.Errorf("TruthY: got %v", got)
	}
	if got := tr.PointerY(); got[0] != -199 || got[1] != -185 {
		t.Errorf("PointerY: got %v", got)
	}
	if (Trial{}).Tau() != 0 {
		t.Error("Tau of empty trial should be 0")
	}
}

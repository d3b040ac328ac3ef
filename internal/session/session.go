// Package session loads and cleans the raw experiment log produced by the
// stimulus presentation front-end. Each row is one rendered frame:
// participant and condition identifiers, the trial number, the randomised
// onset delay tau, the frame timestamp, the ideal target position and the
// observed pointer position.
package session

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// RequiredColumns are the columns a session CSV must carry. Extra columns
// are ignored.
var RequiredColumns = []string{"participant", "condition", "trial", "tau", "t", "y_t", "x_p", "y_p"}

// SchemaError reports a required column missing from the input header.
// It aborts the run: partial rows can be dropped, a missing column cannot.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("session: required column %q missing from header", e.Column)
}

// Record is one cleaned sample row.
type Record struct {
	Participant string
	Condition   string
	Trial       int
	Tau         float64 // randomised onset delay [s]
	T           float64 // frame timestamp [s], non-decreasing within a trial
	YTruth      float64 // ideal target position [px]
	XPointer    float64 // observed pointer x [px], unused by the metrics core
	YPointer    float64 // observed pointer y [px]
}

// Trial is the time-ordered sample sequence for one
// (participant, condition, trial) key.
type Trial struct {
	Participant string
	Condition   string
	Number      int
	Samples     []Record
}

// Tau returns the trial's onset delay. The delay is constant within a
// trial; the first sample's value is authoritative.
func (tr Trial) Tau() float64 {
	if len(tr.Samples) == 0 {
		return 0
	}
	return tr.Samples[0].Tau
}

// Times returns the timestamp column of the trial.
func (tr Trial) Times() []float64 {
	out := make([]float64, len(tr.Samples))
	for i, s := range tr.Samples {
		out[i] = s.T
	}
	return out
}

// PointerY returns the observed pointer position column of the trial.
func (tr Trial) PointerY() []float64 {
	out := make([]float64, len(tr.Samples))
	for i, s := range tr.Samples {
		out[i] = s.YPointer
	}
	return out
}

// TruthY returns the ideal target position column of the trial.
func (tr Trial) TruthY() []float64 {
	out := make([]float64, len(tr.Samples))
	for i, s := range tr.Samples {
		out[i] = s.YTruth
	}
	return out
}

// Session is a cleaned, typed session log.
type Session struct {
	Records []Record
	Dropped int // rows excluded for missing or unparseable required fields
}

// LoadCSV reads a session log. The header row is mandatory and is matched
// case-sensitively against RequiredColumns; a missing column yields a
// *SchemaError. Rows whose numeric fields fail to parse (or are NaN/Inf)
// are dropped and counted, never fatal.
func LoadCSV(r io.Reader) (*Session, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("session: empty input: %w", &SchemaError{Column: RequiredColumns[0]})
	}
	if err != nil {
		return nil, fmt.Errorf("session: failed to read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, &SchemaError{Column: col}
		}
	}

	sess := &Session{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("session: failed to read row: %w", err)
		}

		rec, ok := parseRow(row, idx)
		if !ok {
			sess.Dropped++
			continue
		}
		sess.Records = append(sess.Records, rec)
	}
	return sess, nil
}

// parseRow converts one raw CSV row into a Record. ok is false when any
// required numeric field is absent, unparseable or non-finite.
func parseRow(row []string, idx map[string]int) (Record, bool) {
	field := func(col string) (string, bool) {
		i := idx[col]
		if i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	var rec Record
	var ok bool
	if rec.Participant, ok = field("participant"); !ok {
		return Record{}, false
	}
	if rec.Condition, ok = field("condition"); !ok {
		return Record{}, false
	}

	raw, ok := field("trial")
	if !ok {
		return Record{}, false
	}
	trial, err := strconv.Atoi(raw)
	if err != nil {
		// Some writers emit trial numbers as floats ("3.0").
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
			return Record{}, false
		}
		trial = int(f)
	}
	rec.Trial = trial

	for _, c := range []struct {
		col string
		dst *float64
	}{
		{"tau", &rec.Tau},
		{"t", &rec.T},
		{"y_t", &rec.YTruth},
		{"x_p", &rec.XPointer},
		{"y_p", &rec.YPointer},
	} {
		raw, ok := field(c.col)
		if !ok || raw == "" {
			return Record{}, false
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Record{}, false
		}
		*c.dst = v
	}
	return rec, true
}

type trialKey struct {
	participant string
	condition   string
	trial       int
}

// Trials groups the session's records by (participant, condition, trial).
// Samples within a trial are ordered by timestamp and trials are returned
// in deterministic composite-key order.
func (s *Session) Trials() []Trial {
	groups := make(map[trialKey][]Record)
	for _, rec := range s.Records {
		k := trialKey{rec.Participant, rec.Condition, rec.Trial}
		groups[k] = append(groups[k], rec)
	}

	keys := make([]trialKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.participant != b.participant {
			return a.participant < b.participant
		}
		if a.condition != b.condition {
			return a.condition < b.condition
		}
		return a.trial < b.trial
	})

	trials := make([]Trial, 0, len(keys))
	for _, k := range keys {
		samples := groups[k]
		sort.SliceStable(samples, func(i, j int) bool { return samples[i].T < samples[j].T })
		trials = append(trials, Trial{
			Participant: k.participant,
			Condition:   k.condition,
			Number:      k.trial,
			Samples:     samples,
		})
	}
	return trials
}

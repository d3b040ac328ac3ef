package metrics

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ConditionSummary aggregates the trial metrics of one
// participant × condition group. NTrials counts every trial in the group;
// the mean/std pairs are computed over the defined values only. A std is
// None when fewer than two defined values contributed, a mean when none
// did.
type ConditionSummary struct {
	Participant string
	Condition   string
	NTrials     int

	TStartMean      Value
	TStartStd       Value
	TEndMean        Value
	TEndStd         Value
	PosVarStartMean Value
	PosVarStartStd  Value
	PosVarEndMean   Value
	PosVarEndStd    Value
	YEndMeanMean    Value
	YEndMeanStd     Value
	MSETruthMean    Value
	MSETruthStd     Value
}

type conditionKey struct {
	participant string
	condition   string
}

// Summarize groups trial rows by (participant, condition) and computes the
// descriptive statistics for each group, in deterministic key order.
func Summarize(rows []TrialRow) []ConditionSummary {
	groups := make(map[conditionKey][]TrialRow)
	for _, r := range rows {
		k := conditionKey{r.Participant, r.Condition}
		groups[k] = append(groups[k], r)
	}

	keys := make([]conditionKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].participant != keys[j].participant {
			return keys[i].participant < keys[j].participant
		}
		return keys[i].condition < keys[j].condition
	})

	out := make([]ConditionSummary, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		s := ConditionSummary{
			Participant: k.participant,
			Condition:   k.condition,
			NTrials:     len(g),
		}
		s.TStartMean, s.TStartStd = meanStd(collect(g, func(m TrialMetrics) Value { return m.TStart }))
		s.TEndMean, s.TEndStd = meanStd(collect(g, func(m TrialMetrics) Value { return m.TEnd }))
		s.PosVarStartMean, s.PosVarStartStd = meanStd(collect(g, func(m TrialMetrics) Value { return m.PosVarStart }))
		s.PosVarEndMean, s.PosVarEndStd = meanStd(collect(g, func(m TrialMetrics) Value { return m.PosVarEnd }))
		s.YEndMeanMean, s.YEndMeanStd = meanStd(collect(g, func(m TrialMetrics) Value { return m.YEndMean }))
		s.MSETruthMean, s.MSETruthStd = meanStd(collect(g, func(m TrialMetrics) Value { return m.MSETruth }))
		out = append(out, s)
	}
	return out
}

// collect gathers the defined values of one metric field across a group.
func collect(g []TrialRow, field func(TrialMetrics) Value) []float64 {
	var vals []float64
	for _, r := range g {
		if v, ok := field(r.TrialMetrics).Float64(); ok {
			vals = append(vals, v)
		}
	}
	return vals
}

// meanStd computes the arithmetic mean and sample (N−1) standard deviation.
// The mean is None for an empty input, the std below two values.
func meanStd(vals []float64) (mean, std Value) {
	if len(vals) == 0 {
		return None(), None()
	}
	mean = Some(stat.Mean(vals, nil))
	if len(vals) < 2 {
		return mean, None()
	}
	return mean, Some(stat.StdDev(vals, nil))
}

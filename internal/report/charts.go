package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/motorlab/tracking.report/internal/metrics"
)

// WriteConditionCharts renders the per-condition summary as a single HTML
// page of bar charts (one chart per headline metric). Undefined means are
// plotted as gaps so missing groups stay visible rather than reading as
// zero.
func WriteConditionCharts(w io.Writer, rows []metrics.ConditionSummary) error {
	labels := make([]string, len(rows))
	for i, r := range rows {
		labels[i] = fmt.Sprintf("%s/%s", r.Participant, r.Condition)
	}

	page := components.NewPage()
	page.PageTitle = "Tracking metrics by condition"
	page.AddCharts(
		summaryBar("Movement onset", "t_start mean (s)", labels, rows,
			func(s metrics.ConditionSummary) metrics.Value { return s.TStartMean }),
		summaryBar("Movement offset", "t_end mean (s)", labels, rows,
			func(s metrics.ConditionSummary) metrics.Value { return s.TEndMean }),
		summaryBar("Tracking error", "mse_truth mean (px²)", labels, rows,
			func(s metrics.ConditionSummary) metrics.Value { return s.MSETruthMean }),
		summaryBar("End-window variance", "pos_var_end mean (px²)", labels, rows,
			func(s metrics.ConditionSummary) metrics.Value { return s.PosVarEndMean }),
	)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render condition charts: %w", err)
	}
	return nil
}

// summaryBar builds one bar chart over the participant/condition axis.
func summaryBar(title, yName string, labels []string, rows []metrics.ConditionSummary,
	field func(metrics.ConditionSummary) metrics.Value) *charts.Bar {

	data := make([]opts.BarData, len(rows))
	for i, r := range rows {
		if v, ok := field(r).Float64(); ok {
			data[i] = opts.BarData{Value: v}
		} else {
			data[i] = opts.BarData{Value: nil}
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "participant/condition"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
	)
	bar.SetXAxis(labels)
	bar.AddSeries("mean", data)
	return bar
}

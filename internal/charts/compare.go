package charts

import (
	"strings"

	"dividash/internal/scale"
	"dividash/internal/state"
)

// ComparisonBars groups bars by metric (the first few of the active
// multi-metric set) across 2+ selected entities. Clicking inside a
// group makes that metric active.
type ComparisonBars struct {
	MaxMetrics int

	lineMetric []string // metric per rendered line, "" for blanks
}

func NewComparisonBars() ComparisonBars {
	return ComparisonBars{MaxMetrics: 5}
}

func (c *ComparisonBars) Render(st state.State, w, h int) string {
	if len(st.Selected) < 2 {
		return Placeholder("select at least two states to compare", w, h)
	}
	metrics := st.ActiveMetrics
	if len(metrics) > c.MaxMetrics {
		metrics = metrics[:c.MaxMetrics]
	}
	if len(metrics) == 0 {
		return Placeholder("no metrics chosen", w, h)
	}

	c.lineMetric = c.lineMetric[:0]
	var lines []string
	emit := func(metric, s string) {
		c.lineMetric = append(c.lineMetric, metric)
		lines = append(lines, s)
	}

	labelW := 3
	barW := max(4, w-labelW-12)
	for _, metric := range metrics {
		title := truncate(metric, w-2)
		if metric == st.ActiveMetric {
			emit(metric, activeStyle.Render(title))
		} else {
			emit(metric, titleStyle.Render(title))
		}
		// each group scales to its own max across the selection; the
		// income rescale keeps the group widths comparable by eye
		dom := scale.PlotDomain(metric, rowsOf(st.Selected))
		lin := scale.Linear{D: scale.Domain{Min: 0, Max: dom.Max, OK: dom.OK}, R0: 0, R1: 1}
		for i, e := range st.Selected {
			v, ok := e.Row.Value(metric)
			frac := 0.0
			if ok {
				frac = lin.Map(scale.PlotValue(metric, v))
			}
			emit(metric, padTo(e.Row.Code, labelW)+bar(frac, barW, scale.SeriesColor(i))+" "+dimStyle.Render(e.Row.Display(metric)))
		}
		emit("", "")
	}
	return strings.Join(lines, "\n")
}

// MetricAt maps a rendered line back to its metric group.
func (c *ComparisonBars) MetricAt(line int) (string, bool) {
	if line < 0 || line >= len(c.lineMetric) || c.lineMetric[line] == "" {
		return "", false
	}
	return c.lineMetric[line], true
}

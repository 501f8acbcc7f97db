package charts

import (
	"strings"

	"dividash/internal/census"
	"dividash/internal/scale"
	"dividash/internal/state"
)

// EntityBars profiles a single entity: one bar per catalog metric,
// each scaled against that metric's dataset-wide domain so the bar
// shows where the state sits among its peers. The active metric's bar
// is highlighted; clicking a bar activates its metric.
type EntityBars struct {
	lineMetric []string
}

func (eb *EntityBars) Render(ds *census.Dataset, st state.State, w, h int) string {
	if len(st.Selected) == 0 || ds == nil {
		return Placeholder("select a state to profile", w, h)
	}
	e := st.Selected[len(st.Selected)-1]

	eb.lineMetric = eb.lineMetric[:0]
	var lines []string
	eb.lineMetric = append(eb.lineMetric, "")
	lines = append(lines, titleStyle.Render(truncate(e.Row.Name, w-2)))

	labelW := min(24, max(8, w/3))
	barW := max(4, w-labelW-12)
	for _, metric := range ds.Catalog {
		dom := scale.MetricDomain(metric, ds.Rows)
		lin := scale.Linear{D: scale.Domain{Min: 0, Max: dom.Max, OK: dom.OK}, R0: 0, R1: 1}
		v, ok := e.Row.Value(metric)
		frac := 0.0
		if ok {
			frac = lin.Map(v)
		}
		name := truncate(metric, labelW-1)
		col := barFill
		if metric == st.ActiveMetric {
			name = activeStyle.Render(name)
			col = selectedEdge
		}
		eb.lineMetric = append(eb.lineMetric, metric)
		lines = append(lines, padTo(name, labelW)+bar(frac, barW, col)+" "+dimStyle.Render(e.Row.Display(metric)))
	}
	return strings.Join(lines, "\n")
}

// MetricAt maps a rendered line (0 = title) back to its metric.
func (eb *EntityBars) MetricAt(line int) (string, bool) {
	if line < 0 || line >= len(eb.lineMetric) || eb.lineMetric[line] == "" {
		return "", false
	}
	return eb.lineMetric[line], true
}

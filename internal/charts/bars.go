package charts

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dividash/internal/census"
	"dividash/internal/scale"
	"dividash/internal/state"
)

var (
	barFill  = lipgloss.Color("#3B82F6")
	barTrack = lipgloss.Color("#243141")
)

// bar renders a horizontal block bar: frac of width filled, the rest
// drawn as track so zero-length bars are still visible at the baseline.
func bar(frac float64, width int, col lipgloss.Color) string {
	if width < 1 {
		width = 1
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(width))
	if filled < 1 && frac > 0 {
		filled = 1
	}
	fill := lipgloss.NewStyle().Foreground(col).Render(strings.Repeat("█", filled))
	track := lipgloss.NewStyle().Foreground(barTrack).Render(strings.Repeat("░", width-filled))
	return fill + track
}

// SortedBars is the grouped bar chart: one bar per selected entity for
// the active metric, sort direction toggleable. Missing values render
// as zero-length bars annotated "no data" so they read differently
// from a true zero.
type SortedBars struct {
	Desc bool

	order []state.Entity // entity per rendered bar line, for hit-testing
}

func (b *SortedBars) ToggleSort() {
	b.Desc = !b.Desc
}

func (b *SortedBars) Render(st state.State, w, h int) string {
	entities := st.Selected
	if len(entities) == 0 {
		return Placeholder("click states on the map to compare", w, h)
	}
	metric := st.ActiveMetric

	sorted := append([]state.Entity{}, entities...)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, oki := sorted[i].Row.Value(metric)
		vj, okj := sorted[j].Row.Value(metric)
		if oki != okj {
			return oki // missing values sink to the bottom
		}
		if b.Desc {
			return vi > vj
		}
		return vi < vj
	})
	b.order = sorted

	dom := scale.MetricDomain(metric, rowsOf(sorted))
	lin := scale.Linear{D: scale.Domain{Min: 0, Max: dom.Max, OK: dom.OK}, R0: 0, R1: 1}

	dir := "▲"
	if b.Desc {
		dir = "▼"
	}
	lines := []string{titleStyle.Render(truncate(metric, w-2)) + dimStyle.Render(" "+dir)}

	labelW := 3
	barW := max(4, w-labelW-12)
	for _, e := range sorted {
		v, ok := e.Row.Value(metric)
		frac := 0.0
		if ok {
			frac = lin.Map(v)
		}
		line := padTo(e.Row.Code, labelW) + bar(frac, barW, barFill) + " " + dimStyle.Render(e.Row.Display(metric))
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// EntityAt maps a rendered line (0 = title) back to the entity.
func (b *SortedBars) EntityAt(line int) (state.Entity, bool) {
	i := line - 1
	if i < 0 || i >= len(b.order) {
		return state.Entity{}, false
	}
	return b.order[i], true
}

func rowsOf(entities []state.Entity) []census.Row {
	rows := make([]census.Row, len(entities))
	for i, e := range entities {
		rows[i] = e.Row
	}
	return rows
}

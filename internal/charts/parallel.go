package charts

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dividash/internal/scale"
	"dividash/internal/state"
)

// ParallelCoords draws one polyline per selected entity across a
// reorderable sequence of metric axes. Axis order is local chart
// state; dragging an axis header and dropping it splices the order.
// Brushing an interval on an axis filters the shared selection (the
// compositor applies the interval via state.FilterSelection).
type ParallelCoords struct {
	Order []string

	dragSource int
	brushAxis  int
	brushY0    int
	brushY1    int
	brushing   bool

	// layout captured at render time, consumed by hit-testing
	axisX   []int
	plotTop int
	plotBot int
	domains []scale.Domain
}

func NewParallelCoords() ParallelCoords {
	return ParallelCoords{dragSource: -1, brushAxis: -1}
}

// SetMetrics adopts the active multi-metric set. A user-made order
// survives as long as the set itself is unchanged.
func (p *ParallelCoords) SetMetrics(metrics []string) {
	if sameSet(p.Order, metrics) {
		return
	}
	p.Order = append([]string{}, metrics...)
	p.dragSource = -1
	p.brushAxis = -1
	p.brushing = false
}

// Reorder moves the axis at from before position to. The result is a
// permutation of the previous order by construction.
func (p *ParallelCoords) Reorder(from, to int) {
	if from < 0 || from >= len(p.Order) || to < 0 || to >= len(p.Order) || from == to {
		return
	}
	m := p.Order[from]
	rest := append(append([]string{}, p.Order[:from]...), p.Order[from+1:]...)
	p.Order = append(append(append([]string{}, rest[:to]...), m), rest[to:]...)
}

// AxisAt finds the nearest axis to a cell column, the drop-target rule
// for drags and the anchor for brushes.
func (p *ParallelCoords) AxisAt(cellX int) (int, bool) {
	if len(p.axisX) == 0 {
		return 0, false
	}
	best, bestD := 0, 1<<31-1
	for i, x := range p.axisX {
		d := abs(x - cellX)
		if d < bestD {
			best, bestD = i, d
		}
	}
	return best, true
}

// StartDrag begins dragging the axis under the given column.
func (p *ParallelCoords) StartDrag(cellX int) bool {
	i, ok := p.AxisAt(cellX)
	if !ok {
		return false
	}
	p.dragSource = i
	return true
}

// Dragging reports an in-progress axis drag.
func (p *ParallelCoords) Dragging() bool { return p.dragSource >= 0 }

// CompleteDrag drops the dragged axis at the nearest axis to the
// release column.
func (p *ParallelCoords) CompleteDrag(cellX int) bool {
	if p.dragSource < 0 {
		return false
	}
	from := p.dragSource
	p.dragSource = -1
	to, ok := p.AxisAt(cellX)
	if !ok || to == from {
		return false
	}
	p.Reorder(from, to)
	return true
}

// StartBrush anchors an interval brush on the axis nearest the column.
func (p *ParallelCoords) StartBrush(cellX, cellY int) bool {
	i, ok := p.AxisAt(cellX)
	if !ok {
		return false
	}
	p.brushAxis = i
	p.brushY0 = cellY
	p.brushY1 = cellY
	p.brushing = true
	return true
}

// ExtendBrush grows the interval while the pointer moves.
func (p *ParallelCoords) ExtendBrush(cellY int) {
	if p.brushing {
		p.brushY1 = cellY
	}
}

// Brushing reports an in-progress brush.
func (p *ParallelCoords) Brushing() bool { return p.brushing }

// EndBrush finishes the brush and converts the row interval back into
// metric values via the axis scale captured at render time.
func (p *ParallelCoords) EndBrush() (metric string, lo, hi float64, ok bool) {
	if !p.brushing {
		return "", 0, 0, false
	}
	p.brushing = false
	axis := p.brushAxis
	p.brushAxis = -1
	if axis < 0 || axis >= len(p.Order) || axis >= len(p.domains) || !p.domains[axis].OK {
		return "", 0, 0, false
	}
	lin := p.axisScale(axis)
	v0 := lin.Invert(float64(p.brushY0*4 + 2))
	v1 := lin.Invert(float64(p.brushY1*4 + 2))
	if v0 > v1 {
		v0, v1 = v1, v0
	}
	return p.Order[axis], v0, v1, true
}

func (p *ParallelCoords) axisScale(axis int) scale.Linear {
	return scale.Linear{
		D:  p.domains[axis],
		R0: float64(p.plotBot*4 + 3),
		R1: float64(p.plotTop * 4),
	}
}

func (p *ParallelCoords) Render(st state.State, w, h int) string {
	if len(st.Selected) == 0 {
		return Placeholder("select states to draw profiles", w, h)
	}
	p.SetMetrics(st.ActiveMetrics)
	if len(p.Order) < 2 {
		return Placeholder("choose at least two metrics", w, h)
	}

	w = max(20, w)
	h = max(6, h)
	n := len(p.Order)
	p.plotTop = 1
	p.plotBot = h - 2
	p.axisX = p.axisX[:0]
	for i := 0; i < n; i++ {
		x := 2 + i*(w-5)/(n-1)
		p.axisX = append(p.axisX, x)
	}

	// per-axis padded domains over the rendered rows
	rows := rowsOf(st.Selected)
	p.domains = p.domains[:0]
	for _, m := range p.Order {
		p.domains = append(p.domains, scale.MetricDomain(m, rows).Pad(0.05))
	}

	cv := NewCanvas(w, h-1) // last row is the legend/footer
	for i, x := range p.axisX {
		cv.Line(x*2, p.plotTop*4, x*2, p.plotBot*4+3, axisColor)
		name := truncate(p.Order[i], (w-4)/n)
		col := axisColor
		switch {
		case i == p.dragSource:
			col = selectedEdge
			name = "≡" + name
		case p.Order[i] == st.ActiveMetric:
			col = selectedEdge
		}
		cv.Label(x-len([]rune(name))/2, 0, name, col)
	}

	// brush band
	if p.brushing && p.brushAxis >= 0 && p.brushAxis < len(p.axisX) {
		y0, y1 := p.brushY0, p.brushY1
		if y0 > y1 {
			y0, y1 = y1, y0
		}
		x := p.axisX[p.brushAxis]
		for y := max(p.plotTop, y0); y <= min(p.plotBot, y1); y++ {
			cv.Label(x-1, y, "▐▌", selectedEdge)
		}
	}

	// polylines; a missing value breaks the line rather than faking a
	// position
	for ei, e := range st.Selected {
		col := scale.SeriesColor(ei)
		prevOK := false
		var px, py int
		for ai, m := range p.Order {
			v, ok := e.Row.Value(m)
			if !ok || !p.domains[ai].OK {
				prevOK = false
				continue
			}
			lin := p.axisScale(ai)
			x := p.axisX[ai] * 2
			y := int(lin.Map(v))
			if prevOK {
				cv.Line(px, py, x, y, col)
			} else {
				cv.SetPixel(x, y, col)
			}
			px, py = x, y
			prevOK = true
		}
	}

	footer := p.footer(st)
	return cv.String() + "\n" + footer
}

func (p *ParallelCoords) footer(st state.State) string {
	var b strings.Builder
	for i, e := range st.Selected {
		b.WriteString(lipgloss.NewStyle().Foreground(scale.SeriesColor(i)).Render("■" + e.Row.Code + " "))
	}
	if p.brushing && p.brushAxis >= 0 && p.brushAxis < len(p.Order) {
		b.WriteString(dimStyle.Render(fmt.Sprintf(" brushing %s", p.Order[p.brushAxis])))
	}
	return b.String()
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, s := range a {
		seen[s] = true
	}
	for _, s := range b {
		if !seen[s] {
			return false
		}
	}
	return true
}

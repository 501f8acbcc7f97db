package charts

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dividash/internal/scale"
	"dividash/internal/state"
)

var axisColor = lipgloss.Color("#4B5563")

// Radar draws one polygon per selected entity across the active
// multi-metric set. Each axis is normalized to percent-of-max across
// the selection for that metric, so shapes compare but magnitudes
// across axes do not.
type Radar struct {
	labels []radarLabel
}

type radarLabel struct {
	metric string
	x, y   int
	width  int
}

// AxisFractions computes the 0..1 radial value per entity per metric.
// Missing values and all-missing axes sit at the center.
func AxisFractions(entities []state.Entity, metrics []string) [][]float64 {
	maxes := make([]float64, len(metrics))
	for j, m := range metrics {
		for _, e := range entities {
			if v, ok := e.Row.Value(m); ok && v > maxes[j] {
				maxes[j] = v
			}
		}
	}
	out := make([][]float64, len(entities))
	for i, e := range entities {
		out[i] = make([]float64, len(metrics))
		for j, m := range metrics {
			v, ok := e.Row.Value(m)
			if !ok || maxes[j] == 0 {
				continue
			}
			out[i][j] = v / maxes[j]
		}
	}
	return out
}

func (r *Radar) Render(st state.State, w, h int) string {
	if len(st.Selected) == 0 {
		return Placeholder("select states to compare shapes", w, h)
	}
	if len(st.ActiveMetrics) < 3 {
		return Placeholder("choose at least three metrics (press space in the picker)", w, h)
	}
	metrics := st.ActiveMetrics
	cv := NewCanvas(max(16, w), max(8, h)-1) // last row is the legend
	cx := cv.Width()                         // micro center x
	cy := cv.Height() * 2                    // micro center y
	radius := min(cv.Width(), cv.Height()*2) - 8
	if radius < 4 {
		radius = 4
	}

	n := len(metrics)
	point := func(axis int, frac float64) (int, int) {
		ang := -math.Pi/2 + 2*math.Pi*float64(axis)/float64(n)
		// terminal cells are about twice as tall as wide; stretch x
		x := cx + int(frac*float64(radius)*math.Cos(ang)*2)
		y := cy + int(frac*float64(radius)*math.Sin(ang))
		return x, y
	}

	// axes and rim
	r.labels = r.labels[:0]
	var rim [][2]int
	for j, m := range metrics {
		ex, ey := point(j, 1)
		cv.Line(cx, cy, ex, ey, axisColor)
		rim = append(rim, [2]int{ex, ey})

		name := truncate(m, 14)
		lx, ly := ex/2, ey/4
		if ex < cx {
			lx -= len([]rune(name))
		}
		col := axisColor
		if m == st.ActiveMetric {
			col = selectedEdge
		}
		cv.Label(lx, ly, name, col)
		r.labels = append(r.labels, radarLabel{metric: m, x: lx, y: ly, width: len([]rune(name))})
	}
	for i := 0; i < len(rim); i++ {
		a, b := rim[i], rim[(i+1)%len(rim)]
		cv.Line(a[0], a[1], b[0], b[1], axisColor)
	}

	// entity polygons
	fracs := AxisFractions(st.Selected, metrics)
	for i := range st.Selected {
		col := scale.SeriesColor(i)
		var pts [][2]int
		for j := range metrics {
			x, y := point(j, fracs[i][j])
			pts = append(pts, [2]int{x, y})
		}
		for k := 0; k < len(pts); k++ {
			a, b := pts[k], pts[(k+1)%len(pts)]
			cv.Line(a[0], a[1], b[0], b[1], col)
		}
	}

	legend := r.legend(st)
	return cv.String() + "\n" + legend
}

// LabelAt hit-tests a clicked cell against the axis labels; a hit
// activates that metric.
func (r *Radar) LabelAt(cellX, cellY int) (string, bool) {
	for _, l := range r.labels {
		if cellY == l.y && cellX >= l.x && cellX < l.x+l.width {
			return l.metric, true
		}
	}
	return "", false
}

func (r *Radar) legend(st state.State) string {
	var b strings.Builder
	for i, e := range st.Selected {
		b.WriteString(lipgloss.NewStyle().Foreground(scale.SeriesColor(i)).Render("■" + e.Row.Code + " "))
	}
	return b.String()
}

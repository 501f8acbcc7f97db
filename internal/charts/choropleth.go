package charts

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dividash/internal/census"
	"dividash/internal/geo"
	"dividash/internal/scale"
	"dividash/internal/state"
)

const (
	zoomStep = 1.2
	MinZoom  = 0.5
	MaxZoom  = 10
)

var selectedEdge = lipgloss.Color("#F97316")

// Choropleth owns the map's viewport state. The zoom transform
// deliberately survives metric and selection changes; only ResetView
// (double-press of the reset key) or a new mount clears it.
type Choropleth struct {
	Zoom    float64
	OffsetX int
	OffsetY int
}

func NewChoropleth() Choropleth {
	return Choropleth{Zoom: 1}
}

func (c *Choropleth) ZoomIn() {
	if c.Zoom*zoomStep <= MaxZoom {
		c.Zoom *= zoomStep
	}
}

func (c *Choropleth) ZoomOut() {
	if c.Zoom/zoomStep >= MinZoom {
		c.Zoom /= zoomStep
	}
}

func (c *Choropleth) Pan(dx, dy int) {
	c.OffsetX += dx
	c.OffsetY += dy
}

func (c *Choropleth) ResetView() {
	c.Zoom = 1
	c.OffsetX = 0
	c.OffsetY = 0
}

func (c Choropleth) viewport(fs *geo.FeatureSet) viewport {
	return viewport{bbox: fs.BBox, zoom: c.Zoom, offsetX: c.OffsetX, offsetY: c.OffsetY}
}

// Render fills every state with its quantized bin color for the active
// metric. Features without a code translation or dataset row get the
// neutral fill; selected states get a highlighted edge pass.
func (c Choropleth) Render(fs *geo.FeatureSet, ds *census.Dataset, st state.State, w, h int) string {
	if fs == nil || len(fs.Features) == 0 || ds == nil || len(ds.Rows) == 0 {
		return Placeholder("no map data", w, h)
	}
	mapH := max(4, h-1)
	cv := NewCanvas(max(10, w), mapH)
	vp := c.viewport(fs)
	q := scale.NewQuantize(scale.MetricDomain(st.ActiveMetric, ds.Rows))

	// fill pass
	for _, f := range fs.Features {
		row, ok := joinFeature(f, ds)
		var col lipgloss.Color
		if !ok {
			col = q.NoData
		} else {
			v, vok := row.Value(st.ActiveMetric)
			col = q.Color(v, vok)
		}
		for _, ring := range projectRings(f, vp, cv.Width(), cv.Height()) {
			cv.FillRing(ring, col)
			drawRing(cv, ring, col)
		}
	}
	// selected edges last so they stay visible
	for _, f := range fs.Features {
		row, ok := joinFeature(f, ds)
		if !ok || !st.IsSelected(row.GeoID) {
			continue
		}
		for _, ring := range projectRings(f, vp, cv.Width(), cv.Height()) {
			drawRing(cv, ring, selectedEdge)
		}
	}

	return cv.String() + "\n" + c.legend(q, st.ActiveMetric, w)
}

// HitTest resolves a map cell to the dataset row drawn there. ok is
// false over open water and over features with no row, which stay
// non-interactive.
func (c Choropleth) HitTest(fs *geo.FeatureSet, ds *census.Dataset, cellX, cellY, w, h int) (census.Row, bool) {
	if fs == nil || ds == nil {
		return census.Row{}, false
	}
	mapH := max(4, h-1)
	x, y, ok := c.viewport(fs).cellToXY(cellX, cellY, max(10, w), mapH)
	if !ok {
		return census.Row{}, false
	}
	f, ok := fs.FeatureAt(x, y)
	if !ok {
		return census.Row{}, false
	}
	return joinFeature(f, ds)
}

func (c Choropleth) legend(q scale.Quantize, metric string, w int) string {
	th := q.Thresholds()
	if th == nil {
		return dimStyle.Render(" no values for " + metric)
	}
	var b strings.Builder
	for i, col := range q.Palette {
		b.WriteString(lipgloss.NewStyle().Foreground(col).Render("■"))
		b.WriteString(dimStyle.Render(fmt.Sprintf("%.0f ", th[i])))
	}
	b.WriteString(lipgloss.NewStyle().Foreground(q.NoData).Render("■"))
	b.WriteString(dimStyle.Render("n/a"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  zoom %.1fx", c.Zoom)))
	return lipgloss.NewStyle().MaxWidth(max(10, w)).Render(b.String())
}

// joinFeature translates a topology feature to its dataset row via the
// FIPS table.
func joinFeature(f geo.Feature, ds *census.Dataset) (census.Row, bool) {
	if row, ok := ds.RowByID(f.ID); ok {
		return row, true
	}
	code, ok := census.PostalByFIPS(f.ID)
	if !ok {
		return census.Row{}, false
	}
	return ds.RowByCode(code)
}

func drawRing(cv *Canvas, ring [][2]int, col lipgloss.Color) {
	for i := 0; i < len(ring); i++ {
		a := ring[i]
		b := ring[(i+1)%len(ring)]
		cv.Line(a[0], a[1], b[0], b[1], col)
	}
}

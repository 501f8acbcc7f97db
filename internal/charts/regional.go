package charts

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dividash/internal/census"
	"dividash/internal/geo"
	"dividash/internal/scale"
)

// RegionalMap colors every state by region membership: four census
// regions plus the neutral class for unmapped features. Clicking any
// member state selects the whole region.
type RegionalMap struct {
	Zoom    float64
	OffsetX int
	OffsetY int
}

func NewRegionalMap() RegionalMap {
	return RegionalMap{Zoom: 1}
}

func (r RegionalMap) viewport(fs *geo.FeatureSet) viewport {
	return viewport{bbox: fs.BBox, zoom: r.Zoom, offsetX: r.OffsetX, offsetY: r.OffsetY}
}

func (r *RegionalMap) ZoomIn() {
	if r.Zoom*zoomStep <= MaxZoom {
		r.Zoom *= zoomStep
	}
}

func (r *RegionalMap) ZoomOut() {
	if r.Zoom/zoomStep >= MinZoom {
		r.Zoom /= zoomStep
	}
}

func (r *RegionalMap) Pan(dx, dy int) {
	r.OffsetX += dx
	r.OffsetY += dy
}

func (r *RegionalMap) ResetView() {
	r.Zoom = 1
	r.OffsetX = 0
	r.OffsetY = 0
}

func regionColor(region string, ok bool) lipgloss.Color {
	if !ok {
		return scale.NoDataColor
	}
	return scale.RegionPalette[region]
}

// Render draws the region-classified map with one centroid label per
// region, plus a legend carrying the regional mean/median of metric.
func (r RegionalMap) Render(fs *geo.FeatureSet, ds *census.Dataset, metric, activeRegion string, w, h int) string {
	if fs == nil || len(fs.Features) == 0 || ds == nil {
		return Placeholder("no map data", w, h)
	}
	mapH := max(4, h-1)
	cv := NewCanvas(max(10, w), mapH)
	vp := r.viewport(fs)

	type anchor struct {
		sx, sy, n int
	}
	anchors := map[string]*anchor{}

	for _, f := range fs.Features {
		region, ok := r.regionOf(f, ds)
		col := regionColor(region, ok)
		for _, ring := range projectRings(f, vp, cv.Width(), cv.Height()) {
			cv.FillRing(ring, col)
			drawRing(cv, ring, col)
		}
		if !ok {
			continue
		}
		if cx, cy, pok := vp.cellXY(f.Centroid[0], f.Centroid[1], cv.Width(), cv.Height()); pok {
			a := anchors[region]
			if a == nil {
				a = &anchor{}
				anchors[region] = a
			}
			a.sx += cx
			a.sy += cy
			a.n++
		}
	}
	for _, region := range census.RegionNames {
		a := anchors[region]
		if a == nil || a.n == 0 {
			continue
		}
		name := region
		if region == activeRegion {
			name = "[" + region + "]"
		}
		cv.Label(a.sx/a.n-len(name)/2, a.sy/a.n, name, lipgloss.Color("#E6E6E6"))
	}

	return cv.String() + "\n" + r.legend(ds, metric, w)
}

// HitTest resolves a clicked cell to a region name.
func (r RegionalMap) HitTest(fs *geo.FeatureSet, ds *census.Dataset, cellX, cellY, w, h int) (string, bool) {
	if fs == nil || ds == nil {
		return "", false
	}
	mapH := max(4, h-1)
	x, y, ok := r.viewport(fs).cellToXY(cellX, cellY, max(10, w), mapH)
	if !ok {
		return "", false
	}
	f, ok := fs.FeatureAt(x, y)
	if !ok {
		return "", false
	}
	return r.regionOf(f, ds)
}

func (r RegionalMap) regionOf(f geo.Feature, ds *census.Dataset) (string, bool) {
	row, ok := joinFeature(f, ds)
	if !ok {
		return "", false
	}
	return census.RegionOf(row.Code)
}

func (r RegionalMap) legend(ds *census.Dataset, metric string, w int) string {
	var b strings.Builder
	for _, st := range scale.RegionStats(metric, ds) {
		swatch := lipgloss.NewStyle().Foreground(scale.RegionPalette[st.Region]).Render("■")
		if st.N == 0 {
			b.WriteString(swatch + dimStyle.Render(st.Region+" n/a "))
			continue
		}
		b.WriteString(swatch + dimStyle.Render(fmt.Sprintf("%s μ%.1f  ", st.Region, st.Mean)))
	}
	return lipgloss.NewStyle().MaxWidth(max(10, w)).Render(b.String())
}

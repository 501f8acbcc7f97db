package charts

import "dividash/internal/geo"

// viewport maps topology coordinates onto the braille microgrid with
// center-anchored zoom and cell-unit pan, and back again for
// hit-testing. Both directions must stay exact inverses or clicks land
// on the wrong state.
type viewport struct {
	bbox    geo.BBox
	zoom    float64
	offsetX int
	offsetY int
}

// microXY projects a topology point into micro coords for a w x h cell
// canvas.
func (v viewport) microXY(x, y float64, w, h int) (int, int, bool) {
	if !v.bbox.Valid() || w <= 1 || h <= 1 {
		return 0, 0, false
	}
	nx := (x - v.bbox.MinX) / (v.bbox.MaxX - v.bbox.MinX)
	ny := (y - v.bbox.MinY) / (v.bbox.MaxY - v.bbox.MinY)
	zx := 0.5 + (nx-0.5)*v.zoom
	zy := 0.5 + (ny-0.5)*v.zoom
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + v.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + v.offsetY*4
	return sx, sy, true
}

// cellXY projects into whole-cell coords (labels, centroids).
func (v viewport) cellXY(x, y float64, w, h int) (int, int, bool) {
	mx, my, ok := v.microXY(x, y, w, h)
	if !ok {
		return 0, 0, false
	}
	return mx / 2, my / 4, true
}

// cellToXY inverts the projection for a hovered or clicked cell.
func (v viewport) cellToXY(cx, cy, w, h int) (float64, float64, bool) {
	if !v.bbox.Valid() || w <= 1 || h <= 1 || v.zoom == 0 {
		return 0, 0, false
	}
	zx := float64(cx-v.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-v.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/v.zoom
	ny := 0.5 + (zy-0.5)/v.zoom
	x := v.bbox.MinX + nx*(v.bbox.MaxX-v.bbox.MinX)
	y := v.bbox.MinY + ny*(v.bbox.MaxY-v.bbox.MinY)
	return x, y, true
}

// projectRings projects every outer ring of a feature, dropping
// degenerate results.
func projectRings(f geo.Feature, v viewport, w, h int) [][][2]int {
	var rings [][][2]int
	for _, poly := range f.Polygons {
		if len(poly) == 0 {
			continue
		}
		var ring [][2]int
		for _, p := range poly[0] {
			mx, my, ok := v.microXY(p[0], p[1], w, h)
			if !ok {
				continue
			}
			ring = append(ring, [2]int{mx, my})
		}
		if len(ring) >= 3 {
			rings = append(rings, ring)
		}
	}
	return rings
}

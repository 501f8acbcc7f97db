package geo

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

func (b *BBox) extend(x, y float64) {
	if x < b.MinX {
		b.MinX = x
	}
	if y < b.MinY {
		b.MinY = y
	}
	if x > b.MaxX {
		b.MaxX = x
	}
	if y > b.MaxY {
		b.MaxY = y
	}
}

// Valid reports whether the box spans a non-degenerate area.
func (b BBox) Valid() bool {
	return b.MaxX > b.MinX && b.MaxY > b.MinY
}

// Feature is one region boundary: polygons with rings (first outer,
// following holes), keyed by the dataset's geographic id space.
type Feature struct {
	ID       string
	Name     string
	Polygons [][][][2]float64
	BBox     BBox
	Centroid [2]float64
}

// FeatureSet owns all loaded boundaries; read-only after load.
type FeatureSet struct {
	Features []Feature
	BBox     BBox
}

// Contains tests the point against every ring of the feature using the
// even-odd rule.
func (f Feature) Contains(x, y float64) bool {
	if x < f.BBox.MinX || x > f.BBox.MaxX || y < f.BBox.MinY || y > f.BBox.MaxY {
		return false
	}
	inside := false
	for _, poly := range f.Polygons {
		for _, ring := range poly {
			n := len(ring)
			for i, j := 0, n-1; i < n; j, i = i, i+1 {
				yi, yj := ring[i][1], ring[j][1]
				if (yi > y) == (yj > y) {
					continue
				}
				xi, xj := ring[i][0], ring[j][0]
				if x < (xj-xi)*(y-yi)/(yj-yi)+xi {
					inside = !inside
				}
			}
		}
	}
	return inside
}

// FeatureAt returns the first feature containing the point.
func (fs *FeatureSet) FeatureAt(x, y float64) (Feature, bool) {
	for _, f := range fs.Features {
		if f.Contains(x, y) {
			return f, true
		}
	}
	return Feature{}, false
}

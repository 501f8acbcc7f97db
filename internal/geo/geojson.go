package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadTopology reads a GeoJSON FeatureCollection of state boundaries.
// Coordinates are taken as-is (projected upstream); each feature keeps
// its id so renderers can join it to the dataset.
func LoadTopology(path string) (*FeatureSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	t, _ := raw["type"].(string)
	if t != "FeatureCollection" {
		return nil, fmt.Errorf("topology: unsupported geojson type %q", t)
	}
	feats, ok := raw["features"].([]any)
	if !ok {
		return nil, errors.New("topology: missing features")
	}

	fs := &FeatureSet{}
	first := true
	for _, fv := range feats {
		fm, ok := fv.(map[string]any)
		if !ok {
			continue
		}
		feat, ok := parseFeature(fm)
		if !ok {
			continue
		}
		if first {
			fs.BBox = feat.BBox
			first = false
		} else {
			fs.BBox.extend(feat.BBox.MinX, feat.BBox.MinY)
			fs.BBox.extend(feat.BBox.MaxX, feat.BBox.MaxY)
		}
		fs.Features = append(fs.Features, feat)
	}
	if len(fs.Features) == 0 {
		return nil, errors.New("topology: no polygon features found")
	}
	return fs, nil
}

func parseFeature(fm map[string]any) (Feature, bool) {
	feat := Feature{ID: featureID(fm)}
	props, _ := fm["properties"].(map[string]any)
	if props != nil {
		for _, k := range []string{"NAME", "name", "Name"} {
			if s, ok := props[k].(string); ok {
				feat.Name = s
				break
			}
		}
	}
	g, ok := fm["geometry"].(map[string]any)
	if !ok {
		return Feature{}, false
	}
	gt, _ := g["type"].(string)
	switch gt {
	case "Polygon":
		if poly, ok := parsePolygon(g["coordinates"]); ok {
			feat.Polygons = append(feat.Polygons, poly)
		}
	case "MultiPolygon":
		if arr, ok := g["coordinates"].([]any); ok {
			for _, el := range arr {
				if poly, ok := parsePolygon(el); ok {
					feat.Polygons = append(feat.Polygons, poly)
				}
			}
		}
	default:
		return Feature{}, false
	}
	if len(feat.Polygons) == 0 {
		return Feature{}, false
	}
	feat.BBox, feat.Centroid = measure(feat.Polygons)
	return feat, true
}

// featureID prefers the feature-level id, then the usual property keys.
// Numeric ids are normalized to the two-digit FIPS form.
func featureID(fm map[string]any) string {
	if v, ok := fm["id"]; ok {
		if s := idString(v); s != "" {
			return s
		}
	}
	if props, ok := fm["properties"].(map[string]any); ok {
		for _, k := range []string{"STATE", "STATEFP", "GEO_ID", "id"} {
			if v, ok := props[k]; ok {
				if s := idString(v); s != "" {
					return s
				}
			}
		}
	}
	return ""
}

func idString(v any) string {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		// GEO_ID values look like "0400000US06"; keep the suffix.
		if i := strings.Index(s, "US"); i >= 0 && i+2 < len(s) {
			s = s[i+2:]
		}
		if len(s) == 1 {
			s = "0" + s
		}
		return s
	case float64:
		s := fmt.Sprintf("%02.0f", t)
		return s
	}
	return ""
}

func parsePolygon(v any) ([][][2]float64, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	var poly [][][2]float64
	for _, rv := range arr {
		ring, ok := parseRing(rv)
		if !ok || len(ring) < 3 {
			continue
		}
		poly = append(poly, ring)
	}
	return poly, len(poly) > 0
}

func parseRing(v any) ([][2]float64, bool) {
	arr, ok := v.([]any)
	if !ok {
		return nil, false
	}
	var ring [][2]float64
	for _, pv := range arr {
		a, ok := pv.([]any)
		if !ok || len(a) < 2 {
			continue
		}
		x, xok := a[0].(float64)
		y, yok := a[1].(float64)
		if !xok || !yok {
			continue
		}
		ring = append(ring, [2]float64{x, y})
	}
	return ring, true
}

// measure computes the bbox and the vertex centroid of the outer rings.
// The vertex mean is crude but plenty for placing a two-letter label.
func measure(polys [][][][2]float64) (BBox, [2]float64) {
	var bb BBox
	var sx, sy float64
	n := 0
	first := true
	for _, poly := range polys {
		if len(poly) == 0 {
			continue
		}
		for _, p := range poly[0] {
			if first {
				bb = BBox{MinX: p[0], MinY: p[1], MaxX: p[0], MaxY: p[1]}
				first = false
			} else {
				bb.extend(p[0], p[1])
			}
			sx += p[0]
			sy += p[1]
			n++
		}
		// holes extend the bbox too
		for _, ring := range poly[1:] {
			for _, p := range ring {
				bb.extend(p[0], p[1])
			}
		}
	}
	if n == 0 {
		return bb, [2]float64{}
	}
	return bb, [2]float64{sx / float64(n), sy / float64(n)}
}

package geo

import (
	"os"
	"path/filepath"
	"testing"
)

const topo = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "id": "06",
      "properties": {"NAME": "California"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[0,0],[10,0],[10,10],[0,10],[0,0]]]
      }
    },
    {
      "type": "Feature",
      "properties": {"STATE": "15", "NAME": "Hawaii"},
      "geometry": {
        "type": "MultiPolygon",
        "coordinates": [
          [[[20,0],[24,0],[24,4],[20,4],[20,0]]],
          [[[26,0],[28,0],[28,2],[26,2],[26,0]]]
        ]
      }
    },
    {
      "type": "Feature",
      "id": 9,
      "properties": {},
      "geometry": {"type": "Point", "coordinates": [1, 1]}
    }
  ]
}`

func loadTestTopology(t *testing.T) *FeatureSet {
	t.Helper()
	p := filepath.Join(t.TempDir(), "states.json")
	if err := os.WriteFile(p, []byte(topo), 0o644); err != nil {
		t.Fatalf("writing topology: %v", err)
	}
	fs, err := LoadTopology(p)
	if err != nil {
		t.Fatalf("LoadTopology: %v", err)
	}
	return fs
}

func TestLoadTopology(t *testing.T) {
	fs := loadTestTopology(t)
	// the Point feature is dropped
	if len(fs.Features) != 2 {
		t.Fatalf("expected 2 polygon features, got %d", len(fs.Features))
	}
	ca := fs.Features[0]
	if ca.ID != "06" || ca.Name != "California" {
		t.Errorf("feature 0 = %s/%s", ca.ID, ca.Name)
	}
	if !ca.BBox.Valid() || ca.BBox.MaxX != 10 || ca.BBox.MaxY != 10 {
		t.Errorf("CA bbox = %+v", ca.BBox)
	}
	hi := fs.Features[1]
	if hi.ID != "15" {
		t.Errorf("property-id feature = %s, want 15", hi.ID)
	}
	if len(hi.Polygons) != 2 {
		t.Errorf("HI polygons = %d, want 2", len(hi.Polygons))
	}
	if fs.BBox.MinX != 0 || fs.BBox.MaxX != 28 {
		t.Errorf("set bbox = %+v", fs.BBox)
	}
}

func TestFeatureContains(t *testing.T) {
	fs := loadTestTopology(t)
	ca := fs.Features[0]
	if !ca.Contains(5, 5) {
		t.Errorf("(5,5) should be inside CA square")
	}
	if ca.Contains(15, 5) {
		t.Errorf("(15,5) should be outside CA square")
	}
	if f, ok := fs.FeatureAt(21, 1); !ok || f.ID != "15" {
		t.Errorf("FeatureAt(21,1) = %s, %v", f.ID, ok)
	}
	if f, ok := fs.FeatureAt(27, 1); !ok || f.ID != "15" {
		t.Errorf("FeatureAt(27,1) should hit the second HI polygon, got %s, %v", f.ID, ok)
	}
	if _, ok := fs.FeatureAt(50, 50); ok {
		t.Errorf("FeatureAt(50,50) should miss")
	}
}

func TestCentroid(t *testing.T) {
	fs := loadTestTopology(t)
	c := fs.Features[0].Centroid
	// closed square ring: vertex mean sits near the middle
	if c[0] < 3 || c[0] > 7 || c[1] < 3 || c[1] > 7 {
		t.Errorf("centroid = %v, want near (5,5)", c)
	}
}

func TestLoadTopologyErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte(`{"type":"Feature"}`), 0o644)
	if _, err := LoadTopology(bad); err == nil {
		t.Errorf("expected error for non-collection")
	}
	empty := filepath.Join(dir, "empty.json")
	os.WriteFile(empty, []byte(`{"type":"FeatureCollection","features":[]}`), 0o644)
	if _, err := LoadTopology(empty); err == nil {
		t.Errorf("expected error for empty collection")
	}
}

package session

import (
	"path/filepath"
	"testing"

	"dividash/internal/state"
)

func testRecord() Record {
	return Record{
		Snapshot: state.Snapshot{
			ActiveMetric:  "broadband_pct",
			ActiveMetrics: []string{"broadband_pct", "median_income"},
			SelectedIDs:   []string{"06", "48"},
			ActiveRegion:  "",
			Mode:          1,
			Viz:           1,
		},
		Zoom:      1.44,
		OffsetX:   2,
		OffsetY:   -1,
		SortDesc:  true,
		AxisOrder: []string{"median_income", "broadband_pct"},
	}
}

func TestLoadEmpty(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	_, ok, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("empty store reported a saved session")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	want := testRecord()
	if err := s.Save(want); err != nil {
		t.Fatal(err)
	}
	got, ok, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("saved session not found")
	}
	if got.Snapshot.ActiveMetric != want.Snapshot.ActiveMetric {
		t.Errorf("ActiveMetric = %q", got.Snapshot.ActiveMetric)
	}
	if len(got.Snapshot.SelectedIDs) != 2 || got.Snapshot.SelectedIDs[1] != "48" {
		t.Errorf("SelectedIDs = %v", got.Snapshot.SelectedIDs)
	}
	if got.Snapshot.Mode != 1 || got.Snapshot.Viz != 1 {
		t.Errorf("Mode/Viz = %d/%d", got.Snapshot.Mode, got.Snapshot.Viz)
	}
	if got.Zoom != 1.44 || got.OffsetX != 2 || got.OffsetY != -1 {
		t.Errorf("view transform = %v %v %v", got.Zoom, got.OffsetX, got.OffsetY)
	}
	if !got.SortDesc {
		t.Error("SortDesc lost")
	}
	if len(got.AxisOrder) != 2 || got.AxisOrder[0] != "median_income" {
		t.Errorf("AxisOrder = %v", got.AxisOrder)
	}
}

func TestSaveOverwrites(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.Save(testRecord()); err != nil {
		t.Fatal(err)
	}
	second := testRecord()
	second.Snapshot.ActiveMetric = "computer_pct"
	second.Snapshot.ActiveRegion = "West"
	second.Snapshot.SelectedIDs = nil
	if err := s.Save(second); err != nil {
		t.Fatal(err)
	}

	got, ok, err := s.Load()
	if err != nil || !ok {
		t.Fatalf("load: %v %v", ok, err)
	}
	if got.Snapshot.ActiveMetric != "computer_pct" {
		t.Errorf("ActiveMetric = %q, want the second save", got.Snapshot.ActiveMetric)
	}
	if got.Snapshot.ActiveRegion != "West" {
		t.Errorf("ActiveRegion = %q", got.Snapshot.ActiveRegion)
	}
	if len(got.Snapshot.SelectedIDs) != 0 {
		t.Errorf("SelectedIDs = %v, want empty", got.Snapshot.SelectedIDs)
	}

	var n int
	if err := s.QueryRow("SELECT COUNT(*) FROM session").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("rows = %d, want exactly one", n)
	}
}

func TestOpenOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(testRecord()); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	_, ok, err := s2.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Error("session did not survive reopen")
	}
}

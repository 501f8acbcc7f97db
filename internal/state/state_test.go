package state

import (
	"testing"

	"dividash/internal/census"
)

func row(code string) census.Row {
	return census.Row{GeoID: code, Name: code, Code: code, Values: map[string]string{"% Broadband": "50"}}
}

func entity(code string) Entity { return Entity{ID: code, Row: row(code)} }

func ids(s State) []string {
	var out []string
	for _, e := range s.Selected {
		out = append(out, e.ID)
	}
	return out
}

func equalIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewDefaults(t *testing.T) {
	catalog := []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7"}
	s := New(catalog)
	if s.ActiveMetric != "m1" {
		t.Errorf("ActiveMetric = %q, want m1", s.ActiveMetric)
	}
	if len(s.ActiveMetrics) != 5 || s.ActiveMetrics[4] != "m5" {
		t.Errorf("ActiveMetrics = %v, want first five", s.ActiveMetrics)
	}
	short := New([]string{"a", "b"})
	if len(short.ActiveMetrics) != 2 {
		t.Errorf("short catalog ActiveMetrics = %v", short.ActiveMetrics)
	}
}

func TestPickEntitySingleReplaces(t *testing.T) {
	s := New([]string{"m"})
	s = s.PickEntity("CA", row("CA"))
	s = s.PickEntity("NY", row("NY"))
	if !equalIDs(ids(s), "NY") {
		t.Errorf("Selected = %v, want [NY]", ids(s))
	}
}

func TestPickEntityMultiToggleInvolution(t *testing.T) {
	s := New([]string{"m"}).ToggleSelectionMode()
	s = s.PickEntity("CA", row("CA"))
	s = s.PickEntity("NY", row("NY"))
	s = s.PickEntity("TX", row("TX"))
	before := ids(s)

	s = s.PickEntity("NY", row("NY"))
	if !equalIDs(ids(s), "CA", "TX") {
		t.Errorf("after remove: %v, want [CA TX]", ids(s))
	}
	s = s.PickEntity("NY", row("NY"))
	got := ids(s)
	// membership restored; remaining order preserved, re-added goes last
	if !equalIDs(got, "CA", "TX", "NY") {
		t.Errorf("after re-add: %v (before: %v)", got, before)
	}
}

func TestPickEntityMultiToggleToEmpty(t *testing.T) {
	s := New([]string{"m"}).ToggleSelectionMode()
	s = s.PickEntity("CA", row("CA"))
	s = s.PickEntity("CA", row("CA"))
	if len(s.Selected) != 0 {
		t.Errorf("Selected = %v, want empty", ids(s))
	}
}

func TestPickEntityClearsRegion(t *testing.T) {
	s := New([]string{"m"})
	s = s.SelectRegion("West", []Entity{entity("CA"), entity("OR")})
	s = s.PickEntity("NY", row("NY"))
	if s.ActiveRegion != "" {
		t.Errorf("ActiveRegion = %q, want cleared", s.ActiveRegion)
	}
	if !equalIDs(ids(s), "NY") {
		t.Errorf("Selected = %v", ids(s))
	}
}

func TestSelectRegionThenClear(t *testing.T) {
	s := New([]string{"m"})
	s = s.PickEntity("TX", row("TX"))
	s = s.SelectRegion("West", []Entity{entity("CA"), entity("OR")})
	if s.ActiveRegion != "West" || !equalIDs(ids(s), "CA", "OR") {
		t.Errorf("region select: region=%q selected=%v", s.ActiveRegion, ids(s))
	}
	s = s.ClearSelection()
	if s.ActiveRegion != "" || len(s.Selected) != 0 {
		t.Errorf("after clear: region=%q selected=%v", s.ActiveRegion, ids(s))
	}
}

func TestLeaveRegionKeepsMembers(t *testing.T) {
	s := New([]string{"m"})
	s = s.SelectRegion("West", []Entity{entity("CA"), entity("OR")})
	s = s.LeaveRegion()
	if s.ActiveRegion != "" {
		t.Errorf("ActiveRegion = %q, want empty", s.ActiveRegion)
	}
	if !equalIDs(ids(s), "CA", "OR") {
		t.Errorf("selected = %v, want the members kept", ids(s))
	}
}

func TestToggleSelectionModeKeepsSelection(t *testing.T) {
	s := New([]string{"m"}).ToggleSelectionMode()
	s = s.PickEntity("CA", row("CA"))
	s = s.PickEntity("NY", row("NY"))
	s = s.ToggleSelectionMode()
	if s.Mode != SingleSelect {
		t.Fatalf("Mode = %v, want SingleSelect", s.Mode)
	}
	if len(s.Selected) != 2 {
		t.Errorf("toggling to Single should keep both selected, got %v", ids(s))
	}
	// next pick collapses
	s = s.PickEntity("TX", row("TX"))
	if !equalIDs(ids(s), "TX") {
		t.Errorf("after pick in Single: %v", ids(s))
	}
}

func TestToggleMultiMetric(t *testing.T) {
	s := New([]string{"a", "b", "c"})
	s = s.ToggleMultiMetric("b")
	if !equalIDs(s.ActiveMetrics, "a", "c") {
		t.Errorf("ActiveMetrics = %v", s.ActiveMetrics)
	}
	s = s.ToggleMultiMetric("b")
	if !equalIDs(s.ActiveMetrics, "a", "c", "b") {
		t.Errorf("ActiveMetrics = %v", s.ActiveMetrics)
	}
	if got := s.ToggleMultiMetric(""); !equalIDs(got.ActiveMetrics, "a", "c", "b") {
		t.Errorf("empty name should be a no-op")
	}
}

func TestSelectMetricLeavesSelection(t *testing.T) {
	s := New([]string{"a", "b"}).PickEntity("CA", row("CA"))
	s = s.SelectMetric("b")
	if s.ActiveMetric != "b" || !equalIDs(ids(s), "CA") {
		t.Errorf("metric=%q selected=%v", s.ActiveMetric, ids(s))
	}
}

func TestToggleVizModeKeepsSelection(t *testing.T) {
	s := New([]string{"a"}).PickEntity("CA", row("CA"))
	s = s.ToggleVizMode()
	if s.Viz != Advanced || len(s.Selected) != 1 {
		t.Errorf("viz=%v selected=%v", s.Viz, ids(s))
	}
	if s.ToggleVizMode().Viz != Standard {
		t.Errorf("double toggle should round-trip")
	}
}

func TestFilterSelection(t *testing.T) {
	mk := func(code, v string) Entity {
		return Entity{ID: code, Row: census.Row{GeoID: code, Code: code, Values: map[string]string{"m": v}}}
	}
	s := New([]string{"m"})
	s.Selected = []Entity{mk("CA", "85.2"), mk("NY", "abc"), mk("TX", "40")}

	got := s.FilterSelection("m", 50, 90)
	if !equalIDs(ids(got), "CA") {
		t.Errorf("filtered = %v, want [CA]", ids(got))
	}
	// inverted interval normalizes
	got = s.FilterSelection("m", 90, 50)
	if !equalIDs(ids(got), "CA") {
		t.Errorf("inverted interval = %v, want [CA]", ids(got))
	}
	// zero-width brush is a no-op
	got = s.FilterSelection("m", 60, 60)
	if len(got.Selected) != 3 {
		t.Errorf("zero-width brush should not filter, got %v", ids(got))
	}
}

func TestSnapshotRestore(t *testing.T) {
	d := census.NewDataset([]census.Row{
		{GeoID: "06", Name: "California", Code: "CA", Values: map[string]string{"m1": "1", "m2": "2"}},
		{GeoID: "36", Name: "New York", Code: "NY", Values: map[string]string{"m1": "3", "m2": "4"}},
	}, []string{"m1", "m2"})

	s := New(d.Catalog).ToggleSelectionMode().ToggleVizMode()
	s = s.SelectMetric("m2")
	s = s.PickEntity("06", d.Rows[0])
	s = s.PickEntity("36", d.Rows[1])

	got := Restore(s.Snapshot(), d)
	if got.ActiveMetric != "m2" || got.Mode != MultiSelect || got.Viz != Advanced {
		t.Errorf("restored metric=%q mode=%v viz=%v", got.ActiveMetric, got.Mode, got.Viz)
	}
	if !equalIDs(ids(got), "06", "36") {
		t.Errorf("restored selection = %v", ids(got))
	}
}

func TestRestoreDropsStaleEntries(t *testing.T) {
	d := census.NewDataset([]census.Row{
		{GeoID: "06", Code: "CA", Values: map[string]string{"m1": "1"}},
	}, []string{"m1"})

	snap := Snapshot{
		ActiveMetric:  "gone",
		ActiveMetrics: []string{"gone", "m1"},
		SelectedIDs:   []string{"06", "99"},
	}
	got := Restore(snap, d)
	if got.ActiveMetric != "m1" {
		t.Errorf("stale metric should fall back to default, got %q", got.ActiveMetric)
	}
	if !equalIDs(got.ActiveMetrics, "m1") {
		t.Errorf("ActiveMetrics = %v", got.ActiveMetrics)
	}
	if !equalIDs(ids(got), "06") {
		t.Errorf("stale id should drop, got %v", ids(got))
	}
}

func TestRestoreRegion(t *testing.T) {
	d := census.NewDataset([]census.Row{
		{GeoID: "06", Code: "CA", Values: map[string]string{"m1": "1"}},
		{GeoID: "41", Code: "OR", Values: map[string]string{"m1": "2"}},
		{GeoID: "36", Code: "NY", Values: map[string]string{"m1": "3"}},
	}, []string{"m1"})

	got := Restore(Snapshot{ActiveMetric: "m1", ActiveRegion: "West"}, d)
	if got.ActiveRegion != "West" {
		t.Fatalf("ActiveRegion = %q", got.ActiveRegion)
	}
	if !equalIDs(ids(got), "06", "41") {
		t.Errorf("region members = %v, want [06 41]", ids(got))
	}
}

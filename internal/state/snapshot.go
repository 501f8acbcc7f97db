package state

import "dividash/internal/census"

// Snapshot is the persistable slice of State: entity rows are reduced
// to ids and re-resolved against the loaded dataset on restore.
type Snapshot struct {
	ActiveMetric  string
	ActiveMetrics []string
	SelectedIDs   []string
	ActiveRegion  string
	Mode          int
	Viz           int
}

// Snapshot captures the current state for the session store.
func (s State) Snapshot() Snapshot {
	snap := Snapshot{
		ActiveMetric:  s.ActiveMetric,
		ActiveMetrics: append([]string{}, s.ActiveMetrics...),
		ActiveRegion:  s.ActiveRegion,
		Mode:          int(s.Mode),
		Viz:           int(s.Viz),
	}
	for _, e := range s.Selected {
		snap.SelectedIDs = append(snap.SelectedIDs, e.ID)
	}
	return snap
}

// Restore rebuilds a State from a snapshot. Metrics or ids that no
// longer exist in the dataset are dropped silently; defaults fill any
// gap so the result is always renderable.
func Restore(snap Snapshot, d *census.Dataset) State {
	s := New(d.Catalog)
	valid := make(map[string]bool, len(d.Catalog))
	for _, m := range d.Catalog {
		valid[m] = true
	}
	if valid[snap.ActiveMetric] {
		s.ActiveMetric = snap.ActiveMetric
	}
	var metrics []string
	for _, m := range snap.ActiveMetrics {
		if valid[m] {
			metrics = append(metrics, m)
		}
	}
	if len(metrics) > 0 {
		s.ActiveMetrics = metrics
	}
	s.Mode = SelectionMode(snap.Mode)
	s.Viz = VizMode(snap.Viz)
	if snap.ActiveRegion != "" {
		var members []Entity
		for _, r := range census.RegionRows(d, snap.ActiveRegion) {
			members = append(members, Entity{ID: r.GeoID, Row: r})
		}
		if len(members) > 0 {
			return s.SelectRegion(snap.ActiveRegion, members)
		}
		return s
	}
	for _, id := range snap.SelectedIDs {
		if row, ok := d.RowByID(id); ok {
			s.Selected = append(s.Selected, Entity{ID: id, Row: row})
		}
	}
	return s
}

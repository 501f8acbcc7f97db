// Package state holds the page-lifetime selection state shared by all
// charts. Transitions are pure functions over the current value: the
// tui model applies one per input event, renders, then waits for the
// next event, so no locking is involved.
package state

import "dividash/internal/census"

// SelectionMode governs how a new entity pick mutates the selection.
type SelectionMode int

const (
	SingleSelect SelectionMode = iota
	MultiSelect
)

// VizMode chooses which chart combination is mounted.
type VizMode int

const (
	Standard VizMode = iota
	Advanced
)

// Entity pairs a geographic id with its dataset row.
type Entity struct {
	ID  string
	Row census.Row
}

// State is the single source of truth the compositor owns. Selected
// and ActiveRegion are mutually exclusive: an entity pick clears the
// region, a region pick replaces the selection with the member rows.
type State struct {
	ActiveMetric  string
	ActiveMetrics []string
	Selected      []Entity
	ActiveRegion  string
	Mode          SelectionMode
	Viz           VizMode
}

// New initializes deterministic defaults from the metric catalog:
// first metric active, first five on the multi-metric charts.
func New(catalog []string) State {
	s := State{}
	if len(catalog) > 0 {
		s.ActiveMetric = catalog[0]
	}
	n := 5
	if len(catalog) < n {
		n = len(catalog)
	}
	s.ActiveMetrics = append(s.ActiveMetrics, catalog[:n]...)
	return s
}

// SelectMetric sets the active metric. Entity selection is untouched.
func (s State) SelectMetric(name string) State {
	if name != "" {
		s.ActiveMetric = name
	}
	return s
}

// ToggleMultiMetric adds or removes name from the multi-metric set,
// preserving insertion order of the rest.
func (s State) ToggleMultiMetric(name string) State {
	if name == "" {
		return s
	}
	for i, m := range s.ActiveMetrics {
		if m == name {
			s.ActiveMetrics = append(append([]string{}, s.ActiveMetrics[:i]...), s.ActiveMetrics[i+1:]...)
			return s
		}
	}
	s.ActiveMetrics = append(append([]string{}, s.ActiveMetrics...), name)
	return s
}

// PickEntity applies an entity click. Single mode replaces the whole
// selection; Multiple toggles membership, keeping order for the rest.
// Either way the pick supersedes any active region view.
func (s State) PickEntity(id string, row census.Row) State {
	s.ActiveRegion = ""
	if s.Mode == SingleSelect {
		s.Selected = []Entity{{ID: id, Row: row}}
		return s
	}
	for i, e := range s.Selected {
		if e.ID == id {
			s.Selected = append(append([]Entity{}, s.Selected[:i]...), s.Selected[i+1:]...)
			return s
		}
	}
	s.Selected = append(append([]Entity{}, s.Selected...), Entity{ID: id, Row: row})
	return s
}

// SelectRegion switches to the region view: the selection becomes the
// resolved member rows, replacing whatever was selected before.
func (s State) SelectRegion(name string, members []Entity) State {
	s.ActiveRegion = name
	s.Selected = append([]Entity{}, members...)
	return s
}

// ToggleSelectionMode flips Single/Multiple without touching the
// current selection. Switching to Single with several entities
// selected leaves them all selected until the next pick collapses the
// list; truncating here would throw away a comparison the user built.
func (s State) ToggleSelectionMode() State {
	if s.Mode == SingleSelect {
		s.Mode = MultiSelect
	} else {
		s.Mode = SingleSelect
	}
	return s
}

// LeaveRegion drops the region focus but keeps its member states
// selected as a plain multi-selection.
func (s State) LeaveRegion() State {
	s.ActiveRegion = ""
	return s
}

// ClearSelection empties the selection and leaves the region view.
func (s State) ClearSelection() State {
	s.Selected = nil
	s.ActiveRegion = ""
	return s
}

// ToggleVizMode flips Standard/Advanced; selection is kept.
func (s State) ToggleVizMode() State {
	if s.Viz == Standard {
		s.Viz = Advanced
	} else {
		s.Viz = Standard
	}
	return s
}

// FilterSelection keeps only selected entities whose value for metric
// parses and falls inside [lo,hi]. This is the brush wiring for the
// parallel-coordinates view; a zero-width interval is a no-op so an
// accidental click does not wipe the selection.
func (s State) FilterSelection(metric string, lo, hi float64) State {
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi == lo {
		return s
	}
	var kept []Entity
	for _, e := range s.Selected {
		v, ok := e.Row.Value(metric)
		if ok && v >= lo && v <= hi {
			kept = append(kept, e)
		}
	}
	s.Selected = kept
	return s
}

// IsSelected reports membership by entity id.
func (s State) IsSelected(id string) bool {
	for _, e := range s.Selected {
		if e.ID == id {
			return true
		}
	}
	return false
}

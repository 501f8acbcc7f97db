package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"dividash/internal/census"
	"dividash/internal/export"
	"dividash/internal/state"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showPicker {
			m.picker.SetSize(32, m.contentHeight()-2)
		}

	case dataLoadedMsg:
		m.loadingData = false
		if msg.err != nil {
			m.fatal = msg.err
			return m, nil
		}
		m.ds = msg.ds
		if !m.loading() && m.fatal == nil {
			m.bootstrap()
		}

	case topoLoadedMsg:
		m.loadingTopo = false
		if msg.err != nil {
			m.fatal = msg.err
			return m, nil
		}
		m.fs = msg.fs
		if !m.loading() && m.fatal == nil {
			m.bootstrap()
		}

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if !m.loading() {
			return m.handleMouse(msg)
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.fatal != nil {
		// error view: any key exits
		return m, tea.Quit
	}
	if m.loading() {
		if s := msg.String(); s == "ctrl+c" || s == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.showPicker {
		if m.picker.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "esc", "tab":
			m.showPicker = false
			return m, nil
		case "enter":
			if it, ok := m.picker.SelectedItem().(metricItem); ok {
				m.st = m.st.SelectMetric(string(it))
				m.status = "metric: " + string(it)
				m.showPicker = false
			}
			return m, nil
		case " ":
			if it, ok := m.picker.SelectedItem().(metricItem); ok {
				m.st = m.st.ToggleMultiMetric(string(it))
				m.status = fmt.Sprintf("multi-metric set: %d", len(m.st.ActiveMetrics))
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}

	if m.searching {
		switch msg.String() {
		case "esc":
			m.searching = false
			m.search.Blur()
			return m, nil
		case "enter":
			m.searching = false
			m.search.Blur()
			m.pickByName(strings.TrimSpace(m.search.Value()))
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	if m.showTable {
		switch msg.String() {
		case "esc", "a", "q":
			m.showTable = false
			return m, nil
		}
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.saveSession()
		return m, tea.Quit
	case "+", "=":
		m.zoomIn()
	case "-", "_":
		m.zoomOut()
	case "up":
		m.pan(0, -1)
	case "down":
		m.pan(0, 1)
	case "left":
		m.pan(-2, 0)
	case "right":
		m.pan(2, 0)
	case "0":
		if m.regionalView() {
			m.regional.ResetView()
		} else {
			m.choro.ResetView()
		}
		m.status = "view reset"
	case "m":
		m.st = m.st.ToggleSelectionMode()
		if m.st.Mode == state.MultiSelect {
			m.status = "multi-select"
		} else {
			m.status = "single-select"
		}
	case "v":
		m.st = m.st.ToggleVizMode()
		if m.st.Viz == state.Advanced {
			m.status = "advanced charts"
		} else {
			m.status = "standard charts"
		}
	case "r":
		if m.regionalView() {
			m.showRegional = false
			m.st = m.st.LeaveRegion()
			m.status = "state view"
		} else {
			m.showRegional = true
			m.status = "regional view: click a region"
		}
	case "c":
		m.st = m.st.ClearSelection()
		m.status = "selection cleared"
	case "s":
		m.bars.ToggleSort()
		if m.bars.Desc {
			m.status = "sort: descending"
		} else {
			m.status = "sort: ascending"
		}
	case "tab":
		m.showPicker = true
		m.picker.SetSize(32, m.contentHeight()-2)
	case "/":
		m.searching = true
		m.search.SetValue("")
		return m, m.search.Focus()
	case "a":
		m.showTable = !m.showTable
	case "x":
		path, err := export.WriteWorkbook(m.cfg.ExportDir, m.ds, m.st)
		if err != nil {
			m.status = "export failed: " + err.Error()
		} else {
			m.status = "wrote " + path
		}
	case "g":
		path, err := export.WriteBarChart(m.cfg.ExportDir, m.st)
		if err != nil {
			m.status = "export failed: " + err.Error()
		} else {
			m.status = "wrote " + path
		}
	case "h":
		m.helpVisible = !m.helpVisible
	}
	return m, nil
}

// zoom and pan route to whichever map is on screen; each map keeps its
// own transform.
func (m *Model) zoomIn() {
	if m.regionalView() {
		m.regional.ZoomIn()
		m.status = fmt.Sprintf("zoom: %.2fx", m.regional.Zoom)
	} else {
		m.choro.ZoomIn()
		m.status = fmt.Sprintf("zoom: %.2fx", m.choro.Zoom)
	}
}

func (m *Model) zoomOut() {
	if m.regionalView() {
		m.regional.ZoomOut()
		m.status = fmt.Sprintf("zoom: %.2fx", m.regional.Zoom)
	} else {
		m.choro.ZoomOut()
		m.status = fmt.Sprintf("zoom: %.2fx", m.choro.Zoom)
	}
}

func (m *Model) pan(dx, dy int) {
	if m.regionalView() {
		m.regional.Pan(dx, dy)
	} else {
		m.choro.Pan(dx, dy)
	}
}

// pickByName resolves a search query against state names and codes.
func (m *Model) pickByName(q string) {
	if q == "" || m.ds == nil {
		return
	}
	lq := strings.ToLower(q)
	for _, r := range m.ds.Rows {
		if strings.EqualFold(r.Code, q) || strings.HasPrefix(strings.ToLower(r.Name), lq) {
			m.st = m.st.PickEntity(r.GeoID, r)
			m.status = "picked " + r.Name
			return
		}
	}
	m.status = "no state matches " + q
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	lay := m.layout()

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if lay.mapR.contains(msg.X, msg.Y) {
			m.zoomIn()
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if lay.mapR.contains(msg.X, msg.Y) {
			m.zoomOut()
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.pcp.Brushing() {
			m.pcp.ExtendBrush(msg.Y - lay.pcpR.y)
			return m, nil
		}
		if lay.mapR.contains(msg.X, msg.Y) {
			m.hoverStatus(msg.X-lay.mapR.x, msg.Y-lay.mapR.y, lay.mapR)
		}
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			return m.handleClick(msg.X, msg.Y, lay)
		}
	case tea.MouseActionRelease:
		if m.pcp.Dragging() {
			if m.pcp.CompleteDrag(msg.X - lay.pcpR.x) {
				m.status = "axes: " + strings.Join(m.pcp.Order, " | ")
			}
			return m, nil
		}
		if m.pcp.Brushing() {
			metric, lo, hi, ok := m.pcp.EndBrush()
			if ok && lo < hi {
				before := len(m.st.Selected)
				m.st = m.st.FilterSelection(metric, lo, hi)
				m.status = fmt.Sprintf("brush %s [%.1f, %.1f]: %d of %d kept",
					metric, lo, hi, len(m.st.Selected), before)
			}
			return m, nil
		}
	}
	return m, nil
}

// handleClick resolves a click against the chart under it. Renderers
// capture their hit-test layout while drawing, but View draws a copy
// of the model, so each chart is redrawn here first; that capture
// lives in the model Update returns.
func (m Model) handleClick(x, y int, lay layoutRects) (tea.Model, tea.Cmd) {
	switch {
	case lay.mapR.contains(x, y):
		cx, cy := x-lay.mapR.x, y-lay.mapR.y
		if m.regionalView() {
			if region, ok := m.regional.HitTest(m.fs, m.ds, cx, cy, lay.mapR.w, lay.mapR.h); ok {
				var members []state.Entity
				for _, r := range census.RegionRows(m.ds, region) {
					members = append(members, state.Entity{ID: r.GeoID, Row: r})
				}
				m.st = m.st.SelectRegion(region, members)
				m.status = fmt.Sprintf("region %s: %d states", region, len(members))
			}
			return m, nil
		}
		if row, ok := m.choro.HitTest(m.fs, m.ds, cx, cy, lay.mapR.w, lay.mapR.h); ok {
			m.st = m.st.PickEntity(row.GeoID, row)
			m.showRegional = false
			m.status = row.Name + ": " + row.Display(m.st.ActiveMetric)
		}
	case lay.barsR.contains(x, y):
		m.bars.Render(m.st, lay.barsR.w, lay.barsR.h)
		if e, ok := m.bars.EntityAt(y - lay.barsR.y); ok {
			m.st = m.st.PickEntity(e.ID, e.Row)
			m.status = e.Row.Name
		}
	case lay.entityR.contains(x, y):
		m.entity.Render(m.ds, m.st, lay.entityR.w, lay.entityR.h)
		if metric, ok := m.entity.MetricAt(y - lay.entityR.y); ok {
			m.st = m.st.SelectMetric(metric)
			m.status = "metric: " + metric
		}
	case lay.compareR.contains(x, y):
		m.compare.Render(m.st, lay.compareR.w, lay.compareR.h)
		if metric, ok := m.compare.MetricAt(y - lay.compareR.y); ok {
			m.st = m.st.SelectMetric(metric)
			m.status = "metric: " + metric
		}
	case lay.radarR.contains(x, y):
		m.radar.Render(m.st, lay.radarR.w, lay.radarR.h)
		if metric, ok := m.radar.LabelAt(x-lay.radarR.x, y-lay.radarR.y); ok {
			m.st = m.st.SelectMetric(metric)
			m.status = "metric: " + metric
		}
	case lay.pcpR.contains(x, y):
		m.pcp.Render(m.st, lay.pcpR.w, lay.pcpR.h)
		if y == lay.pcpR.y {
			m.pcp.StartDrag(x - lay.pcpR.x)
		} else {
			m.pcp.StartBrush(x-lay.pcpR.x, y-lay.pcpR.y)
		}
	}
	return m, nil
}

// hoverStatus puts the state under the cursor into the status line.
func (m *Model) hoverStatus(cx, cy int, r rect) {
	if m.regionalView() {
		if region, ok := m.regional.HitTest(m.fs, m.ds, cx, cy, r.w, r.h); ok {
			m.status = region
		}
		return
	}
	if row, ok := m.choro.HitTest(m.fs, m.ds, cx, cy, r.w, r.h); ok {
		m.status = row.Name + ": " + row.Display(m.st.ActiveMetric)
	}
}

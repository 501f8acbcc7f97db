// Package tui composes the dashboard: a choropleth map, bar charts,
// a radar view, and parallel coordinates over one shared selection
// state. Every chart rerenders from that state on each frame, so a
// click anywhere updates everywhere.
package tui

import (
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"dividash/internal/census"
	"dividash/internal/charts"
	"dividash/internal/config"
	"dividash/internal/geo"
	"dividash/internal/session"
	"dividash/internal/state"
)

type Model struct {
	width  int
	height int

	cfg   *config.Config
	store *session.Store // nil disables persistence

	ds *census.Dataset
	fs *geo.FeatureSet
	st state.State

	// charts keep only view-local state (zoom, sort, axis order)
	choro    charts.Choropleth
	regional charts.RegionalMap
	bars     charts.SortedBars
	compare  charts.ComparisonBars
	entity   charts.EntityBars
	radar    charts.Radar
	pcp      charts.ParallelCoords

	// metric picker
	picker     list.Model
	showPicker bool

	// state search
	search    textinput.Model
	searching bool

	// data table
	tbl       table.Model
	showTable bool

	showRegional bool

	helpVisible bool
	status      string

	loadingData bool
	loadingTopo bool
	fatal       error

	// deferred session restore until both loads finish
	pending    session.Record
	hasPending bool
}

type metricItem string

func (i metricItem) Title() string       { return string(i) }
func (i metricItem) Description() string { return "" }
func (i metricItem) FilterValue() string { return string(i) }

func New(cfg *config.Config, store *session.Store) Model {
	m := Model{
		cfg:         cfg,
		store:       store,
		choro:       charts.NewChoropleth(),
		regional:    charts.NewRegionalMap(),
		compare:     charts.NewComparisonBars(),
		pcp:         charts.NewParallelCoords(),
		helpVisible: true,
		status:      "loading",
		loadingData: true,
		loadingTopo: true,
	}
	m.compare.MaxMetrics = cfg.MultiMetrics

	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.picker = list.New(nil, d, 0, 0)
	m.picker.Title = "Metrics"
	m.picker.SetShowHelp(false)
	m.picker.SetShowStatusBar(false)
	m.picker.SetFilteringEnabled(true)

	m.search = textinput.New()
	m.search.Placeholder = "state name or code"
	m.search.CharLimit = 40

	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)

	if store != nil {
		if rec, ok, err := store.Load(); err == nil && ok {
			m.pending = rec
			m.hasPending = true
		}
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(loadDataCmd(m.cfg.DataPath), loadTopoCmd(m.cfg.TopologyPath))
}

type dataLoadedMsg struct {
	ds  *census.Dataset
	err error
}

type topoLoadedMsg struct {
	fs  *geo.FeatureSet
	err error
}

func loadDataCmd(path string) tea.Cmd {
	return func() tea.Msg {
		ds, err := census.LoadDataset(path)
		return dataLoadedMsg{ds: ds, err: err}
	}
}

func loadTopoCmd(path string) tea.Cmd {
	return func() tea.Msg {
		fs, err := geo.LoadTopology(path)
		return topoLoadedMsg{fs: fs, err: err}
	}
}

func (m Model) loading() bool { return m.loadingData || m.loadingTopo }

// bootstrap wires the dataset into the picker, table, and restored
// session once both async loads finish.
func (m *Model) bootstrap() {
	items := make([]list.Item, len(m.ds.Catalog))
	for i, metric := range m.ds.Catalog {
		items[i] = metricItem(metric)
	}
	m.picker.SetItems(items)

	cols := []table.Column{
		{Title: "State", Width: 18},
		{Title: "Code", Width: 5},
	}
	for _, metric := range m.ds.Catalog {
		w := len(metric)
		if w < 10 {
			w = 10
		}
		cols = append(cols, table.Column{Title: metric, Width: w})
	}
	rows := make([]table.Row, len(m.ds.Rows))
	for i, r := range m.ds.Rows {
		row := table.Row{r.Name, r.Code}
		for _, metric := range m.ds.Catalog {
			row = append(row, r.Display(metric))
		}
		rows[i] = row
	}
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)

	m.st = state.New(m.ds.Catalog)
	if m.hasPending {
		m.st = state.Restore(m.pending.Snapshot, m.ds)
		m.choro.Zoom = clampZoom(m.pending.Zoom, m.cfg)
		m.choro.OffsetX = m.pending.OffsetX
		m.choro.OffsetY = m.pending.OffsetY
		m.bars.Desc = m.pending.SortDesc
		if len(m.pending.AxisOrder) > 0 {
			m.pcp.Order = m.pending.AxisOrder
			m.pcp.SetMetrics(m.st.ActiveMetrics)
		}
		m.hasPending = false
	}
	m.status = "ready"
}

func clampZoom(z float64, cfg *config.Config) float64 {
	if z < cfg.MinZoom || z > cfg.MaxZoom {
		return 1
	}
	return z
}

// saveSession writes the session record; errors only dent the status
// line, never the exit.
func (m *Model) saveSession() {
	if m.store == nil || m.ds == nil {
		return
	}
	rec := session.Record{
		Snapshot:  m.st.Snapshot(),
		Zoom:      m.choro.Zoom,
		OffsetX:   m.choro.OffsetX,
		OffsetY:   m.choro.OffsetY,
		SortDesc:  m.bars.Desc,
		AxisOrder: m.pcp.Order,
	}
	if err := m.store.Save(rec); err != nil {
		m.status = "session save failed: " + err.Error()
	}
}

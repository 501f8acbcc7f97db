// Package session persists the dashboard state between runs in a
// small SQLite database. The store holds exactly one record; every
// save overwrites it.
package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"dividash/internal/state"
)

// Record is everything worth restoring on the next launch: the shared
// selection state plus the per-chart view transforms.
type Record struct {
	Snapshot state.Snapshot

	Zoom      float64
	OffsetX   int
	OffsetY   int
	SortDesc  bool
	AxisOrder []string
}

// Store wraps a sql.DB holding the single-row session table.
type Store struct {
	*sql.DB
	path string
}

// Open creates or opens the session database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging session database: %w", err)
	}
	s := &Store{DB: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running session migrations: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory session store (useful for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory session database: %w", err)
	}
	s := &Store{DB: db, path: ":memory:"}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running session migrations: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS session (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    saved_at DATETIME NOT NULL DEFAULT (datetime('now')),
    active_metric TEXT NOT NULL DEFAULT '',
    active_metrics TEXT NOT NULL DEFAULT '[]',
    selected_ids TEXT NOT NULL DEFAULT '[]',
    active_region TEXT NOT NULL DEFAULT '',
    mode INTEGER NOT NULL DEFAULT 0,
    viz INTEGER NOT NULL DEFAULT 0,
    zoom REAL NOT NULL DEFAULT 1,
    offset_x INTEGER NOT NULL DEFAULT 0,
    offset_y INTEGER NOT NULL DEFAULT 0,
    sort_desc INTEGER NOT NULL DEFAULT 0,
    axis_order TEXT NOT NULL DEFAULT '[]'
);
`

// Save upserts the single session record.
func (s *Store) Save(rec Record) error {
	metrics, err := json.Marshal(orEmpty(rec.Snapshot.ActiveMetrics))
	if err != nil {
		return fmt.Errorf("encoding active metrics: %w", err)
	}
	ids, err := json.Marshal(orEmpty(rec.Snapshot.SelectedIDs))
	if err != nil {
		return fmt.Errorf("encoding selected ids: %w", err)
	}
	axes, err := json.Marshal(orEmpty(rec.AxisOrder))
	if err != nil {
		return fmt.Errorf("encoding axis order: %w", err)
	}
	_, err = s.Exec(`
INSERT INTO session (id, saved_at, active_metric, active_metrics, selected_ids,
                     active_region, mode, viz, zoom, offset_x, offset_y, sort_desc, axis_order)
VALUES (1, datetime('now'), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    saved_at = excluded.saved_at,
    active_metric = excluded.active_metric,
    active_metrics = excluded.active_metrics,
    selected_ids = excluded.selected_ids,
    active_region = excluded.active_region,
    mode = excluded.mode,
    viz = excluded.viz,
    zoom = excluded.zoom,
    offset_x = excluded.offset_x,
    offset_y = excluded.offset_y,
    sort_desc = excluded.sort_desc,
    axis_order = excluded.axis_order`,
		rec.Snapshot.ActiveMetric, string(metrics), string(ids),
		rec.Snapshot.ActiveRegion, rec.Snapshot.Mode, rec.Snapshot.Viz,
		rec.Zoom, rec.OffsetX, rec.OffsetY, boolToInt(rec.SortDesc), string(axes))
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Load reads the session record. ok is false when no session has been
// saved yet.
func (s *Store) Load() (Record, bool, error) {
	var (
		rec          Record
		metrics, ids string
		axes         string
		sortDesc     int
	)
	err := s.QueryRow(`
SELECT active_metric, active_metrics, selected_ids, active_region,
       mode, viz, zoom, offset_x, offset_y, sort_desc, axis_order
FROM session WHERE id = 1`).Scan(
		&rec.Snapshot.ActiveMetric, &metrics, &ids, &rec.Snapshot.ActiveRegion,
		&rec.Snapshot.Mode, &rec.Snapshot.Viz,
		&rec.Zoom, &rec.OffsetX, &rec.OffsetY, &sortDesc, &axes)
	if err == sql.ErrNoRows {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("loading session: %w", err)
	}
	if err := json.Unmarshal([]byte(metrics), &rec.Snapshot.ActiveMetrics); err != nil {
		return Record{}, false, fmt.Errorf("decoding active metrics: %w", err)
	}
	if err := json.Unmarshal([]byte(ids), &rec.Snapshot.SelectedIDs); err != nil {
		return Record{}, false, fmt.Errorf("decoding selected ids: %w", err)
	}
	if err := json.Unmarshal([]byte(axes), &rec.AxisOrder); err != nil {
		return Record{}, false, fmt.Errorf("decoding axis order: %w", err)
	}
	rec.SortDesc = sortDesc != 0
	return rec, true, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package database

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Run is one stored generate + discover pass.
type Run struct {
	ID              string
	Seed            int64
	Size            int
	LandRatio       int
	IslandCount     int
	DiscoveryMillis float64
	Recolors        int
	CreatedAt       time.Time
}

// Recolor is one stored island repaint.
type Recolor struct {
	ID        int64
	RunID     string
	Row       int
	Col       int
	Color     string
	CreatedAt time.Time
}

// ErrRunNotFound is returned when a run is not found.
var ErrRunNotFound = errors.New("run not found")

// RecordRun stores a discovery pass and returns it with its new ID.
func (db *DB) RecordRun(seed int64, size, landRatio, islandCount int, discoveryMillis float64) (*Run, error) {
	r := &Run{
		ID:              uuid.New().String(),
		Seed:            seed,
		Size:            size,
		LandRatio:       landRatio,
		IslandCount:     islandCount,
		DiscoveryMillis: discoveryMillis,
		CreatedAt:       time.Now(),
	}
	_, err := db.conn.Exec(`
		INSERT INTO runs (id, seed, size, land_ratio, island_count, discovery_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Seed, r.Size, r.LandRatio, r.IslandCount, r.DiscoveryMillis, r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// RecordRecolor stores a repaint against a run.
func (db *DB) RecordRecolor(runID string, row, col int, color string) error {
	_, err := db.conn.Exec(`
		INSERT INTO recolors (run_id, cell_row, cell_col, color, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, runID, row, col, color, time.Now())
	return err
}

// GetRun retrieves a run by ID.
func (db *DB) GetRun(id string) (*Run, error) {
	r := &Run{}
	err := db.conn.QueryRow(`
		SELECT r.id, r.seed, r.size, r.land_ratio, r.island_count, r.discovery_ms,
			(SELECT COUNT(*) FROM recolors c WHERE c.run_id = r.id), r.created_at
		FROM runs r WHERE r.id = ?
	`, id).Scan(&r.ID, &r.Seed, &r.Size, &r.LandRatio, &r.IslandCount, &r.DiscoveryMillis, &r.Recolors, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ListRuns returns the most recent runs first. A limit of 0 or less means 50.
func (db *DB) ListRuns(limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.conn.Query(`
		SELECT r.id, r.seed, r.size, r.land_ratio, r.island_count, r.discovery_ms,
			(SELECT COUNT(*) FROM recolors c WHERE c.run_id = r.id), r.created_at
		FROM runs r
		ORDER BY r.rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r := &Run{}
		if err := rows.Scan(&r.ID, &r.Seed, &r.Size, &r.LandRatio, &r.IslandCount, &r.DiscoveryMillis, &r.Recolors, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRecolors retrieves all repaints of a run, oldest first.
func (db *DB) GetRecolors(runID string) ([]*Recolor, error) {
	rows, err := db.conn.Query(`
		SELECT id, run_id, cell_row, cell_col, color, created_at
		FROM recolors
		WHERE run_id = ?
		ORDER BY id ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Recolor
	for rows.Next() {
		c := &Recolor{}
		if err := rows.Scan(&c.ID, &c.RunID, &c.Row, &c.Col, &c.Color, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DeleteRun removes a run and its repaints.
func (db *DB) DeleteRun(id string) error {
	result, err := db.conn.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrRunNotFound
	}
	return nil
}

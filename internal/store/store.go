// Package store provides a SQLite-backed history of computed spend snapshots.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"srvburn/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store persists spend snapshots so burn-rate drift can be charted over time.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the platform-appropriate snapshot database path.
func DefaultPath() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "srvburn", "history.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "srvburn", "history.db")
}

// Open opens or creates the snapshot database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the snapshot database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSnapshot appends one history row.
func (s *Store) SaveSnapshot(snap model.Snapshot) error {
	at := snap.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO snapshots
		(at, total_daily_cost, total_in_horizon, active_servers, horizon_days, mode)
		VALUES (?, ?, ?, ?, ?, ?)`,
		at.UTC().Format(time.RFC3339),
		snap.TotalDailyCost,
		snap.TotalInHorizon,
		snap.ActiveServers,
		snap.HorizonDays,
		string(snap.Mode),
	)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// ListSnapshots returns up to limit snapshots, most recent first.
// A limit <= 0 returns everything.
func (s *Store) ListSnapshots(limit int) ([]model.Snapshot, error) {
	q := `SELECT at, total_daily_cost, total_in_horizon, active_servers, horizon_days, mode
		FROM snapshots ORDER BY at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var snaps []model.Snapshot
	for rows.Next() {
		var (
			snap model.Snapshot
			at   string
			mode string
		)
		if err := rows.Scan(&at, &snap.TotalDailyCost, &snap.TotalInHorizon,
			&snap.ActiveServers, &snap.HorizonDays, &mode); err != nil {
			return nil, err
		}
		snap.At, _ = time.Parse(time.RFC3339, at)
		snap.Mode = model.Mode(mode)
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// LatestSnapshot returns the most recent row, or nil when the history is empty.
func (s *Store) LatestSnapshot() (*model.Snapshot, error) {
	snaps, err := s.ListSnapshots(1)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, nil
	}
	return &snaps[0], nil
}

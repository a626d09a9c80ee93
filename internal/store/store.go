// Package store persists run history and the acted-on ledger in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store handles all database operations.
type Store struct {
	db *sql.DB
}

// Open creates (or opens) the SQLite database at dbPath and applies the
// schema.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS acted (
		automation TEXT NOT NULL,
		record_id TEXT NOT NULL,
		acted_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (automation, record_id)
	);

	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		automation TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,
		acted INTEGER,
		skipped INTEGER,
		failed INTEGER,
		rounds INTEGER,
		preview BOOLEAN
	);

	CREATE INDEX IF NOT EXISTS idx_runs_automation ON runs(automation, started_at);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// RunRow is one persisted run summary.
type RunRow struct {
	ID         string
	Automation string
	StartedAt  time.Time
	FinishedAt time.Time
	Acted      int
	Skipped    int
	Failed     int
	Rounds     int
	Preview    bool
}

// SaveRun records a completed run.
func (s *Store) SaveRun(r RunRow) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (id, automation, started_at, finished_at, acted, skipped, failed, rounds, preview)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Automation, r.StartedAt, r.FinishedAt, r.Acted, r.Skipped, r.Failed, r.Rounds, r.Preview)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent run summaries for an automation.
func (s *Store) RecentRuns(automation string, limit int) ([]RunRow, error) {
	rows, err := s.db.Query(`
		SELECT id, automation, started_at, finished_at, acted, skipped, failed, rounds, preview
		FROM runs
		WHERE automation = ?
		ORDER BY started_at DESC
		LIMIT ?
	`, automation, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.ID, &r.Automation, &r.StartedAt, &r.FinishedAt,
			&r.Acted, &r.Skipped, &r.Failed, &r.Rounds, &r.Preview); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

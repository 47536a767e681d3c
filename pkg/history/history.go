// Package history records reconcile outcomes in a local SQLite database so
// past runs can be inspected without asking the controller again.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS applies(
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ts INTEGER NOT NULL,
	kind TEXT NOT NULL,
	insights_group TEXT NOT NULL,
	fabric TEXT,
	name TEXT,
	state TEXT NOT NULL,
	changed INTEGER NOT NULL,
	status TEXT
);
CREATE INDEX IF NOT EXISTS idx_applies_name ON applies(name);`

// Entry is one recorded reconcile outcome
type Entry struct {
	ID            int64
	Time          time.Time
	Kind          string
	InsightsGroup string
	Fabric        string
	Name          string
	State         string
	Changed       bool
	Status        string
}

// Store is a local run history backed by SQLite
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the history database at path
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("could not create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("could not open history database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not reach history database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not initialize history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DefaultPath places the history database in the user cache directory
func DefaultPath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "ndictl", "history.db"), nil
}

// Record stores one outcome. Recording never blocks an apply, callers log
// and move on when it fails.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO applies(ts, kind, insights_group, fabric, name, state, changed, status) VALUES(?,?,?,?,?,?,?,?)`,
		e.Time.UnixMilli(), e.Kind, e.InsightsGroup, e.Fabric, e.Name, e.State, boolInt(e.Changed), e.Status)
	if err != nil {
		return fmt.Errorf("could not record history entry: %w", err)
	}
	return nil
}

// Recent returns the newest entries, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ts, kind, insights_group, fabric, name, state, changed, status FROM applies ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("could not read history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		var changed int
		if err := rows.Scan(&e.ID, &ts, &e.Kind, &e.InsightsGroup, &e.Fabric, &e.Name, &e.State, &changed, &e.Status); err != nil {
			return nil, fmt.Errorf("could not scan history entry: %w", err)
		}
		e.Time = time.UnixMilli(ts)
		e.Changed = changed != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Package history records successful launches in a local sqlite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS launches (
	id           TEXT PRIMARY KEY,
	project_path TEXT NOT NULL,
	product_code TEXT NOT NULL,
	pid          INTEGER NOT NULL,
	launched_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS launches_launched_at ON launches(launched_at DESC);
`

// Launch is one recorded activation.
type Launch struct {
	ID          string    `json:"id"`
	ProjectPath string    `json:"project_path"`
	ProductCode string    `json:"product_code"`
	PID         int       `json:"pid"`
	LaunchedAt  time.Time `json:"launched_at"`
}

// Store wraps the launch-history database.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Record inserts one launch. A zero ID or timestamp is filled in.
func (s *Store) Record(ctx context.Context, l Launch) (Launch, error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.LaunchedAt.IsZero() {
		l.LaunchedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO launches (id, project_path, product_code, pid, launched_at) VALUES (?, ?, ?, ?, ?)`,
		l.ID, l.ProjectPath, l.ProductCode, l.PID, l.LaunchedAt)
	if err != nil {
		return Launch{}, fmt.Errorf("failed to record launch: %w", err)
	}
	return l, nil
}

// Recent returns the newest launches, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Launch, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project_path, product_code, pid, launched_at
		 FROM launches ORDER BY launched_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var out []Launch
	for rows.Next() {
		var l Launch
		if err := rows.Scan(&l.ID, &l.ProjectPath, &l.ProductCode, &l.PID, &l.LaunchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan launch row: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// LaunchCounts returns how often each project path has been opened.
func (s *Store) LaunchCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT project_path, COUNT(*) FROM launches GROUP BY project_path`)
	if err != nil {
		return nil, fmt.Errorf("failed to query launch counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var path string
		var n int
		if err := rows.Scan(&path, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		counts[path] = n
	}
	return counts, rows.Err()
}

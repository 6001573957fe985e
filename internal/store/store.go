// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/pomo/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for session history and the recovery
// checkpoint.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			session_type TEXT NOT NULL,
			task_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			planned_ms INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS checkpoint (
			slot INTEGER PRIMARY KEY CHECK (slot = 0),
			session_id TEXT NOT NULL,
			session_type TEXT NOT NULL,
			planned_ms INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			accumulated_pause_ms INTEGER NOT NULL,
			state TEXT NOT NULL,
			task_id TEXT NOT NULL,
			written_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSummary stores a finished session.
func (s *Store) InsertSummary(ctx context.Context, sum model.SessionSummary) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, session_type, task_id, outcome, planned_ms, elapsed_ms, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.ID,
		sum.Type,
		sum.TaskID,
		sum.Outcome,
		sum.PlannedMs,
		sum.ElapsedMs,
		sum.StartedAt.Format(time.RFC3339Nano),
		sum.EndedAt.Format(time.RFC3339Nano),
	)
	return err
}

// ListSummaries returns finished sessions filtered by the stats config,
// oldest first.
func (s *Store) ListSummaries(ctx context.Context, cfg model.StatsConfig) ([]model.SessionSummary, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Type != "" {
		clauses = append(clauses, "session_type = ?")
		args = append(args, cfg.Type)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, session_type, task_id, outcome, planned_ms, elapsed_ms, started_at, ended_at
		FROM sessions
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sums []model.SessionSummary
	for rows.Next() {
		var sum model.SessionSummary
		var startedAt, endedAt string
		if err := rows.Scan(&sum.ID, &sum.Type, &sum.TaskID, &sum.Outcome, &sum.PlannedMs, &sum.ElapsedMs, &startedAt, &endedAt); err != nil {
			return nil, err
		}
		if sum.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if sum.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		sums = append(sums, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(sums) > cfg.Last {
		sums = sums[len(sums)-cfg.Last:]
	}
	return sums, nil
}

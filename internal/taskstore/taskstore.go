// Package taskstore persists job bookkeeping records in SQLite so task
// history survives restarts. The store holds metadata only; document bytes
// live in the file storage layer.
package taskstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Status is the lifecycle state of a task record.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Task is one persisted job record.
type Task struct {
	ID         string
	Operation  string
	TargetKind string
	SourceName string
	ResultName string
	Status     Status
	Error      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ErrNotFound is returned when a task id has no record.
var ErrNotFound = errors.New("task not found")

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id          TEXT PRIMARY KEY,
	operation   TEXT NOT NULL,
	target_kind TEXT NOT NULL DEFAULT '',
	source_name TEXT NOT NULL DEFAULT '',
	result_name TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	error       TEXT NOT NULL DEFAULT '',
	created_at  INTEGER NOT NULL,
	updated_at  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_created ON tasks (created_at);
`

// Store is a SQLite-backed task registry.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the task database at path with production-safe
// pragmas applied.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open task db: %w", err)
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping task db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create inserts a new task record in queued state.
func (s *Store) Create(ctx context.Context, t *Task) error {
	now := time.Now()
	t.Status = StatusQueued
	t.CreatedAt = now
	t.UpdatedAt = now
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, operation, target_kind, source_name, result_name, status, error, created_at, updated_at)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		t.ID, t.Operation, t.TargetKind, t.SourceName, t.ResultName,
		t.Status, t.Error, now.UnixMilli(), now.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert task %s: %w", t.ID, err)
	}
	return nil
}

// SetStatus transitions a task, recording the failure message for failed
// tasks.
func (s *Store) SetStatus(ctx context.Context, id string, status Status, errMsg string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET status = ?, error = ?, updated_at = ? WHERE id = ?`,
		status, errMsg, time.Now().UnixMilli(), id,
	)
	if err != nil {
		return fmt.Errorf("update task %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetResult records the stored result filename of a completed task.
func (s *Store) SetResult(ctx context.Context, id, resultName string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET result_name = ?, updated_at = ? WHERE id = ?`,
		resultName, time.Now().UnixMilli(), id,
	)
	if err != nil {
		return fmt.Errorf("update task %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Get fetches one task by id.
func (s *Store) Get(ctx context.Context, id string) (*Task, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, operation, target_kind, source_name, result_name, status, error, created_at, updated_at
		 FROM tasks WHERE id = ?`, id)
	return scanTask(row)
}

// List returns the most recent tasks, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]*Task, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, operation, target_kind, source_name, result_name, status, error, created_at, updated_at
		 FROM tasks ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*Task, error) {
	var t Task
	var createdMs, updatedMs int64
	err := row.Scan(&t.ID, &t.Operation, &t.TargetKind, &t.SourceName, &t.ResultName,
		&t.Status, &t.Error, &createdMs, &updatedMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan task: %w", err)
	}
	t.CreatedAt = time.UnixMilli(createdMs)
	t.UpdatedAt = time.UnixMilli(updatedMs)
	return &t, nil
}

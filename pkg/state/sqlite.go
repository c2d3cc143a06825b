// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"swarmforge/pkg/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS execution_contexts (
	project_id TEXT PRIMARY KEY,
	status     TEXT NOT NULL,
	data       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_execution_contexts_status ON execution_contexts(status);
`

// SQLiteStore is a durable Store backed by a single SQLite file. Each
// ExecutionContext is serialized whole as a JSON blob; the status
// column is kept in sync purely so ListByStatus can query it without
// deserializing every row.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if necessary) a SQLite database at
// path and ensures its schema exists. WAL mode plus a single-writer
// connection pool mirrors the teacher stack's recommended SQLite
// configuration for a process-local durable store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save upserts execCtx inside a single transaction: the commit is
// SQLite's atomic unit, so a reader never observes a partially written
// row even if the process crashes mid-write.
func (s *SQLiteStore) Save(ctx context.Context, execCtx types.ExecutionContext) error {
	data, err := json.Marshal(execCtx)
	if err != nil {
		return fmt.Errorf("marshaling execution context: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO execution_contexts (project_id, status, data)
		VALUES (?, ?, ?)
		ON CONFLICT(project_id) DO UPDATE SET
			status = excluded.status,
			data = excluded.data
	`, execCtx.ProjectID, string(execCtx.Status), string(data))
	if err != nil {
		return fmt.Errorf("upserting execution context: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Load returns the saved context for projectID, or (nil, nil) if absent.
func (s *SQLiteStore) Load(ctx context.Context, projectID string) (*types.ExecutionContext, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM execution_contexts WHERE project_id = ?
	`, projectID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading execution context: %w", err)
	}

	var execCtx types.ExecutionContext
	if err := json.Unmarshal([]byte(data), &execCtx); err != nil {
		return nil, fmt.Errorf("unmarshaling execution context: %w", err)
	}
	return &execCtx, nil
}

// Delete removes projectID's saved context, if any.
func (s *SQLiteStore) Delete(ctx context.Context, projectID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM execution_contexts WHERE project_id = ?`, projectID)
	if err != nil {
		return fmt.Errorf("deleting execution context: %w", err)
	}
	return nil
}

// ListByStatus returns every saved context currently in status.
func (s *SQLiteStore) ListByStatus(ctx context.Context, status types.Status) ([]types.ExecutionContext, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT data FROM execution_contexts WHERE status = ?
	`, string(status))
	if err != nil {
		return nil, fmt.Errorf("listing execution contexts: %w", err)
	}
	defer rows.Close()

	var out []types.ExecutionContext
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning execution context: %w", err)
		}
		var execCtx types.ExecutionContext
		if err := json.Unmarshal([]byte(data), &execCtx); err != nil {
			return nil, fmt.Errorf("unmarshaling execution context: %w", err)
		}
		out = append(out, execCtx)
	}
	return out, rows.Err()
}

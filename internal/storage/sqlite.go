package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists ranges in a local SQLite database. Each row of a range
// is stored as a JSON-encoded cell array keyed by (range_id, row_idx).
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS range_rows (
			range_id TEXT NOT NULL,
			row_idx  INTEGER NOT NULL,
			cells    TEXT NOT NULL,
			PRIMARY KEY (range_id, row_idx)
		)`)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'fitbot init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) ReadRange(ctx context.Context, rangeID string) ([][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cells FROM range_rows WHERE range_id = ? ORDER BY row_idx`, rangeID)
	if err != nil {
		return nil, fmt.Errorf("failed to read range %q: %w", rangeID, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var encoded string
		if err := rows.Scan(&encoded); err != nil {
			return nil, err
		}
		var cells []string
		if err := json.Unmarshal([]byte(encoded), &cells); err != nil {
			return nil, fmt.Errorf("corrupt row in range %q: %w", rangeID, err)
		}
		out = append(out, cells)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) WriteRange(ctx context.Context, rangeID string, rows [][]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to write range %q: %w", rangeID, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM range_rows WHERE range_id = ?`, rangeID); err != nil {
		return fmt.Errorf("failed to write range %q: %w", rangeID, err)
	}
	for i, row := range rows {
		encoded, err := json.Marshal(row)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO range_rows (range_id, row_idx, cells) VALUES (?, ?, ?)`,
			rangeID, i, string(encoded)); err != nil {
			return fmt.Errorf("failed to write range %q: %w", rangeID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) AppendRow(ctx context.Context, rangeID string, row []string) error {
	encoded, err := json.Marshal(row)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO range_rows (range_id, row_idx, cells)
		VALUES (?, (SELECT COALESCE(MAX(row_idx), -1) + 1 FROM range_rows WHERE range_id = ?), ?)`,
		rangeID, rangeID, string(encoded))
	if err != nil {
		return fmt.Errorf("failed to append to range %q: %w", rangeID, err)
	}
	return nil
}

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/lib/pq"
)

// PostgresStore persists ranges in PostgreSQL with the same row layout as the
// SQLite backend. Connection strings must not embed a password; credentials
// come from the environment, .pgpass, or the OS keyring.
type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{connStr: connStr}
}

// HasEmbeddedCredentials reports whether a URL-style connection string
// carries a password.
func HasEmbeddedCredentials(connStr string) bool {
	if !strings.HasPrefix(connStr, "postgres://") && !strings.HasPrefix(connStr, "postgresql://") {
		return false
	}
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}

func (s *PostgresStore) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

func (s *PostgresStore) Init() error {
	if err := s.open(); err != nil {
		return err
	}
	_, err := s.db.Exec(`
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

func (s *PostgresStore) Load() error { return s.open() }

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) ReadRange(ctx context.Context, rangeID string) ([][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cells FROM range_rows WHERE range_id = $1 ORDER BY row_idx`, rangeID)
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

func (s *PostgresStore) WriteRange(ctx context.Context, rangeID string, rows [][]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to write range %q: %w", rangeID, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM range_rows WHERE range_id = $1`, rangeID); err != nil {
		return fmt.Errorf("failed to write range %q: %w", rangeID, err)
	}
	for i, row := range rows {
		encoded, err := json.Marshal(row)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO range_rows (range_id, row_idx, cells) VALUES ($1, $2, $3)`,
			rangeID, i, string(encoded)); err != nil {
			return fmt.Errorf("failed to write range %q: %w", rangeID, err)
		}
	}
	return tx.Commit()
}

func (s *PostgresStore) AppendRow(ctx context.Context, rangeID string, row []string) error {
	encoded, err := json.Marshal(row)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO range_rows (range_id, row_idx, cells)
		VALUES ($1, (SELECT COALESCE(MAX(row_idx), -1) + 1 FROM range_rows WHERE range_id = $1), $2)`,
		rangeID, string(encoded))
	if err != nil {
		return fmt.Errorf("failed to append to range %q: %w", rangeID, err)
	}
	return nil
}

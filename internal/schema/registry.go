package schema

import (
	"context"
	"fmt"

	"github.com/julianstephens/fitbot/internal/constants"
	apperrors "github.com/julianstephens/fitbot/internal/errors"
	"github.com/julianstephens/fitbot/internal/storage"
)

// Registry owns the ordered column names of the daily-tracker range. It keeps
// no cached state: callers get the current header row from the backing store
// on every read, and Append writes the grown header row straight back.
type Registry struct {
	store   storage.RangeStore
	rangeID string
}

func NewRegistry(store storage.RangeStore) *Registry {
	return &Registry{store: store, rangeID: constants.RangeTracker}
}

// Headers returns the current header row. An empty tracker range yields the
// two reserved columns so the first append always lands after them.
func (r *Registry) Headers(ctx context.Context) ([]string, error) {
	rows, err := r.store.ReadRange(ctx, r.rangeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch headers: %w", err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return []string{constants.ColumnDate, constants.ColumnName}, nil
	}
	return rows[0], nil
}

// IndexOf returns the position of name in headers, or -1 if absent.
// Matching is case-sensitive and exact.
func IndexOf(headers []string, name string) int {
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	return -1
}

// EditableColumns returns the header row minus the reserved Date and Name
// columns, in schema order.
func (r *Registry) EditableColumns(ctx context.Context) ([]string, error) {
	headers, err := r.Headers(ctx)
	if err != nil {
		return nil, err
	}
	if len(headers) <= constants.ReservedColumns {
		return nil, nil
	}
	return headers[constants.ReservedColumns:], nil
}

// Append grows the schema by one column at the end and persists the new
// header row. Growth is append-only: columns are never reordered or removed.
func (r *Registry) Append(ctx context.Context, name string) ([]string, error) {
	if name == "" {
		return nil, fmt.Errorf("column name cannot be empty")
	}

	rows, err := r.store.ReadRange(ctx, r.rangeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch headers: %w", err)
	}

	headers := []string{constants.ColumnDate, constants.ColumnName}
	if len(rows) > 0 && len(rows[0]) > 0 {
		headers = rows[0]
	}

	if IndexOf(headers, name) >= 0 {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrDuplicateColumn, name)
	}

	headers = append(headers, name)
	if len(rows) == 0 {
		rows = [][]string{headers}
	} else {
		rows[0] = headers
	}

	if err := r.store.WriteRange(ctx, r.rangeID, rows); err != nil {
		return nil, fmt.Errorf("failed to save headers: %w", err)
	}
	return headers, nil
}

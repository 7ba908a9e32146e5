package storage

import "context"

// RangeStore is the boundary to the tabular store that backs the bot. A range
// is an ordered list of rows; a row is an ordered list of string cells. Rows
// may be shorter than the header row of their range.
//
// The store offers no transactions and no concurrency tokens: WriteRange
// replaces the whole range in one call, and concurrent read-modify-write
// cycles from different callers can lose updates. The bot accepts this
// (low write concurrency) rather than layering locking on top.
type RangeStore interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// ReadRange returns every row of the range in order. A range that has
	// never been written reads as empty, not as an error.
	ReadRange(ctx context.Context, rangeID string) ([][]string, error)
	// WriteRange replaces the full contents of the range.
	WriteRange(ctx context.Context, rangeID string, rows [][]string) error
	// AppendRow adds a single row after the current last row of the range.
	AppendRow(ctx context.Context, rangeID string, row []string) error
}

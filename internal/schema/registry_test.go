package schema

import (
	"context"
	"testing"

	"github.com/julianstephens/fitbot/internal/constants"
	apperrors "github.com/julianstephens/fitbot/internal/errors"
	"github.com/julianstephens/fitbot/internal/storage"
)

func newTestRegistry(t *testing.T, rows [][]string) (*Registry, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	if rows != nil {
		if err := store.WriteRange(context.Background(), constants.RangeTracker, rows); err != nil {
			t.Fatalf("Failed to seed store: %v", err)
		}
	}
	return NewRegistry(store), store
}

func TestHeaders_EmptyRangeYieldsReservedColumns(t *testing.T) {
	registry, _ := newTestRegistry(t, nil)

	headers, err := registry.Headers(context.Background())
	if err != nil {
		t.Fatalf("Headers failed: %v", err)
	}
	if len(headers) != 2 || headers[0] != constants.ColumnDate || headers[1] != constants.ColumnName {
		t.Errorf("Expected reserved columns, got %v", headers)
	}
}

func TestAppend_GrowsAtEnd(t *testing.T) {
	registry, _ := newTestRegistry(t, [][]string{{"Date", "Name"}})

	headers, err := registry.Append(context.Background(), "Steps")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	want := []string{"Date", "Name", "Steps"}
	if len(headers) != len(want) {
		t.Fatalf("Expected %v, got %v", want, headers)
	}
	for i := range want {
		if headers[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, headers)
		}
	}
}

func TestAppend_RejectsDuplicate(t *testing.T) {
	registry, _ := newTestRegistry(t, [][]string{{"Date", "Name", "Steps"}})

	if _, err := registry.Append(context.Background(), "Steps"); !apperrors.Is(err, apperrors.ErrDuplicateColumn) {
		t.Errorf("Expected ErrDuplicateColumn, got %v", err)
	}
}

func TestAppend_DuplicateMatchIsCaseSensitive(t *testing.T) {
	registry, _ := newTestRegistry(t, [][]string{{"Date", "Name", "Steps"}})

	if _, err := registry.Append(context.Background(), "steps"); err != nil {
		t.Errorf("Expected case-sensitive match to allow 'steps', got %v", err)
	}
}

func TestAppend_PersistsHeaderRow(t *testing.T) {
	registry, store := newTestRegistry(t, [][]string{{"Date", "Name"}, {"2026-08-28", "Sam"}})

	if _, err := registry.Append(context.Background(), "Water"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	rows, err := store.ReadRange(context.Background(), constants.RangeTracker)
	if err != nil {
		t.Fatalf("ReadRange failed: %v", err)
	}
	if len(rows[0]) != 3 || rows[0][2] != "Water" {
		t.Errorf("Expected persisted header row with Water, got %v", rows[0])
	}
	// Data rows are untouched by a schema append.
	if len(rows) != 2 || rows[1][1] != "Sam" {
		t.Errorf("Expected data row preserved, got %v", rows)
	}
}

func TestIndexOf(t *testing.T) {
	headers := []string{"Date", "Name", "Steps"}
	if got := IndexOf(headers, "Steps"); got != 2 {
		t.Errorf("Expected 2, got %d", got)
	}
	if got := IndexOf(headers, "Missing"); got != -1 {
		t.Errorf("Expected -1, got %d", got)
	}
}

func TestEditableColumns_ExcludesReserved(t *testing.T) {
	registry, _ := newTestRegistry(t, [][]string{{"Date", "Name", "Steps", "Water"}})

	columns, err := registry.EditableColumns(context.Background())
	if err != nil {
		t.Fatalf("EditableColumns failed: %v", err)
	}
	if len(columns) != 2 || columns[0] != "Steps" || columns[1] != "Water" {
		t.Errorf("Expected [Steps Water], got %v", columns)
	}
}

package storage

import (
	"context"
	"testing"
)

func TestMemoryStore_ReadMissingRangeIsEmpty(t *testing.T) {
	s := NewMemoryStore()
	rows, err := s.ReadRange(context.Background(), "nope")
	if err != nil {
		t.Fatalf("ReadRange failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Expected empty, got %v", rows)
	}
}

func TestMemoryStore_WriteOverwritesWhole(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.WriteRange(ctx, "r", [][]string{{"a"}, {"b"}})
	s.WriteRange(ctx, "r", [][]string{{"c"}})

	rows, _ := s.ReadRange(ctx, "r")
	if len(rows) != 1 || rows[0][0] != "c" {
		t.Errorf("Expected full overwrite, got %v", rows)
	}
}

func TestMemoryStore_AppendRow(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.AppendRow(ctx, "r", []string{"a"})
	s.AppendRow(ctx, "r", []string{"b"})

	rows, _ := s.ReadRange(ctx, "r")
	if len(rows) != 2 || rows[1][0] != "b" {
		t.Errorf("Expected appended rows in order, got %v", rows)
	}
}

func TestMemoryStore_SnapshotsAreIsolated(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	s.WriteRange(ctx, "r", [][]string{{"a", "b"}})

	rows, _ := s.ReadRange(ctx, "r")
	rows[0][0] = "mutated"

	fresh, _ := s.ReadRange(ctx, "r")
	if fresh[0][0] != "a" {
		t.Errorf("Expected stored rows unaffected by caller mutation, got %v", fresh)
	}
}

package storage

import (
	"context"
	"sync"
)

// MemoryStore is an in-process RangeStore used by tests and by the console
// transport when no database is configured. Contents do not survive restarts.
type MemoryStore struct {
	mu     sync.Mutex
	ranges map[string][][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ranges: make(map[string][][]string)}
}

func (s *MemoryStore) Init() error  { return nil }
func (s *MemoryStore) Load() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) ReadRange(_ context.Context, rangeID string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyRows(s.ranges[rangeID]), nil
}

func (s *MemoryStore) WriteRange(_ context.Context, rangeID string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ranges[rangeID] = copyRows(rows)
	return nil
}

func (s *MemoryStore) AppendRow(_ context.Context, rangeID string, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ranges[rangeID] = append(s.ranges[rangeID], append([]string(nil), row...))
	return nil
}

// copyRows deep-copies so callers can't mutate stored rows through a returned
// snapshot (the upsert engine mutates snapshots in place).
func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}

package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/insumos/internal/core/domain"
	"github.com/custodia-labs/insumos/internal/core/ports/driven"
)

// Ensure StatsStore implements the interface.
var _ driven.StatsStore = (*StatsStore)(nil)

// StatsStore is an in-memory implementation of driven.StatsStore.
type StatsStore struct {
	mu      sync.RWMutex
	records []domain.StatsRecord
	nextID  int64

	// Err, when set, is returned by Append without storing anything.
	Err error
}

// NewStatsStore creates a new in-memory stats store.
func NewStatsStore() *StatsStore {
	return &StatsStore{nextID: 1}
}

// Append stores a new record.
func (s *StatsStore) Append(_ context.Context, file string, at time.Time, effectiveness float64, total int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.records = append(s.records, domain.StatsRecord{
		ID:            s.nextID,
		File:          file,
		ProcessedAt:   at,
		Effectiveness: effectiveness,
		Total:         total,
	})
	s.nextID++
	return nil
}

// List returns all records, most recent first. Records with equal
// timestamps are ordered newest ID first.
func (s *StatsStore) List(_ context.Context) ([]domain.StatsRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.StatsRecord, len(s.records))
	copy(out, s.records)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ProcessedAt.Equal(out[j].ProcessedAt) {
			return out[i].ProcessedAt.After(out[j].ProcessedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// Len returns the number of stored records.
func (s *StatsStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

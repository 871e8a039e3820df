package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/insumos/internal/core/domain"
)

// mockReader implements driven.TableReader, serving tables by base name.
type mockReader struct {
	mu     sync.Mutex
	tables map[string]*domain.Table
	errs   map[string]error
	panics map[string]string
	sheets []string

	// panicAll, when set, makes every read panic with it.
	panicAll string
}

func newMockReader() *mockReader {
	return &mockReader{
		tables: make(map[string]*domain.Table),
		errs:   make(map[string]error),
		panics: make(map[string]string),
	}
}

func (m *mockReader) with(name string, table *domain.Table) *mockReader {
	m.tables[name] = table
	return m
}

func (m *mockReader) failing(name string, err error) *mockReader {
	m.errs[name] = err
	return m
}

func (m *mockReader) panicking(name, msg string) *mockReader {
	m.panics[name] = msg
	return m
}

func (m *mockReader) Read(_ context.Context, path, sheet string) (*domain.Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheets = append(m.sheets, sheet)

	name := filepath.Base(path)
	if m.panicAll != "" {
		panic(m.panicAll)
	}
	if msg, ok := m.panics[name]; ok {
		panic(msg)
	}
	if err, ok := m.errs[name]; ok {
		return nil, err
	}
	if t, ok := m.tables[name]; ok {
		return t, nil
	}
	// Uploads are staged under random names; fall back to the only table.
	if len(m.tables) == 1 {
		for _, t := range m.tables {
			return t, nil
		}
	}
	return nil, &domain.ReadError{Path: path, Err: fmt.Errorf("no fixture for %s", name)}
}

// orderTable builds an order-sync table from (order, status) pairs.
func orderTable(pairs ...[2]string) *domain.Table {
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{p[0], p[1]})
	}
	return domain.NewTable([]string{OrderGroupColumn, OrderStatusColumn}, rows)
}

// stubProcessor returns a fixed outcome for every file.
type stubProcessor struct {
	outcome domain.Outcome
}

func (s stubProcessor) Category() domain.Category { return domain.CategoryOrderSync }
func (s stubProcessor) Folder() string            { return domain.CategoryOrderSync.Folder() }

func (s stubProcessor) ProcessOne(context.Context, string) (domain.Outcome, error) {
	return s.outcome, nil
}

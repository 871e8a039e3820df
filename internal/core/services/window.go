package services

import (
	"github.com/custodia-labs/insumos/internal/core/domain"
)

// FilterWindow keeps the rows whose window column parses as a timestamp
// inside the window. Unparseable or empty cells are dropped. An inactive
// window returns the table unchanged.
//
// A missing window column fails with *domain.SchemaError.
func FilterWindow(table *domain.Table, window domain.TimeWindow) (*domain.Table, error) {
	if !window.Active() {
		return table, nil
	}
	if err := table.Require(window.Column); err != nil {
		return nil, err
	}
	idx, _ := table.ColumnIndex(window.Column)

	return table.Filter(func(row []string) bool {
		t, ok := domain.ParseTimestamp(row[idx])
		return ok && window.Contains(t)
	}), nil
}

package driven

import (
	"context"

	"github.com/custodia-labs/insumos/internal/core/domain"
)

// TableReader loads spreadsheet data.
type TableReader interface {
	// Read loads the named sheet of the file at path. An empty sheet means
	// the workbook's first sheet. The first row is the header.
	//
	// A missing named sheet fails with *domain.SchemaError; any other
	// failure is a *domain.ReadError wrapping the cause.
	Read(ctx context.Context, path, sheet string) (*domain.Table, error)
}

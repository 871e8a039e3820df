package driving

import (
	"context"

	"github.com/custodia-labs/insumos/internal/core/domain"
)

// StatsService reads and exports historical stats.
type StatsService interface {
	// List returns every record, most recent first.
	List(ctx context.Context) ([]domain.StatsRecord, error)

	// Export writes a snapshot of all records to path in the given format.
	// Returns the number of records written.
	Export(ctx context.Context, format, path string) (int, error)

	// CopyDatabase copies the raw store file to path.
	CopyDatabase(path string) error
}

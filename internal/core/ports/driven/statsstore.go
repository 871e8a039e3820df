package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/insumos/internal/core/domain"
)

// StatsStore is the append-only log of processing outcomes.
// Backed by SQLite.
type StatsStore interface {
	// Append writes one new record.
	Append(ctx context.Context, file string, at time.Time, effectiveness float64, total int) error

	// List returns every record, most recent first.
	List(ctx context.Context) ([]domain.StatsRecord, error)
}

package driven

import (
	"io"

	"github.com/custodia-labs/insumos/internal/core/domain"
)

// StatsExporter serialises a stats snapshot for external consumers.
type StatsExporter interface {
	// Format returns the format name, e.g. "json".
	Format() string

	// Export writes records to w in the exporter's format.
	Export(w io.Writer, records []domain.StatsRecord) error
}

package export

import (
	"time"

	"github.com/custodia-labs/insumos/internal/core/domain"
)

// TimeLayout is how fecha_proceso is rendered. Times are always UTC.
const TimeLayout = time.RFC3339

// Record is the external shape of one stats record.
type Record struct {
	File          string  `json:"archivo" yaml:"archivo"`
	ProcessedAt   string  `json:"fecha_proceso" yaml:"fecha_proceso"`
	Effectiveness float64 `json:"efectividad" yaml:"efectividad"`
	Total         int     `json:"total_registros" yaml:"total_registros"`
}

// FromRecords converts store records, keeping their order. The result is
// never nil so empty snapshots encode as an empty list.
func FromRecords(records []domain.StatsRecord) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		out = append(out, Record{
			File:          r.File,
			ProcessedAt:   r.ProcessedAt.UTC().Format(TimeLayout),
			Effectiveness: r.Effectiveness,
			Total:         r.Total,
		})
	}
	return out
}

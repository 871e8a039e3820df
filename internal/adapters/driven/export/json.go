package export

import (
	"encoding/json"
	"io"

	"github.com/custodia-labs/insumos/internal/core/domain"
	"github.com/custodia-labs/insumos/internal/core/ports/driven"
)

// Ensure JSONExporter implements the interface.
var _ driven.StatsExporter = (*JSONExporter)(nil)

// JSONExporter writes an indented JSON array. Non-ASCII text is written
// as is, not escaped.
type JSONExporter struct{}

// NewJSONExporter creates a JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Format implements driven.StatsExporter.
func (e *JSONExporter) Format() string {
	return "json"
}

// Export implements driven.StatsExporter.
func (e *JSONExporter) Export(w io.Writer, records []domain.StatsRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(FromRecords(records))
}

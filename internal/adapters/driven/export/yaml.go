package export

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/insumos/internal/core/domain"
	"github.com/custodia-labs/insumos/internal/core/ports/driven"
)

// Ensure YAMLExporter implements the interface.
var _ driven.StatsExporter = (*YAMLExporter)(nil)

// YAMLExporter writes a YAML sequence of records.
type YAMLExporter struct{}

// NewYAMLExporter creates a YAML exporter.
func NewYAMLExporter() *YAMLExporter {
	return &YAMLExporter{}
}

// Format implements driven.StatsExporter.
func (e *YAMLExporter) Format() string {
	return "yaml"
}

// Export implements driven.StatsExporter.
func (e *YAMLExporter) Export(w io.Writer, records []domain.StatsRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FromRecords(records)); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

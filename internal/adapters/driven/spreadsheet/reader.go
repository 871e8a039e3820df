// Package spreadsheet implements driven.TableReader for .xlsx workbooks
// using excelize.
//
// Cells are read as raw values, so numeric identifiers keep their exact
// digits and date cells come back as spreadsheet serial numbers, which
// domain.ParseTimestamp understands.
package spreadsheet

import (
	"context"
	"errors"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/custodia-labs/insumos/internal/core/domain"
	"github.com/custodia-labs/insumos/internal/core/ports/driven"
)

// Ensure Reader implements the interface.
var _ driven.TableReader = (*Reader)(nil)

// Reader loads worksheets from .xlsx files.
type Reader struct{}

// NewReader creates a new spreadsheet reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read implements driven.TableReader. The first row is the header; header
// cells are trimmed. Rows with no non-blank cell are skipped.
func (r *Reader) Read(ctx context.Context, path, sheet string) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &domain.ReadError{Path: path, Err: err}
	}
	defer f.Close()

	name, err := resolveSheet(f, sheet)
	if err != nil {
		var schemaErr *domain.SchemaError
		if errors.As(err, &schemaErr) {
			return nil, err
		}
		return nil, &domain.ReadError{Path: path, Err: err}
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &domain.ReadError{Path: path, Err: err}
	}
	if len(rows) == 0 {
		return domain.NewTable(nil, nil), nil
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = strings.TrimSpace(cell)
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		data = append(data, row)
	}
	return domain.NewTable(header, data), nil
}

// resolveSheet returns the sheet to read: the named one, or the first
// sheet of the workbook when name is empty.
func resolveSheet(f *excelize.File, name string) (string, error) {
	if name == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return "", errors.New("workbook has no sheets")
		}
		return sheets[0], nil
	}
	idx, err := f.GetSheetIndex(name)
	if err != nil || idx < 0 {
		return "", domain.MissingSheet(name)
	}
	return name, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

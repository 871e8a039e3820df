package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/insumos/internal/core/domain"
	"github.com/custodia-labs/insumos/internal/core/ports/driven"
)

// Processor computes the outcome of one spreadsheet for a category.
// It never persists stats and never disposes of the file.
type Processor interface {
	// Category returns the category this processor handles.
	Category() domain.Category

	// Folder returns the category's folder name, relative to the root.
	Folder() string

	// ProcessOne reads the file at path and aggregates it.
	ProcessOne(ctx context.Context, path string) (domain.Outcome, error)
}

// processSafe runs ProcessOne and turns a panic inside the processor or
// its reader into an error, so one bad workbook only fails its own file.
// Outcomes that break the percentage invariants are rejected.
func processSafe(ctx context.Context, p Processor, path string) (outcome domain.Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome = domain.Outcome{}
			err = fmt.Errorf("panic processing %s: %v", path, r)
		}
	}()

	outcome, err = p.ProcessOne(ctx, path)
	if err != nil {
		return domain.Outcome{}, err
	}
	if err := outcome.Validate(); err != nil {
		return domain.Outcome{}, err
	}
	return outcome, nil
}

// sheetSource loads a table and applies the processor's time window.
type sheetSource struct {
	category domain.Category
	reader   driven.TableReader
	sheet    string
	window   domain.TimeWindow
}

func (s sheetSource) Category() domain.Category { return s.category }
func (s sheetSource) Folder() string            { return s.category.Folder() }

func (s sheetSource) load(ctx context.Context, path string) (*domain.Table, error) {
	table, err := s.reader.Read(ctx, path, s.sheet)
	if err != nil {
		return nil, err
	}
	return FilterWindow(table, s.window)
}

// DocumentProcessor aggregates rows into documents by a grouping column
// and reports the share of documents with at least one successful row.
type DocumentProcessor struct {
	sheetSource
	groupColumn  string
	statusColumn string
}

var _ Processor = (*DocumentProcessor)(nil)

// NewDocumentProcessor creates a group-based processor. An empty sheet
// reads the workbook's first sheet.
func NewDocumentProcessor(
	category domain.Category,
	reader driven.TableReader,
	window domain.TimeWindow,
	sheet, groupColumn, statusColumn string,
) *DocumentProcessor {
	return &DocumentProcessor{
		sheetSource:  sheetSource{category: category, reader: reader, sheet: sheet, window: window},
		groupColumn:  groupColumn,
		statusColumn: statusColumn,
	}
}

// ProcessOne implements Processor.
func (p *DocumentProcessor) ProcessOne(ctx context.Context, path string) (domain.Outcome, error) {
	table, err := p.load(ctx, path)
	if err != nil {
		return domain.Outcome{}, err
	}
	return Aggregate(table, p.groupColumn, p.statusColumn, IsSuccess)
}

// RowCountProcessor stands in for categories without an aggregation rule
// yet: it reports zero effectiveness over the raw row count.
type RowCountProcessor struct {
	sheetSource
}

var _ Processor = (*RowCountProcessor)(nil)

// NewRowCountProcessor creates a placeholder processor for category.
func NewRowCountProcessor(category domain.Category, reader driven.TableReader, window domain.TimeWindow) *RowCountProcessor {
	return &RowCountProcessor{
		sheetSource: sheetSource{category: category, reader: reader, window: window},
	}
}

// ProcessOne implements Processor.
func (p *RowCountProcessor) ProcessOne(ctx context.Context, path string) (domain.Outcome, error) {
	table, err := p.load(ctx, path)
	if err != nil {
		return domain.Outcome{}, err
	}
	return domain.Outcome{Effectiveness: 0, Total: table.Len()}, nil
}

package driving

import (
	"context"

	"github.com/custodia-labs/insumos/internal/core/domain"
)

// IngestionService runs batch processing over category folders.
type IngestionService interface {
	// RunAll runs one batch for every registered category, in registry order.
	// Per-file failures are reported in the returned reports, never as errors.
	RunAll(ctx context.Context) ([]domain.BatchReport, error)

	// RunCategory runs one batch for a single category.
	RunCategory(ctx context.Context, category domain.Category) (domain.BatchReport, error)

	// Categories returns the registered categories in batch order.
	Categories() []domain.Category
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/insumos/internal/core/domain"
	"github.com/custodia-labs/insumos/internal/core/ports/driven"
	"github.com/custodia-labs/insumos/internal/core/ports/driving"
	"github.com/custodia-labs/insumos/internal/logger"
)

// Ensure IngestionService implements the interface.
var _ driving.IngestionService = (*IngestionService)(nil)

// IngestionService runs batches over the registered category folders.
type IngestionService struct {
	registry *Registry
	store    driven.StatsStore
	cfg      OrchestratorConfig
}

// NewIngestionService creates an ingestion service.
func NewIngestionService(registry *Registry, store driven.StatsStore, cfg OrchestratorConfig) *IngestionService {
	return &IngestionService{
		registry: registry,
		store:    store,
		cfg:      cfg,
	}
}

// RunAll runs every category in registry order. A category whose folder
// cannot be prepared is logged and skipped; the joined folder errors are
// returned after all categories ran.
func (s *IngestionService) RunAll(ctx context.Context) ([]domain.BatchReport, error) {
	var (
		reports []domain.BatchReport
		errs    []error
	)
	for _, category := range s.registry.Categories() {
		logger.Info("Processing folder: %s", category.Folder())
		report, err := s.RunCategory(ctx, category)
		if err != nil {
			logger.Error(err, "[%s] batch skipped", category)
			errs = append(errs, err)
			continue
		}
		reports = append(reports, report)
	}
	return reports, errors.Join(errs...)
}

// RunCategory runs one batch for category without a time window.
func (s *IngestionService) RunCategory(ctx context.Context, category domain.Category) (domain.BatchReport, error) {
	processor, err := s.registry.Processor(category, domain.TimeWindow{})
	if err != nil {
		return domain.BatchReport{Category: category}, err
	}
	report, err := NewOrchestrator(processor, s.store, s.cfg).RunBatch(ctx)
	if err != nil {
		return report, fmt.Errorf("%s: %w", category, err)
	}
	return report, nil
}

// Categories implements driving.IngestionService.
func (s *IngestionService) Categories() []domain.Category {
	return s.registry.Categories()
}

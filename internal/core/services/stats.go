package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/custodia-labs/insumos/internal/core/domain"
	"github.com/custodia-labs/insumos/internal/core/ports/driven"
	"github.com/custodia-labs/insumos/internal/core/ports/driving"
)

// Ensure StatsService implements the interface.
var _ driving.StatsService = (*StatsService)(nil)

// StatsService reads the stats log and writes one-shot snapshots of it.
type StatsService struct {
	store     driven.StatsStore
	exporters map[string]driven.StatsExporter
	dbPath    string
}

// NewStatsService creates a stats service. dbPath is the store's file,
// used by CopyDatabase; it may be empty for stores without one.
func NewStatsService(store driven.StatsStore, dbPath string, exporters ...driven.StatsExporter) *StatsService {
	s := &StatsService{
		store:     store,
		exporters: make(map[string]driven.StatsExporter, len(exporters)),
		dbPath:    dbPath,
	}
	for _, e := range exporters {
		s.exporters[e.Format()] = e
	}
	return s
}

// List implements driving.StatsService.
func (s *StatsService) List(ctx context.Context) ([]domain.StatsRecord, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing stats: %w", err)
	}
	return records, nil
}

// Formats returns the supported export formats, sorted.
func (s *StatsService) Formats() []string {
	out := make([]string, 0, len(s.exporters))
	for f := range s.exporters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Export implements driving.StatsService. Parent directories of path are
// created as needed.
func (s *StatsService) Export(ctx context.Context, format, path string) (int, error) {
	exporter, ok := s.exporters[strings.ToLower(format)]
	if !ok {
		return 0, fmt.Errorf("%w: export format %q (supported: %s)",
			domain.ErrInvalidInput, format, strings.Join(s.Formats(), ", "))
	}

	records, err := s.List(ctx)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("creating export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating export file: %w", err)
	}
	if err := exporter.Export(f, records); err != nil {
		f.Close()
		return 0, fmt.Errorf("writing %s export: %w", exporter.Format(), err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("closing export file: %w", err)
	}
	return len(records), nil
}

// CopyDatabase implements driving.StatsService.
func (s *StatsService) CopyDatabase(path string) error {
	if s.dbPath == "" {
		return fmt.Errorf("%w: store has no database file", domain.ErrNotFound)
	}

	src, err := os.Open(s.dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating copy directory: %w", err)
	}
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating database copy: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("copying database: %w", err)
	}
	return dst.Close()
}

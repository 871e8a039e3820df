package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/insumos/internal/core/domain"
	"github.com/custodia-labs/insumos/internal/core/ports/driven"
	"github.com/custodia-labs/insumos/internal/logger"
)

// EligibleExtension is the only file extension batch runs pick up.
const EligibleExtension = ".xlsx"

// IsEligible reports whether a file name has the eligible extension,
// case-insensitively.
func IsEligible(name string) bool {
	return strings.EqualFold(filepath.Ext(name), EligibleExtension)
}

// OrchestratorConfig holds the batch settings shared by every category.
type OrchestratorConfig struct {
	// Root is the directory holding the category folders.
	Root string

	// Policy decides how processed files are retired.
	Policy domain.DisposalPolicy

	// ArchiveDir is the archive folder name inside the category folder.
	ArchiveDir string
}

// Orchestrator drives one processor over its category folder.
type Orchestrator struct {
	processor Processor
	store     driven.StatsStore
	cfg       OrchestratorConfig
	now       func() time.Time
}

// NewOrchestrator creates an orchestrator for processor.
func NewOrchestrator(processor Processor, store driven.StatsStore, cfg OrchestratorConfig) *Orchestrator {
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = domain.DefaultSettings().ArchiveDir
	}
	return &Orchestrator{
		processor: processor,
		store:     store,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Folder returns the category folder path.
func (o *Orchestrator) Folder() string {
	return filepath.Join(o.cfg.Root, o.processor.Folder())
}

// RunBatch processes every eligible file in the folder once, in name order.
// A failing file is left in place and reported in the returned report; it
// never stops the run. The error is only set when the folder itself cannot
// be created or listed.
func (o *Orchestrator) RunBatch(ctx context.Context) (domain.BatchReport, error) {
	dir := o.Folder()
	report := domain.BatchReport{
		RunID:     uuid.NewString(),
		Category:  o.processor.Category(),
		Folder:    dir,
		StartedAt: o.now(),
	}
	log := logger.With("run_id", report.RunID, "category", string(report.Category))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return report, fmt.Errorf("creating folder %s: %w", dir, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return report, fmt.Errorf("listing folder %s: %w", dir, err)
	}

	// One archive folder per run, named after the run's date.
	archiveDir := filepath.Join(dir, o.cfg.ArchiveDir, report.StartedAt.Format("2006-01-02"))

	log.Debug().Str("folder", dir).Int("entries", len(entries)).Msg("batch started")

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !IsEligible(entry.Name()) || isDir(entry, path) {
			continue
		}

		discovered := domain.FileResult{Name: entry.Name(), Path: path, State: domain.FileDiscovered}
		log.Debug().Str("file", discovered.Name).Str("state", string(discovered.State)).Msg("file discovered")
		result := o.processFile(ctx, discovered, archiveDir)
		report.Files = append(report.Files, result)

		if result.State == domain.FileFailed {
			ev := log.Error().Err(result.Err).Str("file", result.Name)
			if result.Outcome != nil {
				ev = ev.Float64("effectiveness", result.Outcome.Effectiveness).Int("total", result.Outcome.Total)
			}
			ev.Msgf("[%s] error processing %s: %v", report.Category, result.Name, result.Err)
			continue
		}
		log.Info().
			Str("file", result.Name).
			Float64("effectiveness", result.Outcome.Effectiveness).
			Int("total", result.Outcome.Total).
			Str("disposal", o.disposalLabel(result)).
			Msgf("[%s] %s -> effectiveness %.2f%% | total %d | %s",
				report.Category, result.Name, result.Outcome.Effectiveness,
				result.Outcome.Total, o.disposalLabel(result))
	}

	log.Debug().Int("processed", report.Succeeded()).Int("failed", len(report.Failed())).Msg("batch finished")
	return report, nil
}

// processFile runs one discovered file through process, persist and dispose.
func (o *Orchestrator) processFile(ctx context.Context, result domain.FileResult, archiveDir string) domain.FileResult {
	path := result.Path
	result.State = domain.FileProcessing
	fail := func(err error) domain.FileResult {
		result.State = domain.FileFailed
		result.Err = err
		return result
	}

	outcome, err := processSafe(ctx, o.processor, path)
	if err != nil {
		return fail(err)
	}
	result.Outcome = &outcome

	if err := o.store.Append(ctx, result.Name, o.now(), outcome.Effectiveness, outcome.Total); err != nil {
		return fail(fmt.Errorf("saving stats: %w", err))
	}

	dest, err := o.dispose(path, archiveDir)
	if err != nil {
		return fail(&domain.DisposalError{Path: path, Policy: o.cfg.Policy, Err: err})
	}
	result.Destination = dest
	result.State = domain.FileDisposed
	return result
}

// dispose retires a processed file and returns its archive path, or an
// empty string when it was deleted.
func (o *Orchestrator) dispose(path, archiveDir string) (string, error) {
	if o.cfg.Policy != domain.DisposeArchive {
		return "", os.Remove(path)
	}

	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return "", err
	}
	dest, err := archiveName(archiveDir, filepath.Base(path), o.now())
	if err != nil {
		return "", err
	}
	if err := os.Rename(path, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// archiveName returns a path in dir for name stamped with the time of day,
// adding a counter when the stamped name is taken.
func archiveName(dir, name string, at time.Time) (string, error) {
	ext := filepath.Ext(name)
	stem := fmt.Sprintf("%s_%s", strings.TrimSuffix(name, ext), at.Format("150405"))

	candidate := filepath.Join(dir, stem+ext)
	for i := 1; ; i++ {
		_, err := os.Stat(candidate)
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
	}
}

func (o *Orchestrator) disposalLabel(r domain.FileResult) string {
	if r.Destination != "" {
		return "archived to " + r.Destination
	}
	return "deleted"
}

// isDir reports whether an entry is a directory, following symlinks.
func isDir(entry os.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/insumos/internal/core/domain"
	"github.com/custodia-labs/insumos/internal/core/ports/driving"
	"github.com/custodia-labs/insumos/internal/core/services"
	"github.com/custodia-labs/insumos/internal/logger"
)

// DefaultSettle is how long the folders must stay quiet before a batch runs.
const DefaultSettle = 2 * time.Second

// Options tunes the watcher.
type Options struct {
	// Settle is the quiet period after the last event. Zero means
	// DefaultSettle.
	Settle time.Duration

	// SkipInitialRun disables the batch over every category at startup,
	// which picks up files that arrived while nothing was watching.
	SkipInitialRun bool
}

// Watcher triggers batches from filesystem events.
type Watcher struct {
	ingestion driving.IngestionService
	root      string
	opts      Options

	// folders maps a cleaned folder path to its category.
	folders map[string]domain.Category
}

// New creates a watcher over the category folders under root.
func New(ingestion driving.IngestionService, root string, opts Options) *Watcher {
	if opts.Settle <= 0 {
		opts.Settle = DefaultSettle
	}
	w := &Watcher{
		ingestion: ingestion,
		root:      root,
		opts:      opts,
		folders:   make(map[string]domain.Category),
	}
	for _, c := range ingestion.Categories() {
		w.folders[filepath.Clean(filepath.Join(root, c.Folder()))] = c
	}
	return w
}

// Run watches until ctx is cancelled. It returns an error only if the
// folders cannot be prepared or watched.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	for _, c := range w.ingestion.Categories() {
		dir := filepath.Join(w.root, c.Folder())
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating folder %s: %w", dir, err)
		}
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	logger.L().Info().Str("root", w.root).Int("folders", len(w.folders)).Msg("watching for spreadsheets")

	if !w.opts.SkipInitialRun {
		if _, err := w.ingestion.RunAll(ctx); err != nil {
			logger.Error(err, "initial batch")
		}
	}

	pending := make(map[domain.Category]bool)
	timer := time.NewTimer(w.opts.Settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			category, ok := w.categoryFor(event)
			if !ok {
				continue
			}
			logger.Debug("[%s] %s %s", category, event.Op, filepath.Base(event.Name))
			pending[category] = true
			timer.Reset(w.opts.Settle)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Error(err, "watcher error")

		case <-timer.C:
			w.flush(ctx, pending)
		}
	}
}

// flush runs every pending category in registry order and clears the set.
func (w *Watcher) flush(ctx context.Context, pending map[domain.Category]bool) {
	for _, c := range w.ingestion.Categories() {
		if !pending[c] {
			continue
		}
		delete(pending, c)
		if ctx.Err() != nil {
			return
		}
		if _, err := w.ingestion.RunCategory(ctx, c); err != nil {
			logger.Error(err, "[%s] batch failed", c)
		}
	}
}

// categoryFor maps an event to the category folder it happened in. Only
// creates and writes of eligible files directly inside a folder count.
func (w *Watcher) categoryFor(event fsnotify.Event) (domain.Category, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if !services.IsEligible(event.Name) {
		return "", false
	}
	category, ok := w.folders[filepath.Dir(filepath.Clean(event.Name))]
	return category, ok
}

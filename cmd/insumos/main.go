// Command insumos ingests category spreadsheets and serves their stats.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/insumos/internal/adapters/driven/config/file"
	"github.com/custodia-labs/insumos/internal/adapters/driven/export"
	"github.com/custodia-labs/insumos/internal/adapters/driven/spreadsheet"
	"github.com/custodia-labs/insumos/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/insumos/internal/adapters/driving/cli"
	"github.com/custodia-labs/insumos/internal/core/services"
	"github.com/custodia-labs/insumos/internal/logger"
)

// version is set via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(version)
	cli.SetBuilder(build)

	err := cli.Execute(ctx)
	if cerr := cli.Shutdown(); cerr != nil {
		logger.Error(cerr, "closing stats database")
	}
	if err != nil {
		cancel()
		os.Exit(1)
	}
}

// build resolves settings and wires every long-lived component once.
func build(opts cli.Options) (*cli.Services, func() error, error) {
	cfg, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	settings, err := services.LoadSettings(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("config %s: %w", cfg.Path(), err)
	}
	if err := opts.Apply(&settings); err != nil {
		return nil, nil, err
	}

	store, err := sqlite.NewStore(settings.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening stats database: %w", err)
	}
	stats := store.StatsStore()

	registry := services.NewRegistry(spreadsheet.NewReader())
	ingestion := services.NewIngestionService(registry, stats, services.OrchestratorConfig{
		Root:       settings.Root,
		Policy:     settings.Policy,
		ArchiveDir: settings.ArchiveDir,
	})

	logger.L().Debug().
		Str("config", cfg.Path()).
		Str("root", settings.Root).
		Str("database", store.Path()).
		Str("policy", string(settings.Policy)).
		Msg("services ready")

	return &cli.Services{
		Settings:  settings,
		Ingestion: ingestion,
		Uploads:   services.NewUploadService(registry, stats, ""),
		Stats:     services.NewStatsService(stats, store.Path(), export.NewJSONExporter(), export.NewYAMLExporter()),
		Config:    services.NewConfigService(cfg),
	}, store.Close, nil
}

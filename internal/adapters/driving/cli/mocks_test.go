package cli

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/custodia-labs/insumos/internal/adapters/driving/watch"
	"github.com/custodia-labs/insumos/internal/core/domain"
	"github.com/custodia-labs/insumos/internal/core/ports/driving"
)

// mockIngestion implements driving.IngestionService for testing.
type mockIngestion struct {
	reports   []domain.BatchReport
	err       error
	ranAll    int
	ranSingle []domain.Category
}

func (m *mockIngestion) RunAll(context.Context) ([]domain.BatchReport, error) {
	m.ranAll++
	return m.reports, m.err
}

func (m *mockIngestion) RunCategory(_ context.Context, c domain.Category) (domain.BatchReport, error) {
	m.ranSingle = append(m.ranSingle, c)
	if m.err != nil {
		return domain.BatchReport{Category: c}, m.err
	}
	for _, r := range m.reports {
		if r.Category == c {
			return r, nil
		}
	}
	return domain.BatchReport{Category: c}, nil
}

func (m *mockIngestion) Categories() []domain.Category {
	return domain.Categories()
}

// mockStats implements driving.StatsService for testing.
type mockStats struct {
	records   []domain.StatsRecord
	err       error
	exported  []string // "format path"
	copiedTo  []string
	exportErr error
	copyErr   error
}

func (m *mockStats) List(context.Context) ([]domain.StatsRecord, error) {
	return m.records, m.err
}

func (m *mockStats) Export(_ context.Context, format, path string) (int, error) {
	if m.exportErr != nil {
		return 0, m.exportErr
	}
	m.exported = append(m.exported, format+" "+path)
	return len(m.records), nil
}

func (m *mockStats) CopyDatabase(path string) error {
	if m.copyErr != nil {
		return m.copyErr
	}
	m.copiedTo = append(m.copiedTo, path)
	return nil
}

// mockUploads implements driving.UploadService for testing.
type mockUploads struct{}

func (mockUploads) Process(context.Context, driving.UploadRequest) (*driving.UploadResult, error) {
	return nil, nil
}

// mockConfig implements driving.ConfigService for testing.
type mockConfig struct {
	values map[string]string
	setErr error
}

func newMockConfig() *mockConfig {
	return &mockConfig{values: map[string]string{
		"paths.root":      "INSUMOS",
		"disposal.policy": "delete",
	}}
}

func (m *mockConfig) Keys() []string {
	return []string{"paths.root", "disposal.policy"}
}

func (m *mockConfig) Get(key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}
	return v, nil
}

func (m *mockConfig) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if _, ok := m.values[key]; !ok {
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}
	m.values[key] = value
	return nil
}

func (m *mockConfig) Path() string {
	return "config.toml"
}

// resetFlags puts every flag variable back to its default; rootCmd is
// shared across tests and keeps values between executions.
func resetFlags() {
	opts = Options{ConfigDir: "."}
	runCategory = ""
	statsLimit = 0
	exportFormat = "json"
	exportOutput = ""
	exportDBCopy = false
	watchSettle = watch.DefaultSettle
	watchNoInitial = false
}

// withServices installs svc for the duration of a test.
func withServices(t *testing.T, svc *Services) func() {
	t.Helper()
	oldServices, oldBuilder, oldCloser := services, builder, closer
	services, builder, closer = svc, nil, nil
	resetFlags()
	return func() {
		services, builder, closer = oldServices, oldBuilder, oldCloser
		resetFlags()
	}
}

// withBuilder installs b with no prebuilt services.
func withBuilder(t *testing.T, b Builder) func() {
	t.Helper()
	oldServices, oldBuilder, oldCloser := services, builder, closer
	services, builder, closer = nil, b, nil
	resetFlags()
	return func() {
		services, builder, closer = oldServices, oldBuilder, oldCloser
		resetFlags()
	}
}

func testServices(ing *mockIngestion, stats *mockStats) *Services {
	settings := domain.DefaultSettings()
	return &Services{
		Settings:  settings,
		Ingestion: ing,
		Uploads:   mockUploads{},
		Stats:     stats,
		Config:    newMockConfig(),
	}
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

func executeContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

var fixedTime = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

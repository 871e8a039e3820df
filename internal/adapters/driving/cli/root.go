package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/insumos/internal/core/domain"
	"github.com/custodia-labs/insumos/internal/core/ports/driving"
	"github.com/custodia-labs/insumos/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Options holds the global flags.
type Options struct {
	// ConfigDir holds config.toml.
	ConfigDir string

	// Root overrides paths.root.
	Root string

	// DataDir overrides paths.data_dir.
	DataDir string

	// Policy overrides disposal.policy.
	Policy string

	// Addr overrides server.addr.
	Addr string

	// Verbose enables debug logging.
	Verbose bool
}

// Apply writes the flags that were given over s.
func (o Options) Apply(s *domain.Settings) error {
	if o.Root != "" {
		s.Root = o.Root
	}
	if o.DataDir != "" {
		s.DataDir = o.DataDir
	}
	if o.Addr != "" {
		s.ServerAddr = o.Addr
	}
	if strings.TrimSpace(o.Policy) != "" {
		p, err := domain.ParseDisposalPolicy(o.Policy)
		if err != nil {
			return err
		}
		s.Policy = p
	}
	return nil
}

// Services bundles what the commands call into.
type Services struct {
	Settings  domain.Settings
	Ingestion driving.IngestionService
	Uploads   driving.UploadService
	Stats     driving.StatsService
	Config    driving.ConfigService
}

// Builder creates the services from the global flags. The returned close
// function releases them once the command has finished.
type Builder func(opts Options) (*Services, func() error, error)

var (
	opts     Options
	builder  Builder
	services *Services
	closer   func() error
)

// skipServices marks commands that run without services.
const skipServices = "skip-services"

var rootCmd = &cobra.Command{
	Use:   "insumos",
	Short: "Spreadsheet effectiveness ingestion",
	Long: `insumos reads spreadsheets dropped into per-category folders, computes
the share of successful documents in each, saves the result to the stats
database and retires the file.

Files can also be uploaded over HTTP with "insumos serve".`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&opts.ConfigDir, "config-dir", ".", "directory holding config.toml")
	f.StringVar(&opts.Root, "root", "", "folder holding the category folders (default INSUMOS)")
	f.StringVar(&opts.DataDir, "data-dir", "", "folder holding excel_stats.db (default .)")
	f.StringVar(&opts.Policy, "policy", "", "disposal policy: archive or delete (default delete)")
	f.StringVar(&opts.Addr, "addr", "", "HTTP listen address (default :8000)")
	f.BoolVarP(&opts.Verbose, "verbose", "v", false, "enable debug logging")
}

// SetBuilder installs the service builder.
func SetBuilder(b Builder) {
	builder = b
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// Shutdown releases the services if a command failed before its post-run
// hook. It is safe to call more than once.
func Shutdown() error {
	return teardown(nil, nil)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(opts.Verbose)

	if cmd.Annotations[skipServices] != "" || services != nil || builder == nil {
		return nil
	}
	svc, closeFn, err := builder(opts)
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	services = svc
	closer = closeFn
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if closer == nil {
		return nil
	}
	err := closer()
	closer = nil
	services = nil
	return err
}

// requireServices returns the services or the standard error when the
// process was started without them.
func requireServices() (*Services, error) {
	if services == nil {
		return nil, errors.New("services not configured")
	}
	return services, nil
}

package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/insumos/internal/adapters/driving/watch"
)

var (
	watchSettle    time.Duration
	watchNoInitial bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process spreadsheets as they arrive",
	Long: `Watches every category folder and runs that category's batch once new
.xlsx files have stopped changing for the settle delay.

All folders are processed once at startup unless --no-initial is given.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchSettle, "settle", watch.DefaultSettle, "quiet period before a batch runs")
	watchCmd.Flags().BoolVar(&watchNoInitial, "no-initial", false, "skip the batch over every folder at startup")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}

	w := watch.New(svc.Ingestion, svc.Settings.Root, watch.Options{
		Settle:         watchSettle,
		SkipInitialRun: watchNoInitial,
	})
	return w.Run(cmd.Context())
}

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/insumos/internal/core/domain"
)

var runCategory string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process every spreadsheet waiting in the category folders",
	Long: `Runs one batch per category folder, in a fixed order. Each .xlsx file is
processed, its result saved to the stats database, and the file archived or
deleted according to the disposal policy.

A file that fails stays in its folder and is reported; the batch goes on.
Use --category to run a single folder.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runCategory, "category", "c", "", "run only this category (see `insumos categories`)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if strings.TrimSpace(runCategory) != "" {
		category, err := domain.ParseCategory(runCategory)
		if err != nil {
			return err
		}
		report, err := svc.Ingestion.RunCategory(ctx, category)
		if err != nil {
			return fmt.Errorf("run failed: %w", err)
		}
		printReport(cmd, report)
		return nil
	}

	reports, err := svc.Ingestion.RunAll(ctx)
	for _, r := range reports {
		printReport(cmd, r)
	}
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	return nil
}

func printReport(cmd *cobra.Command, r domain.BatchReport) {
	failed := r.Failed()
	cmd.Printf("%s: %d processed, %d failed\n", r.Category, r.Succeeded(), len(failed))
	for _, f := range failed {
		cmd.Printf("  %s: %v\n", f.Name, f.Err)
	}
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/insumos/internal/core/domain"
)

var statsLimit int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the stats history",
	Long:  `Prints the saved stats records as a table, most recent first.`,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVarP(&statsLimit, "limit", "n", 0, "show at most this many records (0 for all)")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}

	records, err := svc.Stats.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list stats: %w", err)
	}
	if len(records) == 0 {
		cmd.Println(mutedStyle.Render("No stats recorded yet."))
		return nil
	}

	shown := records
	if statsLimit > 0 && statsLimit < len(shown) {
		shown = shown[:statsLimit]
	}
	cmd.Println(renderStats(shown))
	if len(shown) < len(records) {
		cmd.Println(mutedStyle.Render(fmt.Sprintf("%d of %d records", len(shown), len(records))))
	}
	return nil
}

// effectivenessColumn is the index of the effectiveness column.
const effectivenessColumn = 2

// renderStats lays records out as a bordered table.
func renderStats(records []domain.StatsRecord) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.File,
			r.ProcessedAt.Local().Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%.2f%%", r.Effectiveness),
			strconv.Itoa(r.Total),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("File", "Processed", "Effectiveness", "Total").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == effectivenessColumn && row >= 0 && row < len(records) {
				return effectivenessStyle(records[row].Effectiveness)
			}
			return cellStyle
		})
	return t.String()
}

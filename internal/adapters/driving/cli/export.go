package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
	exportDBCopy bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the stats history to a file",
	Long: `Writes every stats record to a file for publishing, most recent first.

The default output is export.json_path from the config (docs/data/stats.json).
With --format yaml the extension of the default path becomes .yaml.
--db-copy also copies the raw database file to export.db_copy_path.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "output format: json or yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default from config)")
	exportCmd.Flags().BoolVar(&exportDBCopy, "db-copy", false, "also copy the database file")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}

	format := strings.ToLower(strings.TrimSpace(exportFormat))
	path := exportOutput
	if path == "" {
		path = defaultExportPath(svc.Settings.ExportJSONPath, format)
	}

	n, err := svc.Stats.Export(cmd.Context(), format, path)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	cmd.Printf("Exported %d records to %s\n", n, path)

	if exportDBCopy {
		dest := svc.Settings.ExportDBCopyPath
		if err := svc.Stats.CopyDatabase(dest); err != nil {
			return fmt.Errorf("database copy failed: %w", err)
		}
		cmd.Printf("Copied database to %s\n", dest)
	}
	return nil
}

// defaultExportPath swaps the extension of the configured JSON path for
// other formats.
func defaultExportPath(jsonPath, format string) string {
	if format == "json" {
		return jsonPath
	}
	return strings.TrimSuffix(jsonPath, filepath.Ext(jsonPath)) + "." + format
}

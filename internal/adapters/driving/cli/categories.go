package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the categories and their folders",
	RunE:  runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, _ []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}

	root := svc.Settings.Root
	for _, c := range svc.Ingestion.Categories() {
		cmd.Printf("%-28s %s\n", c, filepath.Join(root, c.Folder()))
	}
	return nil
}

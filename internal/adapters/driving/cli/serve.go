package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/insumos/internal/adapters/driving/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the upload and stats HTTP API",
	Long: `Starts the HTTP API:

  POST /process  upload spreadsheets for a category (multipart form)
  GET  /stats    every stats record, most recent first
  GET  /health   liveness probe

The server stops gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	svc, err := requireServices()
	if err != nil {
		return err
	}

	handler := httpapi.New(svc.Uploads, svc.Stats, httpapi.Options{
		MaxUploadBytes: int64(svc.Settings.MaxUploadMB) << 20,
	})
	return httpapi.ListenAndServe(cmd.Context(), svc.Settings.ServerAddr, handler)
}

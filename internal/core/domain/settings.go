package domain

// Settings holds resolved runtime configuration.
type Settings struct {
	// Root is the directory holding one folder per category.
	Root string

	// DataDir holds the stats database.
	DataDir string

	// Policy is the disposal policy for batch runs.
	Policy DisposalPolicy

	// ArchiveDir is the archive folder name inside each category folder.
	ArchiveDir string

	// ServerAddr is the HTTP listen address.
	ServerAddr string

	// MaxUploadMB caps the size of one /process request body.
	MaxUploadMB int

	// ExportJSONPath is where `export` writes the stats snapshot.
	ExportJSONPath string

	// ExportDBCopyPath is where `export --db-copy` copies the database file.
	ExportDBCopyPath string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Root:             "INSUMOS",
		DataDir:          ".",
		Policy:           DisposeDelete,
		ArchiveDir:       "procesados",
		ServerAddr:       ":8000",
		MaxUploadMB:      10,
		ExportJSONPath:   "docs/data/stats.json",
		ExportDBCopyPath: "docs/data/excel_stats.db",
	}
}

package services

import (
	"github.com/custodia-labs/insumos/internal/core/domain"
	"github.com/custodia-labs/insumos/internal/core/ports/driven"
)

// Configuration keys read by LoadSettings.
const (
	KeyRoot           = "paths.root"
	KeyDataDir        = "paths.data_dir"
	KeyPolicy         = "disposal.policy"
	KeyArchiveDir     = "disposal.archive_dir"
	KeyServerAddr     = "server.addr"
	KeyMaxUploadMB    = "server.max_upload_mb"
	KeyExportJSONPath = "export.json_path"
	KeyExportDBCopy   = "export.db_copy_path"
)

// LoadSettings resolves settings from cfg over the defaults. A nil cfg
// yields the defaults. An unknown disposal policy is an error.
func LoadSettings(cfg driven.ConfigStore) (domain.Settings, error) {
	s := domain.DefaultSettings()
	if cfg == nil {
		return s, nil
	}

	str := func(key string, dst *string) {
		if v := cfg.GetString(key); v != "" {
			*dst = v
		}
	}
	str(KeyRoot, &s.Root)
	str(KeyDataDir, &s.DataDir)
	str(KeyArchiveDir, &s.ArchiveDir)
	str(KeyServerAddr, &s.ServerAddr)
	str(KeyExportJSONPath, &s.ExportJSONPath)
	str(KeyExportDBCopy, &s.ExportDBCopyPath)

	if n := cfg.GetInt(KeyMaxUploadMB); n > 0 {
		s.MaxUploadMB = n
	}

	if v := cfg.GetString(KeyPolicy); v != "" {
		p, err := domain.ParseDisposalPolicy(v)
		if err != nil {
			return s, err
		}
		s.Policy = p
	}
	return s, nil
}

package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/insumos/internal/core/domain"
	"github.com/custodia-labs/insumos/internal/core/ports/driven"
	"github.com/custodia-labs/insumos/internal/core/ports/driving"
)

// Ensure ConfigService implements the interface.
var _ driving.ConfigService = (*ConfigService)(nil)

// configKeys lists the supported keys in display order.
var configKeys = []string{
	KeyRoot,
	KeyDataDir,
	KeyPolicy,
	KeyArchiveDir,
	KeyServerAddr,
	KeyMaxUploadMB,
	KeyExportJSONPath,
	KeyExportDBCopy,
}

// ConfigService reads and writes settings through a config store. Every
// write is checked with LoadSettings before it reaches the store.
type ConfigService struct {
	cfg driven.ConfigStore
}

// NewConfigService creates a config service over cfg.
func NewConfigService(cfg driven.ConfigStore) *ConfigService {
	return &ConfigService{cfg: cfg}
}

// Keys implements driving.ConfigService.
func (s *ConfigService) Keys() []string {
	out := make([]string, len(configKeys))
	copy(out, configKeys)
	return out
}

// Get implements driving.ConfigService.
func (s *ConfigService) Get(key string) (string, error) {
	if !knownKey(key) {
		return "", unknownKey(key)
	}
	settings, err := LoadSettings(s.cfg)
	if err != nil {
		return "", err
	}
	return settingValues(settings)[key], nil
}

// Set implements driving.ConfigService. The stored value is normalised, so
// "Archive" is saved as "archive".
func (s *ConfigService) Set(key, value string) error {
	if !knownKey(key) {
		return unknownKey(key)
	}
	raw, err := parseValue(key, value)
	if err != nil {
		return err
	}

	settings, err := LoadSettings(&overlay{ConfigStore: s.cfg, key: key, value: raw})
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if key == KeyPolicy {
		raw = string(settings.Policy)
	}

	if err := s.cfg.Set(key, raw); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// Path implements driving.ConfigService.
func (s *ConfigService) Path() string {
	return s.cfg.Path()
}

func knownKey(key string) bool {
	for _, k := range configKeys {
		if k == key {
			return true
		}
	}
	return false
}

func unknownKey(key string) error {
	return fmt.Errorf("%w: unknown config key %q (valid keys: %s)",
		domain.ErrInvalidInput, key, strings.Join(configKeys, ", "))
}

// parseValue converts the text form of value to what the store keeps.
func parseValue(key, value string) (any, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil, fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidInput, key)
	}
	if key != KeyMaxUploadMB {
		return v, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("%w: %s must be a positive integer, got %q", domain.ErrInvalidInput, key, value)
	}
	return int64(n), nil
}

func settingValues(s domain.Settings) map[string]string {
	return map[string]string{
		KeyRoot:           s.Root,
		KeyDataDir:        s.DataDir,
		KeyPolicy:         string(s.Policy),
		KeyArchiveDir:     s.ArchiveDir,
		KeyServerAddr:     s.ServerAddr,
		KeyMaxUploadMB:    strconv.Itoa(s.MaxUploadMB),
		KeyExportJSONPath: s.ExportJSONPath,
		KeyExportDBCopy:   s.ExportDBCopyPath,
	}
}

// overlay shows one pending value on top of a store without writing it.
type overlay struct {
	driven.ConfigStore
	key   string
	value any
}

func (o *overlay) Get(key string) (any, bool) {
	if key == o.key {
		return o.value, true
	}
	return o.ConfigStore.Get(key)
}

func (o *overlay) GetString(key string) string {
	if key != o.key {
		return o.ConfigStore.GetString(key)
	}
	str, _ := o.value.(string)
	return str
}

func (o *overlay) GetInt(key string) int {
	if key != o.key {
		return o.ConfigStore.GetInt(key)
	}
	n, _ := o.value.(int64)
	return int(n)
}

func (o *overlay) Set(string, any) error {
	return errors.New("overlay is read-only")
}

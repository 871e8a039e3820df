package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/insumos/internal/core/domain"
	"github.com/custodia-labs/insumos/internal/core/ports/driven"
	"github.com/custodia-labs/insumos/internal/core/ports/driving"
	"github.com/custodia-labs/insumos/internal/logger"
)

// Ensure UploadService implements the interface.
var _ driving.UploadService = (*UploadService)(nil)

// UploadService processes uploads directly with a category's processor,
// bypassing folder discovery and disposal.
type UploadService struct {
	registry *Registry
	store    driven.StatsStore
	tempDir  string
	now      func() time.Time
}

// NewUploadService creates an upload service. Uploads are staged in
// tempDir, or the system temp directory when empty.
func NewUploadService(registry *Registry, store driven.StatsStore, tempDir string) *UploadService {
	return &UploadService{
		registry: registry,
		store:    store,
		tempDir:  tempDir,
		now:      time.Now,
	}
}

// Process implements driving.UploadService. The staged copy is removed
// before returning on every path. No record is written on failure.
func (s *UploadService) Process(ctx context.Context, req driving.UploadRequest) (*driving.UploadResult, error) {
	processor, err := s.registry.Lookup(req.Category, req.Window)
	if err != nil {
		return nil, err
	}

	path, err := s.stage(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Warn("removing staged upload %s: %v", path, err)
		}
	}()

	outcome, err := processSafe(ctx, processor, path)
	if err != nil {
		return nil, err
	}

	if err := s.store.Append(ctx, req.Filename, s.now(), outcome.Effectiveness, outcome.Total); err != nil {
		return nil, fmt.Errorf("saving stats: %w", err)
	}

	logger.L().Info().
		Str("category", req.Category).
		Str("file", req.Filename).
		Float64("effectiveness", outcome.Effectiveness).
		Int("total", outcome.Total).
		Msg("upload processed")

	return &driving.UploadResult{File: req.Filename, Outcome: outcome}, nil
}

// stage copies the upload body to a temporary file that keeps the
// original extension, so the reader can detect the format.
func (s *UploadService) stage(req driving.UploadRequest) (string, error) {
	if req.Content == nil {
		return "", fmt.Errorf("%w: upload %q has no content", domain.ErrInvalidInput, req.Filename)
	}

	tmp, err := os.CreateTemp(s.tempDir, "upload-*"+filepath.Ext(req.Filename))
	if err != nil {
		return "", fmt.Errorf("staging upload: %w", err)
	}
	if _, err := io.Copy(tmp, req.Content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("staging upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("staging upload: %w", err)
	}
	return tmp.Name(), nil
}

package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/insumos/internal/core/domain"
)

// UploadService processes one uploaded spreadsheet on demand.
type UploadService interface {
	// Process runs the selected category's processor over the upload and
	// saves one stats record on success.
	Process(ctx context.Context, req UploadRequest) (*UploadResult, error)
}

// UploadRequest describes a single uploaded file.
type UploadRequest struct {
	// Category is the selector; must match a registered category.
	Category string

	// Filename is the client-supplied file name, stored in the record.
	Filename string

	// Content is the file body.
	Content io.Reader

	// Window optionally restricts the rows aggregated.
	Window domain.TimeWindow
}

// UploadResult is the outcome for one upload.
type UploadResult struct {
	// File is the original file name.
	File string

	// Outcome is the computed effectiveness.
	Outcome domain.Outcome
}

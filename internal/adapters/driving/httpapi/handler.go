package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/insumos/internal/adapters/driven/export"
	"github.com/custodia-labs/insumos/internal/core/domain"
	"github.com/custodia-labs/insumos/internal/core/ports/driving"
	"github.com/custodia-labs/insumos/internal/logger"
)

// DefaultMaxUploadBytes caps a POST /process request body.
const DefaultMaxUploadBytes = 10 << 20

// Multipart form field names accepted by POST /process.
const (
	FieldFiles          = "files"
	FieldProcessType    = "process_type"
	FieldStartDatetime  = "start_datetime"
	FieldEndDatetime    = "end_datetime"
	FieldDatetimeColumn = "datetime_column"
)

// memoryLimit is how much of a multipart form is kept in memory; larger
// parts spill to temporary files.
const memoryLimit = 8 << 20

// Options tunes the handler.
type Options struct {
	// MaxUploadBytes caps a POST /process request body. Zero means
	// DefaultMaxUploadBytes.
	MaxUploadBytes int64
}

// Handler is the HTTP handler for the process and stats endpoints.
type Handler struct {
	uploads  driving.UploadService
	stats    driving.StatsService
	maxBytes int64
	mux      *http.ServeMux
}

// New creates a Handler wired to the given services and registers all
// routes. The returned handler applies CORS and access logging.
func New(uploads driving.UploadService, stats driving.StatsService, opts Options) http.Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}
	h := &Handler{
		uploads:  uploads,
		stats:    stats,
		maxBytes: opts.MaxUploadBytes,
		mux:      http.NewServeMux(),
	}

	h.mux.HandleFunc("/process", h.process)
	h.mux.HandleFunc("/stats", h.listStats)
	h.mux.HandleFunc("/health", h.health)

	return accessLog(cors(h))
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// process handles POST /process. Files are processed in the order they were
// sent; a failing file becomes an error entry and the rest still run.
func (h *Handler) process(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(memoryLimit); err != nil {
		if isTooLarge(err) {
			jsonErr(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", h.maxBytes))
			return
		}
		jsonErr(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll() //nolint:errcheck

	processType := r.FormValue(FieldProcessType)
	if strings.TrimSpace(processType) == "" {
		jsonErr(w, http.StatusBadRequest, FieldProcessType+" is required")
		return
	}

	window, err := parseWindow(
		r.FormValue(FieldDatetimeColumn),
		r.FormValue(FieldStartDatetime),
		r.FormValue(FieldEndDatetime),
	)
	if err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}

	headers := r.MultipartForm.File[FieldFiles]
	if len(headers) == 0 {
		jsonErr(w, http.StatusBadRequest, "at least one file is required in "+FieldFiles)
		return
	}

	resp := ProcessResponse{Processed: make([]FileResponse, 0, len(headers))}
	for _, fh := range headers {
		entry, fatal := h.processPart(r, processType, window, fh)
		if fatal != nil {
			jsonErr(w, http.StatusBadRequest, fatal.Error())
			return
		}
		resp.Processed = append(resp.Processed, entry)
	}

	jsonResp(w, http.StatusOK, resp)
}

// listStats handles GET /stats.
func (h *Handler) listStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	records, err := h.stats.List(r.Context())
	if err != nil {
		logger.Error(err, "listing stats")
		jsonErr(w, http.StatusInternalServerError, "could not read stats")
		return
	}
	jsonResp(w, http.StatusOK, export.FromRecords(records))
}

// health handles GET /health.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	jsonResp(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// --- helpers ----------------------------------------------------------------

// processPart runs one uploaded part. An unknown category is returned as
// fatal because it applies to every file of the request; any other failure
// is reported in the entry.
func (h *Handler) processPart(
	r *http.Request,
	processType string,
	window domain.TimeWindow,
	fh *multipart.FileHeader,
) (FileResponse, error) {
	filename := fh.Filename
	entry := FileResponse{File: filename}

	f, err := fh.Open()
	if err != nil {
		entry.Error = "reading upload: " + err.Error()
		return entry, nil
	}
	defer f.Close()

	result, err := h.uploads.Process(r.Context(), driving.UploadRequest{
		Category: processType,
		Filename: filename,
		Content:  f,
		Window:   window,
	})
	if errors.Is(err, domain.ErrUnknownCategory) {
		return entry, fmt.Errorf("process_type inválido: %s", processType)
	}
	if err != nil {
		logger.L().Warn().Err(err).Str("file", filename).Str("category", processType).Msg("upload failed")
		entry.Error = err.Error()
		return entry, nil
	}

	eff, total := result.Outcome.Effectiveness, result.Outcome.Total
	entry.Effectiveness = &eff
	entry.Total = &total
	return entry, nil
}

// parseWindow builds the optional time window from form values. Blank
// values mean an open bound.
func parseWindow(column, start, end string) (domain.TimeWindow, error) {
	window := domain.TimeWindow{Column: strings.TrimSpace(column)}

	bound := func(field, value string) (*time.Time, error) {
		value = strings.TrimSpace(value)
		if value == "" {
			return nil, nil
		}
		t, ok := domain.ParseTimestamp(value)
		if !ok {
			return nil, fmt.Errorf("%s inválido: %s", field, value)
		}
		return &t, nil
	}

	var err error
	if window.Start, err = bound(FieldStartDatetime, start); err != nil {
		return window, err
	}
	if window.End, err = bound(FieldEndDatetime, end); err != nil {
		return window, err
	}
	if window.Start != nil && window.End != nil && window.End.Before(*window.Start) {
		return window, fmt.Errorf("%s is before %s", FieldEndDatetime, FieldStartDatetime)
	}
	return window, nil
}

// isTooLarge reports whether err came from the body size limit. Some
// multipart paths drop the error chain, so the message is checked too.
func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large")
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}

package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/insumos/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/insumos/internal/core/domain"
	"github.com/custodia-labs/insumos/internal/core/ports/driving"
)

// --- test helpers -----------------------------------------------------------

type fakeUploads struct {
	requests []driving.UploadRequest
	bodies   []string
	results  map[string]domain.Outcome
	errs     map[string]error
}

func newFakeUploads() *fakeUploads {
	return &fakeUploads{
		results: make(map[string]domain.Outcome),
		errs:    make(map[string]error),
	}
}

func (f *fakeUploads) Process(_ context.Context, req driving.UploadRequest) (*driving.UploadResult, error) {
	if _, err := domain.ParseCategory(req.Category); err != nil {
		return nil, err
	}
	body, _ := io.ReadAll(req.Content)
	f.requests = append(f.requests, req)
	f.bodies = append(f.bodies, string(body))

	if err := f.errs[req.Filename]; err != nil {
		return nil, err
	}
	return &driving.UploadResult{File: req.Filename, Outcome: f.results[req.Filename]}, nil
}

type fakeStats struct {
	records []domain.StatsRecord
	err     error
}

func (f *fakeStats) List(context.Context) ([]domain.StatsRecord, error) {
	return f.records, f.err
}

func (f *fakeStats) Export(context.Context, string, string) (int, error) {
	return 0, nil
}

func (f *fakeStats) CopyDatabase(string) error {
	return nil
}

type part struct {
	name    string
	content string
}

// multipartRequest builds a POST /process request with the form fields
// and files given.
func multipartRequest(t *testing.T, fields map[string]string, files ...part) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile(httpapi.FieldFiles, f.name)
		require.NoError(t, err)
		_, err = io.WriteString(fw, f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/process", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rr.Body).Decode(v), "body: %s", rr.Body.String())
}

func newHandler(uploads driving.UploadService, stats driving.StatsService) http.Handler {
	return httpapi.New(uploads, stats, httpapi.Options{})
}

// --- POST /process ----------------------------------------------------------

func TestProcess_SingleFile(t *testing.T) {
	uploads := newFakeUploads()
	uploads.results["pedidos.xlsx"] = domain.Outcome{Effectiveness: 50, Total: 2}
	h := newHandler(uploads, &fakeStats{})

	rr := serve(h, multipartRequest(t,
		map[string]string{httpapi.FieldProcessType: "Sincronizacion de pedidos"},
		part{"pedidos.xlsx", "xlsx-bytes"},
	))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp map[string][]map[string]any
	decode(t, rr, &resp)
	require.Len(t, resp["procesados"], 1)
	assert.Equal(t, map[string]any{
		"archivo":         "pedidos.xlsx",
		"efectividad":     50.0,
		"total_registros": 2.0,
	}, resp["procesados"][0])

	require.Len(t, uploads.requests, 1)
	assert.Equal(t, "Sincronizacion de pedidos", uploads.requests[0].Category)
	assert.Equal(t, "xlsx-bytes", uploads.bodies[0])
	assert.False(t, uploads.requests[0].Window.Active())
}

func TestProcess_ZeroOutcomeIsReported(t *testing.T) {
	uploads := newFakeUploads()
	h := newHandler(uploads, &fakeStats{})

	rr := serve(h, multipartRequest(t,
		map[string]string{httpapi.FieldProcessType: "Conciliacion TC"},
		part{"vacio.xlsx", ""},
	))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"efectividad":0`)
	assert.Contains(t, rr.Body.String(), `"total_registros":0`)
}

func TestProcess_MixedResults(t *testing.T) {
	uploads := newFakeUploads()
	uploads.results["a.xlsx"] = domain.Outcome{Effectiveness: 100, Total: 1}
	uploads.errs["b.xlsx"] = domain.MissingColumns("Estado")
	uploads.results["c.xlsx"] = domain.Outcome{Effectiveness: 0, Total: 4}
	h := newHandler(uploads, &fakeStats{})

	rr := serve(h, multipartRequest(t,
		map[string]string{httpapi.FieldProcessType: "Sincronizacion de pedidos"},
		part{"a.xlsx", "a"}, part{"b.xlsx", "b"}, part{"c.xlsx", "c"},
	))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp httpapi.ProcessResponse
	decode(t, rr, &resp)
	require.Len(t, resp.Processed, 3)

	assert.Equal(t, "a.xlsx", resp.Processed[0].File)
	require.NotNil(t, resp.Processed[0].Effectiveness)
	assert.Equal(t, 100.0, *resp.Processed[0].Effectiveness)

	assert.Equal(t, "b.xlsx", resp.Processed[1].File)
	assert.Nil(t, resp.Processed[1].Effectiveness)
	assert.Contains(t, resp.Processed[1].Error, "Estado")

	assert.Equal(t, "c.xlsx", resp.Processed[2].File)
	require.NotNil(t, resp.Processed[2].Total)
	assert.Equal(t, 4, *resp.Processed[2].Total)
	assert.Empty(t, resp.Processed[2].Error)
}

func TestProcess_UnknownProcessType(t *testing.T) {
	uploads := newFakeUploads()
	h := newHandler(uploads, &fakeStats{})

	rr := serve(h, multipartRequest(t,
		map[string]string{httpapi.FieldProcessType: "Nomina"},
		part{"a.xlsx", "a"},
	))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var resp map[string]string
	decode(t, rr, &resp)
	assert.Equal(t, "process_type inválido: Nomina", resp["error"])
	assert.Empty(t, uploads.requests)
}

func TestProcess_MissingProcessType(t *testing.T) {
	h := newHandler(newFakeUploads(), &fakeStats{})

	rr := serve(h, multipartRequest(t, nil, part{"a.xlsx", "a"}))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "process_type is required")
}

func TestProcess_NoFiles(t *testing.T) {
	h := newHandler(newFakeUploads(), &fakeStats{})

	rr := serve(h, multipartRequest(t,
		map[string]string{httpapi.FieldProcessType: "Conciliacion DIAN"},
	))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "at least one file")
}

func TestProcess_NotMultipart(t *testing.T) {
	h := newHandler(newFakeUploads(), &fakeStats{})

	req := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rr := serve(h, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid multipart form")
}

func TestProcess_Window(t *testing.T) {
	uploads := newFakeUploads()
	h := newHandler(uploads, &fakeStats{})

	rr := serve(h, multipartRequest(t,
		map[string]string{
			httpapi.FieldProcessType:    "Factura electronica",
			httpapi.FieldDatetimeColumn: "Fecha",
			httpapi.FieldStartDatetime:  "2024-01-01 00:00:00",
			httpapi.FieldEndDatetime:    "2024-01-31T23:59:59",
		},
		part{"f.xlsx", "f"},
	))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, uploads.requests, 1)
	w := uploads.requests[0].Window
	assert.True(t, w.Active())
	assert.Equal(t, "Fecha", w.Column)
	require.NotNil(t, w.Start)
	require.NotNil(t, w.End)
	assert.True(t, w.Start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, w.End.Equal(time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)))
}

func TestProcess_OpenEndedWindow(t *testing.T) {
	uploads := newFakeUploads()
	h := newHandler(uploads, &fakeStats{})

	rr := serve(h, multipartRequest(t,
		map[string]string{
			httpapi.FieldProcessType:    "Factura electronica",
			httpapi.FieldDatetimeColumn: "Fecha",
			httpapi.FieldStartDatetime:  "2024-01-01",
		},
		part{"f.xlsx", "f"},
	))

	require.Equal(t, http.StatusOK, rr.Code)
	w := uploads.requests[0].Window
	assert.NotNil(t, w.Start)
	assert.Nil(t, w.End)
}

func TestProcess_InvalidDatetime(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		want   string
	}{
		{
			name:   "bad start",
			fields: map[string]string{httpapi.FieldStartDatetime: "ayer"},
			want:   "start_datetime inválido: ayer",
		},
		{
			name:   "bad end",
			fields: map[string]string{httpapi.FieldEndDatetime: "mañana"},
			want:   "end_datetime inválido: mañana",
		},
		{
			name: "end before start",
			fields: map[string]string{
				httpapi.FieldStartDatetime: "2024-02-01",
				httpapi.FieldEndDatetime:   "2024-01-01",
			},
			want: "end_datetime is before start_datetime",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploads := newFakeUploads()
			h := newHandler(uploads, &fakeStats{})

			tt.fields[httpapi.FieldProcessType] = "Factura electronica"
			tt.fields[httpapi.FieldDatetimeColumn] = "Fecha"
			rr := serve(h, multipartRequest(t, tt.fields, part{"f.xlsx", "f"}))

			require.Equal(t, http.StatusBadRequest, rr.Code)
			var resp map[string]string
			decode(t, rr, &resp)
			assert.Equal(t, tt.want, resp["error"])
			assert.Empty(t, uploads.requests)
		})
	}
}

func TestProcess_BodyTooLarge(t *testing.T) {
	uploads := newFakeUploads()
	h := httpapi.New(uploads, &fakeStats{}, httpapi.Options{MaxUploadBytes: 1024})

	rr := serve(h, multipartRequest(t,
		map[string]string{httpapi.FieldProcessType: "Conciliacion DIAN"},
		part{"big.xlsx", strings.Repeat("x", 4096)},
	))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Empty(t, uploads.requests)
}

func TestProcess_MethodNotAllowed(t *testing.T) {
	h := newHandler(newFakeUploads(), &fakeStats{})

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/process", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

// --- GET /stats -------------------------------------------------------------

func TestStats_List(t *testing.T) {
	stats := &fakeStats{records: []domain.StatsRecord{
		{ID: 2, File: "b.xlsx", ProcessedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), Effectiveness: 75, Total: 4},
		{ID: 1, File: "a.xlsx", ProcessedAt: time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC), Effectiveness: 50, Total: 2},
	}}
	h := newHandler(newFakeUploads(), stats)

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/stats", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp []map[string]any
	decode(t, rr, &resp)
	require.Len(t, resp, 2)
	assert.Equal(t, map[string]any{
		"archivo":         "b.xlsx",
		"fecha_proceso":   "2024-03-15T10:00:00Z",
		"efectividad":     75.0,
		"total_registros": 4.0,
	}, resp[0])
	assert.Equal(t, "a.xlsx", resp[1]["archivo"])
}

func TestStats_Empty(t *testing.T) {
	h := newHandler(newFakeUploads(), &fakeStats{})

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/stats", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestStats_StoreError(t *testing.T) {
	h := newHandler(newFakeUploads(), &fakeStats{err: errors.New("database is locked")})

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/stats", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "locked")
}

func TestStats_MethodNotAllowed(t *testing.T) {
	h := newHandler(newFakeUploads(), &fakeStats{})

	rr := serve(h, httptest.NewRequest(http.MethodPost, "/stats", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

// --- GET /health and CORS ---------------------------------------------------

func TestHealth(t *testing.T) {
	h := newHandler(newFakeUploads(), &fakeStats{})

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestCORS_Headers(t *testing.T) {
	h := newHandler(newFakeUploads(), &fakeStats{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := serve(h, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	h := newHandler(newFakeUploads(), &fakeStats{})

	req := httptest.NewRequest(http.MethodOptions, "/process", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "content-type, x-requested-with")
	rr := serve(h, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Equal(t, "content-type, x-requested-with", rr.Header().Get("Access-Control-Allow-Headers"))
	assert.Empty(t, rr.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	h := newHandler(newFakeUploads(), &fakeStats{})

	rr := serve(h, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func httptestGet(path string) *http.Request {
	return httptest.NewRequest(http.MethodGet, path, nil)
}

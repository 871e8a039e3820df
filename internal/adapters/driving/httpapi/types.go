package httpapi

// ProcessResponse is the payload for POST /process.
type ProcessResponse struct {
	Processed []FileResponse `json:"procesados"`
}

// FileResponse is the outcome for one uploaded file. Effectiveness and
// Total are set on success, Error on failure.
type FileResponse struct {
	File          string   `json:"archivo"`
	Effectiveness *float64 `json:"efectividad,omitempty"`
	Total         *int     `json:"total_registros,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// HealthResponse is the payload for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

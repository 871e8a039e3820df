// Package httpapi implements the HTTP API.
//
// New returns an http.Handler that serves:
//
//	POST /process  upload one or more spreadsheets for a category
//	GET  /stats    every stats record, most recent first
//	GET  /health   liveness probe
//
// All endpoints respond with Content-Type: application/json and return 405
// for unsupported methods. CORS is open to every origin; OPTIONS preflight
// requests are answered with 204 before routing.
//
// JSON types are defined in types.go. No external HTTP framework is used.
package httpapi

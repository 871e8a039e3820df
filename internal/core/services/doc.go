// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The processing pipeline is:
//
//	TableReader -> time window filter -> Aggregate -> StatsStore -> disposal
//
// Processors are selected per category through a Registry built once at
// startup. The Orchestrator drives one processor over its folder; the
// UploadService drives one processor over a single uploaded file.
package services

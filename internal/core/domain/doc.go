// Package domain holds the types shared by every insumos layer.
//
//   - Category: one of the six document types, each bound to a folder
//   - Table: row-oriented spreadsheet data addressed by column name
//   - Outcome: effectiveness percentage and document count for one file
//   - StatsRecord: the persisted outcome of processing a single file
//   - BatchReport: per-file results of one folder run
//   - Settings: resolved runtime configuration
//
// Nothing here performs I/O. The package imports the standard library
// only, and no internal package is imported from it.
package domain

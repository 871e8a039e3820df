// Package sqlite provides the SQLite implementation of the stats store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// The stats table keeps the column names of databases written by earlier
// releases, so an existing excel_stats.db is picked up as is.
//
// # Data Location
//
// The database is stored at <data dir>/excel_stats.db. The data directory
// defaults to the working directory.
//
// # Thread Safety
//
// All operations are thread-safe. Concurrent writers are serialised by
// SQLite's own locking with a busy timeout.
package sqlite

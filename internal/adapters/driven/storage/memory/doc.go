// Package memory provides in-memory implementations of driven port
// interfaces, for tests and for runs that should leave no trace on disk.
package memory

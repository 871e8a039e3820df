// Package watch runs category batches when spreadsheets land in their
// folders.
//
// The Watcher listens for create and write events in every category folder
// (not recursively, so archive sub-folders are never seen). Events are
// collected until the folders have been quiet for the settle delay, then
// each touched category runs once. Batches run inside the event loop, one
// at a time.
package watch

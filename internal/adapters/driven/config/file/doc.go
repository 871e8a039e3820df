// Package file stores insumos settings in a config.toml file.
//
// Nested TOML tables are exposed as dot-separated keys, so the table
// [disposal] with policy = "archive" reads back as "disposal.policy".
package file

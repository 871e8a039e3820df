// Package cli provides the cobra command tree.
//
// Commands call into the driving ports. The process entry point installs a
// Builder with SetBuilder; the builder is invoked once, after flags are
// parsed, for commands that need services.
package cli

// Package driven declares what the core needs from the outside world.
//
//   - TableReader loads one worksheet of a spreadsheet into a Table.
//   - StatsStore appends and lists processing outcomes.
//   - ConfigStore reads and writes settings.
//   - StatsExporter serialises a stats snapshot in one format. The stats
//     service rejects formats it has no exporter for.
//
// Adapters under internal/adapters/driven implement these interfaces.
// Only the domain package may be imported here.
package driven

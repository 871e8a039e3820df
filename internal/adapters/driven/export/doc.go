// Package export provides the stats snapshot formats.
//
// Every format carries the same flat record with the field names used by
// the published stats file and the HTTP API: archivo, fecha_proceso,
// efectividad and total_registros.
package export

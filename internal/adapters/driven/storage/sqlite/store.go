package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/insumos/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/insumos/internal/core/domain"
	"github.com/custodia-labs/insumos/internal/core/ports/driven"
)

// DatabaseName is the file name of the stats database inside the data directory.
const DatabaseName = "excel_stats.db"

// Store owns the SQLite connection and hands out the store interfaces
// backed by it.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the stats database in dataDir.
// If dataDir is empty, the working directory is used.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseName)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_time_format=sqlite")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// StatsStore returns a StatsStore interface backed by this store.
func (s *Store) StatsStore() driven.StatsStore {
	return &statsStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_stats.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Stats Store ====================

// statsStore implements driven.StatsStore.
type statsStore struct {
	store *Store
}

var _ driven.StatsStore = (*statsStore)(nil)

// Append inserts one stats row. Timestamps are stored in UTC.
func (s *statsStore) Append(ctx context.Context, file string, at time.Time, effectiveness float64, total int) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO stats (archivo, fecha_proceso, efectividad, total_registros)
		VALUES (?, ?, ?, ?)
	`, file, at.UTC(), effectiveness, total)
	if err != nil {
		return fmt.Errorf("inserting stats for %s: %w", file, err)
	}
	return nil
}

// List returns every row, newest first.
func (s *statsStore) List(ctx context.Context) ([]domain.StatsRecord, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, archivo, fecha_proceso, efectividad, total_registros
		FROM stats
		ORDER BY fecha_proceso DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	defer rows.Close()

	var records []domain.StatsRecord
	for rows.Next() {
		var (
			rec         domain.StatsRecord
			processedAt sql.NullTime
		)
		if err := rows.Scan(&rec.ID, &rec.File, &processedAt, &rec.Effectiveness, &rec.Total); err != nil {
			return nil, fmt.Errorf("scanning stats row: %w", err)
		}
		if processedAt.Valid {
			rec.ProcessedAt = processedAt.Time.UTC()
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stats rows: %w", err)
	}
	return records, nil
}

package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/classpoints/internal/db"
)

//go:embed sql/postgres/*.sql sql/sqlite/*.sql
var migrationFiles embed.FS

// Migrator manages database migrations
type Migrator struct {
	database *db.Database
	files    fs.FS
	logger   zerolog.Logger
}

// NewMigrator creates a migrator over the embedded SQL files for the database's dialect
func NewMigrator(database *db.Database, logger zerolog.Logger) *Migrator {
	return &Migrator{
		database: database,
		files:    migrationFiles,
		logger:   logger,
	}
}

func (m *Migrator) dir() string {
	return path.Join("sql", string(m.database.Dialect))
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	_, err := m.database.DB.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL
	);`)
	if err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// isMigrationApplied checks if a specific migration has already been applied
func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	query, args, err := m.database.Builder().
		Select("COUNT(*)").From("schema_migrations").Where("version = ?", version).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build migration status query: %w", err)
	}
	var count int
	if err := m.database.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return count > 0, nil
}

// Applied returns the versions already recorded, in order
func (m *Migrator) Applied(ctx context.Context) ([]string, error) {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return nil, err
	}
	rows, err := m.database.DB.QueryContext(ctx, `SELECT version FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("failed to list applied migrations: %w", err)
	}
	defer rows.Close()

	var versions []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// apply executes one migration file and records it in the same transaction
func (m *Migrator) apply(ctx context.Context, filename string) error {
	// "001_init.sql" => "001"
	version := strings.SplitN(filename, "_", 2)[0]

	applied, err := m.isMigrationApplied(ctx, version)
	if err != nil {
		return err
	}
	if applied {
		m.logger.Debug().Str("migration", filename).Msg("Migration already applied, skipping")
		return nil
	}

	content, err := fs.ReadFile(m.files, path.Join(m.dir(), filename))
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	record, args, err := m.database.Builder().
		Insert("schema_migrations").Columns("version", "applied_at").Values(version, time.Now().UTC()).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build migration record: %w", err)
	}

	err = m.database.WithTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("error occurred during SQL migration %s: %w", filename, err)
		}
		if _, err := tx.ExecContext(ctx, record, args...); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Info().Str("migration", filename).Msg("Migration applied")
	return nil
}

// Migrate applies all pending migrations in filename order
func (m *Migrator) Migrate(ctx context.Context) error {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	entries, err := fs.ReadDir(m.files, m.dir())
	if err != nil {
		return fmt.Errorf("failed to read migration directory: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	for _, file := range sqlFiles {
		if err := m.apply(ctx, file); err != nil {
			return err
		}
	}
	return nil
}

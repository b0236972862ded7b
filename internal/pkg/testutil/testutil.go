// Package testutil provides a migrated throwaway store for tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yigit/classpoints/internal/app/migrations"
	"github.com/yigit/classpoints/internal/db"
)

// NewDB opens a sqlite database in the test's temp dir and applies all migrations.
// The database is closed when the test ends.
func NewDB(t testing.TB) *db.Database {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	database, err := db.OpenSQLite(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, migrations.NewMigrator(database, zerolog.Nop()).Migrate(context.Background()))
	return database
}

// InsertStudent adds a student row directly and returns its ID
func InsertStudent(t testing.TB, database *db.Database, name string, points int) int64 {
	t.Helper()

	query, args, err := database.Builder().Insert("students").
		Columns("name", "password_hash", "points").
		Values(name, "x", points).
		Suffix("RETURNING id").
		ToSql()
	require.NoError(t, err)

	var id int64
	require.NoError(t, database.DB.QueryRow(query, args...).Scan(&id))
	return id
}

// InsertItem adds a store item row directly and returns its ID
func InsertItem(t testing.TB, database *db.Database, key, name string, cost int, itemType string) int64 {
	t.Helper()

	query, args, err := database.Builder().Insert("store_items").
		Columns("key_name", "name", "cost", "type").
		Values(key, name, cost, itemType).
		Suffix("RETURNING id").
		ToSql()
	require.NoError(t, err)

	var id int64
	require.NoError(t, database.DB.QueryRow(query, args...).Scan(&id))
	return id
}

// CountRows returns the number of rows in table
func CountRows(t testing.TB, database *db.Database, table string) int {
	t.Helper()

	var n int
	require.NoError(t, database.DB.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

// Points returns a student's stored balance
func Points(t testing.TB, database *db.Database, studentID int64) int {
	t.Helper()

	var n int
	require.NoError(t, database.DB.QueryRow("SELECT points FROM students WHERE id = ?", studentID).Scan(&n))
	return n
}

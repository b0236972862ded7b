package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	database, err := OpenSQLite("file:" + filepath.Join(t.TempDir(), "tx.db") + "?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.DB.Exec(`CREATE TABLE counters (name TEXT PRIMARY KEY, value INTEGER NOT NULL)`)
	require.NoError(t, err)
	_, err = database.DB.Exec(`INSERT INTO counters (name, value) VALUES ('a', 1)`)
	require.NoError(t, err)
	return database
}

func counter(t *testing.T, database *Database) int {
	t.Helper()
	var v int
	require.NoError(t, database.DB.QueryRow(`SELECT value FROM counters WHERE name = 'a'`).Scan(&v))
	return v
}

func TestWithTransactionCommits(t *testing.T) {
	database := openTestDB(t)

	err := database.WithTransaction(context.Background(), func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `UPDATE counters SET value = value + 1 WHERE name = 'a'`)
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, 2, counter(t, database))
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	database := openTestDB(t)
	boom := errors.New("boom")

	err := database.WithTransaction(context.Background(), func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE counters SET value = 100 WHERE name = 'a'`); err != nil {
			return err
		}
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, counter(t, database))
}

func TestWithTransactionRollsBackOnPanic(t *testing.T) {
	database := openTestDB(t)

	assert.Panics(t, func() {
		_ = database.WithTransaction(context.Background(), func(ctx context.Context, tx *sql.Tx) error {
			_, _ = tx.ExecContext(ctx, `UPDATE counters SET value = 100 WHERE name = 'a'`)
			panic("mid-transaction")
		})
	})
	assert.Equal(t, 1, counter(t, database))
}

func TestBuilderPlaceholders(t *testing.T) {
	pg := &Database{Dialect: Postgres}
	lite := &Database{Dialect: SQLite}

	pgSQL, _, err := pg.Builder().Select("id").From("students").Where("id = ?", 1).ToSql()
	require.NoError(t, err)
	liteSQL, _, err := lite.Builder().Select("id").From("students").Where("id = ?", 1).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id FROM students WHERE id = $1", pgSQL)
	assert.Equal(t, "SELECT id FROM students WHERE id = ?", liteSQL)
}

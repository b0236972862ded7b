package migrations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/classpoints/internal/db"
)

func TestMigrateIsIdempotent(t *testing.T) {
	database, err := db.OpenSQLite("file:" + filepath.Join(t.TempDir(), "m.db") + "?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	defer database.Close()

	m := NewMigrator(database, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, m.Migrate(ctx))
	require.NoError(t, m.Migrate(ctx))

	versions, err := m.Applied(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"001"}, versions)

	for _, table := range []string{"students", "attendance", "store_items", "purchases", "seating"} {
		var n int
		err := database.DB.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n)
		require.NoError(t, err)
		assert.Equal(t, 1, n, table)
	}
}

func TestEmbeddedDialectsHaveSameVersions(t *testing.T) {
	pg, err := migrationFiles.ReadDir("sql/postgres")
	require.NoError(t, err)
	lite, err := migrationFiles.ReadDir("sql/sqlite")
	require.NoError(t, err)

	require.Equal(t, len(pg), len(lite))
	for i := range pg {
		assert.Equal(t, pg[i].Name(), lite[i].Name())
	}
}

package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appModels "github.com/yigit/classpoints/internal/app/models"
	appRepos "github.com/yigit/classpoints/internal/app/repositories"
	"github.com/yigit/classpoints/internal/config"
	"github.com/yigit/classpoints/internal/pkg/auth"
	"github.com/yigit/classpoints/internal/pkg/testutil"
)

func TestCreateDefaultData(t *testing.T) {
	database := testutil.NewDB(t)
	ctx := context.Background()
	hasher := auth.NewPasswordHasher(4)
	cfg := config.SeedConfig{Enabled: true, StudentCount: 36, InitialPointsMax: 100}

	require.NoError(t, CreateDefaultData(ctx, database, cfg, hasher, zerolog.Nop()))

	repos := appRepos.NewRepositories(database)
	students, err := repos.StudentRepository.List(ctx)
	require.NoError(t, err)
	require.Len(t, students, 36)
	assert.Equal(t, "Student 1", students[0].Name)
	assert.Equal(t, "Student 36", students[35].Name)
	for _, s := range students {
		assert.GreaterOrEqual(t, s.Points, 0)
		assert.LessOrEqual(t, s.Points, 100)
		assert.Equal(t, appModels.DefaultSkin, s.Skin)
	}
	assert.True(t, hasher.Check(students[4].PasswordHash, "pw5"))

	items, err := repos.StoreRepository.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, "desk_red", items[0].KeyName)
	assert.Equal(t, 300, items[2].Cost)
	assert.Equal(t, appModels.ItemTypeTitle, items[3].Type)

	seats, err := repos.SeatingRepository.List(ctx)
	require.NoError(t, err)
	require.Len(t, seats, 36)
	for i, seat := range seats {
		require.NotNil(t, seat.StudentID)
		assert.Equal(t, students[i].ID, *seat.StudentID)
	}

	// second run leaves everything in place
	require.NoError(t, CreateDefaultData(ctx, database, cfg, hasher, zerolog.Nop()))
	assert.Equal(t, 36, testutil.CountRows(t, database, "students"))
	assert.Equal(t, 4, testutil.CountRows(t, database, "store_items"))
	assert.Equal(t, 36, testutil.CountRows(t, database, "seating"))
}

func TestSeedingPadsSeatingWhenRosterIsSmall(t *testing.T) {
	database := testutil.NewDB(t)
	ctx := context.Background()
	cfg := config.SeedConfig{Enabled: true, StudentCount: 5, InitialPointsMax: 0}

	require.NoError(t, CreateDefaultData(ctx, database, cfg, auth.NewPasswordHasher(4), zerolog.Nop()))

	seats, err := appRepos.NewSeatingRepository(database).List(ctx)
	require.NoError(t, err)
	require.Len(t, seats, 36)
	assert.False(t, seats[4].Empty())
	assert.True(t, seats[5].Empty())
	assert.True(t, seats[35].Empty())
	assert.Equal(t, 0, testutil.Points(t, database, *seats[0].StudentID))
}

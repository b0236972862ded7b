package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/classpoints/internal/app/models"
	"github.com/yigit/classpoints/internal/bootstrap"
	"github.com/yigit/classpoints/internal/client"
	"github.com/yigit/classpoints/internal/config"
	"github.com/yigit/classpoints/internal/pkg/auth"
	"github.com/yigit/classpoints/internal/pkg/clock"
	"github.com/yigit/classpoints/internal/pkg/testutil"
	"github.com/yigit/classpoints/internal/seed"
)

type cliEnv struct {
	url     string
	session string
	dir     string
}

// newCLIEnv starts a real API over a seeded store: four students in seats 0-3, zero points
func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv(AdminPasswordEnv, "")

	cfg := config.Default()
	cfg.Attendance.Timezone = "UTC"
	cfg.Auth.JWTSecret = "cli-test"
	cfg.Auth.BcryptCost = 4

	database := testutil.NewDB(t)
	seedCfg := config.SeedConfig{Enabled: true, StudentCount: 4, InitialPointsMax: 0}
	require.NoError(t, seed.CreateDefaultData(context.Background(), database, seedCfg, auth.NewPasswordHasher(4), zerolog.Nop()))

	now := time.Date(2025, 3, 3, 8, 20, 0, 0, time.UTC)
	deps, err := bootstrap.BuildDependencies(cfg, database, clock.Fixed{T: now}, zerolog.Nop())
	require.NoError(t, err)

	srv := httptest.NewServer(bootstrap.SetupRouter(cfg, deps, zerolog.Nop()))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	return &cliEnv{url: srv.URL, session: filepath.Join(dir, "session.yaml"), dir: dir}
}

func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--server", e.url, "--session", e.session}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *cliEnv) seats(t *testing.T) []*models.Seat {
	t.Helper()
	seats, err := client.New(e.url).Seating(context.Background())
	require.NoError(t, err)
	return seats
}

func TestSeatingAndAttend(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "seating")
	require.NoError(t, err)
	assert.Contains(t, out, "Student 1")
	assert.Contains(t, out, "Student 4")
	assert.Equal(t, 32, strings.Count(out, "(empty)"))

	out, err = env.run(t, "attend", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Student 1 checked in at 08:20: on-time, +100 points")
	assert.Contains(t, out, "100 pts")

	out, err = env.run(t, "attend", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "already recorded")

	out, err = env.run(t, "attend", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Seat 10 is empty")

	_, err = env.run(t, "attend", "36")
	assert.Error(t, err)

	out, err = env.run(t, "today")
	require.NoError(t, err)
	assert.Contains(t, out, "1 checked in")

	out, err = env.run(t, "history", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-03-03")
}

func TestLoginBuyFlow(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "buy", "desk_red")
	assert.ErrorContains(t, err, "not logged in")

	_, err = env.run(t, "login", "Student 1", "wrong")
	assert.Error(t, err)

	out, err := env.run(t, "login", "Student 1", "pw1")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Student 1")

	out, err = env.run(t, "me")
	require.NoError(t, err)
	assert.Contains(t, out, "Student 1")

	out, err = env.run(t, "buy", "title_helper")
	require.NoError(t, err)
	assert.Contains(t, out, "Insufficient points")

	_, err = env.run(t, "admin", "students", "add", "--name", "Rich", "--password", "rich", "--points", "500", "--admin-pw", "adminpass")
	require.NoError(t, err)
	_, err = env.run(t, "login", "Rich", "rich")
	require.NoError(t, err)

	out, err = env.run(t, "buy", "desk_red")
	require.NoError(t, err)
	assert.Contains(t, out, "purchased")
	assert.Contains(t, out, "equipped")
	assert.Contains(t, out, "300 pts")

	out, err = env.run(t, "purchases")
	require.NoError(t, err)
	assert.Contains(t, out, "Desk: Red Skin")

	_, err = env.run(t, "logout")
	require.NoError(t, err)
	_, err = env.run(t, "me")
	assert.ErrorContains(t, err, "not logged in")
}

func TestAdminSeating(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "admin", "seating", "swap", "0", "1")
	assert.ErrorContains(t, err, AdminPasswordEnv)

	_, err = env.run(t, "admin", "seating", "swap", "0", "1", "--admin-pw", "nope")
	assert.ErrorContains(t, err, "admin password mismatch")

	t.Setenv(AdminPasswordEnv, "adminpass")
	out, err := env.run(t, "admin", "seating", "swap", "0", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Seating saved")

	seats := env.seats(t)
	require.Len(t, seats, models.SeatCount)
	assert.Equal(t, "Student 2", *seats[0].Name)
	assert.Equal(t, "Student 1", *seats[1].Name)

	_, err = env.run(t, "admin", "seating", "assign", "2", "empty")
	require.NoError(t, err)
	_, err = env.run(t, "admin", "seating", "assign", "20", "4")
	require.NoError(t, err)

	seats = env.seats(t)
	assert.True(t, seats[2].Empty())
	assert.True(t, seats[3].Empty())
	require.False(t, seats[20].Empty())
	assert.Equal(t, "Student 4", *seats[20].Name)

	out, err = env.run(t, "admin", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "accepted")
}

func TestAdminItemsAndExport(t *testing.T) {
	env := newCLIEnv(t)
	t.Setenv(AdminPasswordEnv, "adminpass")

	out, err := env.run(t, "admin", "items", "add", "--key", "desk_green", "--name", "Desk: Green Skin", "--cost", "120", "--type", "skin")
	require.NoError(t, err)
	assert.Contains(t, out, "Added desk_green")
	assert.Contains(t, out, "Desk: Green Skin")

	_, err = env.run(t, "admin", "items", "add", "--key", "desk_green", "--name", "Again", "--cost", "1")
	assert.Error(t, err)

	_, err = env.run(t, "attend", "0")
	require.NoError(t, err)

	path := filepath.Join(env.dir, "march.csv")
	_, err = env.run(t, "admin", "export", "2025", "3", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "name,2025-03-01,"))
	assert.True(t, strings.HasPrefix(lines[1], "Student 1,🔴,🔴,🟢"))

	out, err = env.run(t, "admin", "export", "2025", "3", "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "name,2025-03-01")
}

func TestSeatEditing(t *testing.T) {
	id := func(n int64) *int64 { return &n }
	seats := []*models.Seat{
		{SeatIndex: 0, StudentID: id(7)},
		{SeatIndex: 5, StudentID: id(8)},
	}

	inputs := chartInputs(seats)
	require.Len(t, inputs, models.SeatCount)
	assert.Equal(t, int64(7), *inputs[0].StudentID)
	assert.Nil(t, inputs[1].StudentID)

	require.NoError(t, swapSeats(inputs, 0, 5))
	assert.Equal(t, int64(8), *inputs[0].StudentID)
	assert.Equal(t, int64(7), *inputs[5].StudentID)
	assert.Error(t, swapSeats(inputs, 3, 3))

	assignSeat(inputs, 10, id(8))
	assert.Nil(t, inputs[0].StudentID)
	assert.Equal(t, int64(8), *inputs[10].StudentID)

	assignSeat(inputs, 10, nil)
	assert.Nil(t, inputs[10].StudentID)

	for i, in := range inputs {
		require.NotNil(t, in.SeatIndex)
		assert.Equal(t, i, *in.SeatIndex)
	}
}

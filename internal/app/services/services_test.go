package services

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/classpoints/internal/app/repositories"
	"github.com/yigit/classpoints/internal/db"
	"github.com/yigit/classpoints/internal/pkg/auth"
	"github.com/yigit/classpoints/internal/pkg/clock"
	"github.com/yigit/classpoints/internal/pkg/testutil"
)

const testAdminPw = "adminpass"

type testEnv struct {
	db         *db.Database
	repos      *repositories.Repositories
	now        time.Time
	gate       *AdminGate
	attendance AttendanceService
	store      StoreService
	seating    SeatingService
	export     ExportService
	students   StudentService
	auth       *AuthService
}

// newTestEnv wires every service over a fresh store; the clock reads env.now
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		db:   testutil.NewDB(t),
		now:  time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC),
		gate: NewAdminGate(testAdminPw),
	}
	env.repos = repositories.NewRepositories(env.db)
	clk := clock.Func(func() time.Time { return env.now })
	hasher := auth.NewPasswordHasher(4)
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenExp: time.Hour, TokenIssuer: "test"})

	env.attendance = NewAttendanceService(env.db, env.repos, DefaultAttendancePolicy(), clk, time.UTC, zerolog.Nop())
	env.store = NewStoreService(env.db, env.repos, env.gate, clk, zerolog.Nop())
	env.seating = NewSeatingService(env.db, env.repos, env.gate, zerolog.Nop())
	env.export = NewExportService(env.repos, DefaultMarker())
	env.students = NewStudentService(env.repos, hasher, env.gate, zerolog.Nop())
	env.auth = NewAuthService(env.repos.StudentRepository, hasher, jwtService, zerolog.Nop())
	return env
}

// at moves the clock to hh:mm on the given day of March 2025
func (e *testEnv) at(day, hh, mm int) {
	e.now = time.Date(2025, 3, day, hh, mm, 0, 0, time.UTC)
}

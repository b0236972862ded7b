package bootstrap

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/classpoints/internal/app/controllers"
	appMigrations "github.com/yigit/classpoints/internal/app/migrations"
	appRepos "github.com/yigit/classpoints/internal/app/repositories"
	appRoutes "github.com/yigit/classpoints/internal/app/routes"
	appServices "github.com/yigit/classpoints/internal/app/services"
	"github.com/yigit/classpoints/internal/config"
	"github.com/yigit/classpoints/internal/db"
	appMiddleware "github.com/yigit/classpoints/internal/middleware"
	pkgAuth "github.com/yigit/classpoints/internal/pkg/auth"
	"github.com/yigit/classpoints/internal/pkg/clock"
	"github.com/yigit/classpoints/internal/pkg/logger"
	"github.com/yigit/classpoints/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AttendanceService    appServices.AttendanceService
	StoreService         appServices.StoreService
	SeatingService       appServices.SeatingService
	ExportService        appServices.ExportService
	StudentService       appServices.StudentService
	AuthService          *appServices.AuthService
	AdminGate            *appServices.AdminGate
	StudentController    *appControllers.StudentController
	AttendanceController *appControllers.AttendanceController
	StoreController      *appControllers.StoreController
	SeatingController    *appControllers.SeatingController
	ExportController     *appControllers.ExportController
	AuthController       *appControllers.AuthController
	HealthController     *appControllers.HealthController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Hasher               *pkgAuth.PasswordHasher
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath, dotEnvPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath, dotEnvPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Pretty: strings.EqualFold(cfg.Logging.Format, "text"),
	})
	lgr.Info().
		Str("logLevel", cfg.Logging.Level).
		Str("logFormat", cfg.Logging.Format).
		Str("dbDriver", cfg.Database.Driver).
		Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.Database, error) {
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Establishing database connection...")
	database, err := db.Open(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database, lgr).Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if cfg.Seed.Enabled {
		hasher := pkgAuth.NewPasswordHasher(cfg.Auth.BcryptCost)
		if err := seed.CreateDefaultData(ctx, database, cfg.Seed, hasher, lgr); err != nil {
			// Log the error but don't fail the startup
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return database, nil
}

// jwtSecret returns the configured secret or, outside production, a random
// per-process one. Tokens signed with a random secret do not survive a restart.
func jwtSecret(cfg *config.Config, lgr zerolog.Logger) (string, error) {
	if cfg.Auth.JWTSecret != "" {
		return cfg.Auth.JWTSecret, nil
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate jwt secret: %w", err)
	}
	lgr.Warn().Msg("No JWT secret configured, using a random one for this process")
	return hex.EncodeToString(buf), nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.Database, clk clock.Clock, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	secret, err := jwtSecret(cfg, lgr)
	if err != nil {
		return nil, err
	}
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   secret,
		TokenExp:    cfg.Auth.TokenTTL,
		TokenIssuer: cfg.Auth.Issuer,
	})
	deps.Hasher = pkgAuth.NewPasswordHasher(cfg.Auth.BcryptCost)
	deps.AdminGate = appServices.NewAdminGate(cfg.Admin.Password)

	policy, err := appServices.NewAttendancePolicy(cfg.Attendance)
	if err != nil {
		return nil, fmt.Errorf("invalid attendance policy: %w", err)
	}
	location, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid attendance timezone: %w", err)
	}

	// Initialize services
	deps.AttendanceService = appServices.NewAttendanceService(database, deps.Repos, policy, clk, location, lgr.With().Str("component", "attendance").Logger())
	deps.StoreService = appServices.NewStoreService(database, deps.Repos, deps.AdminGate, clk, lgr.With().Str("component", "store").Logger())
	deps.SeatingService = appServices.NewSeatingService(database, deps.Repos, deps.AdminGate, lgr.With().Str("component", "seating").Logger())
	deps.ExportService = appServices.NewExportService(deps.Repos, appServices.NewMarker(cfg.Export))
	deps.StudentService = appServices.NewStudentService(deps.Repos, deps.Hasher, deps.AdminGate, lgr.With().Str("component", "students").Logger())
	deps.AuthService = appServices.NewAuthService(deps.Repos.StudentRepository, deps.Hasher, deps.JWTService, lgr.With().Str("component", "auth").Logger())

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.AttendanceController = appControllers.NewAttendanceController(deps.AttendanceService)
	deps.StoreController = appControllers.NewStoreController(deps.StoreService)
	deps.SeatingController = appControllers.NewSeatingController(deps.SeatingService)
	deps.ExportController = appControllers.NewExportController(deps.ExportService)
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.AdminGate)
	deps.HealthController = appControllers.NewHealthController(database)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		appMiddleware.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(lgr.With().Str("component", "http").Logger()),
		appMiddleware.Metrics(),
	)

	appRoutes.SetupRouter(router,
		deps.StudentController,
		deps.AttendanceController,
		deps.StoreController,
		deps.SeatingController,
		deps.ExportController,
		deps.AuthController,
		deps.HealthController,
		deps.AuthMiddleware,
	)

	return router
}

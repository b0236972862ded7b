package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config structure represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Admin      AdminConfig      `yaml:"admin"`
	Auth       AuthConfig       `yaml:"auth"`
	Attendance AttendanceConfig `yaml:"attendance"`
	Export     ExportConfig     `yaml:"export"`
	Seed       SeedConfig       `yaml:"seed"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `yaml:"port" env:"SERVER_PORT"`
	Mode            string        `yaml:"mode" env:"SERVER_MODE"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig selects and configures the persistent store
type DatabaseConfig struct {
	Driver          string        `yaml:"driver" env:"DB_DRIVER"`
	Host            string        `yaml:"host" env:"DB_HOST"`
	Port            string        `yaml:"port" env:"DB_PORT"`
	User            string        `yaml:"user" env:"DB_USER"`
	Password        string        `yaml:"password" env:"DB_PASSWORD"`
	DBName          string        `yaml:"dbname" env:"DB_NAME"`
	SSLMode         string        `yaml:"sslmode" env:"DB_SSLMODE"`
	Path            string        `yaml:"path" env:"DB_PATH"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
}

// AdminConfig holds the shared admin passphrase
type AdminConfig struct {
	Password string `yaml:"password" env:"ADMIN_PASSWORD"`
}

// AuthConfig holds student session settings
type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	TokenTTL   time.Duration `yaml:"token_ttl" env:"JWT_TOKEN_TTL"`
	Issuer     string        `yaml:"issuer" env:"JWT_ISSUER"`
	BcryptCost int           `yaml:"bcrypt_cost" env:"BCRYPT_COST"`
}

// AttendanceConfig holds arrival thresholds and awards.
// Cutoffs are inclusive "HH:MM" times of day.
type AttendanceConfig struct {
	Timezone       string `yaml:"timezone" env:"ATTENDANCE_TIMEZONE"`
	OnTimeCutoff   string `yaml:"on_time_cutoff" env:"ATTENDANCE_ON_TIME_CUTOFF"`
	AcceptedCutoff string `yaml:"accepted_cutoff" env:"ATTENDANCE_ACCEPTED_CUTOFF"`
	OnTimePoints   int    `yaml:"on_time_points" env:"ATTENDANCE_ON_TIME_POINTS"`
	AcceptedPoints int    `yaml:"accepted_points" env:"ATTENDANCE_ACCEPTED_POINTS"`
	LatePoints     int    `yaml:"late_points" env:"ATTENDANCE_LATE_POINTS"`
}

// ExportRule maps attendance statuses to a mark in the monthly export
type ExportRule struct {
	Match string `yaml:"match"`
	Mode  string `yaml:"mode"` // exact | prefix
	Mark  string `yaml:"mark"` // present | late
}

// ExportConfig holds the monthly export symbols and status rules
type ExportConfig struct {
	PresentSymbol string       `yaml:"present_symbol" env:"EXPORT_PRESENT_SYMBOL"`
	LateSymbol    string       `yaml:"late_symbol" env:"EXPORT_LATE_SYMBOL"`
	AbsentSymbol  string       `yaml:"absent_symbol" env:"EXPORT_ABSENT_SYMBOL"`
	Rules         []ExportRule `yaml:"rules"`
}

// SeedConfig controls first-run provisioning
type SeedConfig struct {
	Enabled          bool `yaml:"enabled" env:"SEED_ENABLED"`
	StudentCount     int  `yaml:"student_count" env:"SEED_STUDENT_COUNT"`
	InitialPointsMax int  `yaml:"initial_points_max" env:"SEED_INITIAL_POINTS_MAX"`
}

// LoggingConfig holds log level and format
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// LoadConfig loads configuration from defaults, an optional YAML file, an
// optional dotenv file and the process environment, in that order.
func LoadConfig(configPath, dotEnvPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			file, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	// godotenv never overrides variables already present in the environment
	if dotEnvPath != "" {
		if _, err := os.Stat(dotEnvPath); err == nil {
			if err := godotenv.Load(dotEnvPath); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", dotEnvPath, err)
			}
		}
	}

	if err := envdecode.Decode(config); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Default returns a configuration populated with defaults only.
func Default() *Config {
	config := &Config{}
	setDefaults(config)
	return config
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "4000"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = 10 * time.Second
	config.Server.WriteTimeout = 10 * time.Second
	config.Server.ShutdownTimeout = 10 * time.Second

	config.Database.Driver = DriverSQLite
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "classpoints"
	config.Database.SSLMode = "disable"
	config.Database.Path = "classpoints.db"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = time.Hour

	config.Admin.Password = "adminpass"

	config.Auth.TokenTTL = 12 * time.Hour
	config.Auth.Issuer = "classpoints"
	config.Auth.BcryptCost = 10

	config.Attendance.OnTimeCutoff = "08:25"
	config.Attendance.AcceptedCutoff = "08:40"
	config.Attendance.OnTimePoints = 100
	config.Attendance.AcceptedPoints = 50
	config.Attendance.LatePoints = 10

	config.Export.PresentSymbol = "🟢"
	config.Export.LateSymbol = "🟡"
	config.Export.AbsentSymbol = "🔴"
	config.Export.Rules = []ExportRule{{Match: "late", Mode: "exact", Mark: "late"}}

	config.Seed.Enabled = true
	config.Seed.StudentCount = 36
	config.Seed.InitialPointsMax = 100

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case DriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
	case DriverSQLite:
		if config.Database.Path == "" {
			return fmt.Errorf("database path is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	if config.Admin.Password == "" {
		return fmt.Errorf("admin password is required")
	}

	if config.Auth.JWTSecret == "" && config.IsProduction() {
		return fmt.Errorf("JWT secret is required in production mode")
	}
	if config.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive")
	}

	onTime, err := ParseClock(config.Attendance.OnTimeCutoff)
	if err != nil {
		return fmt.Errorf("attendance on-time cutoff: %w", err)
	}
	accepted, err := ParseClock(config.Attendance.AcceptedCutoff)
	if err != nil {
		return fmt.Errorf("attendance accepted cutoff: %w", err)
	}
	if accepted < onTime {
		return fmt.Errorf("accepted cutoff %s is earlier than on-time cutoff %s",
			config.Attendance.AcceptedCutoff, config.Attendance.OnTimeCutoff)
	}
	if _, err := config.Location(); err != nil {
		return fmt.Errorf("attendance timezone: %w", err)
	}

	for i, rule := range config.Export.Rules {
		if rule.Mode != "exact" && rule.Mode != "prefix" {
			return fmt.Errorf("export rule %d: mode must be exact or prefix", i)
		}
		if rule.Mark != "present" && rule.Mark != "late" {
			return fmt.Errorf("export rule %d: mark must be present or late", i)
		}
	}

	if config.Seed.StudentCount < 0 || config.Seed.InitialPointsMax < 0 {
		return fmt.Errorf("seed counts must not be negative")
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Mode, "production")
}

// Location returns the attendance timezone; empty means server local time
func (c *Config) Location() (*time.Location, error) {
	if c.Attendance.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Attendance.Timezone)
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// GetSQLiteConnectionString returns the modernc sqlite DSN for the configured file
func (c *Config) GetSQLiteConnectionString() string {
	return "file:" + c.Database.Path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// ParseClock parses "HH:MM" into minutes since midnight
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q, expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

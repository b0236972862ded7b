package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), "")
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "adminpass", cfg.Admin.Password)
	assert.Equal(t, "08:25", cfg.Attendance.OnTimeCutoff)
	assert.Equal(t, 36, cfg.Seed.StudentCount)
	require.Len(t, cfg.Export.Rules, 1)
	assert.Equal(t, "late", cfg.Export.Rules[0].Mark)
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
  shutdown_timeout: 3s
attendance:
  on_time_cutoff: "08:30"
  accepted_cutoff: "08:45"
admin:
  password: from-file
`), 0o600))

	t.Setenv("ADMIN_PASSWORD", "from-env")
	t.Setenv("ATTENDANCE_LATE_POINTS", "5")

	cfg, err := LoadConfig(path, "")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "08:30", cfg.Attendance.OnTimeCutoff)
	assert.Equal(t, "from-env", cfg.Admin.Password)
	assert.Equal(t, 5, cfg.Attendance.LatePoints)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("SEED_STUDENT_COUNT=12\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("SEED_STUDENT_COUNT") })

	cfg, err := LoadConfig("", envPath)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Seed.StudentCount)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"empty admin password", func(c *Config) { c.Admin.Password = "" }},
		{"bad cutoff", func(c *Config) { c.Attendance.OnTimeCutoff = "8h25" }},
		{"inverted cutoffs", func(c *Config) { c.Attendance.AcceptedCutoff = "08:00" }},
		{"bad timezone", func(c *Config) { c.Attendance.Timezone = "Mars/Olympus" }},
		{"bad rule mode", func(c *Config) { c.Export.Rules = []ExportRule{{Match: "x", Mode: "regex", Mark: "late"}} }},
		{"production without secret", func(c *Config) { c.Server.Mode = "production" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, validateConfig(cfg))
		})
	}

	assert.NoError(t, validateConfig(Default()))
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("08:25")
	require.NoError(t, err)
	assert.Equal(t, 505, m)

	_, err = ParseClock("25:00")
	assert.Error(t, err)
}

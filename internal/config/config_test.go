package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 8083

[database]
host = "localhost"
port = 5432
user = "gms"
password = "secret"
dbname = "gms_schedule"

[logs]
file = "logs/app.log"
level = "debug"

[metrics]
enabled = true

[member_service]
url = "http://localhost:8081"
timeout = 3

[staff_service]
url = "http://localhost:8082"

[booking]
advance_booking_days = 14
allow_same_day_attendance = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8083, cfg.Server.HTTPPort)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 3, cfg.MemberService.Timeout)
	assert.Equal(t, 14, cfg.Booking.AdvanceBookingDays)
	assert.True(t, cfg.Booking.AllowSameDayAttendance)
	assert.False(t, cfg.Booking.AllowPastSessions)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
dbname = "gms_schedule"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "gms-schedule-service", cfg.Metrics.ServiceName)
	assert.Equal(t, 5, cfg.MemberService.Timeout)
	assert.Equal(t, 5, cfg.StaffService.Timeout)
}

func TestLoad_MissingDatabaseHost(t *testing.T) {
	path := writeConfig(t, `
[database]
dbname = "gms_schedule"
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "database.host")
}

func TestLoad_NegativeAdvanceBookingDays(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
dbname = "gms_schedule"

[booking]
advance_booking_days = -1
`)

	_, err := Load(path)
	assert.ErrorContains(t, err, "advance_booking_days")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "gms",
		Password: "secret",
		DBName:   "gms_schedule",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=gms password=secret dbname=gms_schedule sslmode=require",
		cfg.DSN())
}

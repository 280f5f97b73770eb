package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardboard/core/internal/infrastructure/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, config.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TemplateTTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:8081"}, cfg.Security.CORSOrigins())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "/tmp/board.db")
	t.Setenv("CORS_ORIGIN", "https://board.example.com")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("ENABLE_METRICS", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, config.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/board.db", cfg.Database.Path)
	assert.Equal(t, []string{"https://board.example.com"}, cfg.Security.CORSOrigins())
	assert.Equal(t, 30*time.Second, cfg.Security.RateLimitWindow)
	assert.True(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, err := config.Load()
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestValidate(t *testing.T) {
	valid := func() config.Config {
		return config.Config{
			Server:   config.ServerConfig{Port: 3000},
			Database: config.DatabaseConfig{Driver: config.DriverPostgres, Host: "db", Name: "cards"},
		}
	}

	cfg := valid()
	assert.NoError(t, cfg.Validate())

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"Missing host", func(c *config.Config) { c.Database.Host = "" }},
		{"Missing name", func(c *config.Config) { c.Database.Name = "" }},
		{"SQLite without path", func(c *config.Config) { c.Database.Driver = config.DriverSQLite }},
		{"Port zero", func(c *config.Config) { c.Server.Port = 0 }},
		{"Port too large", func(c *config.Config) { c.Server.Port = 70000 }},
		{"Negative rate limit", func(c *config.Config) { c.Security.RateLimitRequests = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGetDSN(t *testing.T) {
	pg := config.DatabaseConfig{
		Driver: config.DriverPostgres, Host: "db", Port: 5432,
		User: "u", Password: "p", Name: "cards", SSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=cards sslmode=disable", pg.GetDSN())

	lite := config.DatabaseConfig{Driver: config.DriverSQLite, Path: "cards.db"}
	assert.Contains(t, lite.GetDSN(), "file:cards.db?")
	assert.Contains(t, lite.GetDSN(), "foreign_keys(1)")
}

func TestCORSOrigins(t *testing.T) {
	sec := config.SecurityConfig{CORSAllowedOrigins: " https://a , ,https://b"}
	assert.Equal(t, []string{"https://a", "https://b"}, sec.CORSOrigins())

	assert.Empty(t, (&config.SecurityConfig{}).CORSOrigins())
}

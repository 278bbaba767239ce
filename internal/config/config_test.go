package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so host settings do not leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_NAME", "APP_VERSION", "ENVIRONMENT", "DEV_MODE", "LOG_LEVEL", "GO_PORT",
		"PENSION_DATA_DIR", "CORS_ORIGINS", "REDIS_URL", "REDIS_CACHE_TTL",
		"MAINTENANCE_SCHEDULE", "SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASSWORD",
		"EMAIL_FROM", "EMAIL_DELIVERY_ENABLED", "RATE_LIMIT_PER_MINUTE", "AUTH_RATE_LIMIT_PER_MINUTE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	dir := filepath.Join(t.TempDir(), "data")
	t.Setenv("PENSION_DATA_DIR", dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Athlete Pension API", cfg.AppName)
	assert.Equal(t, "1.0.0", cfg.AppVersion)
	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, dir, cfg.DataDir)
	assert.DirExists(t, dir)
	assert.Equal(t, DefaultCORSOrigins, cfg.CORSOrigins)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "@every 10m", cfg.MaintenanceAt)

	assert.Equal(t, "smtp.gmail.com", cfg.Email.Host)
	assert.Equal(t, 587, cfg.Email.Port)
	assert.Equal(t, "noreply@athletepension.com", cfg.Email.From)
	assert.False(t, cfg.Email.Enabled)

	assert.Equal(t, 100, cfg.RateLimit.PerMinute)
	assert.Equal(t, 5, cfg.RateLimit.AuthPerMinute)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PENSION_DATA_DIR", t.TempDir())
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("GO_PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("REDIS_CACHE_TTL", "60")
	t.Setenv("EMAIL_DELIVERY_ENABLED", "true")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")
	t.Setenv("MAINTENANCE_SCHEDULE", "*/5 * * * *")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.Email.Enabled)
	assert.Equal(t, 30, cfg.RateLimit.PerMinute)
	assert.Equal(t, "*/5 * * * *", cfg.MaintenanceAt)
}

func TestLoad_IgnoresMalformedNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("PENSION_DATA_DIR", t.TempDir())
	t.Setenv("GO_PORT", "eighty")
	t.Setenv("DEV_MODE", "maybe")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Port)
	assert.False(t, cfg.DevMode)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:          8000,
			CacheTTL:      time.Minute,
			MaintenanceAt: "@every 10m",
			Email:         &EmailConfig{Host: "smtp.gmail.com", Port: 587},
			RateLimit:     &RateLimitConfig{PerMinute: 100, AuthPerMinute: 5},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "port zero", mutate: func(c *Config) { c.Port = 0 }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.Port = 70000 }, wantErr: true},
		{name: "zero ttl", mutate: func(c *Config) { c.CacheTTL = 0 }, wantErr: true},
		{name: "zero rate limit", mutate: func(c *Config) { c.RateLimit.PerMinute = 0 }, wantErr: true},
		{name: "negative auth limit", mutate: func(c *Config) { c.RateLimit.AuthPerMinute = -1 }, wantErr: true},
		{name: "bad smtp port", mutate: func(c *Config) { c.Email.Port = -1 }, wantErr: true},
		{name: "delivery without host", mutate: func(c *Config) { c.Email.Enabled = true; c.Email.Host = "" }, wantErr: true},
		{name: "redis url", mutate: func(c *Config) { c.RedisURL = "rediss://cache.example.com:6380/1" }},
		{name: "malformed redis url", mutate: func(c *Config) { c.RedisURL = "localhost:6379" }, wantErr: true},
		{name: "bad schedule", mutate: func(c *Config) { c.MaintenanceAt = "sometimes" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

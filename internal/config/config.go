// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/aristath/pension/internal/utils"
)

// DefaultCORSOrigins are the local frontend dev servers allowed when CORS_ORIGINS is unset.
var DefaultCORSOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3000",
	"http://127.0.0.1:5173",
}

// Config holds application configuration
type Config struct {
	AppName     string
	AppVersion  string
	Environment string // "development", "staging" or "production"
	DevMode     bool   // Enables pretty logs and the docs link, disables compression
	LogLevel    string
	Port        int
	DataDir     string // Base directory for all databases (defaults to "./data", always absolute)
	CORSOrigins []string

	RedisURL      string        // Empty selects the SQLite cache database
	CacheTTL      time.Duration // Lifetime of cached analyses
	MaintenanceAt string        // Cron spec for cache sweeps, integrity checks and WAL checkpoints

	Email     *EmailConfig
	RateLimit *RateLimitConfig
}

// EmailConfig holds SMTP delivery settings
type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	Enabled  bool // When false, report emails are rendered and logged but not sent
}

// RateLimitConfig holds per-client request limits
type RateLimitConfig struct {
	PerMinute     int // General API limit
	AuthPerMinute int // Stricter limit for /api/v1/auth routes
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Data directory is always absolute and created on demand
	dataDir := getEnv("PENSION_DATA_DIR", "./data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	corsOrigins := utils.ParseCSV(getEnv("CORS_ORIGINS", ""))
	if corsOrigins == nil {
		corsOrigins = append([]string(nil), DefaultCORSOrigins...)
	}

	cfg := &Config{
		AppName:       getEnv("APP_NAME", "Athlete Pension API"),
		AppVersion:    getEnv("APP_VERSION", "1.0.0"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		DevMode:       getEnvAsBool("DEV_MODE", false),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Port:          getEnvAsInt("GO_PORT", 8000),
		DataDir:       absDataDir,
		CORSOrigins:   corsOrigins,
		RedisURL:      getEnv("REDIS_URL", ""),
		CacheTTL:      time.Duration(getEnvAsInt("REDIS_CACHE_TTL", 300)) * time.Second,
		MaintenanceAt: getEnv("MAINTENANCE_SCHEDULE", "@every 10m"),
		Email:         loadEmailConfig(),
		RateLimit: &RateLimitConfig{
			PerMinute:     getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
			AuthPerMinute: getEnvAsInt("AUTH_RATE_LIMIT_PER_MINUTE", 5),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadEmailConfig() *EmailConfig {
	return &EmailConfig{
		Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		Port:     getEnvAsInt("SMTP_PORT", 587),
		User:     getEnv("SMTP_USER", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("EMAIL_FROM", "noreply@athletepension.com"),
		Enabled:  getEnvAsBool("EMAIL_DELIVERY_ENABLED", false),
	}
}

// IsDevelopment reports whether the service runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.DevMode || strings.EqualFold(c.Environment, "development")
}

// Validate checks if required configuration is present and well formed
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid GO_PORT %d", c.Port)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("REDIS_CACHE_TTL must be positive")
	}
	if c.RateLimit.PerMinute <= 0 || c.RateLimit.AuthPerMinute <= 0 {
		return fmt.Errorf("rate limits must be positive")
	}
	if c.Email.Port <= 0 || c.Email.Port > 65535 {
		return fmt.Errorf("invalid SMTP_PORT %d", c.Email.Port)
	}
	if c.Email.Enabled && c.Email.Host == "" {
		return fmt.Errorf("SMTP_HOST is required when EMAIL_DELIVERY_ENABLED is set")
	}
	if c.RedisURL != "" {
		u, err := url.Parse(c.RedisURL)
		if err != nil || (u.Scheme != "redis" && u.Scheme != "rediss" && u.Scheme != "unix") {
			return fmt.Errorf("invalid REDIS_URL: expected redis://, rediss:// or unix:// URL")
		}
	}
	if _, err := cron.ParseStandard(c.MaintenanceAt); err != nil {
		return fmt.Errorf("invalid MAINTENANCE_SCHEDULE %q: %w", c.MaintenanceAt, err)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

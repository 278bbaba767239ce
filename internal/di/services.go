// Package di provides service initialization functions.
package di

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/aristath/pension/internal/cache"
	"github.com/aristath/pension/internal/clients/smtp"
	"github.com/aristath/pension/internal/config"
	"github.com/aristath/pension/internal/modules/assumptions"
	"github.com/aristath/pension/internal/modules/reports"
	"github.com/aristath/pension/internal/modules/retirement"
)

// redisKeyPrefix namespaces every cache key written to a shared Redis.
const redisKeyPrefix = "pension:"

// InitializeServices creates the cache, clients and services and stores them in the container
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	if container == nil {
		return fmt.Errorf("container cannot be nil")
	}

	container.Registry = prometheus.NewRegistry()
	container.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	initializeCache(container, cfg, log)

	mailer, err := smtp.NewClient(smtpConfig(cfg), log)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	container.Mailer = mailer

	container.AssumptionService = assumptions.NewService(container.AssumptionRepo, log)

	container.AnalysisMetrics = retirement.NewMetrics(container.Registry)
	container.RetirementService = retirement.NewService(
		container.AssumptionService,
		container.Cache,
		cfg.CacheTTL,
		container.AnalysisMetrics,
		log,
	)

	reportService, err := reports.NewService(mailer, senderDomain(mailer.From()), container.Registry, log)
	if err != nil {
		return fmt.Errorf("failed to create report service: %w", err)
	}
	container.ReportService = reportService

	return nil
}

// initializeCache selects Redis when REDIS_URL is set and reachable, and the
// SQLite cache database otherwise.
func initializeCache(container *Container, cfg *config.Config, log zerolog.Logger) {
	container.SQLiteCache = cache.NewSQLiteStore(container.CacheDB.Conn())
	container.Cache = container.SQLiteCache
	container.CacheBackend = CacheBackendSQLite

	if cfg.RedisURL == "" {
		log.Info().Msg("REDIS_URL not set, caching analyses in cache.db")
		return
	}

	redisStore, err := cache.NewRedisStore(cfg.RedisURL, redisKeyPrefix)
	if err != nil {
		log.Warn().Err(err).Msg("Invalid REDIS_URL, caching analyses in cache.db")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisStore.Ping(ctx); err != nil {
		redisStore.Close()
		log.Warn().Err(err).Msg("Redis unreachable, caching analyses in cache.db")
		return
	}

	container.redisCache = redisStore
	container.Cache = redisStore
	container.CacheBackend = CacheBackendRedis
	log.Info().Msg("Caching analyses in Redis")
}

func smtpConfig(cfg *config.Config) smtp.Config {
	if cfg.Email == nil {
		return smtp.Config{From: "noreply@athletepension.com"}
	}
	return smtp.Config{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		Username: cfg.Email.User,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
		Enabled:  cfg.Email.Enabled,
	}
}

// senderDomain returns the domain part of a sender address, used for Message-IDs.
func senderDomain(from string) string {
	from = strings.TrimSuffix(strings.TrimSpace(from), ">")
	if i := strings.LastIndex(from, "@"); i >= 0 && i < len(from)-1 {
		return from[i+1:]
	}
	return "localhost"
}

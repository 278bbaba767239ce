// Package main is the entry point for the pension API server.
// It loads configuration, wires databases, cache and services through the DI
// container, starts the maintenance scheduler and serves HTTP until signalled.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aristath/pension/internal/config"
	"github.com/aristath/pension/internal/di"
	"github.com/aristath/pension/internal/scheduler"
	"github.com/aristath/pension/internal/server"
	"github.com/aristath/pension/pkg/logger"
)

func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Pretty:  cfg.DevMode,
		Service: "pension",
	})
	logger.SetGlobalLogger(log)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("app", cfg.AppName).
		Str("version", cfg.AppVersion).
		Str("environment", cfg.Environment).
		Msg("Starting")

	// Databases, cache, clients and services
	container, jobs, err := di.Wire(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer func() {
		if err := container.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close resources")
		}
	}()

	// Maintenance jobs: cache sweep, integrity check, WAL checkpoint
	sched := scheduler.New(log)
	if err := di.ScheduleJobs(sched, jobs, cfg.MaintenanceAt); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule maintenance jobs")
	}
	if err := sched.RunNow(jobs.CheckDatabases); err != nil {
		log.Error().Err(err).Msg("Startup database check failed")
	}
	sched.Start()

	srv := server.New(server.Config{
		Log:       log,
		Config:    cfg,
		Container: container,
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down server...")
	case err := <-serverErr:
		if err != nil {
			log.Error().Err(err).Msg("HTTP server failed")
		}
	}

	// In-flight requests get ShutdownTimeout to finish
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	sched.Stop()

	log.Info().Msg("Server stopped")
}

package server

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"golang.org/x/sync/errgroup"

	"github.com/aristath/pension/internal/database"
)

const (
	healthCheckTimeout = 5 * time.Second
	cpuSampleInterval  = 100 * time.Millisecond
)

// Values reported for a single dependency.
const (
	stateHealthy       = "healthy"
	stateUnhealthy     = "unhealthy"
	stateConnected     = "connected"
	stateDisconnected  = "disconnected"
	stateNotConfigured = "not_configured"
)

// SystemStats is a point-in-time snapshot of host load.
type SystemStats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsedMB  float64 `json:"memory_used_mb"`
	MemoryTotalMB float64 `json:"memory_total_mb"`
}

// DatabaseStats describes one open database file.
type DatabaseStats struct {
	Profile string `json:"profile"`
	Path    string `json:"path"`
	database.Stats
}

// FullHealthResponse is the body of /api/v1/health/full.
type FullHealthResponse struct {
	Status       string                   `json:"status"`
	Service      string                   `json:"service"`
	Version      string                   `json:"version"`
	Environment  string                   `json:"environment"`
	CacheBackend string                   `json:"cache_backend"`
	Checks       map[string]string        `json:"checks"`
	Databases    map[string]DatabaseStats `json:"databases,omitempty"`
	System       *SystemStats             `json:"system,omitempty"`
}

func (s *Server) handleAPIHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":      stateHealthy,
		"service":     s.cfg.AppName,
		"version":     s.cfg.AppVersion,
		"environment": s.cfg.Environment,
	})
}

func (s *Server) handleDatabaseHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := s.checkDatabases(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Database health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   stateUnhealthy,
			"database": stateDisconnected,
			"error":    err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   stateHealthy,
		"database": stateConnected,
	})
}

func (s *Server) handleRedisHealth(w http.ResponseWriter, r *http.Request) {
	if !s.container.RedisEnabled() {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": stateHealthy,
			"redis":  stateNotConfigured,
			"cache":  s.container.CacheBackend,
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := s.container.Cache.Ping(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Redis health check failed")
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": stateUnhealthy,
			"redis":  stateDisconnected,
			"error":  err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": stateHealthy,
		"redis":  stateConnected,
		"cache":  s.container.CacheBackend,
	})
}

// handleFullHealth runs every dependency check concurrently and adds host stats.
func (s *Server) handleFullHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	resp := FullHealthResponse{
		Status:       stateHealthy,
		Service:      s.cfg.AppName,
		Version:      s.cfg.AppVersion,
		Environment:  s.cfg.Environment,
		CacheBackend: s.container.CacheBackend,
		Checks:       make(map[string]string, 3),
	}

	var mu sync.Mutex
	record := func(name string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			resp.Checks[name] = fmt.Sprintf("%s: %v", stateUnhealthy, err)
			resp.Status = stateUnhealthy
			return
		}
		resp.Checks[name] = stateHealthy
	}

	if !s.container.RedisEnabled() {
		resp.Checks["redis"] = stateNotConfigured
	}

	// Checks record their outcome and never fail the group.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := s.checkDatabases(gctx)
		record("database", err)
		if err != nil {
			return nil
		}
		stats := s.databaseStats(gctx)
		mu.Lock()
		resp.Databases = stats
		mu.Unlock()
		return nil
	})
	g.Go(func() error {
		err := s.container.Cache.Ping(gctx)
		record("cache", err)
		if s.container.RedisEnabled() {
			record("redis", err)
		}
		return nil
	})
	g.Go(func() error {
		stats, err := systemStats(gctx)
		if err != nil {
			s.log.Debug().Err(err).Msg("Failed to collect system stats")
			return nil
		}
		mu.Lock()
		resp.System = stats
		mu.Unlock()
		return nil
	})
	_ = g.Wait()

	status := http.StatusOK
	if resp.Status != stateHealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

// checkDatabases runs a health check against every open database.
func (s *Server) checkDatabases(ctx context.Context) error {
	dbs := s.container.Databases()
	names := make([]string, 0, len(dbs))
	for name := range dbs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := dbs[name].HealthCheck(ctx); err != nil {
			return fmt.Errorf("%s database: %w", name, err)
		}
	}
	return nil
}

// databaseStats collects file and page statistics for every open database.
// A database whose stats cannot be read is left out.
func (s *Server) databaseStats(ctx context.Context) map[string]DatabaseStats {
	dbs := s.container.Databases()
	out := make(map[string]DatabaseStats, len(dbs))
	for name, db := range dbs {
		stats, err := db.GetStats(ctx)
		if err != nil {
			s.log.Debug().Err(err).Str("database", name).Msg("Failed to collect database stats")
			continue
		}
		out[name] = DatabaseStats{
			Profile: string(db.Profile()),
			Path:    db.Path(),
			Stats:   *stats,
		}
	}
	return out
}

func systemStats(ctx context.Context) (*SystemStats, error) {
	cpuPercent, err := cpu.PercentWithContext(ctx, cpuSampleInterval, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get CPU stats: %w", err)
	}

	memStats, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get memory stats: %w", err)
	}

	stats := &SystemStats{
		MemoryPercent: memStats.UsedPercent,
		MemoryUsedMB:  float64(memStats.Used) / 1024 / 1024,
		MemoryTotalMB: float64(memStats.Total) / 1024 / 1024,
	}
	if len(cpuPercent) > 0 {
		stats.CPUPercent = cpuPercent[0]
	}
	return stats, nil
}

/**
 * Package di provides dependency injection type definitions.
 *
 * This package defines the Container type which holds all application dependencies.
 * The Container is the single source of truth for all service instances and is
 * passed to the HTTP server and the CLI.
 */
package di

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aristath/pension/internal/cache"
	"github.com/aristath/pension/internal/clients/smtp"
	"github.com/aristath/pension/internal/database"
	"github.com/aristath/pension/internal/modules/assumptions"
	"github.com/aristath/pension/internal/modules/reports"
	"github.com/aristath/pension/internal/modules/retirement"
	"github.com/aristath/pension/internal/scheduler"
)

// Cache backend names reported by the health endpoints.
const (
	CacheBackendRedis  = "redis"
	CacheBackendSQLite = "sqlite"
)

// Container holds all application dependencies
type Container struct {
	// Databases
	PensionDB *database.DB // assumption profiles
	CacheDB   *database.DB // cached analyses when Redis is not configured

	// Metrics registry served on /metrics
	Registry *prometheus.Registry

	// Cache
	Cache        cache.Store
	CacheBackend string             // CacheBackendRedis or CacheBackendSQLite
	SQLiteCache  *cache.SQLiteStore // always present, swept by the cleanup job
	redisCache   *cache.RedisStore

	// Repositories
	AssumptionRepo *assumptions.Repository

	// Clients
	Mailer *smtp.Client

	// Services
	AssumptionService *assumptions.Service
	AnalysisMetrics   *retirement.Metrics
	RetirementService *retirement.Service
	ReportService     *reports.Service
}

// JobInstances holds the maintenance jobs so they can be scheduled or run manually
type JobInstances struct {
	CacheCleanup   scheduler.Job
	CheckDatabases scheduler.Job
	WALCheckpoint  scheduler.Job
}

// All returns the jobs in registration order.
func (j *JobInstances) All() []scheduler.Job {
	return []scheduler.Job{j.CacheCleanup, j.CheckDatabases, j.WALCheckpoint}
}

// Databases returns the open databases keyed by name.
func (c *Container) Databases() map[string]*database.DB {
	dbs := make(map[string]*database.DB, 2)
	if c.PensionDB != nil {
		dbs["pension"] = c.PensionDB
	}
	if c.CacheDB != nil {
		dbs["cache"] = c.CacheDB
	}
	return dbs
}

// RedisEnabled reports whether analyses are cached in Redis.
func (c *Container) RedisEnabled() bool {
	return c.redisCache != nil
}

// Close releases the Redis pool and closes both databases.
func (c *Container) Close() error {
	var errs []error
	if c.redisCache != nil {
		if err := c.redisCache.Close(); err != nil {
			errs = append(errs, err)
		}
		c.redisCache = nil
	}
	if c.PensionDB != nil {
		if err := c.PensionDB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.CacheDB != nil {
		if err := c.CacheDB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

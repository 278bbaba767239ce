// Package di provides dependency injection for scheduler jobs.
package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/pension/internal/cache"
	"github.com/aristath/pension/internal/scheduler"
)

// RegisterJobs creates the maintenance jobs
// Returns JobInstances for scheduling and manual triggering
func RegisterJobs(container *Container, log zerolog.Logger) (*JobInstances, error) {
	if container == nil {
		return nil, fmt.Errorf("container cannot be nil")
	}
	if container.SQLiteCache == nil {
		return nil, fmt.Errorf("sqlite cache not initialized")
	}

	databases := container.Databases()

	return &JobInstances{
		CacheCleanup:   cache.NewCleanupJob(container.SQLiteCache, log),
		CheckDatabases: scheduler.NewCheckDatabasesJob(databases, log),
		WALCheckpoint:  scheduler.NewWALCheckpointJob(databases, log),
	}, nil
}

// ScheduleJobs adds every job to the scheduler on the given cron spec
func ScheduleJobs(s *scheduler.Scheduler, jobs *JobInstances, schedule string) error {
	for _, job := range jobs.All() {
		if err := s.AddJob(schedule, job); err != nil {
			return err
		}
	}
	return nil
}

package scheduler

import (
	"github.com/rs/zerolog"

	"github.com/aristath/pension/internal/database"
)

// walTruncateThreshold is the WAL size in frames above which the log is truncated.
const walTruncateThreshold = 1000

// WALCheckpointJob checkpoints the WAL of each database, truncating logs
// that have grown large.
type WALCheckpointJob struct {
	log       zerolog.Logger
	databases map[string]*database.DB
}

// NewWALCheckpointJob creates a new WALCheckpointJob for the named databases.
func NewWALCheckpointJob(databases map[string]*database.DB, log zerolog.Logger) *WALCheckpointJob {
	return &WALCheckpointJob{
		log:       log.With().Str("job", "wal_checkpoint").Logger(),
		databases: databases,
	}
}

// Name returns the job name
func (j *WALCheckpointJob) Name() string {
	return "wal_checkpoint"
}

// Run executes the WAL checkpoint job. Failures on one database are logged
// and do not stop the others.
func (j *WALCheckpointJob) Run() error {
	checked := 0
	for _, name := range sortedNames(j.databases) {
		db := j.databases[name]
		if db == nil {
			continue
		}

		// PRAGMA wal_checkpoint returns: busy, log, checkpointed
		var busy, frames, checkpointed int
		err := db.Conn().QueryRow("PRAGMA wal_checkpoint(PASSIVE)").Scan(&busy, &frames, &checkpointed)
		if err != nil {
			j.log.Warn().
				Err(err).
				Str("database", name).
				Msg("Failed to checkpoint WAL")
			continue
		}

		if frames > walTruncateThreshold {
			j.log.Info().
				Str("database", name).
				Int("wal_frames", frames).
				Int("checkpointed", checkpointed).
				Msg("WAL is large, truncating")
			if err := db.WALCheckpoint("TRUNCATE"); err != nil {
				j.log.Warn().Err(err).Str("database", name).Msg("Failed to truncate WAL")
			}
		} else {
			j.log.Debug().
				Str("database", name).
				Int("wal_frames", frames).
				Msg("WAL checkpoint status OK")
		}

		checked++
	}

	j.log.Debug().Int("checked", checked).Msg("WAL checkpoint completed")
	return nil
}

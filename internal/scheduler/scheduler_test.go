package scheduler

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/pension/internal/database"
	testutil "github.com/aristath/pension/internal/testing"
)

type countingJob struct {
	runs  atomic.Int32
	err   error
	panic bool
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run() error {
	j.runs.Add(1)
	if j.panic {
		panic("boom")
	}
	return j.err
}

func TestScheduler_AddJob(t *testing.T) {
	s := New(zerolog.Nop())

	assert.NoError(t, s.AddJob("@every 10m", &countingJob{}))
	assert.NoError(t, s.AddJob("*/5 * * * *", &countingJob{}))
	assert.Error(t, s.AddJob("not a schedule", &countingJob{}))

	s.Start()
	s.Stop()
}

func TestScheduler_RunNow(t *testing.T) {
	s := New(zerolog.Nop())

	job := &countingJob{err: errors.New("failed")}
	assert.Error(t, s.RunNow(job))
	assert.Equal(t, int32(1), job.runs.Load())
}

func TestScheduler_ExecuteRecoversPanics(t *testing.T) {
	s := New(zerolog.Nop())

	job := &countingJob{panic: true}
	assert.NotPanics(t, func() { s.execute(job) })
	assert.Equal(t, int32(1), job.runs.Load())
}

func testDatabases(t *testing.T) map[string]*database.DB {
	t.Helper()

	pension, cleanupPension := testutil.NewTestDB(t, "pension")
	t.Cleanup(cleanupPension)
	cache, cleanupCache := testutil.NewTestDB(t, "cache")
	t.Cleanup(cleanupCache)

	return map[string]*database.DB{"pension": pension, "cache": cache, "missing": nil}
}

func TestCheckDatabasesJob(t *testing.T) {
	job := NewCheckDatabasesJob(testDatabases(t), zerolog.Nop())

	assert.Equal(t, "check_databases", job.Name())
	assert.NoError(t, job.Run())
}

func TestCheckDatabasesJob_ClosedDatabase(t *testing.T) {
	dbs := testDatabases(t)
	require.NoError(t, dbs["cache"].Close())

	err := NewCheckDatabasesJob(dbs, zerolog.Nop()).Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache")
}

func TestWALCheckpointJob(t *testing.T) {
	dbs := testDatabases(t)
	_, err := dbs["pension"].Conn().Exec(
		`INSERT INTO financial_assumptions (id, name, withdrawal_rate, growth_rate_pre_retirement,
			growth_rate_post_retirement, inflation_rate, tax_rate, created_at, updated_at)
		 VALUES ('id-1', 'Custom', 0.04, 0.05, 0.03, 0.03, 0.35, 0, 0)`)
	require.NoError(t, err)

	job := NewWALCheckpointJob(dbs, zerolog.Nop())
	assert.Equal(t, "wal_checkpoint", job.Name())
	assert.NoError(t, job.Run())
}

func TestWALCheckpointJob_NoDatabases(t *testing.T) {
	assert.NoError(t, NewWALCheckpointJob(nil, zerolog.Nop()).Run())
}

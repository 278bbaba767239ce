package di

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/pension/internal/config"
)

func TestInitializeDatabases(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := &config.Config{DataDir: tmpDir}

	container, err := InitializeDatabases(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, container)
	defer container.Close()

	assert.NotNil(t, container.PensionDB)
	assert.NotNil(t, container.CacheDB)
	assert.Len(t, container.Databases(), 2)

	assert.FileExists(t, filepath.Join(tmpDir, "pension.db"))
	assert.FileExists(t, filepath.Join(tmpDir, "cache.db"))
}

func TestInitializeDatabases_InvalidPath(t *testing.T) {
	// A regular file where the data directory should be
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	cfg := &config.Config{DataDir: filepath.Join(blocker, "data")}

	container, err := InitializeDatabases(cfg, zerolog.Nop())
	assert.Error(t, err)
	assert.Nil(t, container)
}

func TestInitializeDatabases_SchemaMigration(t *testing.T) {
	cfg := &config.Config{DataDir: t.TempDir()}

	container, err := InitializeDatabases(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer container.Close()

	var count int
	err = container.PensionDB.Conn().QueryRow("SELECT COUNT(*) FROM financial_assumptions").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	err = container.CacheDB.Conn().QueryRow("SELECT COUNT(*) FROM analysis_cache").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestContainer_CloseIsSafeOnPartialContainer(t *testing.T) {
	assert.NoError(t, (&Container{}).Close())
}

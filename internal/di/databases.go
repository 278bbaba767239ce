// Package di provides dependency injection for database connections.
package di

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/aristath/pension/internal/config"
	"github.com/aristath/pension/internal/database"
)

// InitializeDatabases opens pension.db and cache.db and applies their schemas
func InitializeDatabases(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	// 1. pension.db - Assumption profiles
	pensionDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "pension.db"),
		Profile: database.ProfileStandard,
		Name:    "pension",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize pension database: %w", err)
	}
	container.PensionDB = pensionDB

	// 2. cache.db - Ephemeral analysis cache
	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "cache.db"),
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		pensionDB.Close()
		return nil, fmt.Errorf("failed to initialize cache database: %w", err)
	}
	container.CacheDB = cacheDB

	for name, db := range container.Databases() {
		if err := db.Migrate(); err != nil {
			pensionDB.Close()
			cacheDB.Close()
			return nil, fmt.Errorf("failed to migrate %s database: %w", name, err)
		}
	}

	log.Info().Str("data_dir", cfg.DataDir).Msg("Databases initialized")

	return container, nil
}

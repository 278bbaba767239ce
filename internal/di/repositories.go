// Package di provides dependency injection for repository implementations.
package di

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/pension/internal/modules/assumptions"
)

// InitializeRepositories creates all repositories and seeds the built-in assumption profiles
func InitializeRepositories(container *Container, log zerolog.Logger) error {
	if container == nil {
		return fmt.Errorf("container cannot be nil")
	}

	container.AssumptionRepo = assumptions.NewRepository(container.PensionDB.Conn(), log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	seeded, err := container.AssumptionRepo.SeedDefaults(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed assumption profiles: %w", err)
	}
	if seeded > 0 {
		log.Info().Int("profiles", seeded).Msg("Seeded assumption profiles")
	}

	return nil
}

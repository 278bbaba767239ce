package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aristath/pension/internal/cache"
	"github.com/aristath/pension/internal/database"
	"github.com/aristath/pension/internal/modules/assumptions"
	"github.com/aristath/pension/internal/modules/retirement"
	"github.com/aristath/pension/pkg/logger"
)

// app holds the services shared by every subcommand.
type app struct {
	logLevel string
	dbPath   string

	log      zerolog.Logger
	db       *database.DB
	profiles *assumptions.Service
	analyzer *retirement.Service
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "pensionctl",
		Short:        "Retirement feasibility analysis",
		Long:         "Project retirement wealth, check feasibility and render analysis reports.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context(), cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "Read assumption profiles from this pension.db instead of the built-in catalog")

	root.AddCommand(newAnalyzeCmd(a), newProfilesCmd(a), newRenderCmd(a))
	return root
}

// setup builds the logger and services. Profiles come from the built-in
// catalog unless --db names a database.
func (a *app) setup(ctx context.Context, logOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	a.log = logger.New(logger.Config{
		Level:   a.logLevel,
		Pretty:  true,
		Service: "pensionctl",
		Output:  logOut,
	})

	var store assumptions.ProfileStore
	if a.dbPath != "" {
		db, err := database.New(database.Config{
			Path:    a.dbPath,
			Profile: database.ProfileStandard,
			Name:    "pension",
		})
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", a.dbPath, err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return fmt.Errorf("failed to migrate %s: %w", a.dbPath, err)
		}

		repo := assumptions.NewRepository(db.Conn(), a.log)
		if _, err := repo.SeedDefaults(ctx); err != nil {
			db.Close()
			return fmt.Errorf("failed to seed assumption profiles: %w", err)
		}
		a.db = db
		store = repo
	}

	a.profiles = assumptions.NewService(store, a.log)
	a.analyzer = retirement.NewService(a.profiles, cache.NewMemoryStore(), cache.TTLAnalysis, nil, a.log)
	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

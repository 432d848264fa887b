package main

import (
	"fmt"
	"log/slog"

	"workorders/cmd"
	"workorders/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
)

func migrateCmd(envFile *string, logger *slog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			config, err := cmd.LoadConfig(*envFile)
			if err != nil {
				return err
			}
			db, err := postgres.Open(config.ConnectionSettings())
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			if err = postgres.Migrate(db); err != nil {
				return err
			}
			logger.Info("schema migrated", "driver", config.DBDriver)
			return nil
		},
	}
}

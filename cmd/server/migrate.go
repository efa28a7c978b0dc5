package main

import (
	"github.com/spf13/cobra"

	"github.com/roomfinder/service-rooms/internal/platform/database"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, _, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			return database.RunMigrations(postgresConfig(cfg).DatabaseURL(), cfg.MigrationsDir, log)
		},
	}
}

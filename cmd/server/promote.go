package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roomfinder/service-rooms/internal/application"
	"github.com/roomfinder/service-rooms/internal/platform/auth"
	"github.com/roomfinder/service-rooms/internal/repository"
)

func promoteCmd() *cobra.Command {
	var superuser bool

	cmd := &cobra.Command{
		Use:   "promote <username>",
		Short: "Grant staff privileges to an existing account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, cfg.JWTConfig.AccessTTL)
			accounts := application.NewAccountService(repository.NewGormUserRepository(db), jwtManager, log)

			u, err := accounts.Promote(cmd.Context(), args[0], superuser)
			if err != nil {
				return fmt.Errorf("failed to promote %s: %w", args[0], err)
			}

			log.Info("account promoted",
				zap.String("username", u.Username),
				zap.Bool("is_superuser", u.IsSuperuser),
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&superuser, "superuser", false, "also grant superuser")
	return cmd
}

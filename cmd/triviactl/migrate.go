package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db"
	"github.com/gokatarajesh/trivia-api/internal/db/migrations"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(
		migrationCmd("up", "Apply all pending migrations", migrations.Up),
		migrationCmd("down", "Roll back the most recent migration", migrations.Down),
		migrationCmd("status", "Print migration status", migrations.Status),
	)
	return cmd
}

func migrationCmd(use, short string, run func(context.Context, *sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			if cfg.StoreDriver != config.StoreDriverPostgres {
				return fmt.Errorf("migrations require STORE_DRIVER=%s", config.StoreDriverPostgres)
			}

			pool, sqlDB, err := db.Open(ctx, cfg.Postgres.DSN())
			if err != nil {
				return err
			}
			defer pool.Close()
			defer sqlDB.Close()

			log.Info().
				Str("host", cfg.Postgres.Host).
				Int("port", cfg.Postgres.Port).
				Str("database", cfg.Postgres.Database).
				Str("command", use).
				Msg("connected to database")

			if err := run(ctx, sqlDB); err != nil {
				return fmt.Errorf("migrate %s: %w", use, err)
			}
			log.Info().Str("command", use).Msg("migration command finished")
			return nil
		},
	}
}

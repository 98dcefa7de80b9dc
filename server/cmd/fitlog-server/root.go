package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fitlog/fitlog/server/migrations"
)

// newRootCmd собирает дерево команд fitlog-server.
func newRootCmd() *cobra.Command {
	cfg := &config{}

	root := &cobra.Command{
		Use:          "fitlog-server",
		Short:        "API-сервер FitLog",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadDotEnv(cfg.EnvFile); err != nil {
				return err
			}
			return cfg.applyEnv(cmd.Flags())
		},
	}
	bindFlags(root.PersistentFlags(), cfg)

	root.AddCommand(newServeCmd(cfg), newMigrateCmd(cfg))
	return root
}

func newServeCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP API",
		Long: `Запускает HTTP API FitLog.

	fitlog-server serve --database-dsn postgres://... --auto-migrate
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.validateServe(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}
	cmd.Flags().BoolVar(&cfg.AutoMigrate, "auto-migrate", false, "Применить миграции перед запуском")
	return cmd
}

func newMigrateCmd(cfg *config) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Миграции схемы БД",
	}
	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Применить все миграции",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := cfg.validateDatabase(); err != nil {
				return err
			}
			if err := migrations.Up(cfg.DatabaseDSN); err != nil {
				return fmt.Errorf("migrate up: %w", err)
			}
			return nil
		},
	})
	return migrateCmd
}

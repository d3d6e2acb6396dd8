package cli

import (
	"fmt"

	"github.com/Freeeeeet/tutor_calendar/internal/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *App) migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(a.migrateUpCmd())
	cmd.AddCommand(a.migrateVersionCmd())
	return cmd
}

func (a *App) migrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, pool, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator, err := app.NewMigrator(pool, cfg.MigrationsDir, a.logger)
			if err != nil {
				return err
			}
			defer a.closeMigrator(migrator)

			if err := migrator.Run(ctx); err != nil {
				return err
			}
			version, err := migrator.Version(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Schema is at version %d\n", version)
			return nil
		},
	}
}

func (a *App) migrateVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, pool, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator, err := app.NewMigrator(pool, cfg.MigrationsDir, a.logger)
			if err != nil {
				return err
			}
			defer a.closeMigrator(migrator)

			version, err := migrator.Version(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%d\n", version)
			return nil
		},
	}
}

func (a *App) closeMigrator(m *app.Migrator) {
	if err := m.Close(); err != nil {
		a.logger.Error("Failed to close migrator", zap.Error(err))
	}
}

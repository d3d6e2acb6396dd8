// Package cli реализует calendarctl: миграции, рендер календаря из базы
// или из JSON-файла и обслуживание предложений отработок.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Freeeeeet/tutor_calendar/internal/app"
	"github.com/Freeeeeet/tutor_calendar/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Version задаётся при сборке
	Version = "dev"
	// Commit задаётся при сборке
	Commit = "none"
)

// App состояние CLI
type App struct {
	root       *cobra.Command
	loadConfig func() (*config.Config, error)
	logger     *zap.Logger
	out        io.Writer
	logLevel   string
}

// NewApp создаёт CLI; loadConfig вызывается только командами, которым нужна база
func NewApp(loadConfig func() (*config.Config, error)) *App {
	a := &App{loadConfig: loadConfig, out: os.Stdout, logger: zap.NewNop()}

	a.root = &cobra.Command{
		Use:           "calendarctl",
		Short:         "Operator tool for the tutoring center calendar",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if a.logLevel == "" {
				return nil
			}
			logger, err := app.NewLogger("development", a.logLevel)
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}

	a.root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Enable logging at the given level (debug, info, warn)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.migrateCmd())
	a.root.AddCommand(a.renderCmd())
	a.root.AddCommand(a.expireCmd())

	return a
}

// SetOutput перенаправляет вывод команд
func (a *App) SetOutput(w io.Writer) {
	a.out = w
	a.root.SetOut(w)
	a.root.SetErr(w)
}

// SetArgs задаёт аргументы вместо os.Args
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// Execute запускает CLI
func (a *App) Execute(ctx context.Context) error {
	return a.root.ExecuteContext(ctx)
}

// Close сбрасывает буфер логгера
func (a *App) Close() error {
	_ = a.logger.Sync()
	return nil
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "calendarctl %s (commit: %s)\n", Version, Commit)
		},
	}
}

// connect загружает конфиг и открывает пул соединений
func (a *App) connect(ctx context.Context) (*config.Config, *pgxpool.Pool, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	pool, err := app.NewPool(ctx, cfg.GetDBDSN(), a.logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, pool, nil
}

package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/api"
	"github.com/Freeeeeet/tutor_calendar/internal/app"
	"github.com/Freeeeeet/tutor_calendar/internal/config"
	"github.com/Freeeeeet/tutor_calendar/internal/controller"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Sugar().Infow("Starting tutor calendar",
		"environment", cfg.Environment,
		"http_addr", cfg.HTTPAddr,
		"timezone", cfg.Timezone,
		"token_length", len(cfg.TelegramToken))

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Application stopped with error", zap.Error(err))
	}
	logger.Info("Application stopped")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := app.NewPool(ctx, cfg.GetDBDSN(), logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir, logger)
	if err != nil {
		return err
	}
	err = migrator.Run(ctx)
	logError(logger, "Failed to close migrator", migrator.Close())
	if err != nil {
		return err
	}

	services, err := app.NewServices(pool, cfg, logger)
	if err != nil {
		return err
	}

	scheduler := app.NewScheduler(services.Proposals, cfg.ProposalExpiryInterval, cfg.Location(), logger.Named("scheduler"))
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := api.NewServer(api.Options{
		Addr:        cfg.HTTPAddr,
		Calendar:    services.Calendar,
		Sessions:    services.Sessions,
		Proposals:   services.Proposals,
		ImageHeight: cfg.ImageHeight,
		Location:    cfg.Location(),
		Logger:      logger.Named("http"),
	})
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	if cfg.TelegramToken == "" {
		logger.Warn("TELEGRAM_TOKEN is not set, running HTTP API only")
	} else {
		b, err := bot.New(cfg.TelegramToken)
		if err != nil {
			return errors.Join(err, shutdown(server))
		}
		botController := controller.NewBotController(
			b,
			services.Users,
			services.Calendar,
			services.Sessions,
			cfg.ImageHeight,
			logger.Named("bot"),
		)
		if err := botController.RegisterHandlers(ctx); err != nil {
			logger.Warn("Bot commands menu not set", zap.Error(err))
		}
		go func() {
			logError(logger, "Bot stopped with error", botController.Start(ctx))
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return err
		}
	}
	return shutdown(server)
}

func shutdown(server *api.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(ctx)
}

// logError пишет ошибку, которую некому вернуть
func logError(logger *zap.Logger, msg string, err error) {
	if err != nil {
		logger.Error(msg, zap.Error(err))
	}
}

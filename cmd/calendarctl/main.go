package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Freeeeeet/tutor_calendar/internal/cli"
	"github.com/Freeeeeet/tutor_calendar/internal/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := cli.NewApp(config.Load)
	defer func() { _ = app.Close() }()
	return app.Execute(ctx)
}

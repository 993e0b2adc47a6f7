package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/desertthunder/gp/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)
	logger = shared.WithLogger(logger, "session", shared.GenerateID())

	runner := NewRunner(RunnerOpts{Logger: logger})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runner.app().Run(ctx, os.Args); err != nil {
		switch {
		case errors.Is(err, shared.ErrMissingArgument), errors.Is(err, shared.ErrInvalidArgument):
			logger.Error("usage error", "error", err)
			os.Exit(2)
		case errors.Is(err, context.Canceled):
			os.Exit(130)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}

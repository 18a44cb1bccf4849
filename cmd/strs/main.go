package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/goliatone/go-strings/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.Run(ctx, os.Stdout, os.Stderr, os.Exit, os.Args[1:]...); err != nil {
		slog.Error("run failed", slog.Any("error", err))
		stop()
		os.Exit(1)
	}
}

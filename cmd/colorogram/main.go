package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/Fepozopo/colorogram/pkg/cli"
	"github.com/Fepozopo/colorogram/pkg/logging"
)

var (
	Version string = "dev"
	GitSHA  string = "NA"
)

func main() {
	// register sigterm for graceful shutdown
	ctx, cnc := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cnc()
	go func() {
		defer cnc() // a second ctrl-c kills the process
		<-ctx.Done()
	}()
	slog.SetDefault(logging.Logger(os.Stderr, false, slog.LevelInfo))
	ctx = logging.AppendCtx(ctx,
		slog.Group("colorogram",
			slog.String("version", Version),
			slog.String("git", GitSHA),
			slog.String("run", uuid.NewString()),
		))
	if err := cli.NewRoot(ctx, Version, GitSHA).Execute(); err != nil {
		slog.ErrorContext(ctx, "colorogram failed", "error", err)
		cnc()
		os.Exit(1)
	}
}

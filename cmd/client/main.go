package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/civicvote/internal/client/api"
	"github.com/iudanet/civicvote/internal/client/cli"
	"github.com/iudanet/civicvote/internal/client/iocli"
	"github.com/iudanet/civicvote/internal/client/storage/boltdb"
	"github.com/iudanet/civicvote/internal/client/votecache"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	version := fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit)
	root := cli.NewRootCommand(version, func(ctx context.Context, opts cli.Options) (*cli.Cli, func() error, error) {
		return build(ctx, opts, logger)
	})

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// build открывает локальную базу и собирает клиента, кэш голосов и CLI
func build(ctx context.Context, opts cli.Options, logger *slog.Logger) (*cli.Cli, func() error, error) {
	boltStorage, err := boltdb.New(ctx, opts.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	apiClient := api.NewClient(opts.ServerURL, boltStorage, logger)
	store := votecache.New(apiClient,
		votecache.WithStorage(boltStorage),
		votecache.WithWriteTimeout(opts.Timeout),
		votecache.WithLogger(logger),
	)

	if err := store.Restore(ctx); err != nil {
		logger.Warn("Failed to restore saved votes", "error", err)
	}

	return cli.New(iocli.NewStdio(), apiClient, store, boltStorage), boltStorage.Close, nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/civicvote/internal/catalog"
	"github.com/iudanet/civicvote/internal/config"
	"github.com/iudanet/civicvote/internal/crypto"
	"github.com/iudanet/civicvote/internal/server/ledger"
	"github.com/iudanet/civicvote/internal/server/metrics"
	"github.com/iudanet/civicvote/internal/server/middleware"
	"github.com/iudanet/civicvote/internal/server/router"
	"github.com/iudanet/civicvote/internal/server/storage"
	"github.com/iudanet/civicvote/internal/server/storage/postgres"
	"github.com/iudanet/civicvote/internal/server/storage/sqlite"
	"github.com/iudanet/civicvote/internal/server/visitor"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Show version and exit if requested
	if cfg.ShowVersion {
		printVersion()
		os.Exit(0)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration:\n%v\n", err)
		os.Exit(2)
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	st, err := openStorage(ctx, cfg, logger, m)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("Failed to close storage", "error", err)
		}
	}()

	keyer, err := crypto.NewKeyer([]byte(cfg.Visitor.Secret))
	if err != nil {
		return err
	}
	issuer, err := visitor.NewIssuer([]byte(cfg.Visitor.Secret), cfg.Visitor.CookieMaxAge)
	if err != nil {
		return err
	}
	cat, err := catalog.Default()
	if err != nil {
		return err
	}

	svc := ledger.New(st, keyer, m, logger, cfg.MaxBatchIDs)

	server := &http.Server{
		Addr: cfg.Addr,
		Handler: router.New(router.Deps{
			Logger:  logger,
			Ledger:  svc,
			Catalog: cat,
			Storage: svc,
			Metrics: m,
			Issuer:  issuer,
			Cookie: middleware.CookieConfig{
				Name:   cfg.Visitor.CookieName,
				MaxAge: cfg.Visitor.CookieMaxAge,
				Secure: cfg.Visitor.CookieSecure,
			},
			Version: Version,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening",
			"addr", cfg.Addr,
			"db_driver", cfg.Database.Driver,
			"version", Version,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down", "timeout", cfg.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (storage.BallotStorage, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		st, err := postgres.New(ctx, cfg.Database.DSN, logger)
		if err != nil {
			return nil, fmt.Errorf("open postgres ledger: %w", err)
		}
		m.RegisterPool(st.Pool())
		return st, nil
	default:
		st, err := sqlite.New(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite ledger: %w", err)
		}
		return st, nil
	}
}

func printVersion() {
	fmt.Printf("CivicVote Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}

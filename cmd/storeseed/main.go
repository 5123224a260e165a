package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/storeseed/storeseed-mcp/internal/config"
	"github.com/storeseed/storeseed-mcp/internal/generator"
	"github.com/storeseed/storeseed-mcp/internal/httpapi"
	"github.com/storeseed/storeseed-mcp/internal/logging"
	"github.com/storeseed/storeseed-mcp/internal/mcp"
	"github.com/storeseed/storeseed-mcp/internal/seeder"
	"github.com/storeseed/storeseed-mcp/internal/storage"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and build metadata")
	httpAddr := flag.String("http", "", "serve the HTTP JSON API on this address instead of MCP stdio")
	flag.Parse()

	if *showVersion {
		fmt.Printf("Storeseed MCP Server\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		fmt.Printf("Build Mode: %s\n", storage.BuildMode)
		fmt.Printf("SQLite Driver: %s\n", storage.DriverName)
		os.Exit(0)
	}

	// All logging goes to stderr: stdout is reserved for the MCP protocol.
	logger, err := logging.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger, *httpAddr); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func run(logger *zap.Logger, httpAddr string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if httpAddr != "" {
		cfg.Server.Addr = httpAddr
	}

	logger.Info("storeseed starting",
		zap.String("version", version),
		zap.String("build_mode", storage.BuildMode),
		zap.String("sqlite_driver", storage.DriverName),
		zap.String("generator", generator.DetectProvider()))

	provider, err := generator.NewFromEnv()
	if err != nil {
		return fmt.Errorf("create generation provider: %w", err)
	}
	gen := generator.NewGenerator(provider, generator.WithLogger(logger))
	defer func() { _ = gen.Close() }()

	// The audit log is best-effort: a broken database disables history but
	// never blocks seeding.
	var store storage.Store
	if s, err := storage.NewSQLiteStore(cfg.Storage.Path); err != nil {
		logger.Warn("audit log unavailable",
			zap.String("path", cfg.Storage.Path),
			zap.Error(err))
	} else {
		store = s
		defer func() { _ = store.Close() }()
	}

	svc := seeder.NewService(seeder.Config{
		Generator: gen,
		Store:     store,
		Logger:    logger,
		Poll: seeder.PollConfig{
			Attempts: cfg.Seeder.PollAttempts,
			Interval: cfg.Seeder.PollInterval,
		},
		ClearPageSize: cfg.Seeder.ClearPageSize,
		Baseline:      cfg.Seeder.Baseline,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if httpAddr != "" {
		handlers := httpapi.NewHandlers(svc, store, logger)
		server := httpapi.NewServer(cfg.Server, httpapi.NewRouter(handlers), logger)
		return server.Run(ctx)
	}

	server := mcp.NewServer(mcp.Config{
		Seeder: svc,
		Store:  store,
		Logger: logger,
	})

	errChan := make(chan error, 1)
	go func() {
		logger.Info("mcp server ready, listening on stdio")
		errChan <- server.Serve(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		return nil
	case err := <-errChan:
		return err
	}
}

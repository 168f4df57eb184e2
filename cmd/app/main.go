package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chic-commerce/storefront-api/internal/config"
	"github.com/chic-commerce/storefront-api/internal/database"
	"github.com/chic-commerce/storefront-api/internal/logging"
	"github.com/chic-commerce/storefront-api/internal/server"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// money is exchanged as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos := server.InMemoryRepositories()
	if cfg.UsesDatabase() {
		db, err := database.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		if err := database.EnsureSchema(ctx, db); err != nil {
			logger.Fatal("failed to apply schema", zap.Error(err))
		}
		repos = server.PostgresRepositories(db)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory repositories")
	}

	svc := server.NewServices(cfg, repos, logger)
	if !cfg.UsesDatabase() {
		if _, err := server.Seed(ctx, svc, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			logger.Fatal("failed to seed in-memory store", zap.Error(err))
		}
	}

	app := server.New(cfg, svc, logger)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

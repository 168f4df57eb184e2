package main

import (
	"context"
	"fmt"
	"os"

	"github.com/chic-commerce/storefront-api/internal/config"
	"github.com/chic-commerce/storefront-api/internal/database"
	"github.com/chic-commerce/storefront-api/internal/logging"
	"github.com/chic-commerce/storefront-api/internal/server"
	"go.uber.org/zap"
)

// seed prepares an empty database: schema, the admin account and the
// default catalogue rows.
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

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		logger.Fatal("failed to apply schema", zap.Error(err))
	}

	svc := server.NewServices(cfg, server.PostgresRepositories(db), logger)
	report, err := server.Seed(ctx, svc, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
	logger.Info("seed complete",
		zap.Bool("admin", report.Admin),
		zap.Int("categories", report.Categories),
		zap.Int("paymentMethods", report.PaymentMethods),
		zap.Bool("settings", report.Settings))
}

// Package main implements the entry point for the AI governance admin API
// server, which manages the dataset catalog, quality event log, usage
// analytics, and security reviews for internal AI platform teams.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/aigovern/admin-api/internal/config"
	"github.com/aigovern/admin-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String(
		"migrate",
		"",
		"Run database migrations (up|down|status|version|create) and exit",
	)
	migrationName := flag.String(
		"migration-name",
		"",
		"Name for a new migration when using -migrate create",
	)
	migrationsDir := flag.String(
		"migrations-dir",
		"migrations",
		"Directory containing goose migration files",
	)
	flag.Parse()

	cfg, log, err := initializeApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	if *migrateCmd != "" {
		if err := runMigrations(cfg, *migrateCmd, *migrationsDir, *migrationName); err != nil {
			log.Error("migration failed", "command", *migrateCmd, "error", err)
			os.Exit(1)
		}
		return
	}

	ctx := context.Background()

	db, err := setupAppDatabase(cfg, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	app, err := newApplication(ctx, cfg, log, db)
	if err != nil {
		log.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"task_workers", cfg.Task.WorkerCount,
		"notifications_enabled", cfg.Notify.TeamsWebhookURL != "",
		"risk_summaries_enabled", cfg.Review.GeminiAPIKey != "",
		"usage_rollup_enabled", cfg.Usage.RollupSchedule != "")

	return cfg, log, nil
}

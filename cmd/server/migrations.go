package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/aigovern/admin-api/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const migrationTableName = "goose_db_version"

// slogGooseLogger adapts the goose logger interface to slog. Fatalf does not
// call os.Exit; the error is returned to main, which handles the exit.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...))
}

// runMigrations executes the given goose command against the configured
// database. The create command writes a new SQL migration file into the
// migrations directory instead of touching the database schema.
func runMigrations(cfg *config.Config, command, migrationsDir, migrationName string) error {
	log := slog.Default().With("component", "migrations", "command", command)

	if cfg.Database.URL == "" {
		return fmt.Errorf("database URL is empty: check your configuration")
	}

	log.Info("starting migration operation",
		"url", maskDatabaseURL(cfg.Database.URL),
		"dir", migrationsDir)

	goose.SetLogger(&slogGooseLogger{})
	goose.SetTableName(migrationTableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database connection", "error", err)
		}
	}()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	start := time.Now()
	switch command {
	case "up":
		err = goose.Up(db, migrationsDir)
	case "down":
		err = goose.Down(db, migrationsDir)
	case "status":
		err = goose.Status(db, migrationsDir)
	case "version":
		err = goose.Version(db, migrationsDir)
	case "create":
		if migrationName == "" {
			return fmt.Errorf("migration name is required for the create command")
		}
		err = goose.Create(db, migrationsDir, migrationName, "sql")
	default:
		return fmt.Errorf("unknown migration command: %q", command)
	}
	if err != nil {
		return fmt.Errorf("migration command %q failed: %w", command, err)
	}

	log.Info("migration operation completed",
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

// maskDatabaseURL masks the password in a database URL for safe logging.
func maskDatabaseURL(dbURL string) string {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}

	if parsed.User != nil {
		parsed.User = url.UserPassword(parsed.User.Username(), "****")
		return parsed.String()
	}

	return dbURL
}

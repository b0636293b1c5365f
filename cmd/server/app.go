package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/aigovern/admin-api/internal/config"
	"github.com/aigovern/admin-api/internal/events"
	"github.com/aigovern/admin-api/internal/generation"
	"github.com/aigovern/admin-api/internal/notify/teams"
	"github.com/aigovern/admin-api/internal/platform/gemini"
	"github.com/aigovern/admin-api/internal/platform/postgres"
	"github.com/aigovern/admin-api/internal/scheduler"
	"github.com/aigovern/admin-api/internal/service"
	"github.com/aigovern/admin-api/internal/service/auth"
	"github.com/aigovern/admin-api/internal/store"
	"github.com/aigovern/admin-api/internal/task"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	adminUserStore      store.AdminUserStore
	datasetStore        store.DatasetStore
	qualityEventStore   store.QualityEventStore
	usageStore          store.UsageStore
	securityReviewStore store.SecurityReviewStore
	creditRequestStore  store.CreditRequestStore
	taskStore           task.TaskStore

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	datasetService   service.DatasetService
	qualityService   service.QualityService
	reviewService    service.ReviewService
	usageService     service.UsageService
	creditService    service.CreditService

	// Event system and background processing
	eventEmitter events.EventEmitter
	taskRunner   *task.TaskRunner
	usageRollup  *scheduler.UsageRollup
}

// setupAppDatabase establishes the database connection and configures the
// connection pool.
func setupAppDatabase(cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established")
	return db, nil
}

// newApplication creates an application instance with all dependencies
// initialized: stores, services, the notification emitter registry, and the
// background task runner.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	// Stores
	app.adminUserStore = postgres.NewPostgresAdminUserStore(db, logger)
	app.datasetStore = postgres.NewPostgresDatasetStore(db, logger)
	app.qualityEventStore = postgres.NewPostgresQualityEventStore(db, logger)
	app.usageStore = postgres.NewPostgresUsageStore(db, logger)
	app.securityReviewStore = postgres.NewPostgresSecurityReviewStore(db, logger)
	app.creditRequestStore = postgres.NewPostgresCreditRequestStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db)

	// Notification emitters feed the task dispatcher. Registration happens
	// before the runner starts so recovered tasks always resolve.
	teamsClient := teams.NewClient(cfg.Notify, logger)
	registry := task.NewRegistry()
	if err := teams.NewEmitters(teamsClient).RegisterAll(registry); err != nil {
		return nil, fmt.Errorf("failed to register notification emitters: %w", err)
	}

	dispatcher := task.NewDispatcher(registry, logger)

	app.taskRunner = task.NewTaskRunner(app.taskStore, dispatcher, task.TaskRunnerConfig{
		WorkerCount:  cfg.Task.WorkerCount,
		QueueSize:    cfg.Task.QueueSize,
		StuckTaskAge: time.Duration(cfg.Task.StuckTaskAgeMinutes) * time.Minute,
	}, logger)
	if err := app.taskRunner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}

	// Services emit task request events; the submit handler turns them into
	// stored tasks on the runner.
	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(task.NewSubmitEventHandler(app.taskRunner, logger))
	app.eventEmitter = emitter

	// The risk summarizer is optional: without an API key, reviews are
	// stored with an empty summary.
	var summarizer generation.RiskSummarizer
	if cfg.Review.GeminiAPIKey != "" {
		summarizer, err = gemini.NewRiskSummarizer(ctx, logger, cfg.Review)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize risk summarizer: %w", err)
		}
		logger.Info("risk summarizer initialized", "model", cfg.Review.ModelName)
	} else {
		logger.Info("risk summarizer disabled, no API key configured")
	}

	app.datasetService, err = service.NewDatasetService(app.datasetStore, app.eventEmitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create dataset service: %w", err)
	}

	app.qualityService, err = service.NewQualityService(
		app.qualityEventStore,
		app.datasetStore,
		app.eventEmitter,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create quality service: %w", err)
	}

	app.reviewService, err = service.NewReviewService(
		app.securityReviewStore,
		app.datasetStore,
		summarizer,
		app.eventEmitter,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create review service: %w", err)
	}

	app.usageService, err = service.NewUsageService(app.usageStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create usage service: %w", err)
	}

	app.creditService, err = service.NewCreditService(app.creditRequestStore, app.eventEmitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create credit service: %w", err)
	}

	// The usage rollup is optional: without a schedule, reports are only
	// available on demand through the summary endpoint.
	if cfg.Usage.RollupSchedule != "" {
		app.usageRollup, err = scheduler.NewUsageRollup(
			app.usageStore,
			app.eventEmitter,
			cfg.Usage.RollupSchedule,
			logger,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create usage rollup: %w", err)
		}
		app.usageRollup.Start()
		logger.Info("usage rollup scheduled", "schedule", cfg.Usage.RollupSchedule)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.usageRollup != nil {
		app.usageRollup.Stop()
	}

	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}

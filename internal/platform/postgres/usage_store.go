package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/aigovern/admin-api/internal/domain"
	"github.com/aigovern/admin-api/internal/platform/logger"
	"github.com/aigovern/admin-api/internal/store"
)

// PostgresUsageStore implements the store.UsageStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUsageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUsageStore creates a new PostgreSQL implementation of the
// UsageStore interface. If logger is nil, a default logger is used.
func NewPostgresUsageStore(db store.DBTX, logger *slog.Logger) *PostgresUsageStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUsageStore{
		db:     db,
		logger: logger.With(slog.String("component", "usage_store")),
	}
}

// Ensure PostgresUsageStore implements store.UsageStore interface
var _ store.UsageStore = (*PostgresUsageStore)(nil)

// Record implements store.UsageStore.Record
func (s *PostgresUsageStore) Record(ctx context.Context, rec *domain.UsageRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO usage_records (id, dataset_id, user_id, operation, credits_spent, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.DatasetID,
		rec.UserID,
		rec.Operation,
		rec.CreditsSpent,
		rec.OccurredAt,
	)

	if err != nil {
		log.Error("failed to record usage",
			slog.String("error", err.Error()),
			slog.String("record_id", rec.ID.String()))
		return MapError(err)
	}

	return nil
}

// Summarize implements store.UsageStore.Summarize
// It aggregates usage records whose occurred_at falls inside [from, to).
func (s *PostgresUsageStore) Summarize(
	ctx context.Context,
	from, to time.Time,
) (*domain.UsageSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*), COALESCE(SUM(credits_spent), 0), COUNT(DISTINCT user_id)
		FROM usage_records
		WHERE occurred_at >= $1 AND occurred_at < $2
	`

	summary := &domain.UsageSummary{
		WindowStart: from,
		WindowEnd:   to,
	}

	err := s.db.QueryRowContext(ctx, query, from, to).Scan(
		&summary.TotalCalls,
		&summary.TotalCredits,
		&summary.UniqueUsers,
	)
	if err != nil {
		log.Error("failed to summarize usage",
			slog.String("error", err.Error()),
			slog.Time("from", from),
			slog.Time("to", to))
		return nil, MapError(err)
	}

	return summary, nil
}

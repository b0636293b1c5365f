package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aigovern/admin-api/internal/domain"
	"github.com/aigovern/admin-api/internal/platform/logger"
	"github.com/aigovern/admin-api/internal/store"
	"github.com/google/uuid"
)

// PostgresQualityEventStore implements the store.QualityEventStore interface
// using a PostgreSQL database as the storage backend.
type PostgresQualityEventStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresQualityEventStore creates a new PostgreSQL implementation of the
// QualityEventStore interface. If logger is nil, a default logger is used.
func NewPostgresQualityEventStore(db store.DBTX, logger *slog.Logger) *PostgresQualityEventStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresQualityEventStore{
		db:     db,
		logger: logger.With(slog.String("component", "quality_event_store")),
	}
}

// Ensure PostgresQualityEventStore implements store.QualityEventStore interface
var _ store.QualityEventStore = (*PostgresQualityEventStore)(nil)

// Create implements store.QualityEventStore.Create
// Returns store.ErrInvalidEntity if the referenced dataset does not exist.
func (s *PostgresQualityEventStore) Create(ctx context.Context, event *domain.QualityEvent) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := event.Validate(); err != nil {
		log.Warn("quality event validation failed during create",
			slog.String("error", err.Error()),
			slog.String("event_id", event.ID.String()))
		return err
	}

	query := `
		INSERT INTO quality_events (id, dataset_id, severity, "check", detail, reported_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		event.ID,
		event.DatasetID,
		event.Severity,
		event.Check,
		event.Detail,
		event.ReportedBy,
		event.CreatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during quality event creation",
				slog.String("event_id", event.ID.String()),
				slog.String("dataset_id", event.DatasetID.String()))
			return fmt.Errorf("%w: dataset with ID %s not found",
				store.ErrInvalidEntity, event.DatasetID)
		}

		log.Error("failed to create quality event",
			slog.String("error", err.Error()),
			slog.String("event_id", event.ID.String()))
		return MapError(err)
	}

	log.Info("quality event logged",
		slog.String("event_id", event.ID.String()),
		slog.String("dataset_id", event.DatasetID.String()),
		slog.String("severity", string(event.Severity)))
	return nil
}

// ListByDataset implements store.QualityEventStore.ListByDataset
// Retrieves events for a dataset, newest first.
func (s *PostgresQualityEventStore) ListByDataset(
	ctx context.Context,
	datasetID uuid.UUID,
	limit, offset int,
) ([]*domain.QualityEvent, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, dataset_id, severity, "check", detail, reported_by, created_at
		FROM quality_events
		WHERE dataset_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.db.QueryContext(ctx, query, datasetID, limit, offset)
	if err != nil {
		log.Error("failed to list quality events",
			slog.String("error", err.Error()),
			slog.String("dataset_id", datasetID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var events []*domain.QualityEvent
	for rows.Next() {
		var event domain.QualityEvent
		if err := rows.Scan(
			&event.ID,
			&event.DatasetID,
			&event.Severity,
			&event.Check,
			&event.Detail,
			&event.ReportedBy,
			&event.CreatedAt,
		); err != nil {
			log.Error("failed to scan quality event row",
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan quality event row: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating quality event rows",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("error iterating quality event rows: %w", err)
	}

	return events, nil
}

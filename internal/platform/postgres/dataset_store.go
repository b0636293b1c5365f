package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/aigovern/admin-api/internal/domain"
	"github.com/aigovern/admin-api/internal/platform/logger"
	"github.com/aigovern/admin-api/internal/store"
	"github.com/google/uuid"
)

// PostgresDatasetStore implements the store.DatasetStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDatasetStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDatasetStore creates a new PostgreSQL implementation of the
// DatasetStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller. If logger is nil,
// a default logger will be used.
func NewPostgresDatasetStore(db store.DBTX, logger *slog.Logger) *PostgresDatasetStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDatasetStore{
		db:     db,
		logger: logger.With(slog.String("component", "dataset_store")),
	}
}

// Ensure PostgresDatasetStore implements store.DatasetStore interface
var _ store.DatasetStore = (*PostgresDatasetStore)(nil)

// Create implements store.DatasetStore.Create
// It saves a new dataset to the catalog, handling domain validation.
// Returns store.ErrDatasetNameExists if the name is already taken.
func (s *PostgresDatasetStore) Create(ctx context.Context, dataset *domain.Dataset) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := dataset.Validate(); err != nil {
		log.Warn("dataset validation failed during create",
			slog.String("error", err.Error()),
			slog.String("dataset_id", dataset.ID.String()))
		return err
	}

	query := `
		INSERT INTO datasets (id, name, owner, description, sensitivity, compliance_state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		dataset.ID,
		dataset.Name,
		dataset.Owner,
		dataset.Description,
		dataset.Sensitivity,
		dataset.ComplianceState,
		dataset.CreatedAt,
		dataset.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate dataset name during create",
				slog.String("dataset_id", dataset.ID.String()),
				slog.String("name", dataset.Name))
			return MapUniqueViolation(err, "dataset", store.ErrDatasetNameExists)
		}

		log.Error("failed to create dataset",
			slog.String("error", err.Error()),
			slog.String("dataset_id", dataset.ID.String()))
		return MapError(err)
	}

	log.Info("dataset catalogued",
		slog.String("dataset_id", dataset.ID.String()),
		slog.String("name", dataset.Name),
		slog.String("owner", dataset.Owner))
	return nil
}

// GetByID implements store.DatasetStore.GetByID
// Returns store.ErrDatasetNotFound if the dataset does not exist.
func (s *PostgresDatasetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Dataset, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, owner, description, sensitivity, compliance_state, created_at, updated_at
		FROM datasets
		WHERE id = $1
	`

	var dataset domain.Dataset
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&dataset.ID,
		&dataset.Name,
		&dataset.Owner,
		&dataset.Description,
		&dataset.Sensitivity,
		&dataset.ComplianceState,
		&dataset.CreatedAt,
		&dataset.UpdatedAt,
	)

	if err != nil {
		if IsNotFoundError(err) {
			log.Debug("dataset not found",
				slog.String("dataset_id", id.String()))
			return nil, store.ErrDatasetNotFound
		}

		log.Error("failed to get dataset by ID",
			slog.String("error", err.Error()),
			slog.String("dataset_id", id.String()))
		return nil, MapError(err)
	}

	return &dataset, nil
}

// List implements store.DatasetStore.List
// Retrieves catalogued datasets ordered by creation time, newest first.
func (s *PostgresDatasetStore) List(ctx context.Context, limit, offset int) ([]*domain.Dataset, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, owner, description, sensitivity, compliance_state, created_at, updated_at
		FROM datasets
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to list datasets",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var datasets []*domain.Dataset
	for rows.Next() {
		var dataset domain.Dataset
		if err := rows.Scan(
			&dataset.ID,
			&dataset.Name,
			&dataset.Owner,
			&dataset.Description,
			&dataset.Sensitivity,
			&dataset.ComplianceState,
			&dataset.CreatedAt,
			&dataset.UpdatedAt,
		); err != nil {
			log.Error("failed to scan dataset row",
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan dataset row: %w", err)
		}
		datasets = append(datasets, &dataset)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating dataset rows",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("error iterating dataset rows: %w", err)
	}

	return datasets, nil
}

// UpdateComplianceState implements store.DatasetStore.UpdateComplianceState
// Returns store.ErrDatasetNotFound if the dataset does not exist.
func (s *PostgresDatasetStore) UpdateComplianceState(
	ctx context.Context,
	id uuid.UUID,
	state domain.ComplianceState,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := state.Validate(); err != nil {
		log.Warn("invalid compliance state",
			slog.String("dataset_id", id.String()),
			slog.String("state", string(state)))
		return err
	}

	query := `
		UPDATE datasets
		SET compliance_state = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, state, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update compliance state",
			slog.String("error", err.Error()),
			slog.String("dataset_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "dataset"); err != nil {
		log.Debug("dataset not found during compliance update",
			slog.String("dataset_id", id.String()))
		return store.ErrDatasetNotFound
	}

	log.Info("dataset compliance state updated",
		slog.String("dataset_id", id.String()),
		slog.String("state", string(state)))
	return nil
}

// WithTx implements store.DatasetStore.WithTx
// It returns a new DatasetStore that uses the provided transaction.
func (s *PostgresDatasetStore) WithTx(tx *sql.Tx) store.DatasetStore {
	return &PostgresDatasetStore{
		db:     tx,
		logger: s.logger,
	}
}

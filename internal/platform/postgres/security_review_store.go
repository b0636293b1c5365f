package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aigovern/admin-api/internal/domain"
	"github.com/aigovern/admin-api/internal/platform/logger"
	"github.com/aigovern/admin-api/internal/store"
	"github.com/google/uuid"
)

// PostgresSecurityReviewStore implements the store.SecurityReviewStore
// interface using a PostgreSQL database as the storage backend.
type PostgresSecurityReviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSecurityReviewStore creates a new PostgreSQL implementation of
// the SecurityReviewStore interface. If logger is nil, a default logger is
// used.
func NewPostgresSecurityReviewStore(db store.DBTX, logger *slog.Logger) *PostgresSecurityReviewStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSecurityReviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "security_review_store")),
	}
}

// Ensure PostgresSecurityReviewStore implements store.SecurityReviewStore interface
var _ store.SecurityReviewStore = (*PostgresSecurityReviewStore)(nil)

// Create implements store.SecurityReviewStore.Create
// Returns store.ErrInvalidEntity if the referenced dataset does not exist.
func (s *PostgresSecurityReviewStore) Create(ctx context.Context, review *domain.SecurityReview) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := review.Validate(); err != nil {
		log.Warn("security review validation failed during create",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return err
	}

	query := `
		INSERT INTO security_reviews (id, dataset_id, requested_by, reason, status, risk_summary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		review.ID,
		review.DatasetID,
		review.RequestedBy,
		review.Reason,
		review.Status,
		review.RiskSummary,
		review.CreatedAt,
		review.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during review creation",
				slog.String("review_id", review.ID.String()),
				slog.String("dataset_id", review.DatasetID.String()))
			return fmt.Errorf("%w: dataset with ID %s not found",
				store.ErrInvalidEntity, review.DatasetID)
		}

		log.Error("failed to create security review",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return MapError(err)
	}

	log.Info("security review requested",
		slog.String("review_id", review.ID.String()),
		slog.String("dataset_id", review.DatasetID.String()),
		slog.String("requested_by", review.RequestedBy))
	return nil
}

// GetByID implements store.SecurityReviewStore.GetByID
// Returns store.ErrReviewNotFound if the review does not exist.
func (s *PostgresSecurityReviewStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.SecurityReview, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, dataset_id, requested_by, reason, status, risk_summary, created_at, updated_at
		FROM security_reviews
		WHERE id = $1
	`

	var review domain.SecurityReview
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&review.ID,
		&review.DatasetID,
		&review.RequestedBy,
		&review.Reason,
		&review.Status,
		&review.RiskSummary,
		&review.CreatedAt,
		&review.UpdatedAt,
	)

	if err != nil {
		if IsNotFoundError(err) {
			log.Debug("security review not found",
				slog.String("review_id", id.String()))
			return nil, store.ErrReviewNotFound
		}

		log.Error("failed to get security review by ID",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return nil, MapError(err)
	}

	return &review, nil
}

// UpdateRiskSummary implements store.SecurityReviewStore.UpdateRiskSummary
// Returns store.ErrReviewNotFound if the review does not exist.
func (s *PostgresSecurityReviewStore) UpdateRiskSummary(ctx context.Context, id uuid.UUID, summary string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE security_reviews
		SET risk_summary = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, summary, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update risk summary",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "security review"); err != nil {
		log.Debug("security review not found during risk summary update",
			slog.String("review_id", id.String()))
		return store.ErrReviewNotFound
	}

	return nil
}

// UpdateStatus implements store.SecurityReviewStore.UpdateStatus
// Returns store.ErrReviewNotFound if the review does not exist.
func (s *PostgresSecurityReviewStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReviewStatus) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE security_reviews
		SET status = $1, updated_at = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to update review status",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()),
			slog.String("status", string(status)))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "security review"); err != nil {
		log.Debug("security review not found during status update",
			slog.String("review_id", id.String()))
		return store.ErrReviewNotFound
	}

	log.Info("security review status updated",
		slog.String("review_id", id.String()),
		slog.String("status", string(status)))
	return nil
}

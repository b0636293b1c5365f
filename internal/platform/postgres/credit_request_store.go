package postgres

import (
	"context"
	"log/slog"

	"github.com/aigovern/admin-api/internal/domain"
	"github.com/aigovern/admin-api/internal/platform/logger"
	"github.com/aigovern/admin-api/internal/store"
)

// PostgresCreditRequestStore implements the store.CreditRequestStore
// interface using a PostgreSQL database as the storage backend.
type PostgresCreditRequestStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCreditRequestStore creates a new PostgreSQL implementation of
// the CreditRequestStore interface. If logger is nil, a default logger is
// used.
func NewPostgresCreditRequestStore(db store.DBTX, logger *slog.Logger) *PostgresCreditRequestStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCreditRequestStore{
		db:     db,
		logger: logger.With(slog.String("component", "credit_request_store")),
	}
}

// Ensure PostgresCreditRequestStore implements store.CreditRequestStore interface
var _ store.CreditRequestStore = (*PostgresCreditRequestStore)(nil)

// Create implements store.CreditRequestStore.Create
func (s *PostgresCreditRequestStore) Create(ctx context.Context, req *domain.CreditRequest) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := req.Validate(); err != nil {
		log.Warn("credit request validation failed during create",
			slog.String("error", err.Error()),
			slog.String("request_id", req.ID.String()))
		return err
	}

	query := `
		INSERT INTO credit_requests (id, user_id, user_name, user_email, requested_credits, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		req.ID,
		req.UserID,
		req.UserName,
		req.UserEmail,
		req.RequestedCredits,
		req.Reason,
		req.CreatedAt,
	)

	if err != nil {
		log.Error("failed to create credit request",
			slog.String("error", err.Error()),
			slog.String("request_id", req.ID.String()))
		return MapError(err)
	}

	log.Info("credit request recorded",
		slog.String("request_id", req.ID.String()),
		slog.String("user_id", req.UserID))
	return nil
}

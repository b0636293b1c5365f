package postgres

import (
	"context"
	"log/slog"

	"github.com/aigovern/admin-api/internal/domain"
	"github.com/aigovern/admin-api/internal/platform/logger"
	"github.com/aigovern/admin-api/internal/store"
)

// PostgresAdminUserStore implements the store.AdminUserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAdminUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAdminUserStore creates a new PostgreSQL implementation of the
// AdminUserStore interface. If logger is nil, a default logger is used.
func NewPostgresAdminUserStore(db store.DBTX, logger *slog.Logger) *PostgresAdminUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAdminUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "admin_user_store")),
	}
}

// Ensure PostgresAdminUserStore implements store.AdminUserStore interface
var _ store.AdminUserStore = (*PostgresAdminUserStore)(nil)

// GetByEmail implements store.AdminUserStore.GetByEmail
// Returns store.ErrAdminUserNotFound if no account matches.
func (s *PostgresAdminUserStore) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, email, hashed_password, created_at, updated_at
		FROM admin_users
		WHERE email = $1
	`

	var user domain.AdminUser
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.HashedPass,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if IsNotFoundError(err) {
			// Do not log the email at error level, keep it out of routine logs
			log.Debug("admin user not found by email")
			return nil, store.ErrAdminUserNotFound
		}

		log.Error("failed to get admin user by email",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return &user, nil
}

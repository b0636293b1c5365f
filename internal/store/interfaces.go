package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/aigovern/admin-api/internal/domain"
	"github.com/google/uuid"
)

// DatasetStore defines the interface for dataset catalog persistence.
type DatasetStore interface {
	// Create saves a new dataset to the catalog.
	// Returns ErrDatasetNameExists if the name is already taken.
	Create(ctx context.Context, dataset *domain.Dataset) error

	// GetByID retrieves a dataset by its unique ID.
	// Returns ErrDatasetNotFound if the dataset does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Dataset, error)

	// List retrieves catalogued datasets ordered by creation time,
	// newest first.
	List(ctx context.Context, limit, offset int) ([]*domain.Dataset, error)

	// UpdateComplianceState moves a dataset to a new compliance state.
	// Returns ErrDatasetNotFound if the dataset does not exist.
	UpdateComplianceState(ctx context.Context, id uuid.UUID, state domain.ComplianceState) error

	// WithTx returns a new DatasetStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) DatasetStore
}

// QualityEventStore defines the interface for quality event persistence.
type QualityEventStore interface {
	// Create appends a quality event to the log.
	Create(ctx context.Context, event *domain.QualityEvent) error

	// ListByDataset retrieves events for a dataset, newest first.
	ListByDataset(ctx context.Context, datasetID uuid.UUID, limit, offset int) ([]*domain.QualityEvent, error)
}

// UsageStore defines the interface for usage record persistence and
// aggregation.
type UsageStore interface {
	// Record appends a usage record.
	Record(ctx context.Context, rec *domain.UsageRecord) error

	// Summarize aggregates usage over the given window.
	Summarize(ctx context.Context, from, to time.Time) (*domain.UsageSummary, error)
}

// SecurityReviewStore defines the interface for security review persistence.
type SecurityReviewStore interface {
	// Create saves a new review request.
	Create(ctx context.Context, review *domain.SecurityReview) error

	// GetByID retrieves a review by its unique ID.
	// Returns ErrReviewNotFound if the review does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SecurityReview, error)

	// UpdateRiskSummary attaches a generated risk summary to a review.
	// Returns ErrReviewNotFound if the review does not exist.
	UpdateRiskSummary(ctx context.Context, id uuid.UUID, summary string) error

	// UpdateStatus moves a review to a new lifecycle status.
	// Returns ErrReviewNotFound if the review does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReviewStatus) error
}

// AdminUserStore defines the interface for admin account persistence.
type AdminUserStore interface {
	// GetByEmail retrieves an admin user by email.
	// Returns ErrAdminUserNotFound if no account matches.
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
}

// CreditRequestStore defines the interface for credit request persistence.
type CreditRequestStore interface {
	// Create saves a new credit request.
	Create(ctx context.Context, req *domain.CreditRequest) error
}

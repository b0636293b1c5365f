package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aigovern/admin-api/internal/domain"
	"github.com/aigovern/admin-api/internal/store"
	"github.com/google/uuid"
)

// UsageService provides usage recording and analytics.
type UsageService interface {
	// RecordUsage appends a usage record for a dataset operation.
	RecordUsage(ctx context.Context, datasetID uuid.UUID, userID, operation string, creditsSpent float64) (*domain.UsageRecord, error)

	// GetUsageSummary aggregates usage over [from, to).
	GetUsageSummary(ctx context.Context, from, to time.Time) (*domain.UsageSummary, error)
}

type usageServiceImpl struct {
	usageStore store.UsageStore
	logger     *slog.Logger
}

// NewUsageService creates a new UsageService.
func NewUsageService(usageStore store.UsageStore, logger *slog.Logger) (UsageService, error) {
	if usageStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "usageStore cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &usageServiceImpl{
		usageStore: usageStore,
		logger:     logger.With("component", "usage_service"),
	}, nil
}

// RecordUsage appends a usage record.
func (s *usageServiceImpl) RecordUsage(
	ctx context.Context,
	datasetID uuid.UUID,
	userID, operation string,
	creditsSpent float64,
) (*domain.UsageRecord, error) {
	rec := &domain.UsageRecord{
		ID:           uuid.New(),
		DatasetID:    datasetID,
		UserID:       userID,
		Operation:    operation,
		CreditsSpent: creditsSpent,
		OccurredAt:   time.Now().UTC(),
	}

	if err := s.usageStore.Record(ctx, rec); err != nil {
		s.logger.Error("failed to record usage",
			"error", err,
			"dataset_id", datasetID)
		return nil, &ServiceError{
			Operation: "record_usage",
			Message:   "failed to save usage record",
			Err:       err,
		}
	}

	return rec, nil
}

// GetUsageSummary aggregates usage over [from, to).
func (s *usageServiceImpl) GetUsageSummary(ctx context.Context, from, to time.Time) (*domain.UsageSummary, error) {
	summary, err := s.usageStore.Summarize(ctx, from, to)
	if err != nil {
		return nil, &ServiceError{
			Operation: "usage_summary",
			Message:   "failed to summarize usage",
			Err:       err,
		}
	}
	return summary, nil
}

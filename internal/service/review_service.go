package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aigovern/admin-api/internal/domain"
	"github.com/aigovern/admin-api/internal/events"
	"github.com/aigovern/admin-api/internal/generation"
	"github.com/aigovern/admin-api/internal/store"
	"github.com/aigovern/admin-api/internal/task"
	"github.com/google/uuid"
)

// ReviewService provides security review operations.
type ReviewService interface {
	// RequestSecurityReview opens a review for a dataset and notifies the
	// security channel. When a risk summarizer is configured, a generated
	// summary is attached; generation failure is non-fatal.
	RequestSecurityReview(ctx context.Context, datasetID uuid.UUID, requestedBy, reason string) (*domain.SecurityReview, error)

	// GetReview retrieves a review by ID.
	GetReview(ctx context.Context, id uuid.UUID) (*domain.SecurityReview, error)

	// UpdateReviewStatus moves a review to a new lifecycle status.
	UpdateReviewStatus(ctx context.Context, id uuid.UUID, status domain.ReviewStatus) (*domain.SecurityReview, error)
}

type reviewServiceImpl struct {
	reviewStore  store.SecurityReviewStore
	datasetStore store.DatasetStore
	summarizer   generation.RiskSummarizer // may be nil when not configured
	eventEmitter events.EventEmitter
	logger       *slog.Logger
}

// NewReviewService creates a new ReviewService. The summarizer is optional;
// pass nil to store reviews without generated risk summaries.
func NewReviewService(
	reviewStore store.SecurityReviewStore,
	datasetStore store.DatasetStore,
	summarizer generation.RiskSummarizer,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (ReviewService, error) {
	if reviewStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "reviewStore cannot be nil"}
	}
	if datasetStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "datasetStore cannot be nil"}
	}
	if eventEmitter == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "eventEmitter cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &reviewServiceImpl{
		reviewStore:  reviewStore,
		datasetStore: datasetStore,
		summarizer:   summarizer,
		eventEmitter: eventEmitter,
		logger:       logger.With("component", "review_service"),
	}, nil
}

// RequestSecurityReview opens a review for a dataset.
func (s *reviewServiceImpl) RequestSecurityReview(
	ctx context.Context,
	datasetID uuid.UUID,
	requestedBy, reason string,
) (*domain.SecurityReview, error) {
	dataset, err := s.datasetStore.GetByID(ctx, datasetID)
	if err != nil {
		if errors.Is(err, store.ErrDatasetNotFound) {
			return nil, ErrDatasetNotFound
		}
		return nil, &ServiceError{
			Operation: "request_review",
			Message:   "failed to verify dataset",
			Err:       err,
		}
	}

	review, err := domain.NewSecurityReview(datasetID, requestedBy, reason)
	if err != nil {
		s.logger.Warn("invalid review request",
			"error", err,
			"dataset_id", datasetID)
		return nil, err
	}

	// Attach a generated risk summary when a summarizer is configured. The
	// review proceeds without one on any generation failure.
	if s.summarizer != nil {
		summary, err := s.summarizer.SummarizeRisk(ctx, dataset, reason)
		if err != nil {
			s.logger.Warn("risk summary generation failed, storing review without summary",
				"error", err,
				"dataset_id", datasetID)
		} else {
			review.RiskSummary = summary
		}
	}

	if err := s.reviewStore.Create(ctx, review); err != nil {
		s.logger.Error("failed to create security review",
			"error", err,
			"dataset_id", datasetID)
		return nil, &ServiceError{
			Operation: "request_review",
			Message:   "failed to save review",
			Err:       err,
		}
	}

	s.logger.Info("security review requested",
		"review_id", review.ID,
		"dataset_id", datasetID,
		"requested_by", requestedBy)

	emitTaskEvent(ctx, s.eventEmitter, s.logger, task.KindSecurityReviewRequested, map[string]any{
		"review_id":    review.ID.String(),
		"dataset_id":   datasetID.String(),
		"requested_by": requestedBy,
		"reason":       reason,
	})

	return review, nil
}

// GetReview retrieves a review by ID.
func (s *reviewServiceImpl) GetReview(ctx context.Context, id uuid.UUID) (*domain.SecurityReview, error) {
	review, err := s.reviewStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, &ServiceError{
			Operation: "get_review",
			Message:   "failed to load review",
			Err:       err,
		}
	}
	return review, nil
}

// UpdateReviewStatus moves a review to a new lifecycle status.
func (s *reviewServiceImpl) UpdateReviewStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.ReviewStatus,
) (*domain.SecurityReview, error) {
	if err := s.reviewStore.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, store.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, &ServiceError{
			Operation: "update_review_status",
			Message:   "failed to update review status",
			Err:       err,
		}
	}

	return s.GetReview(ctx, id)
}

package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aigovern/admin-api/internal/domain"
	"github.com/aigovern/admin-api/internal/events"
	"github.com/aigovern/admin-api/internal/store"
	"github.com/aigovern/admin-api/internal/task"
	"github.com/google/uuid"
)

// QualityService provides data-quality event logging and retrieval.
type QualityService interface {
	// LogQualityEvent appends a quality event for a dataset and notifies the
	// governance channel.
	LogQualityEvent(
		ctx context.Context,
		datasetID uuid.UUID,
		severity domain.QualitySeverity,
		check, detail, reportedBy string,
	) (*domain.QualityEvent, error)

	// ListQualityEvents retrieves events for a dataset, newest first.
	ListQualityEvents(ctx context.Context, datasetID uuid.UUID, limit, offset int) ([]*domain.QualityEvent, error)
}

type qualityServiceImpl struct {
	eventStore   store.QualityEventStore
	datasetStore store.DatasetStore
	eventEmitter events.EventEmitter
	logger       *slog.Logger
}

// NewQualityService creates a new QualityService.
// It returns an error if any of the required dependencies are nil.
func NewQualityService(
	eventStore store.QualityEventStore,
	datasetStore store.DatasetStore,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (QualityService, error) {
	if eventStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "eventStore cannot be nil"}
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

	return &qualityServiceImpl{
		eventStore:   eventStore,
		datasetStore: datasetStore,
		eventEmitter: eventEmitter,
		logger:       logger.With("component", "quality_service"),
	}, nil
}

// LogQualityEvent appends a quality event. The event is persisted first; the
// chat notification is best-effort and never fails the operation.
func (s *qualityServiceImpl) LogQualityEvent(
	ctx context.Context,
	datasetID uuid.UUID,
	severity domain.QualitySeverity,
	check, detail, reportedBy string,
) (*domain.QualityEvent, error) {
	// Reject events against unknown datasets up front so clients get a clean
	// 404 instead of a foreign key error.
	if _, err := s.datasetStore.GetByID(ctx, datasetID); err != nil {
		if errors.Is(err, store.ErrDatasetNotFound) {
			return nil, ErrDatasetNotFound
		}
		return nil, &ServiceError{
			Operation: "log_quality_event",
			Message:   "failed to verify dataset",
			Err:       err,
		}
	}

	event, err := domain.NewQualityEvent(datasetID, severity, check, detail, reportedBy)
	if err != nil {
		s.logger.Warn("invalid quality event submitted",
			"error", err,
			"dataset_id", datasetID)
		return nil, err
	}

	if err := s.eventStore.Create(ctx, event); err != nil {
		s.logger.Error("failed to log quality event",
			"error", err,
			"dataset_id", datasetID)
		return nil, &ServiceError{
			Operation: "log_quality_event",
			Message:   "failed to save quality event",
			Err:       err,
		}
	}

	s.logger.Info("quality event logged",
		"event_id", event.ID,
		"dataset_id", datasetID,
		"severity", severity)

	emitTaskEvent(ctx, s.eventEmitter, s.logger, task.KindQualityEventLogged, map[string]any{
		"dataset_id": datasetID.String(),
		"severity":   string(severity),
		"detail":     detail,
	})

	return event, nil
}

// ListQualityEvents retrieves events for a dataset, newest first.
func (s *qualityServiceImpl) ListQualityEvents(
	ctx context.Context,
	datasetID uuid.UUID,
	limit, offset int,
) ([]*domain.QualityEvent, error) {
	events, err := s.eventStore.ListByDataset(ctx, datasetID, limit, offset)
	if err != nil {
		return nil, &ServiceError{
			Operation: "list_quality_events",
			Message:   "failed to list quality events",
			Err:       err,
		}
	}
	return events, nil
}

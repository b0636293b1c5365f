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

// DatasetService provides dataset catalog operations.
type DatasetService interface {
	// CatalogDataset registers a new dataset in the governance catalog.
	CatalogDataset(ctx context.Context, name, owner, description, sensitivity string) (*domain.Dataset, error)

	// GetDataset retrieves a dataset by ID.
	GetDataset(ctx context.Context, id uuid.UUID) (*domain.Dataset, error)

	// ListDatasets retrieves catalogued datasets, newest first.
	ListDatasets(ctx context.Context, limit, offset int) ([]*domain.Dataset, error)

	// SetComplianceState moves a dataset to a new compliance state and
	// notifies the governance channel.
	SetComplianceState(ctx context.Context, id uuid.UUID, state domain.ComplianceState) (*domain.Dataset, error)
}

type datasetServiceImpl struct {
	datasetStore store.DatasetStore
	eventEmitter events.EventEmitter
	logger       *slog.Logger
}

// NewDatasetService creates a new DatasetService.
// It returns an error if any of the required dependencies are nil.
func NewDatasetService(
	datasetStore store.DatasetStore,
	eventEmitter events.EventEmitter,
	logger *slog.Logger,
) (DatasetService, error) {
	if datasetStore == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "datasetStore cannot be nil"}
	}
	if eventEmitter == nil {
		return nil, &ServiceError{Operation: "create_service", Message: "eventEmitter cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &datasetServiceImpl{
		datasetStore: datasetStore,
		eventEmitter: eventEmitter,
		logger:       logger.With("component", "dataset_service"),
	}, nil
}

// CatalogDataset registers a new dataset in the catalog.
func (s *datasetServiceImpl) CatalogDataset(
	ctx context.Context,
	name, owner, description, sensitivity string,
) (*domain.Dataset, error) {
	dataset, err := domain.NewDataset(name, owner, description, sensitivity)
	if err != nil {
		s.logger.Warn("invalid dataset submitted for cataloguing",
			"error", err,
			"name", name)
		return nil, err
	}

	if err := s.datasetStore.Create(ctx, dataset); err != nil {
		if errors.Is(err, store.ErrDatasetNameExists) {
			return nil, ErrDatasetNameTaken
		}
		s.logger.Error("failed to catalog dataset",
			"error", err,
			"dataset_id", dataset.ID)
		return nil, &ServiceError{
			Operation: "catalog_dataset",
			Message:   "failed to save dataset",
			Err:       err,
		}
	}

	s.logger.Info("dataset catalogued",
		"dataset_id", dataset.ID,
		"name", dataset.Name)
	return dataset, nil
}

// GetDataset retrieves a dataset by ID.
func (s *datasetServiceImpl) GetDataset(ctx context.Context, id uuid.UUID) (*domain.Dataset, error) {
	dataset, err := s.datasetStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrDatasetNotFound) {
			return nil, ErrDatasetNotFound
		}
		return nil, &ServiceError{
			Operation: "get_dataset",
			Message:   "failed to load dataset",
			Err:       err,
		}
	}
	return dataset, nil
}

// ListDatasets retrieves catalogued datasets, newest first.
func (s *datasetServiceImpl) ListDatasets(ctx context.Context, limit, offset int) ([]*domain.Dataset, error) {
	datasets, err := s.datasetStore.List(ctx, limit, offset)
	if err != nil {
		return nil, &ServiceError{
			Operation: "list_datasets",
			Message:   "failed to list datasets",
			Err:       err,
		}
	}
	return datasets, nil
}

// SetComplianceState moves a dataset to a new compliance state. The state
// change is persisted first; the chat notification is best-effort and never
// fails the operation.
func (s *datasetServiceImpl) SetComplianceState(
	ctx context.Context,
	id uuid.UUID,
	state domain.ComplianceState,
) (*domain.Dataset, error) {
	if err := s.datasetStore.UpdateComplianceState(ctx, id, state); err != nil {
		if errors.Is(err, store.ErrDatasetNotFound) {
			return nil, ErrDatasetNotFound
		}
		return nil, &ServiceError{
			Operation: "set_compliance_state",
			Message:   "failed to update compliance state",
			Err:       err,
		}
	}

	dataset, err := s.datasetStore.GetByID(ctx, id)
	if err != nil {
		return nil, &ServiceError{
			Operation: "set_compliance_state",
			Message:   "failed to reload dataset",
			Err:       err,
		}
	}

	s.logger.Info("compliance state changed",
		"dataset_id", id,
		"state", state)

	emitTaskEvent(ctx, s.eventEmitter, s.logger, task.KindComplianceStatusChanged, map[string]any{
		"dataset_id": id.String(),
		"state":      string(state),
	})

	return dataset, nil
}

package api

import (
	"context"
	"time"

	"github.com/aigovern/admin-api/internal/domain"
	"github.com/aigovern/admin-api/internal/service"
	"github.com/aigovern/admin-api/internal/store"
	"github.com/google/uuid"
)

// stubDatasetService implements service.DatasetService with canned results.
type stubDatasetService struct {
	dataset  *domain.Dataset
	datasets []*domain.Dataset
	err      error
}

func (s *stubDatasetService) CatalogDataset(ctx context.Context, name, owner, description, sensitivity string) (*domain.Dataset, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.dataset, nil
}

func (s *stubDatasetService) GetDataset(ctx context.Context, id uuid.UUID) (*domain.Dataset, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.dataset, nil
}

func (s *stubDatasetService) ListDatasets(ctx context.Context, limit, offset int) ([]*domain.Dataset, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.datasets, nil
}

func (s *stubDatasetService) SetComplianceState(ctx context.Context, id uuid.UUID, state domain.ComplianceState) (*domain.Dataset, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.dataset.ComplianceState = state
	return s.dataset, nil
}

// stubQualityService implements service.QualityService with canned results.
type stubQualityService struct {
	event  *domain.QualityEvent
	events []*domain.QualityEvent
	err    error

	lastSeverity domain.QualitySeverity
}

func (s *stubQualityService) LogQualityEvent(
	ctx context.Context,
	datasetID uuid.UUID,
	severity domain.QualitySeverity,
	check, detail, reportedBy string,
) (*domain.QualityEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastSeverity = severity
	return s.event, nil
}

func (s *stubQualityService) ListQualityEvents(ctx context.Context, datasetID uuid.UUID, limit, offset int) ([]*domain.QualityEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.events, nil
}

// stubReviewService implements service.ReviewService with canned results.
type stubReviewService struct {
	review *domain.SecurityReview
	err    error
}

func (s *stubReviewService) RequestSecurityReview(ctx context.Context, datasetID uuid.UUID, requestedBy, reason string) (*domain.SecurityReview, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.review, nil
}

func (s *stubReviewService) GetReview(ctx context.Context, id uuid.UUID) (*domain.SecurityReview, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.review, nil
}

func (s *stubReviewService) UpdateReviewStatus(ctx context.Context, id uuid.UUID, status domain.ReviewStatus) (*domain.SecurityReview, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.review.Status = status
	return s.review, nil
}

// stubCreditService implements service.CreditService.
type stubCreditService struct {
	request *domain.CreditRequest
	err     error
}

func (s *stubCreditService) RequestCredits(ctx context.Context, userID, userName, userEmail string, credits float64, reason string) (*domain.CreditRequest, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.request, nil
}

// stubUsageService implements service.UsageService.
type stubUsageService struct {
	record  *domain.UsageRecord
	summary *domain.UsageSummary
	err     error
}

func (s *stubUsageService) RecordUsage(ctx context.Context, datasetID uuid.UUID, userID, operation string, creditsSpent float64) (*domain.UsageRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.record, nil
}

func (s *stubUsageService) GetUsageSummary(ctx context.Context, from, to time.Time) (*domain.UsageSummary, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.summary, nil
}

// stubAdminUserStore implements store.AdminUserStore.
type stubAdminUserStore struct {
	user *domain.AdminUser
	err  error
}

func (s *stubAdminUserStore) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user == nil || s.user.Email != email {
		return nil, store.ErrAdminUserNotFound
	}
	return s.user, nil
}

// Interface conformance checks for the stubs.
var (
	_ service.DatasetService = (*stubDatasetService)(nil)
	_ service.QualityService = (*stubQualityService)(nil)
	_ service.ReviewService  = (*stubReviewService)(nil)
	_ service.CreditService  = (*stubCreditService)(nil)
	_ service.UsageService   = (*stubUsageService)(nil)
	_ store.AdminUserStore   = (*stubAdminUserStore)(nil)
)

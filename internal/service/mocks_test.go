package service

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/aigovern/admin-api/internal/domain"
	"github.com/aigovern/admin-api/internal/events"
	"github.com/aigovern/admin-api/internal/store"
	"github.com/google/uuid"
)

// mockDatasetStore is an in-memory store.DatasetStore with overridable
// failure injection.
type mockDatasetStore struct {
	mu       sync.Mutex
	datasets map[uuid.UUID]*domain.Dataset
	names    map[string]bool

	CreateErr error
	GetErr    error
	UpdateErr error
}

func newMockDatasetStore() *mockDatasetStore {
	return &mockDatasetStore{
		datasets: make(map[uuid.UUID]*domain.Dataset),
		names:    make(map[string]bool),
	}
}

func (m *mockDatasetStore) Create(ctx context.Context, dataset *domain.Dataset) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.names[dataset.Name] {
		return store.ErrDatasetNameExists
	}
	m.names[dataset.Name] = true
	m.datasets[dataset.ID] = dataset
	return nil
}

func (m *mockDatasetStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Dataset, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	dataset, ok := m.datasets[id]
	if !ok {
		return nil, store.ErrDatasetNotFound
	}
	return dataset, nil
}

func (m *mockDatasetStore) List(ctx context.Context, limit, offset int) ([]*domain.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Dataset
	for _, d := range m.datasets {
		out = append(out, d)
	}
	return out, nil
}

func (m *mockDatasetStore) UpdateComplianceState(ctx context.Context, id uuid.UUID, state domain.ComplianceState) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	dataset, ok := m.datasets[id]
	if !ok {
		return store.ErrDatasetNotFound
	}
	dataset.ComplianceState = state
	dataset.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *mockDatasetStore) WithTx(tx *sql.Tx) store.DatasetStore { return m }

// mockQualityEventStore is an in-memory store.QualityEventStore.
type mockQualityEventStore struct {
	mu     sync.Mutex
	events []*domain.QualityEvent

	CreateErr error
}

func (m *mockQualityEventStore) Create(ctx context.Context, event *domain.QualityEvent) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockQualityEventStore) ListByDataset(ctx context.Context, datasetID uuid.UUID, limit, offset int) ([]*domain.QualityEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.QualityEvent
	for _, e := range m.events {
		if e.DatasetID == datasetID {
			out = append(out, e)
		}
	}
	return out, nil
}

// mockReviewStore is an in-memory store.SecurityReviewStore.
type mockReviewStore struct {
	mu      sync.Mutex
	reviews map[uuid.UUID]*domain.SecurityReview

	CreateErr error
}

func newMockReviewStore() *mockReviewStore {
	return &mockReviewStore{reviews: make(map[uuid.UUID]*domain.SecurityReview)}
}

func (m *mockReviewStore) Create(ctx context.Context, review *domain.SecurityReview) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews[review.ID] = review
	return nil
}

func (m *mockReviewStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.SecurityReview, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	review, ok := m.reviews[id]
	if !ok {
		return nil, store.ErrReviewNotFound
	}
	return review, nil
}

func (m *mockReviewStore) UpdateRiskSummary(ctx context.Context, id uuid.UUID, summary string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	review, ok := m.reviews[id]
	if !ok {
		return store.ErrReviewNotFound
	}
	review.RiskSummary = summary
	return nil
}

func (m *mockReviewStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReviewStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	review, ok := m.reviews[id]
	if !ok {
		return store.ErrReviewNotFound
	}
	review.Status = status
	return nil
}

// mockCreditRequestStore is an in-memory store.CreditRequestStore.
type mockCreditRequestStore struct {
	mu       sync.Mutex
	requests []*domain.CreditRequest

	CreateErr error
}

func (m *mockCreditRequestStore) Create(ctx context.Context, req *domain.CreditRequest) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	return nil
}

// mockUsageStore is an in-memory store.UsageStore.
type mockUsageStore struct {
	mu      sync.Mutex
	records []*domain.UsageRecord

	RecordErr error
}

func (m *mockUsageStore) Record(ctx context.Context, rec *domain.UsageRecord) error {
	if m.RecordErr != nil {
		return m.RecordErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

func (m *mockUsageStore) Summarize(ctx context.Context, from, to time.Time) (*domain.UsageSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	summary := &domain.UsageSummary{WindowStart: from, WindowEnd: to}
	users := make(map[string]bool)
	for _, r := range m.records {
		if r.OccurredAt.Before(from) || !r.OccurredAt.Before(to) {
			continue
		}
		summary.TotalCalls++
		summary.TotalCredits += r.CreditsSpent
		users[r.UserID] = true
	}
	summary.UniqueUsers = int64(len(users))
	return summary, nil
}

// capturingEmitter records emitted events for assertions.
type capturingEmitter struct {
	mu     sync.Mutex
	events []*events.TaskRequestEvent

	EmitErr error
}

func (c *capturingEmitter) EmitEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	if c.EmitErr != nil {
		return c.EmitErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *capturingEmitter) Events() []*events.TaskRequestEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*events.TaskRequestEvent, len(c.events))
	copy(out, c.events)
	return out
}

// failingSummarizer always fails, for exercising the degraded path.
type failingSummarizer struct{ err error }

func (f *failingSummarizer) SummarizeRisk(ctx context.Context, dataset *domain.Dataset, reason string) (string, error) {
	return "", f.err
}

// fixedSummarizer returns a canned summary.
type fixedSummarizer struct{ summary string }

func (f *fixedSummarizer) SummarizeRisk(ctx context.Context, dataset *domain.Dataset, reason string) (string, error) {
	return f.summary, nil
}

package service

import (
	"context"
	"testing"

	"github.com/aigovern/admin-api/internal/domain"
	"github.com/aigovern/admin-api/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogQualityEvent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("persists and notifies", func(t *testing.T) {
		t.Parallel()

		datasets := newMockDatasetStore()
		dataset, err := domain.NewDataset("clickstream", "growth", "", "internal")
		require.NoError(t, err)
		require.NoError(t, datasets.Create(ctx, dataset))

		eventStore := &mockQualityEventStore{}
		emitter := &capturingEmitter{}
		svc, err := NewQualityService(eventStore, datasets, emitter, testLogger())
		require.NoError(t, err)

		event, err := svc.LogQualityEvent(ctx, dataset.ID, domain.QualitySeverityCritical,
			"null_rate", "user_id null rate exceeded 5%", "pipeline-monitor")
		require.NoError(t, err)
		assert.Equal(t, domain.QualitySeverityCritical, event.Severity)

		emitted := emitter.Events()
		require.Len(t, emitted, 1)
		assert.Equal(t, string(task.KindQualityEventLogged), emitted[0].Type)

		var payload struct {
			DatasetID string `json:"dataset_id"`
			Severity  string `json:"severity"`
			Detail    string `json:"detail"`
		}
		require.NoError(t, emitted[0].UnmarshalPayload(&payload))
		assert.Equal(t, dataset.ID.String(), payload.DatasetID)
		assert.Equal(t, "critical", payload.Severity)
		assert.Equal(t, "user_id null rate exceeded 5%", payload.Detail)
	})

	t.Run("unknown dataset", func(t *testing.T) {
		t.Parallel()

		svc, err := NewQualityService(&mockQualityEventStore{}, newMockDatasetStore(), &capturingEmitter{}, testLogger())
		require.NoError(t, err)

		dataset, err := domain.NewDataset("x", "y", "", "internal")
		require.NoError(t, err)

		_, err = svc.LogQualityEvent(ctx, dataset.ID, domain.QualitySeverityInfo, "freshness", "", "monitor")
		assert.ErrorIs(t, err, ErrDatasetNotFound)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		t.Parallel()

		datasets := newMockDatasetStore()
		dataset, err := domain.NewDataset("clickstream", "growth", "", "internal")
		require.NoError(t, err)
		require.NoError(t, datasets.Create(ctx, dataset))

		eventStore := &mockQualityEventStore{CreateErr: assert.AnError}
		emitter := &capturingEmitter{}
		svc, err := NewQualityService(eventStore, datasets, emitter, testLogger())
		require.NoError(t, err)

		_, err = svc.LogQualityEvent(ctx, dataset.ID, domain.QualitySeverityWarning, "schema_drift", "", "monitor")
		require.Error(t, err)

		var svcErr *ServiceError
		assert.ErrorAs(t, err, &svcErr)
		// No notification when the write failed.
		assert.Empty(t, emitter.Events())
	})
}

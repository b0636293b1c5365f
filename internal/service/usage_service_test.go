package service

import (
	"context"
	"testing"
	"time"

	"github.com/aigovern/admin-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageService(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	usage := &mockUsageStore{}
	svc, err := NewUsageService(usage, testLogger())
	require.NoError(t, err)

	dataset, err := domain.NewDataset("clickstream", "growth", "", "internal")
	require.NoError(t, err)

	_, err = svc.RecordUsage(ctx, dataset.ID, "u-1", "query", 2.5)
	require.NoError(t, err)
	_, err = svc.RecordUsage(ctx, dataset.ID, "u-2", "export", 7.5)
	require.NoError(t, err)

	rec := usage.records[0]
	summary, err := svc.GetUsageSummary(ctx, rec.OccurredAt.Add(-time.Minute), rec.OccurredAt.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TotalCalls)
	assert.Equal(t, 10.0, summary.TotalCredits)
	assert.Equal(t, int64(2), summary.UniqueUsers)
}

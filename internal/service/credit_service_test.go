package service

import (
	"context"
	"testing"

	"github.com/aigovern/admin-api/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestCredits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	requests := &mockCreditRequestStore{}
	emitter := &capturingEmitter{}
	svc, err := NewCreditService(requests, emitter, testLogger())
	require.NoError(t, err)

	req, err := svc.RequestCredits(ctx, "u-123", "Casey Kim", "casey@corp.example", 500, "quarterly evaluation runs")
	require.NoError(t, err)
	assert.Equal(t, float64(500), req.RequestedCredits)

	emitted := emitter.Events()
	require.Len(t, emitted, 1)
	assert.Equal(t, string(task.KindApprovalRequested), emitted[0].Type)

	var payload struct {
		UserID           string  `json:"user_id"`
		UserName         string  `json:"user_name"`
		UserEmail        string  `json:"user_email"`
		RequestedCredits float64 `json:"requested_credits"`
		Reason           string  `json:"reason"`
	}
	require.NoError(t, emitted[0].UnmarshalPayload(&payload))
	assert.Equal(t, "u-123", payload.UserID)
	assert.Equal(t, "Casey Kim", payload.UserName)
	assert.Equal(t, float64(500), payload.RequestedCredits)
	assert.Equal(t, "quarterly evaluation runs", payload.Reason)
}

package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopEmitter(ctx context.Context, p Payload) error { return nil }

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	t.Run("registers and resolves", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()
		require.NoError(t, r.Register(KindApprovalRequested, noopEmitter))

		emitter, ok := r.Resolve(KindApprovalRequested)
		assert.True(t, ok)
		assert.NotNil(t, emitter)
	})

	t.Run("duplicate registration fails", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()
		require.NoError(t, r.Register(KindUsageReportReady, noopEmitter))

		err := r.Register(KindUsageReportReady, noopEmitter)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")
	})

	t.Run("nil emitter fails", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry()
		assert.Error(t, r.Register(KindApprovalRequested, nil))
	})
}

func TestRegistry_Resolve_Unknown(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	emitter, ok := r.Resolve("never_registered")
	assert.False(t, ok)
	assert.Nil(t, emitter)
}

func TestRegistry_Kinds(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	require.NoError(t, r.Register(KindUsageReportReady, noopEmitter))
	require.NoError(t, r.Register(KindApprovalRequested, noopEmitter))

	assert.Equal(t, []Kind{KindApprovalRequested, KindUsageReportReady}, r.Kinds(),
		"kinds should be returned in sorted order")
}

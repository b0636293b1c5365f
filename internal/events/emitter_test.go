package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	events []*TaskRequestEvent
	err    error
}

func (h *recordingHandler) HandleEvent(ctx context.Context, event *TaskRequestEvent) error {
	h.events = append(h.events, event)
	return h.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInMemoryEventEmitter_EmitEvent(t *testing.T) {
	t.Parallel()

	t.Run("delivers to all handlers", func(t *testing.T) {
		t.Parallel()

		emitter := NewInMemoryEventEmitter(testLogger())
		h1 := &recordingHandler{}
		h2 := &recordingHandler{}
		emitter.RegisterHandler(h1)
		emitter.RegisterHandler(h2)

		event, err := NewTaskRequestEvent("quality_event_logged", map[string]string{"dataset_id": "ds-1"})
		require.NoError(t, err)

		require.NoError(t, emitter.EmitEvent(context.Background(), event))
		assert.Len(t, h1.events, 1)
		assert.Len(t, h2.events, 1)
	})

	t.Run("no handlers is not an error", func(t *testing.T) {
		t.Parallel()

		emitter := NewInMemoryEventEmitter(testLogger())
		event, err := NewTaskRequestEvent("approval_requested", nil)
		require.NoError(t, err)

		assert.NoError(t, emitter.EmitEvent(context.Background(), event))
	})

	t.Run("handler error does not stop delivery", func(t *testing.T) {
		t.Parallel()

		emitter := NewInMemoryEventEmitter(testLogger())
		failing := &recordingHandler{err: errors.New("handler boom")}
		healthy := &recordingHandler{}
		emitter.RegisterHandler(failing)
		emitter.RegisterHandler(healthy)

		event, err := NewTaskRequestEvent("usage_report_ready", nil)
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.EqualError(t, err, "handler boom")
		assert.Len(t, healthy.events, 1, "remaining handlers should still receive the event")
	})
}

func TestTaskRequestEvent_UnmarshalPayload(t *testing.T) {
	t.Parallel()

	event, err := NewTaskRequestEvent("security_review_requested", map[string]any{
		"review_id": "r-1",
		"reason":    "new restricted dataset",
	})
	require.NoError(t, err)

	var payload struct {
		ReviewID string `json:"review_id"`
		Reason   string `json:"reason"`
	}
	require.NoError(t, event.UnmarshalPayload(&payload))
	assert.Equal(t, "r-1", payload.ReviewID)
	assert.Equal(t, "new restricted dataset", payload.Reason)
}

package task

import (
	"context"
	"errors"
	"testing"

	"github.com/aigovern/admin-api/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSubmitter struct {
	tasks []Task
	err   error
}

func (s *recordingSubmitter) Submit(ctx context.Context, task Task) error {
	if s.err != nil {
		return s.err
	}
	s.tasks = append(s.tasks, task)
	return nil
}

func TestSubmitEventHandler_HandleEvent(t *testing.T) {
	t.Parallel()

	t.Run("submits task of the event kind", func(t *testing.T) {
		t.Parallel()

		submitter := &recordingSubmitter{}
		handler := NewSubmitEventHandler(submitter, discardLogger())

		event, err := events.NewTaskRequestEvent(string(KindApprovalRequested), map[string]any{
			"user_id": "u-1",
			"reason":  "more eval credits",
		})
		require.NoError(t, err)

		require.NoError(t, handler.HandleEvent(context.Background(), event))
		require.Len(t, submitter.tasks, 1)
		assert.Equal(t, KindApprovalRequested, submitter.tasks[0].Kind())
		assert.JSONEq(t, `{"user_id":"u-1","reason":"more eval credits"}`, string(submitter.tasks[0].Payload()))
	})

	t.Run("propagates submit failure", func(t *testing.T) {
		t.Parallel()

		submitter := &recordingSubmitter{err: errors.New("queue full")}
		handler := NewSubmitEventHandler(submitter, discardLogger())

		event, err := events.NewTaskRequestEvent(string(KindUsageReportReady), nil)
		require.NoError(t, err)

		err = handler.HandleEvent(context.Background(), event)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to submit task")
	})

	t.Run("rejects undecodable payload", func(t *testing.T) {
		t.Parallel()

		submitter := &recordingSubmitter{}
		handler := NewSubmitEventHandler(submitter, discardLogger())

		event := &events.TaskRequestEvent{
			Type:    string(KindQualityEventLogged),
			Payload: []byte(`"not an object"`),
		}

		err := handler.HandleEvent(context.Background(), event)
		assert.Error(t, err)
		assert.Empty(t, submitter.tasks)
	})
}

package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/aigovern/admin-api/internal/events"
)

// TaskSubmitter is the subset of TaskRunner the event handler needs.
type TaskSubmitter interface {
	Submit(ctx context.Context, task Task) error
}

// SubmitEventHandler turns TaskRequestEvents emitted by services into stored
// tasks on the runner. It is registered with the event emitter at startup.
type SubmitEventHandler struct {
	submitter TaskSubmitter
	logger    *slog.Logger
}

// NewSubmitEventHandler creates an event handler that submits tasks to the
// given runner.
func NewSubmitEventHandler(submitter TaskSubmitter, logger *slog.Logger) *SubmitEventHandler {
	return &SubmitEventHandler{
		submitter: submitter,
		logger:    logger.With("component", "task_submit_event_handler"),
	}
}

// HandleEvent builds a task of the event's kind carrying the event payload
// and submits it for background processing.
func (h *SubmitEventHandler) HandleEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	var payload Payload
	if len(event.Payload) > 0 {
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			h.logger.Error("failed to decode event payload",
				"event_id", event.ID,
				"event_type", event.Type,
				"error", err)
			return fmt.Errorf("failed to decode event payload: %w", err)
		}
	}

	t, err := NewTask(Kind(event.Type), payload)
	if err != nil {
		h.logger.Error("failed to create task from event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.submitter.Submit(ctx, t); err != nil {
		h.logger.Error("failed to submit task",
			"event_id", event.ID,
			"task_id", t.ID(),
			"task_kind", t.Kind(),
			"error", err)
		return fmt.Errorf("failed to submit task: %w", err)
	}

	h.logger.Debug("task submitted from event",
		"event_id", event.ID,
		"task_id", t.ID(),
		"task_kind", t.Kind())
	return nil
}

// Ensure SubmitEventHandler implements events.EventHandler
var _ events.EventHandler = (*SubmitEventHandler)(nil)

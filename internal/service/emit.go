package service

import (
	"context"
	"log/slog"

	"github.com/aigovern/admin-api/internal/events"
	"github.com/aigovern/admin-api/internal/task"
)

// emitTaskEvent publishes a task request event for the given kind. Emission
// is best-effort: a notification that cannot be queued is logged and dropped,
// it never fails the operation that triggered it.
func emitTaskEvent(
	ctx context.Context,
	emitter events.EventEmitter,
	logger *slog.Logger,
	kind task.Kind,
	payload map[string]any,
) {
	event, err := events.NewTaskRequestEvent(string(kind), payload)
	if err != nil {
		logger.Error("failed to create task request event",
			"task", kind,
			"error", err)
		return
	}

	if err := emitter.EmitEvent(ctx, event); err != nil {
		logger.Error("failed to emit task request event",
			"task", kind,
			"event_id", event.ID,
			"error", err)
	}
}

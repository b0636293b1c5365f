package task

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/aigovern/admin-api/internal/metrics"
)

// Outcome is the terminal state of a single dispatch. Every invocation ends
// in exactly one of these; none of them propagates an error to the caller.
type Outcome string

// Possible dispatch outcomes
const (
	OutcomeCompleted  Outcome = "completed"
	OutcomeFailed     Outcome = "failed"
	OutcomeUnresolved Outcome = "unresolved"
)

// Dispatcher bridges a synchronous worker invocation to an asynchronous
// emitter operation. Each call resolves the task name against the registry,
// runs the emitter to completion before returning, and contains every
// failure: an unresolved name or a failing emitter is logged and dropped,
// never surfaced to the caller. A poisoned task must not take down the
// worker's ability to process subsequent tasks.
type Dispatcher struct {
	registry *Registry
	logger   *slog.Logger
}

// NewDispatcher creates a Dispatcher over the given registry.
func NewDispatcher(registry *Registry, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		logger:   logger.With("component", "task_dispatcher"),
	}
}

// Dispatch resolves taskName to its emitter and runs it to completion. A nil
// payload is treated as empty. The returned Outcome is informational (status
// bookkeeping, metrics); Dispatch itself never returns an error and never
// panics outward.
func (d *Dispatcher) Dispatch(taskName string, payload Payload) Outcome {
	if payload == nil {
		payload = Payload{}
	}

	emitter, ok := d.registry.Resolve(Kind(taskName))
	if !ok {
		d.logger.Error("no emitter registered for task",
			"task", taskName)
		metrics.TaskDispatchTotal.WithLabelValues(taskName, string(OutcomeUnresolved)).Inc()
		return OutcomeUnresolved
	}

	if err := d.run(emitter, payload); err != nil {
		d.logger.Error("task dispatch failed",
			"task", taskName,
			"error", err)
		metrics.TaskDispatchTotal.WithLabelValues(taskName, string(OutcomeFailed)).Inc()
		return OutcomeFailed
	}

	d.logger.Debug("task dispatched", "task", taskName)
	metrics.TaskDispatchTotal.WithLabelValues(taskName, string(OutcomeCompleted)).Inc()
	return OutcomeCompleted
}

// run executes the emitter inside an invocation-scoped goroutine and blocks
// until it finishes. Each call gets its own completion channel; no execution
// state is shared or reused across invocations. Panics inside the emitter
// are converted to errors carrying the stack.
func (d *Dispatcher) run(emitter Emitter, payload Payload) error {
	done := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("emitter panicked: %v\n%s", r, debug.Stack())
			}
		}()
		done <- emitter(context.Background(), payload)
	}()

	return <-done
}

// Package scheduler runs periodic background jobs. Currently it hosts the
// usage rollup, which aggregates the previous day's usage and pushes a
// report to the governance channel.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aigovern/admin-api/internal/events"
	"github.com/aigovern/admin-api/internal/store"
	"github.com/aigovern/admin-api/internal/task"
	"github.com/robfig/cron/v3"
)

// rollupWindow is the period each usage report covers.
const rollupWindow = 24 * time.Hour

// UsageRollup periodically summarizes usage and emits a usage_report_ready
// task request.
type UsageRollup struct {
	cron         *cron.Cron
	usageStore   store.UsageStore
	eventEmitter events.EventEmitter
	logger       *slog.Logger
	timeFunc     func() time.Time // Injectable for testing
}

// NewUsageRollup creates a UsageRollup on the given five-field cron schedule.
// Returns an error if the schedule expression is invalid.
func NewUsageRollup(
	usageStore store.UsageStore,
	eventEmitter events.EventEmitter,
	schedule string,
	logger *slog.Logger,
) (*UsageRollup, error) {
	if usageStore == nil {
		return nil, fmt.Errorf("usageStore cannot be nil")
	}
	if eventEmitter == nil {
		return nil, fmt.Errorf("eventEmitter cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &UsageRollup{
		cron:         cron.New(),
		usageStore:   usageStore,
		eventEmitter: eventEmitter,
		logger:       logger.With("component", "usage_rollup"),
		timeFunc:     time.Now,
	}

	if _, err := r.cron.AddFunc(schedule, r.run); err != nil {
		return nil, fmt.Errorf("invalid rollup schedule %q: %w", schedule, err)
	}

	return r, nil
}

// Start begins the schedule. It returns immediately; jobs run on the cron's
// own goroutine.
func (r *UsageRollup) Start() {
	r.logger.Info("usage rollup scheduler started")
	r.cron.Start()
}

// Stop halts the schedule and waits for a running job to finish.
func (r *UsageRollup) Stop() {
	stopCtx := r.cron.Stop()
	<-stopCtx.Done()
	r.logger.Info("usage rollup scheduler stopped")
}

// run is invoked by the cron library.
func (r *UsageRollup) run() {
	if err := r.runOnce(context.Background()); err != nil {
		r.logger.Error("usage rollup failed", "error", err)
	}
}

// runOnce aggregates the trailing window ending now and emits the report
// task request.
func (r *UsageRollup) runOnce(ctx context.Context) error {
	to := r.timeFunc().UTC().Truncate(time.Minute)
	from := to.Add(-rollupWindow)

	summary, err := r.usageStore.Summarize(ctx, from, to)
	if err != nil {
		return fmt.Errorf("failed to summarize usage: %w", err)
	}

	r.logger.Info("usage rollup complete",
		"window_start", from,
		"window_end", to,
		"total_calls", summary.TotalCalls,
		"total_credits", summary.TotalCredits)

	window := fmt.Sprintf("%s to %s",
		from.Format(time.RFC3339), to.Format(time.RFC3339))

	event, err := events.NewTaskRequestEvent(string(task.KindUsageReportReady), map[string]any{
		"total_calls":   summary.TotalCalls,
		"total_credits": summary.TotalCredits,
		"window":        window,
	})
	if err != nil {
		return fmt.Errorf("failed to create usage report event: %w", err)
	}

	if err := r.eventEmitter.EmitEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to emit usage report event: %w", err)
	}

	return nil
}

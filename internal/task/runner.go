package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aigovern/admin-api/internal/metrics"
)

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int

	// StuckTaskAge defines how long a task can be in processing state
	// before it's considered stuck and reset
	StuckTaskAge time.Duration

	// StuckTaskCheckInterval defines how often to check for stuck tasks.
	// If zero, defaults to 5 minutes.
	StuckTaskCheckInterval time.Duration
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount:            2,
		QueueSize:              100,
		StuckTaskAge:           30 * time.Minute,
		StuckTaskCheckInterval: 5 * time.Minute,
	}
}

// TaskRunner manages background task processing. Submitted tasks are
// persisted, buffered through the in-memory queue, and handed to the
// dispatcher by a pool of workers. Because the dispatcher contains all
// execution failures, a worker never dies on a bad task; the runner's only
// error paths are persistence and queue capacity.
type TaskRunner struct {
	store      TaskStore
	dispatcher *Dispatcher
	queue      *TaskQueue
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     TaskRunnerConfig
	logger     *slog.Logger
}

// NewTaskRunner creates a new TaskRunner
func NewTaskRunner(store TaskStore, dispatcher *Dispatcher, config TaskRunnerConfig, logger *slog.Logger) *TaskRunner {
	if config.StuckTaskCheckInterval == 0 {
		config.StuckTaskCheckInterval = 5 * time.Minute
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &TaskRunner{
		store:      store,
		dispatcher: dispatcher,
		queue:      NewTaskQueue(config.QueueSize, logger),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger,
	}
}

// Submit persists a new task and adds it to the queue.
func (r *TaskRunner) Submit(ctx context.Context, task Task) error {
	// Save task to database first
	if err := r.store.SaveTask(ctx, task); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}

	if err := r.queue.Enqueue(task); err != nil {
		if errors.Is(err, ErrQueueFull) {
			return fmt.Errorf("task queue is full, try again later: %w", err)
		}
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	return nil
}

// Start initializes the worker pool and begins processing tasks
func (r *TaskRunner) Start() error {
	// Recover unfinished tasks from previous runs
	if err := r.Recover(); err != nil {
		return fmt.Errorf("failed to recover tasks: %w", err)
	}

	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}

	r.wg.Add(1)
	go r.stuckTaskMonitor()

	return nil
}

// Stop gracefully shuts down the task runner
func (r *TaskRunner) Stop() {
	r.cancelFunc()
	r.wg.Wait()
	r.queue.Close()
}

// Recover loads any unfinished tasks from the database and requeues them.
// Recovered rows only need their kind and payload; execution always goes
// through the registry.
func (r *TaskRunner) Recover() error {
	ctx := context.Background()

	pendingTasks, err := r.store.GetPendingTasks(ctx)
	if err != nil {
		return fmt.Errorf("failed to get pending tasks: %w", err)
	}

	// Tasks left in "processing" were interrupted by a crash.
	processingTasks, err := r.store.GetProcessingTasks(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to get processing tasks: %w", err)
	}

	r.logger.Info("recovering unfinished tasks",
		"pending_count", len(pendingTasks),
		"processing_count", len(processingTasks))

	for _, t := range pendingTasks {
		r.requeue(t)
	}

	for _, t := range processingTasks {
		if err := r.store.UpdateTaskStatus(ctx, t.ID(), TaskStatusPending, "Reset after recovery"); err != nil {
			r.logger.Error("failed to reset processing task status",
				"task_id", t.ID(),
				"task_kind", t.Kind(),
				"error", err)
			continue
		}
		r.requeue(t)
	}

	return nil
}

// requeue best-effort enqueues a recovered task; a full queue is logged, not
// fatal, since the stuck-task monitor will pick the row up again.
func (r *TaskRunner) requeue(t Task) {
	if err := r.queue.Enqueue(t); err != nil {
		r.logger.Error("failed to requeue task",
			"task_id", t.ID(),
			"task_kind", t.Kind(),
			"error", err)
	}
}

// worker processes tasks from the queue
func (r *TaskRunner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)

	for {
		select {
		case <-r.ctx.Done():
			r.logger.Debug("stopping worker", "worker_id", id)
			return

		case t, ok := <-r.queue.GetChannel():
			if !ok {
				r.logger.Debug("task channel closed, stopping worker", "worker_id", id)
				return
			}
			metrics.TaskQueueDepth.Set(float64(len(r.queue.GetChannel())))
			r.processTask(t, id)
		}
	}
}

// processTask handles a single task: mark it processing, hand it to the
// dispatcher, and record the terminal outcome. The dispatcher never returns
// an error; failures reach us only as an Outcome.
func (r *TaskRunner) processTask(t Task, workerID int) {
	ctx := context.Background()
	log := r.logger.With(
		"task_id", t.ID(),
		"task_kind", t.Kind(),
		"worker_id", workerID,
	)

	if err := r.store.UpdateTaskStatus(ctx, t.ID(), TaskStatusProcessing, ""); err != nil {
		log.Error("failed to update task status to processing", "error", err)
		return
	}

	log.Info("processing task")

	var payload Payload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			// A payload we stored but cannot decode is a failed task, not a
			// dead worker.
			log.Error("failed to decode task payload", "error", err)
			if updateErr := r.store.UpdateTaskStatus(ctx, t.ID(), TaskStatusFailed, err.Error()); updateErr != nil {
				log.Error("failed to update task status to failed", "error", updateErr)
			}
			return
		}
	}

	outcome := r.dispatcher.Dispatch(string(t.Kind()), payload)

	switch outcome {
	case OutcomeCompleted:
		log.Info("task completed successfully")
		if err := r.store.UpdateTaskStatus(ctx, t.ID(), TaskStatusCompleted, ""); err != nil {
			log.Error("failed to update task status to completed", "error", err)
		}
	case OutcomeUnresolved:
		if err := r.store.UpdateTaskStatus(ctx, t.ID(), TaskStatusFailed, "no emitter registered"); err != nil {
			log.Error("failed to update task status to failed", "error", err)
		}
	default:
		if err := r.store.UpdateTaskStatus(ctx, t.ID(), TaskStatusFailed, "emitter failed, see logs"); err != nil {
			log.Error("failed to update task status to failed", "error", err)
		}
	}
}

// stuckTaskMonitor periodically checks for tasks that have been in
// "processing" state for too long and resets them.
func (r *TaskRunner) stuckTaskMonitor() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.config.StuckTaskCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.ctx.Done():
			return

		case <-ticker.C:
			ctx := context.Background()

			stuckTasks, err := r.store.GetProcessingTasks(ctx, r.config.StuckTaskAge)
			if err != nil {
				r.logger.Error("failed to check for stuck tasks", "error", err)
				continue
			}

			if len(stuckTasks) == 0 {
				continue
			}

			r.logger.Info("found stuck tasks", "count", len(stuckTasks))

			for _, t := range stuckTasks {
				if err := r.store.UpdateTaskStatus(ctx, t.ID(), TaskStatusPending,
					"Reset after being stuck in processing state"); err != nil {
					r.logger.Error("failed to reset stuck task status",
						"task_id", t.ID(),
						"task_kind", t.Kind(),
						"error", err)
					continue
				}
				r.requeue(t)
			}
		}
	}
}

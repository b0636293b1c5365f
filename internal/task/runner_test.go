package task

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForStatus polls the mock store until the task reaches the wanted
// status or the timeout expires.
func waitForStatus(t *testing.T, store *MockTaskStore, id uuid.UUID, want TaskStatus) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got, ok := store.StatusOf(id); ok && got == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	got, _ := store.StatusOf(id)
	t.Fatalf("task %s never reached status %q (last seen %q)", id, want, got)
}

func newTestRunner(t *testing.T, store *MockTaskStore, registry *Registry, cfg TaskRunnerConfig) *TaskRunner {
	t.Helper()

	log := discardLogger()
	return NewTaskRunner(store, NewDispatcher(registry, log), cfg, log)
}

func TestTaskRunner_Submit(t *testing.T) {
	t.Parallel()

	t.Run("successful submission", func(t *testing.T) {
		t.Parallel()

		store := NewMockTaskStore()
		runner := newTestRunner(t, store, NewRegistry(), DefaultTaskRunnerConfig())

		task, err := NewTask(KindQualityEventLogged, Payload{"dataset_id": "ds-1"})
		require.NoError(t, err)

		require.NoError(t, runner.Submit(context.Background(), task))

		pending, _ := store.GetPendingTasks(context.Background())
		require.Len(t, pending, 1)
		assert.Equal(t, task.ID(), pending[0].ID())
	})

	t.Run("queue full", func(t *testing.T) {
		t.Parallel()

		store := NewMockTaskStore()
		cfg := DefaultTaskRunnerConfig()
		cfg.QueueSize = 1
		runner := newTestRunner(t, store, NewRegistry(), cfg)

		first, err := NewTask(KindQualityEventLogged, nil)
		require.NoError(t, err)
		require.NoError(t, runner.Submit(context.Background(), first))

		second, err := NewTask(KindQualityEventLogged, nil)
		require.NoError(t, err)
		err = runner.Submit(context.Background(), second)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "queue is full")
	})

	t.Run("store error", func(t *testing.T) {
		t.Parallel()

		store := NewMockTaskStore()
		store.SaveFn = func(ctx context.Context, task Task) error {
			return errors.New("mock store error")
		}
		runner := newTestRunner(t, store, NewRegistry(), DefaultTaskRunnerConfig())

		task, err := NewTask(KindQualityEventLogged, nil)
		require.NoError(t, err)

		err = runner.Submit(context.Background(), task)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to save task")
	})
}

func TestTaskRunner_ProcessesSubmittedTasks(t *testing.T) {
	t.Parallel()

	store := NewMockTaskStore()
	registry := NewRegistry()

	var calls atomic.Int64
	var received atomic.Value
	require.NoError(t, registry.Register(KindApprovalRequested, func(ctx context.Context, p Payload) error {
		calls.Add(1)
		received.Store(p)
		return nil
	}))

	runner := newTestRunner(t, store, registry, DefaultTaskRunnerConfig())
	require.NoError(t, runner.Start())
	defer runner.Stop()

	task, err := NewTask(KindApprovalRequested, Payload{"user_id": "u-7", "requested_credits": 5.0})
	require.NoError(t, err)
	require.NoError(t, runner.Submit(context.Background(), task))

	waitForStatus(t, store, task.ID(), TaskStatusCompleted)
	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, Payload{"user_id": "u-7", "requested_credits": 5.0}, received.Load())
}

func TestTaskRunner_FailedEmitterMarksTaskFailed(t *testing.T) {
	t.Parallel()

	store := NewMockTaskStore()
	registry := NewRegistry()
	require.NoError(t, registry.Register(KindUsageReportReady, func(ctx context.Context, p Payload) error {
		return errors.New("notification endpoint down")
	}))

	runner := newTestRunner(t, store, registry, DefaultTaskRunnerConfig())
	require.NoError(t, runner.Start())
	defer runner.Stop()

	task, err := NewTask(KindUsageReportReady, nil)
	require.NoError(t, err)
	require.NoError(t, runner.Submit(context.Background(), task))

	waitForStatus(t, store, task.ID(), TaskStatusFailed)
}

func TestTaskRunner_UnresolvedKindMarksTaskFailed(t *testing.T) {
	t.Parallel()

	store := NewMockTaskStore()
	runner := newTestRunner(t, store, NewRegistry(), DefaultTaskRunnerConfig())
	require.NoError(t, runner.Start())
	defer runner.Stop()

	task, err := NewTask(Kind("retired_task"), nil)
	require.NoError(t, err)
	require.NoError(t, runner.Submit(context.Background(), task))

	waitForStatus(t, store, task.ID(), TaskStatusFailed)
	assert.Equal(t, "no emitter registered", store.StatusMessageOf(task.ID()))
}

func TestTaskRunner_PoisonedTaskDoesNotStopWorker(t *testing.T) {
	t.Parallel()

	store := NewMockTaskStore()
	registry := NewRegistry()

	require.NoError(t, registry.Register("poison", func(ctx context.Context, p Payload) error {
		panic("malformed payload")
	}))
	var calls atomic.Int64
	require.NoError(t, registry.Register(KindQualityEventLogged, func(ctx context.Context, p Payload) error {
		calls.Add(1)
		return nil
	}))

	cfg := DefaultTaskRunnerConfig()
	cfg.WorkerCount = 1 // one worker must survive the poisoned task
	runner := newTestRunner(t, store, registry, cfg)
	require.NoError(t, runner.Start())
	defer runner.Stop()

	poisoned, err := NewTask("poison", nil)
	require.NoError(t, err)
	require.NoError(t, runner.Submit(context.Background(), poisoned))

	healthy, err := NewTask(KindQualityEventLogged, nil)
	require.NoError(t, err)
	require.NoError(t, runner.Submit(context.Background(), healthy))

	waitForStatus(t, store, poisoned.ID(), TaskStatusFailed)
	waitForStatus(t, store, healthy.ID(), TaskStatusCompleted)
	assert.Equal(t, int64(1), calls.Load())
}

func TestTaskRunner_Recover(t *testing.T) {
	t.Parallel()

	store := NewMockTaskStore()
	registry := NewRegistry()

	var calls atomic.Int64
	require.NoError(t, registry.Register(KindComplianceStatusChanged, func(ctx context.Context, p Payload) error {
		calls.Add(1)
		return nil
	}))

	// Seed the store with a pending and an interrupted "processing" task, as
	// if a previous process crashed.
	pendingPayload, _ := json.Marshal(Payload{"dataset_id": "ds-1"})
	pending := NewMockTask(uuid.New(), KindComplianceStatusChanged, pendingPayload)
	require.NoError(t, store.SaveTask(context.Background(), pending))

	interrupted := NewMockTask(uuid.New(), KindComplianceStatusChanged, pendingPayload)
	interrupted.TaskStatus = TaskStatusProcessing
	require.NoError(t, store.SaveTask(context.Background(), interrupted))

	runner := newTestRunner(t, store, registry, DefaultTaskRunnerConfig())
	require.NoError(t, runner.Start())
	defer runner.Stop()

	waitForStatus(t, store, pending.ID(), TaskStatusCompleted)
	waitForStatus(t, store, interrupted.ID(), TaskStatusCompleted)
	assert.Equal(t, int64(2), calls.Load())
}

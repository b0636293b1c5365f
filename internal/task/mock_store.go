package task

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockTaskStore implements the TaskStore interface for testing
type MockTaskStore struct {
	mutex           sync.RWMutex
	tasks           map[uuid.UUID]*MockTask
	taskStatusTimes map[uuid.UUID]time.Time
	statusMessages  map[uuid.UUID]string
	SaveFn          func(ctx context.Context, task Task) error
	UpdateStatusFn  func(ctx context.Context, taskID uuid.UUID, status TaskStatus, errorMsg string) error
}

// NewMockTaskStore creates a new MockTaskStore with default implementations
func NewMockTaskStore() *MockTaskStore {
	store := &MockTaskStore{
		tasks:           make(map[uuid.UUID]*MockTask),
		taskStatusTimes: make(map[uuid.UUID]time.Time),
		statusMessages:  make(map[uuid.UUID]string),
	}

	store.SaveFn = func(ctx context.Context, task Task) error {
		store.mutex.Lock()
		defer store.mutex.Unlock()

		mockTask, ok := task.(*MockTask)
		if !ok {
			mockTask = NewMockTask(task.ID(), task.Kind(), task.Payload())
			mockTask.TaskStatus = task.Status()
		}

		store.tasks[task.ID()] = mockTask
		store.taskStatusTimes[task.ID()] = time.Now()
		return nil
	}

	store.UpdateStatusFn = func(ctx context.Context, taskID uuid.UUID, status TaskStatus, errorMsg string) error {
		store.mutex.Lock()
		defer store.mutex.Unlock()

		mockTask, exists := store.tasks[taskID]
		if !exists {
			return nil // "not found" is a no-op, matching the real store
		}

		mockTask.TaskStatus = status
		store.taskStatusTimes[taskID] = time.Now()
		store.statusMessages[taskID] = errorMsg
		return nil
	}

	return store
}

// SaveTask persists a task to the mock store
func (s *MockTaskStore) SaveTask(ctx context.Context, task Task) error {
	return s.SaveFn(ctx, task)
}

// UpdateTaskStatus updates the status of a task in the mock store
func (s *MockTaskStore) UpdateTaskStatus(
	ctx context.Context,
	taskID uuid.UUID,
	status TaskStatus,
	errorMsg string,
) error {
	return s.UpdateStatusFn(ctx, taskID, status, errorMsg)
}

// GetPendingTasks retrieves all tasks with "pending" status
func (s *MockTaskStore) GetPendingTasks(ctx context.Context) ([]Task, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var pendingTasks []Task
	for _, t := range s.tasks {
		if t.Status() == TaskStatusPending {
			pendingTasks = append(pendingTasks, t)
		}
	}

	return pendingTasks, nil
}

// GetProcessingTasks retrieves tasks with "processing" status
func (s *MockTaskStore) GetProcessingTasks(ctx context.Context, olderThan time.Duration) ([]Task, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var processingTasks []Task
	now := time.Now()

	for _, t := range s.tasks {
		if t.Status() == TaskStatusProcessing {
			statusTime, exists := s.taskStatusTimes[t.ID()]
			if olderThan == 0 || (exists && now.Sub(statusTime) > olderThan) {
				processingTasks = append(processingTasks, t)
			}
		}
	}

	return processingTasks, nil
}

// WithTx implements TaskStore.WithTx for the mock store.
// The mock just returns the same store instance.
func (s *MockTaskStore) WithTx(tx *sql.Tx) TaskStore {
	return s
}

// StatusOf returns the last recorded status for a task ID.
func (s *MockTaskStore) StatusOf(id uuid.UUID) (TaskStatus, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return "", false
	}
	return t.Status(), true
}

// StatusMessageOf returns the last recorded status message for a task ID.
func (s *MockTaskStore) StatusMessageOf(id uuid.UUID) string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.statusMessages[id]
}

// MockTask is a simple implementation of the Task interface for testing
type MockTask struct {
	TaskID      uuid.UUID
	TaskKind    Kind
	TaskPayload []byte
	TaskStatus  TaskStatus
}

// NewMockTask creates a new MockTask with the given ID and kind
func NewMockTask(id uuid.UUID, kind Kind, payload []byte) *MockTask {
	return &MockTask{
		TaskID:      id,
		TaskKind:    kind,
		TaskPayload: payload,
		TaskStatus:  TaskStatusPending,
	}
}

// ID returns the task's unique identifier
func (t *MockTask) ID() uuid.UUID {
	return t.TaskID
}

// Kind returns the task kind
func (t *MockTask) Kind() Kind {
	return t.TaskKind
}

// Payload returns the task data as a byte slice
func (t *MockTask) Payload() []byte {
	return t.TaskPayload
}

// Status returns the current task status
func (t *MockTask) Status() TaskStatus {
	return t.TaskStatus
}

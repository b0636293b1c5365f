package task

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the current state of a stored task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Kind identifies a task kind. Every Kind maps to exactly one registered
// emitter; dispatching an unregistered Kind is a logged no-op.
type Kind string

// Known task kinds. The registry is populated with one emitter per kind at
// startup; the set of valid kinds is owned by the emitter module, not the
// dispatcher.
const (
	KindApprovalRequested       Kind = "approval_requested"
	KindQualityEventLogged      Kind = "quality_event_logged"
	KindUsageReportReady        Kind = "usage_report_ready"
	KindSecurityReviewRequested Kind = "security_review_requested"
	KindComplianceStatusChanged Kind = "compliance_status_changed"
)

// Payload carries the named arguments for an emitter invocation. A nil
// Payload is equivalent to an empty one. Emitters decode the entries they
// need; unexpected shapes surface as emitter errors, not dispatcher errors.
type Payload map[string]any

// Emitter is an asynchronous operation that performs a side effect (such as
// sending a chat notification) for one task kind. Emitters may perform
// network I/O and must honor ctx cancellation.
type Emitter func(ctx context.Context, p Payload) error

// Task represents a unit of background work to be processed.
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Kind returns the task kind
	Kind() Kind

	// Payload returns the task data as JSON
	Payload() []byte

	// Status returns the current task status
	Status() TaskStatus
}

// TaskStore defines the interface for persisting tasks.
type TaskStore interface {
	// SaveTask persists a task to the database
	SaveTask(ctx context.Context, task Task) error

	// UpdateTaskStatus updates the status of a task
	UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status TaskStatus, errorMsg string) error

	// GetPendingTasks retrieves all tasks with "pending" status
	GetPendingTasks(ctx context.Context) ([]Task, error)

	// GetProcessingTasks retrieves tasks with "processing" status.
	// If olderThan is non-zero, only returns tasks that have been in this
	// state longer than the specified duration.
	GetProcessingTasks(ctx context.Context, olderThan time.Duration) ([]Task, error)

	// WithTx returns a new TaskStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}

// emitterTask is the concrete Task created by services. It is a plain record
// of kind + JSON payload; execution happens in the dispatcher.
type emitterTask struct {
	id      uuid.UUID
	kind    Kind
	payload []byte
	status  TaskStatus
}

// NewTask creates a pending task of the given kind carrying the payload as
// JSON. Returns an error only if the payload cannot be marshaled.
func NewTask(kind Kind, payload Payload) (Task, error) {
	if payload == nil {
		payload = Payload{}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &emitterTask{
		id:      uuid.New(),
		kind:    kind,
		payload: data,
		status:  TaskStatusPending,
	}, nil
}

func (t *emitterTask) ID() uuid.UUID      { return t.id }
func (t *emitterTask) Kind() Kind         { return t.kind }
func (t *emitterTask) Payload() []byte    { return t.payload }
func (t *emitterTask) Status() TaskStatus { return t.status }

// NewRecoveredTask reconstructs a Task from a stored row. Recovered tasks
// carry everything needed to re-dispatch them: execution always goes through
// the emitter registry, keyed by Kind.
func NewRecoveredTask(id uuid.UUID, kind Kind, payload []byte, status TaskStatus) Task {
	return &emitterTask{
		id:      id,
		kind:    kind,
		payload: payload,
		status:  status,
	}
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aigovern/admin-api/internal/platform/logger"
	"github.com/aigovern/admin-api/internal/store"
	"github.com/aigovern/admin-api/internal/task"
	"github.com/google/uuid"
)

// PostgresTaskStore implements the task.TaskStore interface using PostgreSQL.
type PostgresTaskStore struct {
	db store.DBTX
}

// NewPostgresTaskStore creates a new PostgresTaskStore.
func NewPostgresTaskStore(db store.DBTX) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	return &PostgresTaskStore{
		db: db,
	}
}

// Ensure PostgresTaskStore implements task.TaskStore interface
var _ task.TaskStore = (*PostgresTaskStore)(nil)

// SaveTask persists a task to the database.
func (s *PostgresTaskStore) SaveTask(ctx context.Context, t task.Task) error {
	log := logger.FromContext(ctx)

	query := `
		INSERT INTO tasks (id, kind, payload, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, query,
		t.ID(),
		t.Kind(),
		t.Payload(),
		t.Status(),
		now,
		now,
	)

	if err != nil {
		log.Error("failed to save task",
			"task_id", t.ID(),
			"task_kind", t.Kind(),
			"error", err)
		return fmt.Errorf("failed to save task to database: %w", MapError(err))
	}

	return nil
}

// UpdateTaskStatus updates the status of a task in the database.
func (s *PostgresTaskStore) UpdateTaskStatus(
	ctx context.Context,
	taskID uuid.UUID,
	status task.TaskStatus,
	errorMsg string,
) error {
	log := logger.FromContext(ctx)

	query := `
		UPDATE tasks
		SET status = $1, error_message = $2, updated_at = $3
		WHERE id = $4
	`

	now := time.Now().UTC()

	result, err := s.db.ExecContext(ctx, query,
		status,
		errorMsg,
		now,
		taskID,
	)

	if err != nil {
		log.Error("failed to update task status",
			"task_id", taskID,
			"status", status,
			"error", err)
		return fmt.Errorf("failed to update task status: %w", MapError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			"task_id", taskID,
			"error", err)
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		log.Warn("no task found with ID to update status",
			"task_id", taskID)
		return nil // Task not found, treat as no-op
	}

	return nil
}

// GetPendingTasks retrieves all tasks with "pending" status.
func (s *PostgresTaskStore) GetPendingTasks(ctx context.Context) ([]task.Task, error) {
	return s.getTasksByStatus(ctx, task.TaskStatusPending, 0)
}

// GetProcessingTasks retrieves tasks with "processing" status, optionally
// filtered to tasks that have not been touched for olderThan.
func (s *PostgresTaskStore) GetProcessingTasks(
	ctx context.Context,
	olderThan time.Duration,
) ([]task.Task, error) {
	return s.getTasksByStatus(ctx, task.TaskStatusProcessing, olderThan)
}

// WithTx returns a new PostgresTaskStore that uses the provided transaction.
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) task.TaskStore {
	return &PostgresTaskStore{
		db: tx,
	}
}

// getTasksByStatus is a helper method to get tasks by status with an optional
// age filter.
func (s *PostgresTaskStore) getTasksByStatus(
	ctx context.Context,
	status task.TaskStatus,
	olderThan time.Duration,
) ([]task.Task, error) {
	log := logger.FromContext(ctx)

	var query string
	var args []interface{}

	if olderThan > 0 {
		query = `
			SELECT id, kind, payload, status
			FROM tasks
			WHERE status = $1 AND updated_at < $2
			ORDER BY created_at ASC
		`
		args = []interface{}{status, time.Now().UTC().Add(-olderThan)}
	} else {
		query = `
			SELECT id, kind, payload, status
			FROM tasks
			WHERE status = $1
			ORDER BY created_at ASC
		`
		args = []interface{}{status}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks by status",
			"status", status,
			"error", err)
		return nil, fmt.Errorf("failed to query tasks by status: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	var tasks []task.Task

	for rows.Next() {
		var id uuid.UUID
		var kind task.Kind
		var payload []byte
		var taskStatus task.TaskStatus

		if err := rows.Scan(&id, &kind, &payload, &taskStatus); err != nil {
			log.Error("failed to scan task row",
				"status", status,
				"error", err)
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}

		tasks = append(tasks, task.NewRecoveredTask(id, kind, payload, taskStatus))
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows",
			"status", status,
			"error", err)
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/aigovern/admin-api/internal/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeResult implements sql.Result for testing CheckRowsAffected.
type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    error
		sentinel error
	}{
		{
			name:     "nil error",
			input:    nil,
			sentinel: nil,
		},
		{
			name:     "no rows maps to not found",
			input:    sql.ErrNoRows,
			sentinel: store.ErrNotFound,
		},
		{
			name:     "unique violation maps to duplicate",
			input:    &pgconn.PgError{Code: "23505", ConstraintName: "datasets_name_key"},
			sentinel: store.ErrDuplicate,
		},
		{
			name:     "foreign key violation maps to invalid entity",
			input:    &pgconn.PgError{Code: "23503", ConstraintName: "quality_events_dataset_id_fkey"},
			sentinel: store.ErrInvalidEntity,
		},
		{
			name:     "check violation maps to invalid entity",
			input:    &pgconn.PgError{Code: "23514", ConstraintName: "datasets_compliance_state_check"},
			sentinel: store.ErrInvalidEntity,
		},
		{
			name:     "not null violation maps to invalid entity",
			input:    &pgconn.PgError{Code: "23502", ColumnName: "owner"},
			sentinel: store.ErrInvalidEntity,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mapped := MapError(tc.input)
			if tc.sentinel == nil {
				assert.NoError(t, mapped)
				return
			}
			assert.ErrorIs(t, mapped, tc.sentinel)
		})
	}

	t.Run("unmapped errors pass through", func(t *testing.T) {
		t.Parallel()

		original := errors.New("connection refused")
		assert.Equal(t, original, MapError(original))
	})

	t.Run("wrapped errors are still detected", func(t *testing.T) {
		t.Parallel()

		wrapped := fmt.Errorf("query failed: %w", sql.ErrNoRows)
		assert.ErrorIs(t, MapError(wrapped), store.ErrNotFound)
	})
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	t.Run("rows affected returns nil", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}, "dataset"))
	})

	t.Run("zero rows returns not found with entity name", func(t *testing.T) {
		t.Parallel()

		err := CheckRowsAffected(fakeResult{rows: 0}, "dataset")
		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrNotFound)
		assert.Contains(t, err.Error(), "dataset")
	})

	t.Run("zero rows and empty entity returns bare sentinel", func(t *testing.T) {
		t.Parallel()

		err := CheckRowsAffected(fakeResult{rows: 0}, "")
		assert.Equal(t, store.ErrNotFound, err)
	})

	t.Run("rows affected error is wrapped", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("driver does not support RowsAffected")
		err := CheckRowsAffected(fakeResult{err: cause}, "dataset")
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("nil result is an error", func(t *testing.T) {
		t.Parallel()

		assert.Error(t, CheckRowsAffected(nil, "dataset"))
	})
}

func TestMapUniqueViolation(t *testing.T) {
	t.Parallel()

	uniqueErr := &pgconn.PgError{Code: "23505", ConstraintName: "datasets_name_key"}

	t.Run("specific error takes precedence", func(t *testing.T) {
		t.Parallel()

		err := MapUniqueViolation(uniqueErr, "dataset", store.ErrDatasetNameExists)
		assert.ErrorIs(t, err, store.ErrDatasetNameExists)
	})

	t.Run("falls back to duplicate sentinel", func(t *testing.T) {
		t.Parallel()

		err := MapUniqueViolation(uniqueErr, "dataset", nil)
		assert.ErrorIs(t, err, store.ErrDuplicate)
		assert.Contains(t, err.Error(), "dataset already exists")
	})

	t.Run("non unique violations pass through", func(t *testing.T) {
		t.Parallel()

		original := errors.New("something else")
		assert.Equal(t, original, MapUniqueViolation(original, "dataset", store.ErrDatasetNameExists))
	})
}

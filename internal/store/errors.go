package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors below.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., two datasets with the same name).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrUpdateFailed is returned when an update operation fails, for example
	// because the entity does not exist or the update violates constraints.
	ErrUpdateFailed = errors.New("update failed")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrDatasetNotFound indicates that the requested dataset does not exist.
	ErrDatasetNotFound = fmt.Errorf("%w: dataset", ErrNotFound)

	// ErrReviewNotFound indicates that the requested security review does not exist.
	ErrReviewNotFound = fmt.Errorf("%w: security review", ErrNotFound)

	// ErrAdminUserNotFound indicates that the requested admin user does not exist.
	ErrAdminUserNotFound = fmt.Errorf("%w: admin user", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrDatasetNameExists indicates that a dataset with the given name is
	// already catalogued.
	ErrDatasetNameExists = fmt.Errorf("%w: dataset name", ErrDuplicate)

	// ErrEmailExists indicates that an admin user with the given email
	// already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

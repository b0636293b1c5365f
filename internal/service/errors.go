// Package service provides application-level services for the governance
// catalog: datasets, quality events, security reviews, usage analytics, and
// credit requests.
package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check these with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrDatasetNotFound indicates the dataset does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrDatasetNotFound = errors.New("dataset not found")

	// ErrDatasetNameTaken indicates the catalog already has a dataset with
	// this name. API layer should map this to HTTP 409 Conflict.
	ErrDatasetNameTaken = errors.New("dataset name already exists")

	// ErrReviewNotFound indicates the security review does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrReviewNotFound = errors.New("security review not found")
)

// ServiceError wraps unexpected errors from a service with operation context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "catalog_dataset")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

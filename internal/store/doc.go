// Package store defines the persistence interfaces and shared error taxonomy
// used by the application's services and handlers. Concrete implementations
// live in internal/platform/postgres.
package store

// Package postgres provides PostgreSQL implementations of the store
// interfaces. Stores accept a store.DBTX so they can run against either a
// connection pool or a transaction, and map driver errors onto the store
// sentinel errors via MapError.
package postgres

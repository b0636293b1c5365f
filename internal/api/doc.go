// Package api contains the HTTP handlers for the governance admin API.
// Handlers decode and validate requests, delegate to the service layer, and
// translate service errors into sanitized JSON responses via the shared
// helpers.
package api

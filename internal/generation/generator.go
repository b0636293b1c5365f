// Package generation defines the interface for LLM-backed text generation
// used by the security review workflow, along with its error taxonomy.
package generation

import (
	"context"
	"errors"

	"github.com/aigovern/admin-api/internal/domain"
)

// Common error types for generation operations.
var (
	// ErrInvalidConfig indicates the generator was configured incorrectly.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrInvalidResponse indicates the model returned an unusable response.
	ErrInvalidResponse = errors.New("invalid model response")

	// ErrContentBlocked indicates the model refused the request on safety
	// grounds. This is permanent for a given prompt.
	ErrContentBlocked = errors.New("content blocked by safety filters")

	// ErrTransientFailure indicates a retryable failure that persisted past
	// the retry budget.
	ErrTransientFailure = errors.New("transient generation failure")
)

// RiskSummarizer produces a short, human-readable risk summary for a
// security review of a dataset. Implementations may call external model
// APIs; callers must treat failures as non-fatal and proceed without a
// summary.
type RiskSummarizer interface {
	SummarizeRisk(ctx context.Context, dataset *domain.Dataset, reason string) (string, error)
}

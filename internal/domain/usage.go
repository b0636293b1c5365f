package domain

import (
	"time"

	"github.com/google/uuid"
)

// UsageRecord captures a single metered model or dataset access, reported by
// the serving layer. Records are append-only; analytics aggregate over them.
type UsageRecord struct {
	ID           uuid.UUID `json:"id"`
	DatasetID    uuid.UUID `json:"dataset_id"`
	UserID       string    `json:"user_id"`
	Operation    string    `json:"operation"`
	CreditsSpent float64   `json:"credits_spent"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// UsageSummary is the aggregate view returned by the analytics endpoint and
// fed into the scheduled usage report.
type UsageSummary struct {
	WindowStart  time.Time `json:"window_start"`
	WindowEnd    time.Time `json:"window_end"`
	TotalCalls   int64     `json:"total_calls"`
	TotalCredits float64   `json:"total_credits"`
	UniqueUsers  int64     `json:"unique_users"`
}

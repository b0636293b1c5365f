package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReviewStatus represents the lifecycle state of a security review request.
type ReviewStatus string

// Possible review status values
const (
	ReviewStatusRequested ReviewStatus = "requested"
	ReviewStatusInReview  ReviewStatus = "in_review"
	ReviewStatusApproved  ReviewStatus = "approved"
	ReviewStatusRejected  ReviewStatus = "rejected"
)

// Common validation errors for SecurityReview
var (
	ErrEmptyReviewID        = errors.New("review ID cannot be empty")
	ErrEmptyReviewDatasetID = errors.New("review dataset ID cannot be empty")
	ErrEmptyReviewReason    = errors.New("review reason cannot be empty")
	ErrInvalidReviewStatus  = errors.New("invalid review status")
)

// SecurityReview is a request to evaluate a dataset or model change for
// security concerns. RiskSummary is optionally filled by the generation
// service after creation.
type SecurityReview struct {
	ID          uuid.UUID    `json:"id"`
	DatasetID   uuid.UUID    `json:"dataset_id"`
	RequestedBy string       `json:"requested_by"`
	Reason      string       `json:"reason"`
	Status      ReviewStatus `json:"status"`
	RiskSummary string       `json:"risk_summary,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewSecurityReview creates a validated review request in the requested state.
func NewSecurityReview(datasetID uuid.UUID, requestedBy, reason string) (*SecurityReview, error) {
	now := time.Now().UTC()
	review := &SecurityReview{
		ID:          uuid.New(),
		DatasetID:   datasetID,
		RequestedBy: requestedBy,
		Reason:      reason,
		Status:      ReviewStatusRequested,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := review.Validate(); err != nil {
		return nil, err
	}

	return review, nil
}

// Validate checks if the SecurityReview has valid data.
func (r *SecurityReview) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyReviewID
	}

	if r.DatasetID == uuid.Nil {
		return ErrEmptyReviewDatasetID
	}

	if r.Reason == "" {
		return ErrEmptyReviewReason
	}

	switch r.Status {
	case ReviewStatusRequested, ReviewStatusInReview, ReviewStatusApproved, ReviewStatusRejected:
		return nil
	default:
		return ErrInvalidReviewStatus
	}
}

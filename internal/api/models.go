package api

import (
	"github.com/google/uuid"
)

// Common request/response structures

// LoginRequest defines the payload for the admin login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for the login endpoint.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated admin
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// CreateDatasetRequest defines the payload for cataloguing a dataset.
type CreateDatasetRequest struct {
	Name        string `json:"name"        validate:"required,min=1,max=200"`
	Owner       string `json:"owner"       validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Sensitivity string `json:"sensitivity" validate:"required,oneof=public internal confidential restricted"`
}

// UpdateComplianceRequest defines the payload for moving a dataset to a new
// compliance state.
type UpdateComplianceRequest struct {
	State string `json:"state" validate:"required,oneof=unreviewed in_review compliant flagged"`
}

// CreateQualityEventRequest defines the payload for logging a quality event.
type CreateQualityEventRequest struct {
	Severity   string `json:"severity"    validate:"required,oneof=info warning critical"`
	Check      string `json:"check"       validate:"required,min=1,max=200"`
	Detail     string `json:"detail"      validate:"max=2000"`
	ReportedBy string `json:"reported_by" validate:"required,min=1,max=200"`
}

// CreateReviewRequest defines the payload for requesting a security review.
type CreateReviewRequest struct {
	DatasetID   uuid.UUID `json:"dataset_id"   validate:"required"`
	RequestedBy string    `json:"requested_by" validate:"required,min=1,max=200"`
	Reason      string    `json:"reason"       validate:"required,min=1,max=2000"`
}

// UpdateReviewStatusRequest defines the payload for moving a review to a new
// lifecycle status.
type UpdateReviewStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=requested in_review approved rejected"`
}

// CreateCreditRequestRequest defines the payload for submitting a credit
// request for approval.
type CreateCreditRequestRequest struct {
	UserID           string  `json:"user_id"           validate:"required,min=1,max=200"`
	UserName         string  `json:"user_name"         validate:"required,min=1,max=200"`
	UserEmail        string  `json:"user_email"        validate:"required,email"`
	RequestedCredits float64 `json:"requested_credits" validate:"required,gt=0"`
	Reason           string  `json:"reason"            validate:"required,min=1,max=2000"`
}

// RecordUsageRequest defines the payload for recording a usage event.
type RecordUsageRequest struct {
	DatasetID    uuid.UUID `json:"dataset_id"    validate:"required"`
	UserID       string    `json:"user_id"       validate:"required,min=1,max=200"`
	Operation    string    `json:"operation"     validate:"required,min=1,max=200"`
	CreditsSpent float64   `json:"credits_spent" validate:"gte=0"`
}

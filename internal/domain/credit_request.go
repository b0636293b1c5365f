package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for CreditRequest
var (
	ErrEmptyCreditRequestID   = errors.New("credit request ID cannot be empty")
	ErrEmptyCreditRequestUser = errors.New("credit request user cannot be empty")
	ErrNonPositiveCredits     = errors.New("requested credits must be positive")
)

// CreditRequest is a user's request for additional usage credits. Approval
// happens out of band; creating one triggers an approval notification.
type CreditRequest struct {
	ID               uuid.UUID `json:"id"`
	UserID           string    `json:"user_id"`
	UserName         string    `json:"user_name"`
	UserEmail        string    `json:"user_email"`
	RequestedCredits float64   `json:"requested_credits"`
	Reason           string    `json:"reason"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewCreditRequest creates a validated credit request.
func NewCreditRequest(userID, userName, userEmail string, credits float64, reason string) (*CreditRequest, error) {
	req := &CreditRequest{
		ID:               uuid.New(),
		UserID:           userID,
		UserName:         userName,
		UserEmail:        userEmail,
		RequestedCredits: credits,
		Reason:           reason,
		CreatedAt:        time.Now().UTC(),
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	return req, nil
}

// Validate checks if the CreditRequest has valid data.
func (r *CreditRequest) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyCreditRequestID
	}

	if r.UserID == "" {
		return ErrEmptyCreditRequestUser
	}

	if r.RequestedCredits <= 0 {
		return ErrNonPositiveCredits
	}

	return nil
}

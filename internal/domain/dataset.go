package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ComplianceState represents the compliance review state of a dataset.
type ComplianceState string

// Possible compliance state values
const (
	ComplianceStateUnreviewed ComplianceState = "unreviewed"
	ComplianceStateInReview   ComplianceState = "in_review"
	ComplianceStateCompliant  ComplianceState = "compliant"
	ComplianceStateFlagged    ComplianceState = "flagged"
)

// Common validation errors for Dataset
var (
	ErrEmptyDatasetID          = errors.New("dataset ID cannot be empty")
	ErrEmptyDatasetName        = errors.New("dataset name cannot be empty")
	ErrEmptyDatasetOwner       = errors.New("dataset owner cannot be empty")
	ErrInvalidComplianceState  = errors.New("invalid compliance state")
)

// Dataset represents a catalogued dataset under governance. It tracks the
// registered metadata plus the current compliance state maintained by the
// review workflow.
type Dataset struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Owner           string          `json:"owner"`
	Description     string          `json:"description"`
	Sensitivity     string          `json:"sensitivity"`
	ComplianceState ComplianceState `json:"compliance_state"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewDataset creates a new Dataset with the given metadata. It generates a
// new UUID, marks the dataset unreviewed, and sets timestamps.
// Returns an error if validation fails.
func NewDataset(name, owner, description, sensitivity string) (*Dataset, error) {
	now := time.Now().UTC()
	ds := &Dataset{
		ID:              uuid.New(),
		Name:            name,
		Owner:           owner,
		Description:     description,
		Sensitivity:     sensitivity,
		ComplianceState: ComplianceStateUnreviewed,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}

	return ds, nil
}

// Validate checks if the Dataset has valid data.
func (d *Dataset) Validate() error {
	if d.ID == uuid.Nil {
		return ErrEmptyDatasetID
	}

	if d.Name == "" {
		return ErrEmptyDatasetName
	}

	if d.Owner == "" {
		return ErrEmptyDatasetOwner
	}

	if !isValidComplianceState(d.ComplianceState) {
		return ErrInvalidComplianceState
	}

	return nil
}

// Validate checks that the compliance state is one of the known values.
func (s ComplianceState) Validate() error {
	if !isValidComplianceState(s) {
		return ErrInvalidComplianceState
	}
	return nil
}

func isValidComplianceState(s ComplianceState) bool {
	switch s {
	case ComplianceStateUnreviewed, ComplianceStateInReview,
		ComplianceStateCompliant, ComplianceStateFlagged:
		return true
	default:
		return false
	}
}

package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// QualitySeverity represents how serious a data-quality event is.
type QualitySeverity string

// Possible severity values
const (
	QualitySeverityInfo     QualitySeverity = "info"
	QualitySeverityWarning  QualitySeverity = "warning"
	QualitySeverityCritical QualitySeverity = "critical"
)

// Common validation errors for QualityEvent
var (
	ErrEmptyQualityEventID        = errors.New("quality event ID cannot be empty")
	ErrEmptyQualityEventDatasetID = errors.New("quality event dataset ID cannot be empty")
	ErrEmptyQualityEventDetail    = errors.New("quality event detail cannot be empty")
	ErrInvalidQualitySeverity     = errors.New("invalid quality event severity")
)

// QualityEvent records a data-quality observation against a dataset, such as
// a schema drift, null-rate spike, or failed validation run.
type QualityEvent struct {
	ID         uuid.UUID       `json:"id"`
	DatasetID  uuid.UUID       `json:"dataset_id"`
	Severity   QualitySeverity `json:"severity"`
	Check      string          `json:"check"`
	Detail     string          `json:"detail"`
	ReportedBy string          `json:"reported_by"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewQualityEvent creates a validated QualityEvent for the given dataset.
func NewQualityEvent(datasetID uuid.UUID, severity QualitySeverity, check, detail, reportedBy string) (*QualityEvent, error) {
	ev := &QualityEvent{
		ID:         uuid.New(),
		DatasetID:  datasetID,
		Severity:   severity,
		Check:      check,
		Detail:     detail,
		ReportedBy: reportedBy,
		CreatedAt:  time.Now().UTC(),
	}

	if err := ev.Validate(); err != nil {
		return nil, err
	}

	return ev, nil
}

// Validate checks if the QualityEvent has valid data.
func (e *QualityEvent) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyQualityEventID
	}

	if e.DatasetID == uuid.Nil {
		return ErrEmptyQualityEventDatasetID
	}

	if e.Detail == "" {
		return ErrEmptyQualityEventDetail
	}

	switch e.Severity {
	case QualitySeverityInfo, QualitySeverityWarning, QualitySeverityCritical:
		return nil
	default:
		return ErrInvalidQualitySeverity
	}
}

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/aigovern/admin-api/internal/api/shared"
	"github.com/aigovern/admin-api/internal/domain"
	"github.com/aigovern/admin-api/internal/service"
)

// Default and maximum page sizes for list endpoints.
const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// DatasetHandler handles dataset catalog API requests.
type DatasetHandler struct {
	datasetService service.DatasetService
	qualityService service.QualityService
	validator      *validator.Validate
}

// NewDatasetHandler creates a new DatasetHandler with the given dependencies.
func NewDatasetHandler(
	datasetService service.DatasetService,
	qualityService service.QualityService,
) *DatasetHandler {
	return &DatasetHandler{
		datasetService: datasetService,
		qualityService: qualityService,
		validator:      validator.New(),
	}
}

// CreateDataset handles POST /datasets.
func (h *DatasetHandler) CreateDataset(w http.ResponseWriter, r *http.Request) {
	var req CreateDatasetRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	dataset, err := h.datasetService.CatalogDataset(r.Context(), req.Name, req.Owner, req.Description, req.Sensitivity)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, dataset)
}

// GetDataset handles GET /datasets/{id}.
func (h *DatasetHandler) GetDataset(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	dataset, err := h.datasetService.GetDataset(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dataset)
}

// ListDatasets handles GET /datasets.
func (h *DatasetHandler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	datasets, err := h.datasetService.ListDatasets(r.Context(), limit, offset)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if datasets == nil {
		datasets = []*domain.Dataset{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, datasets)
}

// UpdateCompliance handles PUT /datasets/{id}/compliance.
func (h *DatasetHandler) UpdateCompliance(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateComplianceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	dataset, err := h.datasetService.SetComplianceState(r.Context(), id, domain.ComplianceState(req.State))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dataset)
}

// GetCompliance handles GET /datasets/{id}/compliance.
func (h *DatasetHandler) GetCompliance(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	dataset, err := h.datasetService.GetDataset(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"dataset_id": dataset.ID.String(),
		"state":      string(dataset.ComplianceState),
	})
}

// CreateQualityEvent handles POST /datasets/{id}/quality-events.
func (h *DatasetHandler) CreateQualityEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req CreateQualityEventRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	event, err := h.qualityService.LogQualityEvent(r.Context(), id,
		domain.QualitySeverity(req.Severity), req.Check, req.Detail, req.ReportedBy)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, event)
}

// ListQualityEvents handles GET /datasets/{id}/quality-events.
func (h *DatasetHandler) ListQualityEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	limit, offset := parsePagination(r)

	events, err := h.qualityService.ListQualityEvents(r.Context(), id, limit, offset)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if events == nil {
		events = []*domain.QualityEvent{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, events)
}

// parseIDParam extracts and parses the {id} URL parameter. On failure it
// writes a 400 response and returns ok=false.
func parseIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

// parsePagination reads limit/offset query parameters with sane bounds.
func parsePagination(r *http.Request) (limit, offset int) {
	limit = defaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

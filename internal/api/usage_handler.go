package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aigovern/admin-api/internal/api/shared"
	"github.com/aigovern/admin-api/internal/service"
)

// defaultUsageWindow is used when the summary endpoint gets no explicit
// window.
const defaultUsageWindow = 24 * time.Hour

// UsageHandler handles usage analytics API requests.
type UsageHandler struct {
	usageService service.UsageService
	validator    *validator.Validate
}

// NewUsageHandler creates a new UsageHandler with the given dependencies.
func NewUsageHandler(usageService service.UsageService) *UsageHandler {
	return &UsageHandler{
		usageService: usageService,
		validator:    validator.New(),
	}
}

// RecordUsage handles POST /usage.
func (h *UsageHandler) RecordUsage(w http.ResponseWriter, r *http.Request) {
	var req RecordUsageRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	rec, err := h.usageService.RecordUsage(r.Context(), req.DatasetID, req.UserID, req.Operation, req.CreditsSpent)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, rec)
}

// GetSummary handles GET /usage/summary. Optional from/to query parameters
// are RFC 3339 timestamps; the default window is the trailing 24 hours.
func (h *UsageHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	to := time.Now().UTC()
	from := to.Add(-defaultUsageWindow)

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid 'from' timestamp")
			return
		}
		from = parsed
	}

	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid 'to' timestamp")
			return
		}
		to = parsed
	}

	if !from.Before(to) {
		shared.RespondWithError(w, r, http.StatusBadRequest, "'from' must be before 'to'")
		return
	}

	summary, err := h.usageService.GetUsageSummary(r.Context(), from, to)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

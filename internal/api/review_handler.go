package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/aigovern/admin-api/internal/api/shared"
	"github.com/aigovern/admin-api/internal/domain"
	"github.com/aigovern/admin-api/internal/service"
)

// ReviewHandler handles security review API requests.
type ReviewHandler struct {
	reviewService service.ReviewService
	validator     *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler with the given dependencies.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
	}
}

// CreateReview handles POST /security-reviews.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	review, err := h.reviewService.RequestSecurityReview(r.Context(), req.DatasetID, req.RequestedBy, req.Reason)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, review)
}

// GetReview handles GET /security-reviews/{id}.
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	review, err := h.reviewService.GetReview(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, review)
}

// UpdateReviewStatus handles PUT /security-reviews/{id}/status.
func (h *ReviewHandler) UpdateReviewStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateReviewStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	review, err := h.reviewService.UpdateReviewStatus(r.Context(), id, domain.ReviewStatus(req.Status))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, review)
}

package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/aigovern/admin-api/internal/api/shared"
	"github.com/aigovern/admin-api/internal/service"
)

// CreditHandler handles credit request API requests.
type CreditHandler struct {
	creditService service.CreditService
	validator     *validator.Validate
}

// NewCreditHandler creates a new CreditHandler with the given dependencies.
func NewCreditHandler(creditService service.CreditService) *CreditHandler {
	return &CreditHandler{
		creditService: creditService,
		validator:     validator.New(),
	}
}

// CreateCreditRequest handles POST /credit-requests. The request is recorded
// and routed to the approval channel; approval itself happens out of band.
func (h *CreditHandler) CreateCreditRequest(w http.ResponseWriter, r *http.Request) {
	var req CreateCreditRequestRequest

	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	created, err := h.creditService.RequestCredits(r.Context(),
		req.UserID, req.UserName, req.UserEmail, req.RequestedCredits, req.Reason)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, created)
}

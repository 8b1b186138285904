package cancel_visit

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/service/visits"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/service/visits/models"
)

const (
	msgInvalidReference   = "invalid visit reference"
	msgInvalidRequestBody = "invalid request body"
	msgVisitNotFound      = "visit not found"
	msgCannotCancel       = "visit cannot be cancelled"
	msgMissingReason      = "cancellationReason is required"
)

type Handler struct {
	service VisitsService
	logger  Logger
}

func NewHandler(service VisitsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/visits/{reference}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reference, err := uuid.Parse(mux.Vars(r)["reference"])
	if err != nil {
		h.logger.Warn("PUT /visits/{reference}/cancel - Invalid reference: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReference)
		return
	}

	var req models.CancelVisitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /visits/{reference}/cancel - Invalid request body: reference=%s, error=%v",
			reference, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Cancel(r.Context(), reference, &req); err != nil {
		switch {
		case errors.Is(err, visits.ErrVisitNotFound):
			h.logger.Warn("PUT /visits/{reference}/cancel - Visit not found: reference=%s", reference)
			handlers.RespondNotFound(w, msgVisitNotFound)

		case errors.Is(err, visits.ErrCannotCancel):
			h.logger.Warn("PUT /visits/{reference}/cancel - Cannot cancel: reference=%s", reference)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, visits.ErrInvalidInput):
			h.logger.Warn("PUT /visits/{reference}/cancel - Missing reason: reference=%s", reference)
			handlers.RespondBadRequest(w, msgMissingReason)

		default:
			h.logger.Error("PUT /visits/{reference}/cancel - Failed to cancel visit: reference=%s, error=%v",
				reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /visits/{reference}/cancel - Visit cancelled successfully: reference=%s", reference)
	handlers.RespondNoContent(w)
}

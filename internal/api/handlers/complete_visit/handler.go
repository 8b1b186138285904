package complete_visit

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/service/visits"
)

const (
	msgInvalidReference = "invalid visit reference"
	msgVisitNotFound    = "visit not found"
	msgCannotComplete   = "visit cannot be completed"
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

// Handle PUT /api/v1/visits/{reference}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reference, err := uuid.Parse(mux.Vars(r)["reference"])
	if err != nil {
		h.logger.Warn("PUT /visits/{reference}/complete - Invalid reference: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReference)
		return
	}

	if err := h.service.Complete(r.Context(), reference); err != nil {
		switch {
		case errors.Is(err, visits.ErrVisitNotFound):
			h.logger.Warn("PUT /visits/{reference}/complete - Visit not found: reference=%s", reference)
			handlers.RespondNotFound(w, msgVisitNotFound)

		case errors.Is(err, visits.ErrCannotComplete):
			h.logger.Warn("PUT /visits/{reference}/complete - Cannot complete: reference=%s", reference)
			handlers.RespondConflict(w, msgCannotComplete)

		default:
			h.logger.Error("PUT /visits/{reference}/complete - Failed to complete visit: reference=%s, error=%v",
				reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /visits/{reference}/complete - Visit completed successfully: reference=%s", reference)
	handlers.RespondNoContent(w)
}

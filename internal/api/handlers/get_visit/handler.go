package get_visit

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

// Handle GET /api/v1/visits/{reference}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reference, err := uuid.Parse(mux.Vars(r)["reference"])
	if err != nil {
		h.logger.Warn("GET /visits/{reference} - Invalid reference: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReference)
		return
	}

	visit, err := h.service.GetByReference(r.Context(), reference)
	if err != nil {
		switch {
		case errors.Is(err, visits.ErrVisitNotFound):
			h.logger.Warn("GET /visits/{reference} - Visit not found: reference=%s", reference)
			handlers.RespondNotFound(w, msgVisitNotFound)

		default:
			h.logger.Error("GET /visits/{reference} - Failed to get visit: reference=%s, error=%v",
				reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /visits/{reference} - Visit fetched successfully: reference=%s", reference)
	handlers.RespondJSON(w, http.StatusOK, visit)
}

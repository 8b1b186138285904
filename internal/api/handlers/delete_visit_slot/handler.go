package delete_visit_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/service/schedule"
)

const (
	msgInvalidID         = "invalid visit slot id"
	msgVisitSlotNotFound = "visit slot not found"
	msgVisitSlotInUse    = "visit slot has visits"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/visit-slots/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /visit-slots/{id} - Invalid visit slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.DeleteVisitSlot(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, schedule.ErrVisitSlotNotFound):
			h.logger.Warn("DELETE /visit-slots/{id} - Visit slot not found: id=%d", id)
			handlers.RespondNotFound(w, msgVisitSlotNotFound)

		case errors.Is(err, schedule.ErrVisitSlotInUse):
			h.logger.Warn("DELETE /visit-slots/{id} - Visit slot in use: id=%d", id)
			handlers.RespondConflict(w, msgVisitSlotInUse)

		default:
			h.logger.Error("DELETE /visit-slots/{id} - Failed to delete visit slot: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /visit-slots/{id} - Visit slot deleted successfully: id=%d", id)
	handlers.RespondNoContent(w)
}

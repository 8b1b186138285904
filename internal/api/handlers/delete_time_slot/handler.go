package delete_time_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/service/schedule"
)

const (
	msgInvalidID        = "invalid time slot id"
	msgTimeSlotNotFound = "time slot not found"
	msgTimeSlotInUse    = "time slot has visit slots"
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

// Handle DELETE /api/v1/time-slots/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /time-slots/{id} - Invalid time slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.DeleteTimeSlot(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, schedule.ErrTimeSlotNotFound):
			h.logger.Warn("DELETE /time-slots/{id} - Time slot not found: id=%d", id)
			handlers.RespondNotFound(w, msgTimeSlotNotFound)

		case errors.Is(err, schedule.ErrTimeSlotInUse):
			h.logger.Warn("DELETE /time-slots/{id} - Time slot in use: id=%d", id)
			handlers.RespondConflict(w, msgTimeSlotInUse)

		default:
			h.logger.Error("DELETE /time-slots/{id} - Failed to delete time slot: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /time-slots/{id} - Time slot deleted successfully: id=%d", id)
	handlers.RespondNoContent(w)
}

package update_time_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/service/schedule"
)

const (
	msgInvalidID          = "invalid time slot id"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgTimeSlotNotFound   = "time slot not found"
	msgPrisonNotFound     = "prison not found"
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

// Handle PUT /api/v1/time-slots/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /time-slots/{id} - Invalid time slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req TimeSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /time-slots/{id} - Invalid request body: id=%d, error=%v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("PUT /time-slots/{id} - Invalid date format: id=%d, error=%v", id, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.UpdateTimeSlot(r.Context(), id, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrTimeSlotNotFound):
			h.logger.Warn("PUT /time-slots/{id} - Time slot not found: id=%d", id)
			handlers.RespondNotFound(w, msgTimeSlotNotFound)

		case errors.Is(err, schedule.ErrPrisonNotFound):
			h.logger.Warn("PUT /time-slots/{id} - Prison not found: id=%d", id)
			handlers.RespondNotFound(w, msgPrisonNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /time-slots/{id} - Invalid input: id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /time-slots/{id} - Failed to update time slot: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /time-slots/{id} - Time slot updated successfully: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

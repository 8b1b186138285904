package create_visit_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/service/schedule"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/service/schedule/models"
)

const (
	msgInvalidID          = "invalid time slot id"
	msgInvalidRequestBody = "invalid request body"
	msgTimeSlotNotFound   = "time slot not found"
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

// Handle POST /api/v1/time-slots/{id}/visit-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	timeSlotID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /time-slots/{id}/visit-slots - Invalid time slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.VisitSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /time-slots/{id}/visit-slots - Invalid request body: time_slot_id=%d, error=%v",
			timeSlotID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateVisitSlot(r.Context(), timeSlotID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrTimeSlotNotFound):
			h.logger.Warn("POST /time-slots/{id}/visit-slots - Time slot not found: time_slot_id=%d", timeSlotID)
			handlers.RespondNotFound(w, msgTimeSlotNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /time-slots/{id}/visit-slots - Invalid input: time_slot_id=%d, error=%v",
				timeSlotID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /time-slots/{id}/visit-slots - Failed to create visit slot: time_slot_id=%d, error=%v",
				timeSlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /time-slots/{id}/visit-slots - Visit slot created successfully: id=%d, time_slot_id=%d",
		result.ID, timeSlotID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

package create_time_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/service/schedule"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgPrisonNotFound     = "prison not found"
	msgPrisonInactive     = "prison is not active"
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

// Handle POST /api/v1/prisons/{prisonCode}/time-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	prisonCode := mux.Vars(r)["prisonCode"]

	var req TimeSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /prisons/{code}/time-slots - Invalid request body: prison=%s, error=%v",
			prisonCode, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /prisons/{code}/time-slots - Invalid date format: prison=%s, error=%v",
			prisonCode, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.CreateTimeSlot(r.Context(), prisonCode, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrPrisonNotFound):
			h.logger.Warn("POST /prisons/{code}/time-slots - Prison not found: prison=%s", prisonCode)
			handlers.RespondNotFound(w, msgPrisonNotFound)

		case errors.Is(err, schedule.ErrPrisonInactive):
			h.logger.Warn("POST /prisons/{code}/time-slots - Prison inactive: prison=%s", prisonCode)
			handlers.RespondBadRequest(w, msgPrisonInactive)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /prisons/{code}/time-slots - Invalid input: prison=%s, error=%v",
				prisonCode, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /prisons/{code}/time-slots - Failed to create time slot: prison=%s, error=%v",
				prisonCode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /prisons/{code}/time-slots - Time slot created successfully: id=%d, prison=%s",
		result.ID, prisonCode)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

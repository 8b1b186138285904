package get_prison_schedule

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers"
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

// Handle GET /api/v1/prisons/{prisonCode}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	prisonCode := mux.Vars(r)["prisonCode"]

	result, err := h.service.GetPrisonSchedule(r.Context(), prisonCode)
	if err != nil {
		h.logger.Error("GET /prisons/{code}/schedule - Failed to get schedule: prison=%s, error=%v",
			prisonCode, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /prisons/{code}/schedule - Returned %d time slots: prison=%s",
		len(result.TimeSlots), prisonCode)
	handlers.RespondJSON(w, http.StatusOK, result)
}

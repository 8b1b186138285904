package update_visit_slot

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
	msgInvalidID          = "invalid visit slot id"
	msgInvalidRequestBody = "invalid request body"
	msgVisitSlotNotFound  = "visit slot not found"
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

// Handle PUT /api/v1/visit-slots/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /visit-slots/{id} - Invalid visit slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.VisitSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /visit-slots/{id} - Invalid request body: id=%d, error=%v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateVisitSlot(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrVisitSlotNotFound):
			h.logger.Warn("PUT /visit-slots/{id} - Visit slot not found: id=%d", id)
			handlers.RespondNotFound(w, msgVisitSlotNotFound)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /visit-slots/{id} - Invalid input: id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /visit-slots/{id} - Failed to update visit slot: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /visit-slots/{id} - Visit slot updated successfully: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

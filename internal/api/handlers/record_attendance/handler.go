package record_attendance

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
	msgCannotRecord       = "attendance cannot be recorded for this visit"
	msgUnknownVisitor     = "visitor is not attached to this visit"
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

// Handle PUT /api/v1/visits/{reference}/attendance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reference, err := uuid.Parse(mux.Vars(r)["reference"])
	if err != nil {
		h.logger.Warn("PUT /visits/{reference}/attendance - Invalid reference: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReference)
		return
	}

	var req models.RecordAttendanceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /visits/{reference}/attendance - Invalid request body: reference=%s, error=%v",
			reference, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.RecordAttendance(r.Context(), reference, &req); err != nil {
		switch {
		case errors.Is(err, visits.ErrVisitNotFound):
			h.logger.Warn("PUT /visits/{reference}/attendance - Visit not found: reference=%s", reference)
			handlers.RespondNotFound(w, msgVisitNotFound)

		case errors.Is(err, visits.ErrCannotRecordAttendance):
			h.logger.Warn("PUT /visits/{reference}/attendance - Cannot record: reference=%s", reference)
			handlers.RespondConflict(w, msgCannotRecord)

		case errors.Is(err, visits.ErrUnknownVisitor):
			h.logger.Warn("PUT /visits/{reference}/attendance - Unknown visitor: reference=%s, error=%v",
				reference, err)
			handlers.RespondBadRequest(w, msgUnknownVisitor)

		case errors.Is(err, visits.ErrInvalidInput):
			h.logger.Warn("PUT /visits/{reference}/attendance - Invalid input: reference=%s, error=%v",
				reference, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /visits/{reference}/attendance - Failed to record attendance: reference=%s, error=%v",
				reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /visits/{reference}/attendance - Attendance recorded successfully: reference=%s", reference)
	handlers.RespondNoContent(w)
}

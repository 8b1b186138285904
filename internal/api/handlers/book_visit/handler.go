package book_visit

import (
	"errors"
	"net/http"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers"
	bookVisit "github.com/ovs-lab/OVS-VisitScheduler/internal/usecase/book_visit"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid visit date format, expected YYYY-MM-DD"
	msgVisitSlotNotFound  = "visit slot not found"
	msgDateInPast         = "visit date must be on or after today's date"
	msgSlotNotAvailable   = "slot is not available on this date"
	msgVideoNotSupported  = "slot does not support video sessions"
)

type Handler struct {
	useCase BookVisitUseCase
	logger  Logger
}

func NewHandler(useCase BookVisitUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/visits
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookVisitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /visits - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /visits - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookVisit.ErrVisitSlotNotFound):
			h.logger.Warn("POST /visits - Visit slot not found: visit_slot_id=%d, prison=%s",
				req.VisitSlotID, req.PrisonCode)
			handlers.RespondNotFound(w, msgVisitSlotNotFound)

		case errors.Is(err, bookVisit.ErrVisitDateInPast):
			h.logger.Warn("POST /visits - Visit date in past: date=%s, prison=%s", req.VisitDate, req.PrisonCode)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, bookVisit.ErrSlotNotAvailableOnDate):
			h.logger.Warn("POST /visits - Slot not available: visit_slot_id=%d, date=%s",
				req.VisitSlotID, req.VisitDate)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, bookVisit.ErrVideoNotSupported):
			h.logger.Warn("POST /visits - Video not supported: visit_slot_id=%d", req.VisitSlotID)
			handlers.RespondBadRequest(w, msgVideoNotSupported)

		case errors.Is(err, bookVisit.ErrInvalidInput):
			h.logger.Warn("POST /visits - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /visits - Failed to book visit: prison=%s, visit_slot_id=%d, error=%v",
				req.PrisonCode, req.VisitSlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /visits - Visit booked successfully: reference=%s, prison=%s",
		result.Reference, req.PrisonCode)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers"
	getAvailableSlots "github.com/ovs-lab/OVS-VisitScheduler/internal/usecase/get_available_slots"
)

const (
	msgMissingFromDate = "fromDate is required"
	msgMissingToDate   = "toDate is required"
	msgInvalidDate     = "invalid date format, expected YYYY-MM-DD"
	msgInvalidVideo    = "invalid videoOnly value, expected true or false"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/prisons/{prisonCode}/available-slots
// Query params: fromDate (required, YYYY-MM-DD), toDate (required, YYYY-MM-DD),
// videoOnly (optional, bool)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	prisonCode := mux.Vars(r)["prisonCode"]
	query := r.URL.Query()

	fromDateStr := query.Get("fromDate")
	if fromDateStr == "" {
		h.logger.Warn("GET /prisons/{code}/available-slots - Missing fromDate: prison=%s", prisonCode)
		handlers.RespondBadRequest(w, msgMissingFromDate)
		return
	}

	toDateStr := query.Get("toDate")
	if toDateStr == "" {
		h.logger.Warn("GET /prisons/{code}/available-slots - Missing toDate: prison=%s", prisonCode)
		handlers.RespondBadRequest(w, msgMissingToDate)
		return
	}

	videoOnly := false
	if videoOnlyStr := query.Get("videoOnly"); videoOnlyStr != "" {
		parsed, err := strconv.ParseBool(videoOnlyStr)
		if err != nil {
			h.logger.Warn("GET /prisons/{code}/available-slots - Invalid videoOnly: prison=%s, value=%s",
				prisonCode, videoOnlyStr)
			handlers.RespondBadRequest(w, msgInvalidVideo)
			return
		}
		videoOnly = parsed
	}

	useCaseReq, err := ToUseCaseRequest(prisonCode, fromDateStr, toDateStr, videoOnly)
	if err != nil {
		h.logger.Warn("GET /prisons/{code}/available-slots - Invalid date format: prison=%s, error=%v",
			prisonCode, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrFromDateInPast),
			errors.Is(err, getAvailableSlots.ErrToDateBeforeFromDate):
			// Текст ошибки является контрактом API
			h.logger.Warn("GET /prisons/{code}/available-slots - Invalid date range: prison=%s, error=%v",
				prisonCode, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /prisons/{code}/available-slots - Invalid input: prison=%s, error=%v",
				prisonCode, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /prisons/{code}/available-slots - Failed to get slots: prison=%s, error=%v",
				prisonCode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /prisons/{code}/available-slots - Returned %d slots: prison=%s",
		len(result.Slots), prisonCode)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

package get_prison_visits

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/api/handlers"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/service/visits"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/service/visits/models"
)

const (
	msgInvalidDate   = "invalid date format, expected YYYY-MM-DD"
	msgInvalidStatus = "invalid status, expected booked, cancelled, completed or expired"
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

// Handle GET /api/v1/prisons/{prisonCode}/visits
// Query params: fromDate (optional), toDate (optional), status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	prisonCode := mux.Vars(r)["prisonCode"]
	query := r.URL.Query()

	req := &models.GetPrisonVisitsRequest{PrisonCode: prisonCode}

	if fromDateStr := query.Get("fromDate"); fromDateStr != "" {
		fromDate, err := time.Parse(domain.DateFormat, fromDateStr)
		if err != nil {
			h.logger.Warn("GET /prisons/{code}/visits - Invalid fromDate: prison=%s, value=%s",
				prisonCode, fromDateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.FromDate = &fromDate
	}

	if toDateStr := query.Get("toDate"); toDateStr != "" {
		toDate, err := time.Parse(domain.DateFormat, toDateStr)
		if err != nil {
			h.logger.Warn("GET /prisons/{code}/visits - Invalid toDate: prison=%s, value=%s",
				prisonCode, toDateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.ToDate = &toDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetPrisonVisits(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, visits.ErrInvalidInput):
			h.logger.Warn("GET /prisons/{code}/visits - Invalid input: prison=%s, error=%v", prisonCode, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /prisons/{code}/visits - Failed to get visits: prison=%s, error=%v",
				prisonCode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /prisons/{code}/visits - Returned %d visits: prison=%s",
		len(result.Visits), prisonCode)
	handlers.RespondJSON(w, http.StatusOK, result)
}

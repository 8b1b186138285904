package get_available_slots

import (
	"fmt"
	"time"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PrisonCode == "" {
		return fmt.Errorf("%w: prisonCode is required", ErrInvalidInput)
	}

	if req.FromDate.IsZero() {
		return fmt.Errorf("%w: fromDate is required", ErrInvalidInput)
	}

	if req.ToDate.IsZero() {
		return fmt.Errorf("%w: toDate is required", ErrInvalidInput)
	}

	return nil
}

// validateDateRange проверяет предусловия на период.
// Выполняется до обращений к БД: запросы целиком в прошлом и
// инвертированные периоды отклоняются сразу.
func validateDateRange(fromDate, toDate time.Time, now time.Time) error {
	if domain.DateOnly(fromDate).Before(domain.DateOnly(now)) {
		return ErrFromDateInPast
	}

	if domain.DateOnly(toDate).Before(domain.DateOnly(fromDate)) {
		return ErrToDateBeforeFromDate
	}

	return nil
}

package book_visit

import (
	"fmt"
	"time"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
	"github.com/ovs-lab/OVS-VisitScheduler/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PrisonCode == "" {
		return fmt.Errorf("%w: prisonCode is required", ErrInvalidInput)
	}

	if req.PrisonerNumber == "" {
		return fmt.Errorf("%w: prisonerNumber is required", ErrInvalidInput)
	}

	if req.VisitSlotID <= 0 {
		return fmt.Errorf("%w: visitSlotId is required", ErrInvalidInput)
	}

	if req.VisitDate.IsZero() {
		return fmt.Errorf("%w: visitDate is required", ErrInvalidInput)
	}

	if req.VisitType != domain.VisitTypeInPerson && req.VisitType != domain.VisitTypeVideo {
		return fmt.Errorf("%w: visitType must be %s or %s",
			ErrInvalidInput, domain.VisitTypeInPerson, domain.VisitTypeVideo)
	}

	if len(req.Visitors) == 0 {
		return fmt.Errorf("%w: at least one visitor is required", ErrInvalidInput)
	}

	for i, v := range req.Visitors {
		if v.ContactID <= 0 {
			return fmt.Errorf("%w: visitors[%d].contactId is required", ErrInvalidInput, i)
		}
		if v.FirstName == "" || v.LastName == "" {
			return fmt.Errorf("%w: visitors[%d] first and last name are required", ErrInvalidInput, i)
		}
	}

	return nil
}

// validateSlotDate проверяет, что слот действует на запрошенную дату
// и эта дата не в прошлом. Для сегодняшней даты слот должен ещё не закончиться.
func validateSlotDate(timeSlot *domain.RecurringTimeSlot, visitDate, now time.Time) error {
	date := domain.DateOnly(visitDate)
	today := domain.DateOnly(now)

	if date.Before(today) {
		return ErrVisitDateInPast
	}

	if !timeSlot.AppliesOn(date) {
		return ErrSlotNotAvailableOnDate
	}

	if date.Equal(today) && !timeSlot.EndTime.IsAfter(types.NewTimeString(now)) {
		return ErrSlotNotAvailableOnDate
	}

	return nil
}

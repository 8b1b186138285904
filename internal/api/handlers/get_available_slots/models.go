package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
	getAvailableSlots "github.com/ovs-lab/OVS-VisitScheduler/internal/usecase/get_available_slots"
)

// AvailableSlotResponse HTTP response model
type AvailableSlotResponse struct {
	VisitSlotID            int64     `json:"visitSlotId"`
	TimeSlotID             int64     `json:"timeSlotId"`
	PrisonCode             string    `json:"prisonCode"`
	DayCode                string    `json:"dayCode"`
	DayDescription         string    `json:"dayDescription"`
	VisitDate              string    `json:"visitDate"` // "2026-09-04"
	StartTime              string    `json:"startTime"` // "14:00"
	EndTime                string    `json:"endTime"`   // "16:00"
	DpsLocationID          uuid.UUID `json:"dpsLocationId"`
	AvailableVideoSessions int       `json:"availableVideoSessions"`
	AvailableAdults        int       `json:"availableAdults"`
	AvailableGroups        int       `json:"availableGroups"`
}

// ToUseCaseRequest конвертирует параметры HTTP запроса в модель use case
func ToUseCaseRequest(prisonCode, fromDateStr, toDateStr string, videoOnly bool) (*getAvailableSlots.Request, error) {
	fromDate, err := time.Parse(domain.DateFormat, fromDateStr)
	if err != nil {
		return nil, err
	}

	toDate, err := time.Parse(domain.DateFormat, toDateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		PrisonCode: prisonCode,
		FromDate:   fromDate,
		ToDate:     toDate,
		VideoOnly:  videoOnly,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) []AvailableSlotResponse {
	result := make([]AvailableSlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		result = append(result, AvailableSlotResponse{
			VisitSlotID:            slot.VisitSlotID,
			TimeSlotID:             slot.TimeSlotID,
			PrisonCode:             slot.PrisonCode,
			DayCode:                string(slot.DayCode),
			DayDescription:         slot.DayDescription,
			VisitDate:              slot.VisitDate.Format(domain.DateFormat),
			StartTime:              slot.StartTime.String(),
			EndTime:                slot.EndTime.String(),
			DpsLocationID:          slot.DpsLocationID,
			AvailableVideoSessions: slot.AvailableVideoSessions,
			AvailableAdults:        slot.AvailableAdults,
			AvailableGroups:        slot.AvailableGroups,
		})
	}
	return result
}

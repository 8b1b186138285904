package create_time_slot

import (
	"time"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/service/schedule/models"
)

// TimeSlotRequest HTTP request model
type TimeSlotRequest struct {
	DayCode       string  `json:"dayCode"`
	StartTime     string  `json:"startTime"`     // "14:00"
	EndTime       string  `json:"endTime"`       // "16:00"
	EffectiveDate string  `json:"effectiveDate"` // "2026-01-01"
	ExpiryDate    *string `json:"expiryDate,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса (с парсингом дат)
func (r *TimeSlotRequest) ToServiceRequest() (*models.TimeSlotRequest, error) {
	effectiveDate, err := time.Parse(domain.DateFormat, r.EffectiveDate)
	if err != nil {
		return nil, err
	}

	req := &models.TimeSlotRequest{
		DayCode:       r.DayCode,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		EffectiveDate: effectiveDate,
	}

	if r.ExpiryDate != nil {
		expiryDate, err := time.Parse(domain.DateFormat, *r.ExpiryDate)
		if err != nil {
			return nil, err
		}
		req.ExpiryDate = &expiryDate
	}

	return req, nil
}

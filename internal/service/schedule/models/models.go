package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
	"github.com/ovs-lab/OVS-VisitScheduler/pkg/types"
)

var (
	// ErrInvalidDayCode возвращается при некорректном коде дня недели
	ErrInvalidDayCode = errors.New("invalid day code")

	// ErrInvalidTime возвращается при некорректном времени (не HH:MM)
	ErrInvalidTime = errors.New("invalid time, expected HH:MM")
)

// Request модели

// TimeSlotRequest запрос на создание или полную замену временного слота
type TimeSlotRequest struct {
	DayCode       string     `json:"dayCode"`
	StartTime     string     `json:"startTime"` // "14:00"
	EndTime       string     `json:"endTime"`   // "16:00"
	EffectiveDate time.Time  `json:"effectiveDate"`
	ExpiryDate    *time.Time `json:"expiryDate,omitempty"`
}

// ToDomain конвертирует request в domain модель
func (r *TimeSlotRequest) ToDomain(prisonCode string) (*domain.RecurringTimeSlot, error) {
	dayCode := domain.DayCode(r.DayCode)
	if !dayCode.IsValid() {
		return nil, ErrInvalidDayCode
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, ErrInvalidTime
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, ErrInvalidTime
	}

	return &domain.RecurringTimeSlot{
		PrisonCode:    prisonCode,
		DayCode:       dayCode,
		StartTime:     startTime,
		EndTime:       endTime,
		EffectiveDate: domain.DateOnly(r.EffectiveDate),
		ExpiryDate:    r.ExpiryDate,
	}, nil
}

// VisitSlotRequest запрос на создание или полную замену слота визитов
type VisitSlotRequest struct {
	DpsLocationID    uuid.UUID `json:"dpsLocationId"`
	MaxAdults        *int      `json:"maxAdults,omitempty"`
	MaxGroups        *int      `json:"maxGroups,omitempty"`
	MaxVideoSessions *int      `json:"maxVideoSessions,omitempty"`
}

// ToDomain конвертирует request в domain модель
func (r *VisitSlotRequest) ToDomain(timeSlotID int64) *domain.VisitSlot {
	return &domain.VisitSlot{
		TimeSlotID:       timeSlotID,
		DpsLocationID:    r.DpsLocationID,
		MaxAdults:        r.MaxAdults,
		MaxGroups:        r.MaxGroups,
		MaxVideoSessions: r.MaxVideoSessions,
	}
}

// Response модели

// TimeSlotResponse ответ с данными временного слота
type TimeSlotResponse struct {
	ID             int64      `json:"id"`
	PrisonCode     string     `json:"prisonCode"`
	DayCode        string     `json:"dayCode"`
	DayDescription string     `json:"dayDescription"`
	StartTime      string     `json:"startTime"`
	EndTime        string     `json:"endTime"`
	EffectiveDate  string     `json:"effectiveDate"` // "2026-01-01"
	ExpiryDate     *string    `json:"expiryDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// VisitSlotResponse ответ с данными слота визитов
type VisitSlotResponse struct {
	ID               int64     `json:"id"`
	TimeSlotID       int64     `json:"timeSlotId"`
	DpsLocationID    uuid.UUID `json:"dpsLocationId"`
	MaxAdults        *int      `json:"maxAdults,omitempty"`
	MaxGroups        *int      `json:"maxGroups,omitempty"`
	MaxVideoSessions *int      `json:"maxVideoSessions,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ScheduleTimeSlot временной слот с вложенными слотами визитов
type ScheduleTimeSlot struct {
	TimeSlotResponse
	VisitSlots []VisitSlotResponse `json:"visitSlots"`
}

// ScheduleResponse расписание тюрьмы
type ScheduleResponse struct {
	PrisonCode string             `json:"prisonCode"`
	TimeSlots  []ScheduleTimeSlot `json:"timeSlots"`
}

// Методы конвертации

// FromDomainTimeSlot конвертирует domain модель в DTO
func FromDomainTimeSlot(t *domain.RecurringTimeSlot) *TimeSlotResponse {
	if t == nil {
		return nil
	}

	resp := &TimeSlotResponse{
		ID:             t.ID,
		PrisonCode:     t.PrisonCode,
		DayCode:        string(t.DayCode),
		DayDescription: t.DayCode.Description(),
		StartTime:      t.StartTime.String(),
		EndTime:        t.EndTime.String(),
		EffectiveDate:  t.EffectiveDate.Format(domain.DateFormat),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}

	if t.ExpiryDate != nil {
		expiry := t.ExpiryDate.Format(domain.DateFormat)
		resp.ExpiryDate = &expiry
	}

	return resp
}

// FromDomainVisitSlot конвертирует domain модель в DTO
func FromDomainVisitSlot(v *domain.VisitSlot) *VisitSlotResponse {
	if v == nil {
		return nil
	}

	return &VisitSlotResponse{
		ID:               v.ID,
		TimeSlotID:       v.TimeSlotID,
		DpsLocationID:    v.DpsLocationID,
		MaxAdults:        v.MaxAdults,
		MaxGroups:        v.MaxGroups,
		MaxVideoSessions: v.MaxVideoSessions,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

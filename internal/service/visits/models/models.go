package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе визита
	ErrInvalidStatus = errors.New("invalid visit status")
)

// Request модели

// CancelVisitRequest запрос на отмену визита
type CancelVisitRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// VisitorAttendanceInput посещаемость одного посетителя
type VisitorAttendanceInput struct {
	ContactID int64 `json:"contactId"`
	Attended  bool  `json:"attended"`
}

// RecordAttendanceRequest запрос на фиксацию посещаемости
type RecordAttendanceRequest struct {
	Visitors []VisitorAttendanceInput `json:"visitors"`
}

// GetPrisonVisitsRequest запрос на получение визитов тюрьмы
type GetPrisonVisitsRequest struct {
	PrisonCode string     `json:"prisonCode"`
	FromDate   *time.Time `json:"fromDate,omitempty"` // Начало периода (опционально)
	ToDate     *time.Time `json:"toDate,omitempty"`   // Конец периода (опционально)
	Status     *string    `json:"status,omitempty"`   // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetPrisonVisitsRequest) ToDomainFilter() (domain.PrisonVisitsFilter, error) {
	filter := domain.PrisonVisitsFilter{
		PrisonCode: r.PrisonCode,
		FromDate:   r.FromDate,
		ToDate:     r.ToDate,
	}

	if r.Status != nil {
		status, err := ToDomainVisitStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// VisitorResponse посетитель визита
type VisitorResponse struct {
	ContactID int64  `json:"contactId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Attended  *bool  `json:"attended,omitempty"`
}

// VisitResponse ответ с данными визита
type VisitResponse struct {
	Reference      uuid.UUID         `json:"reference"`
	VisitSlotID    int64             `json:"visitSlotId"`
	TimeSlotID     int64             `json:"timeSlotId"`
	PrisonCode     string            `json:"prisonCode"`
	PrisonerNumber string            `json:"prisonerNumber"`
	VisitDate      string            `json:"visitDate"` // "2026-09-04"
	VisitType      string            `json:"visitType"`
	Status         string            `json:"status"`
	Visitors       []VisitorResponse `json:"visitors"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VisitListResponse ответ со списком визитов
type VisitListResponse struct {
	Visits []VisitResponse `json:"visits"`
}

// Методы конвертации

// FromDomainVisit конвертирует domain модель в DTO
func FromDomainVisit(v *domain.OfficialVisit) *VisitResponse {
	if v == nil {
		return nil
	}

	resp := &VisitResponse{
		Reference:          v.Reference,
		VisitSlotID:        v.VisitSlotID,
		TimeSlotID:         v.TimeSlotID,
		PrisonCode:         v.PrisonCode,
		PrisonerNumber:     v.PrisonerNumber,
		VisitDate:          v.VisitDate.Format(domain.DateFormat),
		VisitType:          string(v.VisitType),
		Status:             string(v.Status),
		Visitors:           make([]VisitorResponse, 0, len(v.Visitors)),
		CancellationReason: v.CancellationReason,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}

	for _, visitor := range v.Visitors {
		resp.Visitors = append(resp.Visitors, VisitorResponse{
			ContactID: visitor.ContactID,
			FirstName: visitor.FirstName,
			LastName:  visitor.LastName,
			Attended:  visitor.Attended,
		})
	}

	if v.CancelledAt != nil {
		cancelledAt := v.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainVisitList конвертирует список domain моделей в DTO
func FromDomainVisitList(visits []*domain.OfficialVisit) *VisitListResponse {
	resp := &VisitListResponse{
		Visits: make([]VisitResponse, 0, len(visits)),
	}
	for _, v := range visits {
		resp.Visits = append(resp.Visits, *FromDomainVisit(v))
	}
	return resp
}

// ToDomainVisitStatus конвертирует строку в domain.VisitStatus
func ToDomainVisitStatus(status string) (domain.VisitStatus, error) {
	switch domain.VisitStatus(status) {
	case domain.StatusBooked, domain.StatusCancelled, domain.StatusCompleted, domain.StatusExpired:
		return domain.VisitStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}

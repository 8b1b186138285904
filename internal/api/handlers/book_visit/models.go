package book_visit

import (
	"time"

	"github.com/google/uuid"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
	bookVisit "github.com/ovs-lab/OVS-VisitScheduler/internal/usecase/book_visit"
)

// VisitorRequest посетитель в HTTP запросе
type VisitorRequest struct {
	ContactID int64  `json:"contactId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// BookVisitRequest HTTP request model
type BookVisitRequest struct {
	PrisonCode     string           `json:"prisonCode"`
	PrisonerNumber string           `json:"prisonerNumber"`
	VisitSlotID    int64            `json:"visitSlotId"`
	VisitDate      string           `json:"visitDate"` // "2026-09-04"
	VisitType      string           `json:"visitType"` // "in_person" | "video"
	Visitors       []VisitorRequest `json:"visitors"`
}

// VisitorResponse посетитель в HTTP ответе
type VisitorResponse struct {
	ContactID int64  `json:"contactId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// VisitResponse HTTP response model
type VisitResponse struct {
	Reference      uuid.UUID         `json:"reference"`
	VisitSlotID    int64             `json:"visitSlotId"`
	TimeSlotID     int64             `json:"timeSlotId"`
	PrisonCode     string            `json:"prisonCode"`
	PrisonerNumber string            `json:"prisonerNumber"`
	VisitDate      string            `json:"visitDate"`
	VisitType      string            `json:"visitType"`
	Status         string            `json:"status"`
	Visitors       []VisitorResponse `json:"visitors"`
	CreatedAt      string            `json:"createdAt"`
	UpdatedAt      string            `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookVisitRequest) ToUseCaseRequest() (*bookVisit.Request, error) {
	visitDate, err := time.Parse(domain.DateFormat, r.VisitDate)
	if err != nil {
		return nil, err
	}

	visitors := make([]bookVisit.VisitorInput, 0, len(r.Visitors))
	for _, v := range r.Visitors {
		visitors = append(visitors, bookVisit.VisitorInput{
			ContactID: v.ContactID,
			FirstName: v.FirstName,
			LastName:  v.LastName,
		})
	}

	return &bookVisit.Request{
		PrisonCode:     r.PrisonCode,
		PrisonerNumber: r.PrisonerNumber,
		VisitSlotID:    r.VisitSlotID,
		VisitDate:      visitDate,
		VisitType:      domain.VisitType(r.VisitType),
		Visitors:       visitors,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookVisit.Response) *VisitResponse {
	visitors := make([]VisitorResponse, 0, len(resp.Visitors))
	for _, v := range resp.Visitors {
		visitors = append(visitors, VisitorResponse{
			ContactID: v.ContactID,
			FirstName: v.FirstName,
			LastName:  v.LastName,
		})
	}

	return &VisitResponse{
		Reference:      resp.Reference,
		VisitSlotID:    resp.VisitSlotID,
		TimeSlotID:     resp.TimeSlotID,
		PrisonCode:     resp.PrisonCode,
		PrisonerNumber: resp.PrisonerNumber,
		VisitDate:      resp.VisitDate.Format(domain.DateFormat),
		VisitType:      resp.VisitType,
		Status:         resp.Status,
		Visitors:       visitors,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}

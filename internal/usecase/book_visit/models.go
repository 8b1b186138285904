package book_visit

import (
	"time"

	"github.com/google/uuid"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
)

// VisitorInput посетитель из запроса на бронирование
type VisitorInput struct {
	ContactID int64
	FirstName string
	LastName  string
}

// Request модель запроса на бронирование официального визита
type Request struct {
	PrisonCode     string
	PrisonerNumber string
	VisitSlotID    int64
	VisitDate      time.Time
	VisitType      domain.VisitType
	Visitors       []VisitorInput
}

// Response модель ответа с созданным визитом
type Response struct {
	Reference      uuid.UUID
	VisitSlotID    int64
	TimeSlotID     int64
	PrisonCode     string
	PrisonerNumber string
	VisitDate      time.Time
	VisitType      string
	Status         string
	Visitors       []domain.Visitor
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

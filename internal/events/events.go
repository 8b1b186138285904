package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType тип доменного события
type EventType string

const (
	EventVisitBooked     EventType = "visit.booked"
	EventVisitCancelled  EventType = "visit.cancelled"
	EventVisitCompleted  EventType = "visit.completed"
	EventVisitExpired    EventType = "visit.expired"
	EventScheduleChanged EventType = "schedule.changed"
)

// Event доменное событие, публикуемое для других сервисов
type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`

	PrisonCode     string     `json:"prisonCode,omitempty"`
	VisitReference *uuid.UUID `json:"visitReference,omitempty"`
	TimeSlotID     *int64     `json:"timeSlotId,omitempty"`
	VisitSlotID    *int64     `json:"visitSlotId,omitempty"`
}

// NewEvent создает событие с заполненным id и временем
func NewEvent(eventType EventType, prisonCode string) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		PrisonCode: prisonCode,
	}
}

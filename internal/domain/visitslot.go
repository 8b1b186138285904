package domain

import (
	"time"

	"github.com/google/uuid"
)

// VisitSlot represents a concrete bookable slot under a recurring time slot:
// a location plus maximum capacities per dimension. A nil capacity means
// the dimension has no defined capacity and is never offered.
type VisitSlot struct {
	ID               int64
	TimeSlotID       int64
	DpsLocationID    uuid.UUID
	MaxAdults        *int
	MaxGroups        *int
	MaxVideoSessions *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AdultCapacity returns the configured adult capacity, 0 when unset
func (s *VisitSlot) AdultCapacity() int {
	return capacityOrZero(s.MaxAdults)
}

// GroupCapacity returns the configured group capacity, 0 when unset
func (s *VisitSlot) GroupCapacity() int {
	return capacityOrZero(s.MaxGroups)
}

// VideoSessionCapacity returns the configured video-session capacity, 0 when unset
func (s *VisitSlot) VideoSessionCapacity() int {
	return capacityOrZero(s.MaxVideoSessions)
}

// SupportsVideo returns true if the slot has any video-session capacity configured
func (s *VisitSlot) SupportsVideo() bool {
	return s.VideoSessionCapacity() > 0
}

func capacityOrZero(v *int) int {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}

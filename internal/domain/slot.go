package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/ovs-lab/OVS-VisitScheduler/pkg/types"
)

// ConfiguredSlot is the read model the availability engine works on:
// one recurring time slot joined with one of its visit slots.
// Capacities are already defaulted to 0 where unset.
type ConfiguredSlot struct {
	TimeSlotID    int64
	VisitSlotID   int64
	PrisonCode    string
	DayCode       DayCode
	StartTime     types.TimeString
	EndTime       types.TimeString
	EffectiveDate time.Time
	ExpiryDate    *time.Time
	DpsLocationID uuid.UUID

	MaxAdults        int
	MaxGroups        int
	MaxVideoSessions int
}

// AppliesOn returns true if the configured slot produces an instance on the
// given calendar date (weekday match inside the effective/expiry window)
func (s *ConfiguredSlot) AppliesOn(date time.Time) bool {
	slot := RecurringTimeSlot{
		DayCode:       s.DayCode,
		EffectiveDate: s.EffectiveDate,
		ExpiryDate:    s.ExpiryDate,
	}
	return slot.AppliesOn(date)
}

// BookedOccupancy is one booked visit instance as seen by the availability
// engine: it consumes one adult and one group unit on its date, plus one
// video session when the visit is a video link.
type BookedOccupancy struct {
	TimeSlotID  int64
	VisitSlotID int64
	VisitDate   time.Time
	IsVideo     bool
}

// AvailableSlot is one bookable instance of a visit slot on one calendar date
// with the remaining capacity per dimension. Derived per query, never stored.
type AvailableSlot struct {
	VisitSlotID    int64
	TimeSlotID     int64
	PrisonCode     string
	DayCode        DayCode
	DayDescription string
	VisitDate      time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	DpsLocationID  uuid.UUID

	AvailableVideoSessions int
	AvailableAdults        int
	AvailableGroups        int
}

// HasVisitCapacity returns true if adults or groups remain bookable
func (s *AvailableSlot) HasVisitCapacity() bool {
	return s.AvailableAdults > 0 || s.AvailableGroups > 0
}

// HasVideoCapacity returns true if video sessions remain bookable
func (s *AvailableSlot) HasVideoCapacity() bool {
	return s.AvailableVideoSessions > 0
}

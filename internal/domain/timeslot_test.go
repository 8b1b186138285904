package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/ovs-lab/OVS-VisitScheduler/pkg/ptr"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayCode(t *testing.T) {
	assert.True(t, DayFriday.IsValid())
	assert.False(t, DayCode("XYZ").IsValid())
	assert.Equal(t, "Wednesday", DayWednesday.Description())
	assert.Equal(t, time.Sunday, DaySunday.Weekday())

	// 2026-09-04 is a Friday
	assert.True(t, DayFriday.Matches(date(2026, time.September, 4)))
	assert.False(t, DayMonday.Matches(date(2026, time.September, 4)))

	assert.Equal(t, DayTuesday, DayCodeFromWeekday(time.Tuesday))
}

func TestRecurringTimeSlotAppliesOn(t *testing.T) {
	slot := RecurringTimeSlot{
		DayCode:       DayFriday,
		EffectiveDate: date(2026, time.September, 1),
	}

	// Fridays inside the window
	assert.True(t, slot.AppliesOn(date(2026, time.September, 4)))
	assert.True(t, slot.AppliesOn(date(2026, time.September, 11)))

	// wrong weekday
	assert.False(t, slot.AppliesOn(date(2026, time.September, 3)))

	// before effective date (Friday 2026-08-28)
	assert.False(t, slot.AppliesOn(date(2026, time.August, 28)))

	// expiry date is inclusive
	slot.ExpiryDate = ptr.Ptr(date(2026, time.September, 11))
	assert.True(t, slot.AppliesOn(date(2026, time.September, 11)))
	assert.False(t, slot.AppliesOn(date(2026, time.September, 18)))
}

func TestVisitSlotCapacities(t *testing.T) {
	slot := VisitSlot{
		MaxAdults:        ptr.Ptr(10),
		MaxVideoSessions: ptr.Ptr(4),
	}

	assert.Equal(t, 10, slot.AdultCapacity())
	assert.Equal(t, 0, slot.GroupCapacity())
	assert.Equal(t, 4, slot.VideoSessionCapacity())
	assert.True(t, slot.SupportsVideo())

	slot.MaxVideoSessions = nil
	assert.False(t, slot.SupportsVideo())
}

func TestVisitStatusTransitions(t *testing.T) {
	visit := OfficialVisit{Status: StatusBooked}
	assert.True(t, visit.IsBooked())
	assert.True(t, visit.CanBeCancelled())
	assert.True(t, visit.CanBeCompleted())
	assert.True(t, visit.CanRecordAttendance())

	visit.Status = StatusCompleted
	assert.False(t, visit.CanBeCancelled())
	assert.False(t, visit.CanBeCompleted())
	assert.True(t, visit.CanRecordAttendance())

	visit.Status = StatusCancelled
	assert.False(t, visit.CanRecordAttendance())
}

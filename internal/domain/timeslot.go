package domain

import (
	"time"

	"github.com/ovs-lab/OVS-VisitScheduler/pkg/types"
)

// RecurringTimeSlot represents a weekly recurring availability window for a prison.
// Concrete bookable visit slots (VisitSlot) hang off a time slot.
type RecurringTimeSlot struct {
	ID            int64
	PrisonCode    string
	DayCode       DayCode
	StartTime     types.TimeString
	EndTime       types.TimeString
	EffectiveDate time.Time  // inclusive start of applicability
	ExpiryDate    *time.Time // inclusive end, nil = open-ended

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpenEnded returns true if the slot has no expiry date
func (t *RecurringTimeSlot) IsOpenEnded() bool {
	return t.ExpiryDate == nil
}

// AppliesOn returns true if the time slot produces an instance on the given
// calendar date: the weekday matches and the date falls inside the
// effective/expiry window (both inclusive).
func (t *RecurringTimeSlot) AppliesOn(date time.Time) bool {
	if !t.DayCode.Matches(date) {
		return false
	}

	day := DateOnly(date)
	if day.Before(DateOnly(t.EffectiveDate)) {
		return false
	}
	if t.ExpiryDate != nil && day.After(DateOnly(*t.ExpiryDate)) {
		return false
	}

	return true
}

// DateOnly reduces a timestamp to its calendar date. The result is pinned to
// UTC so that dates carried in different locations (request dates parsed as
// UTC, the server clock in local time) compare by calendar day, not by instant.
func DateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

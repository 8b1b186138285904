package domain

import (
	"time"

	"github.com/google/uuid"
)

// VisitStatus represents the status of an official visit
type VisitStatus string

const (
	StatusBooked    VisitStatus = "booked"
	StatusCancelled VisitStatus = "cancelled"
	StatusCompleted VisitStatus = "completed"
	StatusExpired   VisitStatus = "expired"
)

// VisitType distinguishes in-person visits from video-link sessions
type VisitType string

const (
	VisitTypeInPerson VisitType = "in_person"
	VisitTypeVideo    VisitType = "video"
)

// OfficialVisit represents a booked official (non-social) visit occupying
// one visit slot on one calendar date
type OfficialVisit struct {
	ID             int64
	Reference      uuid.UUID
	VisitSlotID    int64
	TimeSlotID     int64
	PrisonCode     string
	PrisonerNumber string
	VisitDate      time.Time
	VisitType      VisitType
	Status         VisitStatus
	Visitors       []Visitor

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Visitor represents an official visitor attached to a visit
type Visitor struct {
	ID        int64
	VisitID   int64
	ContactID int64
	FirstName string
	LastName  string
	Attended  *bool // nil until attendance has been recorded
}

// IsVideo returns true for video-link visits
func (v *OfficialVisit) IsVideo() bool {
	return v.VisitType == VisitTypeVideo
}

// IsBooked returns true while the visit still occupies slot capacity
func (v *OfficialVisit) IsBooked() bool {
	return v.Status == StatusBooked
}

// CanBeCancelled returns true if the visit can be cancelled
func (v *OfficialVisit) CanBeCancelled() bool {
	return v.Status == StatusBooked
}

// CanBeCompleted returns true if the visit can be marked completed
func (v *OfficialVisit) CanBeCompleted() bool {
	return v.Status == StatusBooked
}

// CanRecordAttendance returns true if visitor attendance may still be recorded
func (v *OfficialVisit) CanRecordAttendance() bool {
	return v.Status == StatusBooked || v.Status == StatusCompleted
}

// VisitorAttendance one visitor's recorded attendance outcome
type VisitorAttendance struct {
	ContactID int64
	Attended  bool
}

// PrisonVisitsFilter filter for listing a prison's visits
type PrisonVisitsFilter struct {
	PrisonCode string       // required
	FromDate   *time.Time   // inclusive, nil = unbounded
	ToDate     *time.Time   // inclusive, nil = unbounded
	Status     *VisitStatus // nil = all statuses
}

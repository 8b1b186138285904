package domain

import "time"

// DayCode identifies a day of the week on a recurring time slot
type DayCode string

const (
	DayMonday    DayCode = "MON"
	DayTuesday   DayCode = "TUE"
	DayWednesday DayCode = "WED"
	DayThursday  DayCode = "THU"
	DayFriday    DayCode = "FRI"
	DaySaturday  DayCode = "SAT"
	DaySunday    DayCode = "SUN"
)

// dayDescriptions human-readable weekday names keyed by code
var dayDescriptions = map[DayCode]string{
	DayMonday:    "Monday",
	DayTuesday:   "Tuesday",
	DayWednesday: "Wednesday",
	DayThursday:  "Thursday",
	DayFriday:    "Friday",
	DaySaturday:  "Saturday",
	DaySunday:    "Sunday",
}

// dayWeekdays maps day codes to time.Weekday
var dayWeekdays = map[DayCode]time.Weekday{
	DayMonday:    time.Monday,
	DayTuesday:   time.Tuesday,
	DayWednesday: time.Wednesday,
	DayThursday:  time.Thursday,
	DayFriday:    time.Friday,
	DaySaturday:  time.Saturday,
	DaySunday:    time.Sunday,
}

// IsValid returns true if the code is one of the seven known day codes
func (d DayCode) IsValid() bool {
	_, ok := dayDescriptions[d]
	return ok
}

// Description returns the human-readable weekday name (e.g. "Monday")
func (d DayCode) Description() string {
	return dayDescriptions[d]
}

// Weekday returns the time.Weekday matching the code.
// Only meaningful for valid codes.
func (d DayCode) Weekday() time.Weekday {
	return dayWeekdays[d]
}

// Matches returns true if the given calendar date falls on this day of the week
func (d DayCode) Matches(date time.Time) bool {
	wd, ok := dayWeekdays[d]
	return ok && date.Weekday() == wd
}

// DayCodeFromWeekday returns the day code for a time.Weekday
func DayCodeFromWeekday(wd time.Weekday) DayCode {
	switch wd {
	case time.Monday:
		return DayMonday
	case time.Tuesday:
		return DayTuesday
	case time.Wednesday:
		return DayWednesday
	case time.Thursday:
		return DayThursday
	case time.Friday:
		return DayFriday
	case time.Saturday:
		return DaySaturday
	default:
		return DaySunday
	}
}

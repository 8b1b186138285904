package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxPrisonCodeLength         = 6
	MaxPrisonerNumberLength     = 10
	MaxCapacityPerDimension     = 999
	MaxVisitorsPerVisit         = 10
	MaxCancellationReasonLength = 500
)

// ActiveStatuses статусы визитов, занимающих вместимость слота.
// Используется при подсчёте доступных слотов.
var ActiveStatuses = []VisitStatus{
	StatusBooked,
}

// TerminalStatuses статусы, из которых визит больше не меняется
var TerminalStatuses = []VisitStatus{
	StatusCancelled,
	StatusCompleted,
	StatusExpired,
}

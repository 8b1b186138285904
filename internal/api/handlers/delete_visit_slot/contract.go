package delete_visit_slot

import "context"

type ScheduleService interface {
	DeleteVisitSlot(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

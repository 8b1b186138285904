package get_prison_schedule

import (
	"context"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/service/schedule/models"
)

type ScheduleService interface {
	GetPrisonSchedule(ctx context.Context, prisonCode string) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

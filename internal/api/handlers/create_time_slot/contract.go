package create_time_slot

import (
	"context"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateTimeSlot(ctx context.Context, prisonCode string, req *models.TimeSlotRequest) (*models.TimeSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

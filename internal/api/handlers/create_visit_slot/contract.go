package create_visit_slot

import (
	"context"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateVisitSlot(ctx context.Context, timeSlotID int64, req *models.VisitSlotRequest) (*models.VisitSlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

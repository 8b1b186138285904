package record_attendance

import (
	"context"

	"github.com/google/uuid"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/service/visits/models"
)

type VisitsService interface {
	RecordAttendance(ctx context.Context, reference uuid.UUID, req *models.RecordAttendanceRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_visit

import (
	"context"

	"github.com/google/uuid"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/service/visits/models"
)

type VisitsService interface {
	GetByReference(ctx context.Context, reference uuid.UUID) (*models.VisitResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

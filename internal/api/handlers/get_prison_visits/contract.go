package get_prison_visits

import (
	"context"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/service/visits/models"
)

type VisitsService interface {
	GetPrisonVisits(ctx context.Context, req *models.GetPrisonVisitsRequest) (*models.VisitListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

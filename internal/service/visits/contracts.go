package visits

import (
	"context"

	"github.com/google/uuid"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/events"
)

// VisitRepository интерфейс репозитория визитов
type VisitRepository interface {
	GetByReference(ctx context.Context, reference uuid.UUID) (*domain.OfficialVisit, error)
	GetByPrisonWithFilter(ctx context.Context, filter domain.PrisonVisitsFilter) ([]*domain.OfficialVisit, error)
	Cancel(ctx context.Context, id int64, reason string) error
	Complete(ctx context.Context, id int64) error
	UpdateAttendance(ctx context.Context, visitID int64, attendance []domain.VisitorAttendance) error
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

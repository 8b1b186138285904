package schedule

import (
	"context"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/events"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/integrations/prisonregister"
)

// TimeSlotRepository интерфейс репозитория временных слотов
type TimeSlotRepository interface {
	Create(ctx context.Context, slot *domain.RecurringTimeSlot) (*domain.RecurringTimeSlot, error)
	GetByID(ctx context.Context, id int64) (*domain.RecurringTimeSlot, error)
	GetByPrison(ctx context.Context, prisonCode string) ([]*domain.RecurringTimeSlot, error)
	Update(ctx context.Context, slot *domain.RecurringTimeSlot) (*domain.RecurringTimeSlot, error)
	Delete(ctx context.Context, id int64) error
}

// VisitSlotRepository интерфейс репозитория слотов визитов
type VisitSlotRepository interface {
	Create(ctx context.Context, slot *domain.VisitSlot) (*domain.VisitSlot, error)
	GetByID(ctx context.Context, id int64) (*domain.VisitSlot, error)
	GetByTimeSlot(ctx context.Context, timeSlotID int64) ([]*domain.VisitSlot, error)
	CountByTimeSlot(ctx context.Context, timeSlotID int64) (int, error)
	Update(ctx context.Context, slot *domain.VisitSlot) (*domain.VisitSlot, error)
	Delete(ctx context.Context, id int64) error
}

// VisitRepository интерфейс репозитория визитов (для защиты удаления)
type VisitRepository interface {
	CountByVisitSlot(ctx context.Context, visitSlotID int64) (int, error)
}

// PrisonRegisterClient интерфейс клиента реестра тюрем
type PrisonRegisterClient interface {
	GetPrison(ctx context.Context, prisonCode string) (*prisonregister.Prison, error)
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

package get_available_slots

import (
	"context"
	"time"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания (шаблоны + слоты визитов)
type ScheduleRepository interface {
	// GetConfiguredSlots получает все настроенные пары (time slot, visit slot) тюрьмы
	GetConfiguredSlots(ctx context.Context, prisonCode string) ([]*domain.ConfiguredSlot, error)
}

// VisitRepository интерфейс репозитория визитов
type VisitRepository interface {
	// GetBookedOccupancy получает занятость слотов: одна строка на booked-визит в периоде
	GetBookedOccupancy(ctx context.Context, prisonCode string, fromDate, toDate time.Time) ([]*domain.BookedOccupancy, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

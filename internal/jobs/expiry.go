package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/events"
	"github.com/ovs-lab/OVS-VisitScheduler/pkg/types"
)

// VisitRepository интерфейс репозитория визитов
type VisitRepository interface {
	ExpireOverdue(ctx context.Context, today time.Time, nowTime types.TimeString) ([]uuid.UUID, error)
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
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

// ExpirySweeper периодически переводит просроченные booked-визиты в expired
type ExpirySweeper struct {
	visitRepo    VisitRepository
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger

	schedule string
	cron     *cron.Cron
}

// NewExpirySweeper создает фоновую задачу просрочки визитов
func NewExpirySweeper(visitRepo VisitRepository, publisher EventPublisher, schedule string, logger Logger) *ExpirySweeper {
	return &ExpirySweeper{
		visitRepo:    visitRepo,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		schedule:     schedule,
	}
}

// Start регистрирует задачу по cron-расписанию и запускает планировщик
func (s *ExpirySweeper) Start() error {
	s.cron = cron.New()

	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.Sweep(context.Background())
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("ExpirySweeper: started with schedule %q", s.schedule)
	return nil
}

// Stop останавливает планировщик и дожидается завершения текущего прохода
func (s *ExpirySweeper) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.logger.Info("ExpirySweeper: stopped")
}

// Sweep выполняет один проход: помечает просроченные визиты
// и публикует событие на каждый затронутый визит
func (s *ExpirySweeper) Sweep(ctx context.Context) {
	now := s.timeProvider.Now()
	today := domain.DateOnly(now)
	nowTime := types.NewTimeString(now)

	references, err := s.visitRepo.ExpireOverdue(ctx, today, nowTime)
	if err != nil {
		s.logger.Error("ExpirySweeper: failed to expire overdue visits: %v", err)
		return
	}

	if len(references) == 0 {
		return
	}

	s.logger.Info("ExpirySweeper: expired %d visits", len(references))

	for _, reference := range references {
		event := events.NewEvent(events.EventVisitExpired, "")
		ref := reference
		event.VisitReference = &ref

		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("ExpirySweeper: failed to publish %s event for reference=%s: %v",
				events.EventVisitExpired, reference, err)
		}
	}
}

package get_available_slots

import (
	"context"
	"fmt"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
)

// UseCase use case для получения доступных слотов официальных визитов.
// Чистая read-only операция: два чтения и вычисление, без побочных эффектов.
type UseCase struct {
	scheduleRepo ScheduleRepository
	visitRepo    VisitRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	visitRepo VisitRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		visitRepo:    visitRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: prison=%s, from=%s, to=%s, videoOnly=%t",
		req.PrisonCode, req.FromDate.Format(domain.DateFormat), req.ToDate.Format(domain.DateFormat), req.VideoOnly)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация периода — до обращений к БД
	if err := validateDateRange(req.FromDate, req.ToDate, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date range validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем настроенные слоты тюрьмы.
	// Неизвестный код тюрьмы — не ошибка: просто нет настроенных слотов.
	configured, err := uc.scheduleRepo.GetConfiguredSlots(ctx, req.PrisonCode)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get configured slots for prison=%s: %v", req.PrisonCode, err)
		return nil, fmt.Errorf("%w: failed to get configured slots: %v", ErrInternal, err)
	}

	if len(configured) == 0 {
		uc.logger.Info("GetAvailableSlots: no configured slots for prison=%s", req.PrisonCode)
		return uc.response(req, []domain.AvailableSlot{}), nil
	}

	// 5. Получаем занятость слотов в периоде.
	// Ошибка здесь фатальна для запроса: считать занятость нулевой нельзя,
	// это завысило бы доступность.
	occupancy, err := uc.visitRepo.GetBookedOccupancy(ctx, req.PrisonCode, req.FromDate, req.ToDate)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booked occupancy for prison=%s: %v", req.PrisonCode, err)
		return nil, fmt.Errorf("%w: failed to get booked occupancy: %v", ErrInternal, err)
	}

	// 6. Разворачиваем шаблоны в даты и вычитаем занятость
	slots := buildAvailableSlots(
		configured,
		aggregateOccupancy(occupancy),
		req.FromDate,
		req.ToDate,
		now,
		req.VideoOnly,
	)

	uc.logger.Info("GetAvailableSlots: %d available slots for prison=%s (configured pairs=%d, booked visits=%d)",
		len(slots), req.PrisonCode, len(configured), len(occupancy))

	return uc.response(req, slots), nil
}

func (uc *UseCase) response(req *Request, slots []domain.AvailableSlot) *Response {
	return &Response{
		PrisonCode: req.PrisonCode,
		FromDate:   req.FromDate,
		ToDate:     req.ToDate,
		VideoOnly:  req.VideoOnly,
		Slots:      slots,
	}
}

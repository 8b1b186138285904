package book_visit

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/events"
	timeslotRepo "github.com/ovs-lab/OVS-VisitScheduler/internal/infra/storage/timeslot"
	visitslotRepo "github.com/ovs-lab/OVS-VisitScheduler/internal/infra/storage/visitslot"
)

// UseCase use case для бронирования официального визита
type UseCase struct {
	visitRepo     VisitRepository
	visitSlotRepo VisitSlotRepository
	timeSlotRepo  TimeSlotRepository
	publisher     EventPublisher
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	visitRepo VisitRepository,
	visitSlotRepo VisitSlotRepository,
	timeSlotRepo TimeSlotRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		visitRepo:     visitRepo,
		visitSlotRepo: visitSlotRepo,
		timeSlotRepo:  timeSlotRepo,
		publisher:     publisher,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case бронирования визита.
// Использует сериализуемую транзакцию, чтобы визит создавался против
// согласованного снимка расписания.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookVisit: prison=%s, prisoner=%s, visitSlot=%d, date=%s, type=%s",
		req.PrisonCode, req.PrisonerNumber, req.VisitSlotID, req.VisitDate.Format(domain.DateFormat), req.VisitType)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookVisit: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.OfficialVisit

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем слот визита
		visitSlot, err := uc.visitSlotRepo.GetByID(txCtx, req.VisitSlotID)
		if err != nil {
			if errors.Is(err, visitslotRepo.ErrVisitSlotNotFound) {
				uc.logger.Warn("BookVisit: visit slot id=%d not found", req.VisitSlotID)
				return ErrVisitSlotNotFound
			}
			uc.logger.Error("BookVisit: failed to get visit slot id=%d: %v", req.VisitSlotID, err)
			return fmt.Errorf("%w: failed to get visit slot: %v", ErrInternal, err)
		}

		// 3.2. Получаем временной слот, которому принадлежит слот визита
		timeSlot, err := uc.timeSlotRepo.GetByID(txCtx, visitSlot.TimeSlotID)
		if err != nil {
			if errors.Is(err, timeslotRepo.ErrTimeSlotNotFound) {
				uc.logger.Warn("BookVisit: time slot id=%d not found for visit slot id=%d",
					visitSlot.TimeSlotID, req.VisitSlotID)
				return ErrVisitSlotNotFound
			}
			uc.logger.Error("BookVisit: failed to get time slot id=%d: %v", visitSlot.TimeSlotID, err)
			return fmt.Errorf("%w: failed to get time slot: %v", ErrInternal, err)
		}

		// 3.3. Слот должен принадлежать указанной тюрьме.
		// Чужой слот не раскрываем — отвечаем как на отсутствующий.
		if timeSlot.PrisonCode != req.PrisonCode {
			uc.logger.Warn("BookVisit: visit slot id=%d belongs to prison=%s, requested prison=%s",
				req.VisitSlotID, timeSlot.PrisonCode, req.PrisonCode)
			return ErrVisitSlotNotFound
		}

		// 3.4. Валидация даты визита против шаблона слота
		if err := validateSlotDate(timeSlot, req.VisitDate, now); err != nil {
			uc.logger.Warn("BookVisit: slot date validation failed: %v", err)
			return err
		}

		// 3.5. Видеовизит требует слота с настроенными видеосессиями
		if req.VisitType == domain.VisitTypeVideo && !visitSlot.SupportsVideo() {
			uc.logger.Warn("BookVisit: visit slot id=%d does not support video sessions", req.VisitSlotID)
			return ErrVideoNotSupported
		}

		// 3.6. Создаем визит с посетителями
		visit := &domain.OfficialVisit{
			Reference:      uuid.New(),
			VisitSlotID:    req.VisitSlotID,
			TimeSlotID:     visitSlot.TimeSlotID,
			PrisonCode:     req.PrisonCode,
			PrisonerNumber: req.PrisonerNumber,
			VisitDate:      domain.DateOnly(req.VisitDate),
			VisitType:      req.VisitType,
			Status:         domain.StatusBooked,
			Visitors:       toVisitors(req.Visitors),
		}

		created, err := uc.visitRepo.Create(txCtx, visit)
		if err != nil {
			uc.logger.Error("BookVisit: failed to create visit: %v", err)
			return fmt.Errorf("%w: failed to create visit: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookVisit: successfully booked visit reference=%s", result.Reference)

	// 4. Публикуем событие. Ошибка публикации не отменяет бронирование.
	uc.publishBooked(ctx, result)

	return toResponse(result), nil
}

func (uc *UseCase) publishBooked(ctx context.Context, visit *domain.OfficialVisit) {
	event := events.NewEvent(events.EventVisitBooked, visit.PrisonCode)
	event.VisitReference = &visit.Reference
	event.TimeSlotID = &visit.TimeSlotID
	event.VisitSlotID = &visit.VisitSlotID

	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("BookVisit: failed to publish %s event for reference=%s: %v",
			events.EventVisitBooked, visit.Reference, err)
	}
}

func toVisitors(inputs []VisitorInput) []domain.Visitor {
	visitors := make([]domain.Visitor, 0, len(inputs))
	for _, v := range inputs {
		visitors = append(visitors, domain.Visitor{
			ContactID: v.ContactID,
			FirstName: v.FirstName,
			LastName:  v.LastName,
		})
	}
	return visitors
}

func toResponse(visit *domain.OfficialVisit) *Response {
	return &Response{
		Reference:      visit.Reference,
		VisitSlotID:    visit.VisitSlotID,
		TimeSlotID:     visit.TimeSlotID,
		PrisonCode:     visit.PrisonCode,
		PrisonerNumber: visit.PrisonerNumber,
		VisitDate:      visit.VisitDate,
		VisitType:      string(visit.VisitType),
		Status:         string(visit.Status),
		Visitors:       visit.Visitors,
		CreatedAt:      visit.CreatedAt,
		UpdatedAt:      visit.UpdatedAt,
	}
}

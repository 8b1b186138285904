package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/events"
	timeslotRepo "github.com/ovs-lab/OVS-VisitScheduler/internal/infra/storage/timeslot"
	visitslotRepo "github.com/ovs-lab/OVS-VisitScheduler/internal/infra/storage/visitslot"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/integrations/prisonregister"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/service/schedule/models"
)

// Service сервис администрирования расписания визитов
type Service struct {
	timeSlotRepo  TimeSlotRepository
	visitSlotRepo VisitSlotRepository
	visitRepo     VisitRepository
	prisonClient  PrisonRegisterClient
	publisher     EventPublisher
	logger        Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	timeSlotRepo TimeSlotRepository,
	visitSlotRepo VisitSlotRepository,
	visitRepo VisitRepository,
	prisonClient PrisonRegisterClient,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		timeSlotRepo:  timeSlotRepo,
		visitSlotRepo: visitSlotRepo,
		visitRepo:     visitRepo,
		prisonClient:  prisonClient,
		publisher:     publisher,
		logger:        logger,
	}
}

// GetPrisonSchedule возвращает временные слоты тюрьмы с вложенными слотами визитов
func (s *Service) GetPrisonSchedule(ctx context.Context, prisonCode string) (*models.ScheduleResponse, error) {
	s.logger.Info("GetPrisonSchedule: fetching schedule for prison=%s", prisonCode)

	if prisonCode == "" {
		return nil, fmt.Errorf("%w: prisonCode is required", ErrInvalidInput)
	}

	timeSlots, err := s.timeSlotRepo.GetByPrison(ctx, prisonCode)
	if err != nil {
		s.logger.Error("GetPrisonSchedule: repository error for prison=%s: %v", prisonCode, err)
		return nil, fmt.Errorf("%w: GetPrisonSchedule - repository error: %v", ErrInternal, err)
	}

	resp := &models.ScheduleResponse{
		PrisonCode: prisonCode,
		TimeSlots:  make([]models.ScheduleTimeSlot, 0, len(timeSlots)),
	}

	for _, ts := range timeSlots {
		visitSlots, err := s.visitSlotRepo.GetByTimeSlot(ctx, ts.ID)
		if err != nil {
			s.logger.Error("GetPrisonSchedule: failed to get visit slots for time slot id=%d: %v", ts.ID, err)
			return nil, fmt.Errorf("%w: GetPrisonSchedule - repository error: %v", ErrInternal, err)
		}

		entry := models.ScheduleTimeSlot{
			TimeSlotResponse: *models.FromDomainTimeSlot(ts),
			VisitSlots:       make([]models.VisitSlotResponse, 0, len(visitSlots)),
		}
		for _, vs := range visitSlots {
			entry.VisitSlots = append(entry.VisitSlots, *models.FromDomainVisitSlot(vs))
		}

		resp.TimeSlots = append(resp.TimeSlots, entry)
	}

	s.logger.Info("GetPrisonSchedule: successfully fetched %d time slots for prison=%s",
		len(resp.TimeSlots), prisonCode)
	return resp, nil
}

// CreateTimeSlot создает временной слот для тюрьмы.
// Код тюрьмы проверяется по реестру тюрем.
func (s *Service) CreateTimeSlot(ctx context.Context, prisonCode string, req *models.TimeSlotRequest) (*models.TimeSlotResponse, error) {
	s.logger.Info("CreateTimeSlot: creating time slot for prison=%s, day=%s, %s-%s",
		prisonCode, req.DayCode, req.StartTime, req.EndTime)

	slot, err := s.validateTimeSlot(ctx, prisonCode, req)
	if err != nil {
		s.logger.Warn("CreateTimeSlot: validation failed for prison=%s: %v", prisonCode, err)
		return nil, err
	}

	created, err := s.timeSlotRepo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("CreateTimeSlot: repository error for prison=%s: %v", prisonCode, err)
		return nil, fmt.Errorf("%w: CreateTimeSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateTimeSlot: successfully created time slot id=%d for prison=%s", created.ID, prisonCode)
	s.publishScheduleChanged(ctx, prisonCode, &created.ID, nil)
	return models.FromDomainTimeSlot(created), nil
}

// UpdateTimeSlot полностью заменяет поля временного слота
func (s *Service) UpdateTimeSlot(ctx context.Context, id int64, req *models.TimeSlotRequest) (*models.TimeSlotResponse, error) {
	s.logger.Info("UpdateTimeSlot: updating time slot id=%d", id)

	existing, err := s.getTimeSlot(ctx, id, "UpdateTimeSlot")
	if err != nil {
		return nil, err
	}

	slot, err := s.validateTimeSlot(ctx, existing.PrisonCode, req)
	if err != nil {
		s.logger.Warn("UpdateTimeSlot: validation failed for id=%d: %v", id, err)
		return nil, err
	}
	slot.ID = id

	updated, err := s.timeSlotRepo.Update(ctx, slot)
	if err != nil {
		if errors.Is(err, timeslotRepo.ErrTimeSlotNotFound) {
			s.logger.Warn("UpdateTimeSlot: time slot id=%d not found during update", id)
			return nil, ErrTimeSlotNotFound
		}
		s.logger.Error("UpdateTimeSlot: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateTimeSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateTimeSlot: successfully updated time slot id=%d", id)
	s.publishScheduleChanged(ctx, updated.PrisonCode, &updated.ID, nil)
	return models.FromDomainTimeSlot(updated), nil
}

// DeleteTimeSlot удаляет временной слот.
// Слот с настроенными слотами визитов удалить нельзя.
func (s *Service) DeleteTimeSlot(ctx context.Context, id int64) error {
	s.logger.Info("DeleteTimeSlot: deleting time slot id=%d", id)

	existing, err := s.getTimeSlot(ctx, id, "DeleteTimeSlot")
	if err != nil {
		return err
	}

	count, err := s.visitSlotRepo.CountByTimeSlot(ctx, id)
	if err != nil {
		s.logger.Error("DeleteTimeSlot: failed to count visit slots for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteTimeSlot - repository error: %v", ErrInternal, err)
	}
	if count > 0 {
		s.logger.Warn("DeleteTimeSlot: time slot id=%d has %d visit slots", id, count)
		return ErrTimeSlotInUse
	}

	if err := s.timeSlotRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, timeslotRepo.ErrTimeSlotNotFound) {
			s.logger.Warn("DeleteTimeSlot: time slot id=%d not found during deletion", id)
			return ErrTimeSlotNotFound
		}
		s.logger.Error("DeleteTimeSlot: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteTimeSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteTimeSlot: successfully deleted time slot id=%d", id)
	s.publishScheduleChanged(ctx, existing.PrisonCode, &id, nil)
	return nil
}

// CreateVisitSlot создает слот визитов внутри временного слота
func (s *Service) CreateVisitSlot(ctx context.Context, timeSlotID int64, req *models.VisitSlotRequest) (*models.VisitSlotResponse, error) {
	s.logger.Info("CreateVisitSlot: creating visit slot for time slot id=%d", timeSlotID)

	timeSlot, err := s.getTimeSlot(ctx, timeSlotID, "CreateVisitSlot")
	if err != nil {
		return nil, err
	}

	if err := validateVisitSlot(req); err != nil {
		s.logger.Warn("CreateVisitSlot: validation failed for time slot id=%d: %v", timeSlotID, err)
		return nil, err
	}

	created, err := s.visitSlotRepo.Create(ctx, req.ToDomain(timeSlotID))
	if err != nil {
		s.logger.Error("CreateVisitSlot: repository error for time slot id=%d: %v", timeSlotID, err)
		return nil, fmt.Errorf("%w: CreateVisitSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateVisitSlot: successfully created visit slot id=%d in time slot id=%d",
		created.ID, timeSlotID)
	s.publishScheduleChanged(ctx, timeSlot.PrisonCode, &timeSlotID, &created.ID)
	return models.FromDomainVisitSlot(created), nil
}

// UpdateVisitSlot полностью заменяет поля слота визитов
func (s *Service) UpdateVisitSlot(ctx context.Context, id int64, req *models.VisitSlotRequest) (*models.VisitSlotResponse, error) {
	s.logger.Info("UpdateVisitSlot: updating visit slot id=%d", id)

	existing, err := s.getVisitSlot(ctx, id, "UpdateVisitSlot")
	if err != nil {
		return nil, err
	}

	if err := validateVisitSlot(req); err != nil {
		s.logger.Warn("UpdateVisitSlot: validation failed for id=%d: %v", id, err)
		return nil, err
	}

	timeSlot, err := s.getTimeSlot(ctx, existing.TimeSlotID, "UpdateVisitSlot")
	if err != nil {
		return nil, err
	}

	slot := req.ToDomain(existing.TimeSlotID)
	slot.ID = id

	updated, err := s.visitSlotRepo.Update(ctx, slot)
	if err != nil {
		if errors.Is(err, visitslotRepo.ErrVisitSlotNotFound) {
			s.logger.Warn("UpdateVisitSlot: visit slot id=%d not found during update", id)
			return nil, ErrVisitSlotNotFound
		}
		s.logger.Error("UpdateVisitSlot: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateVisitSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateVisitSlot: successfully updated visit slot id=%d", id)
	s.publishScheduleChanged(ctx, timeSlot.PrisonCode, &existing.TimeSlotID, &id)
	return models.FromDomainVisitSlot(updated), nil
}

// DeleteVisitSlot удаляет слот визитов.
// Слот с визитами (в любом статусе) удалить нельзя.
func (s *Service) DeleteVisitSlot(ctx context.Context, id int64) error {
	s.logger.Info("DeleteVisitSlot: deleting visit slot id=%d", id)

	existing, err := s.getVisitSlot(ctx, id, "DeleteVisitSlot")
	if err != nil {
		return err
	}

	count, err := s.visitRepo.CountByVisitSlot(ctx, id)
	if err != nil {
		s.logger.Error("DeleteVisitSlot: failed to count visits for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteVisitSlot - repository error: %v", ErrInternal, err)
	}
	if count > 0 {
		s.logger.Warn("DeleteVisitSlot: visit slot id=%d has %d visits", id, count)
		return ErrVisitSlotInUse
	}

	timeSlot, err := s.getTimeSlot(ctx, existing.TimeSlotID, "DeleteVisitSlot")
	if err != nil {
		return err
	}

	if err := s.visitSlotRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, visitslotRepo.ErrVisitSlotNotFound) {
			s.logger.Warn("DeleteVisitSlot: visit slot id=%d not found during deletion", id)
			return ErrVisitSlotNotFound
		}
		s.logger.Error("DeleteVisitSlot: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteVisitSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteVisitSlot: successfully deleted visit slot id=%d", id)
	s.publishScheduleChanged(ctx, timeSlot.PrisonCode, &existing.TimeSlotID, &id)
	return nil
}

// Вспомогательные методы

// validateTimeSlot проверяет данные временного слота и код тюрьмы по реестру
func (s *Service) validateTimeSlot(ctx context.Context, prisonCode string, req *models.TimeSlotRequest) (*domain.RecurringTimeSlot, error) {
	if prisonCode == "" {
		return nil, fmt.Errorf("%w: prisonCode is required", ErrInvalidInput)
	}

	if req.EffectiveDate.IsZero() {
		return nil, fmt.Errorf("%w: effectiveDate is required", ErrInvalidInput)
	}

	slot, err := req.ToDomain(prisonCode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if !slot.StartTime.IsBefore(slot.EndTime) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if slot.ExpiryDate != nil && domain.DateOnly(*slot.ExpiryDate).Before(slot.EffectiveDate) {
		return nil, fmt.Errorf("%w: expiryDate must be on or after effectiveDate", ErrInvalidInput)
	}

	prison, err := s.prisonClient.GetPrison(ctx, prisonCode)
	if err != nil {
		if errors.Is(err, prisonregister.ErrPrisonNotFound) {
			return nil, ErrPrisonNotFound
		}
		return nil, fmt.Errorf("%w: failed to get prison: %v", ErrInternal, err)
	}
	if !prison.Active {
		return nil, ErrPrisonInactive
	}

	return slot, nil
}

// getTimeSlot получает временной слот с единообразной обработкой ошибок
func (s *Service) getTimeSlot(ctx context.Context, id int64, method string) (*domain.RecurringTimeSlot, error) {
	slot, err := s.timeSlotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, timeslotRepo.ErrTimeSlotNotFound) {
			s.logger.Warn("%s: time slot id=%d not found", method, id)
			return nil, ErrTimeSlotNotFound
		}
		s.logger.Error("%s: repository error for time slot id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return slot, nil
}

// getVisitSlot получает слот визитов с единообразной обработкой ошибок
func (s *Service) getVisitSlot(ctx context.Context, id int64, method string) (*domain.VisitSlot, error) {
	slot, err := s.visitSlotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, visitslotRepo.ErrVisitSlotNotFound) {
			s.logger.Warn("%s: visit slot id=%d not found", method, id)
			return nil, ErrVisitSlotNotFound
		}
		s.logger.Error("%s: repository error for visit slot id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return slot, nil
}

// publishScheduleChanged публикует событие изменения расписания.
// Ошибка публикации логируется и не влияет на результат операции.
func (s *Service) publishScheduleChanged(ctx context.Context, prisonCode string, timeSlotID, visitSlotID *int64) {
	event := events.NewEvent(events.EventScheduleChanged, prisonCode)
	event.TimeSlotID = timeSlotID
	event.VisitSlotID = visitSlotID

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish %s event for prison=%s: %v",
			events.EventScheduleChanged, prisonCode, err)
	}
}

// validateVisitSlot проверяет данные слота визитов
func validateVisitSlot(req *models.VisitSlotRequest) error {
	if req.DpsLocationID == uuid.Nil {
		return fmt.Errorf("%w: dpsLocationId is required", ErrInvalidInput)
	}

	for name, capacity := range map[string]*int{
		"maxAdults":        req.MaxAdults,
		"maxGroups":        req.MaxGroups,
		"maxVideoSessions": req.MaxVideoSessions,
	} {
		if capacity != nil && *capacity < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, name)
		}
	}

	return nil
}

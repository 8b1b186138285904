package visits

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/events"
	visitRepo "github.com/ovs-lab/OVS-VisitScheduler/internal/infra/storage/visit"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/service/visits/models"
)

// Service сервис для работы с официальными визитами
type Service struct {
	visitRepo VisitRepository
	publisher EventPublisher
	logger    Logger
}

// NewService создает новый экземпляр сервиса визитов
func NewService(
	visitRepo VisitRepository,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		visitRepo: visitRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// GetByReference получает визит по публичной ссылке
func (s *Service) GetByReference(ctx context.Context, reference uuid.UUID) (*models.VisitResponse, error) {
	s.logger.Info("GetByReference: fetching visit reference=%s", reference)

	visit, err := s.getVisit(ctx, reference, "GetByReference")
	if err != nil {
		return nil, err
	}

	return models.FromDomainVisit(visit), nil
}

// GetPrisonVisits получает визиты тюрьмы с фильтрацией по периоду и статусу
func (s *Service) GetPrisonVisits(ctx context.Context, req *models.GetPrisonVisitsRequest) (*models.VisitListResponse, error) {
	s.logger.Info("GetPrisonVisits: fetching visits for prison=%s", req.PrisonCode)

	if req.PrisonCode == "" {
		return nil, fmt.Errorf("%w: prisonCode is required", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetPrisonVisits: invalid filter for prison=%s: %v", req.PrisonCode, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	visits, err := s.visitRepo.GetByPrisonWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetPrisonVisits: repository error for prison=%s: %v", req.PrisonCode, err)
		return nil, fmt.Errorf("%w: GetPrisonVisits - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPrisonVisits: successfully fetched %d visits for prison=%s", len(visits), req.PrisonCode)
	return models.FromDomainVisitList(visits), nil
}

// Cancel отменяет забронированный визит.
// Причина отмены обязательна, отменить можно только визит в статусе booked.
func (s *Service) Cancel(ctx context.Context, reference uuid.UUID, req *models.CancelVisitRequest) error {
	s.logger.Info("Cancel: cancelling visit reference=%s", reference)

	if req.CancellationReason == "" {
		s.logger.Warn("Cancel: missing cancellation reason for reference=%s", reference)
		return fmt.Errorf("%w: cancellationReason is required", ErrInvalidInput)
	}

	visit, err := s.getVisit(ctx, reference, "Cancel")
	if err != nil {
		return err
	}

	if !visit.CanBeCancelled() {
		s.logger.Warn("Cancel: visit reference=%s cannot be cancelled, status=%s", reference, visit.Status)
		return ErrCannotCancel
	}

	if err := s.visitRepo.Cancel(ctx, visit.ID, req.CancellationReason); err != nil {
		if errors.Is(err, visitRepo.ErrVisitNotFound) {
			s.logger.Warn("Cancel: visit reference=%s not found during cancellation", reference)
			return ErrVisitNotFound
		}
		s.logger.Error("Cancel: repository error for reference=%s: %v", reference, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled visit reference=%s", reference)
	s.publishVisitEvent(ctx, events.EventVisitCancelled, visit)
	return nil
}

// Complete помечает визит состоявшимся
func (s *Service) Complete(ctx context.Context, reference uuid.UUID) error {
	s.logger.Info("Complete: completing visit reference=%s", reference)

	visit, err := s.getVisit(ctx, reference, "Complete")
	if err != nil {
		return err
	}

	if !visit.CanBeCompleted() {
		s.logger.Warn("Complete: visit reference=%s cannot be completed, status=%s", reference, visit.Status)
		return ErrCannotComplete
	}

	if err := s.visitRepo.Complete(ctx, visit.ID); err != nil {
		if errors.Is(err, visitRepo.ErrVisitNotFound) {
			s.logger.Warn("Complete: visit reference=%s not found during completion", reference)
			return ErrVisitNotFound
		}
		s.logger.Error("Complete: repository error for reference=%s: %v", reference, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Complete: successfully completed visit reference=%s", reference)
	s.publishVisitEvent(ctx, events.EventVisitCompleted, visit)
	return nil
}

// RecordAttendance фиксирует посещаемость посетителей визита.
// Каждый указанный контакт должен быть прикреплён к визиту.
func (s *Service) RecordAttendance(ctx context.Context, reference uuid.UUID, req *models.RecordAttendanceRequest) error {
	s.logger.Info("RecordAttendance: recording attendance for visit reference=%s", reference)

	if len(req.Visitors) == 0 {
		s.logger.Warn("RecordAttendance: empty attendance for reference=%s", reference)
		return fmt.Errorf("%w: at least one visitor is required", ErrInvalidInput)
	}

	visit, err := s.getVisit(ctx, reference, "RecordAttendance")
	if err != nil {
		return err
	}

	if !visit.CanRecordAttendance() {
		s.logger.Warn("RecordAttendance: visit reference=%s does not accept attendance, status=%s",
			reference, visit.Status)
		return ErrCannotRecordAttendance
	}

	attendance, err := toAttendance(visit, req.Visitors)
	if err != nil {
		s.logger.Warn("RecordAttendance: invalid attendance for reference=%s: %v", reference, err)
		return err
	}

	if err := s.visitRepo.UpdateAttendance(ctx, visit.ID, attendance); err != nil {
		s.logger.Error("RecordAttendance: repository error for reference=%s: %v", reference, err)
		return fmt.Errorf("%w: RecordAttendance - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RecordAttendance: successfully recorded attendance for %d visitors, reference=%s",
		len(attendance), reference)
	return nil
}

// Вспомогательные методы

// getVisit получает визит по ссылке с единообразной обработкой ошибок
func (s *Service) getVisit(ctx context.Context, reference uuid.UUID, method string) (*domain.OfficialVisit, error) {
	visit, err := s.visitRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, visitRepo.ErrVisitNotFound) {
			s.logger.Warn("%s: visit reference=%s not found", method, reference)
			return nil, ErrVisitNotFound
		}
		s.logger.Error("%s: repository error for reference=%s: %v", method, reference, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return visit, nil
}

// publishVisitEvent публикует событие по визиту. Ошибка публикации
// логируется и не влияет на результат операции.
func (s *Service) publishVisitEvent(ctx context.Context, eventType events.EventType, visit *domain.OfficialVisit) {
	event := events.NewEvent(eventType, visit.PrisonCode)
	event.VisitReference = &visit.Reference
	event.TimeSlotID = &visit.TimeSlotID
	event.VisitSlotID = &visit.VisitSlotID

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish %s event for reference=%s: %v", eventType, visit.Reference, err)
	}
}

// toAttendance проверяет, что каждый контакт прикреплён к визиту,
// и конвертирует входные данные в domain модель
func toAttendance(visit *domain.OfficialVisit, inputs []models.VisitorAttendanceInput) ([]domain.VisitorAttendance, error) {
	known := make(map[int64]struct{}, len(visit.Visitors))
	for _, v := range visit.Visitors {
		known[v.ContactID] = struct{}{}
	}

	attendance := make([]domain.VisitorAttendance, 0, len(inputs))
	for _, input := range inputs {
		if _, ok := known[input.ContactID]; !ok {
			return nil, fmt.Errorf("%w: contactId=%d", ErrUnknownVisitor, input.ContactID)
		}
		attendance = append(attendance, domain.VisitorAttendance{
			ContactID: input.ContactID,
			Attended:  input.Attended,
		})
	}

	return attendance, nil
}

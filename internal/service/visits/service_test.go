package visits

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/events"
	visitRepo "github.com/ovs-lab/OVS-VisitScheduler/internal/infra/storage/visit"
	"github.com/ovs-lab/OVS-VisitScheduler/internal/service/visits/models"
	"github.com/ovs-lab/OVS-VisitScheduler/pkg/ptr"
)

type fakeVisitRepo struct {
	visits map[uuid.UUID]*domain.OfficialVisit

	cancelled  map[int64]string
	completed  map[int64]bool
	attendance map[int64][]domain.VisitorAttendance
	err        error
}

func newFakeVisitRepo(visits ...*domain.OfficialVisit) *fakeVisitRepo {
	repo := &fakeVisitRepo{
		visits:     make(map[uuid.UUID]*domain.OfficialVisit),
		cancelled:  make(map[int64]string),
		completed:  make(map[int64]bool),
		attendance: make(map[int64][]domain.VisitorAttendance),
	}
	for _, v := range visits {
		repo.visits[v.Reference] = v
	}
	return repo
}

func (f *fakeVisitRepo) GetByReference(ctx context.Context, reference uuid.UUID) (*domain.OfficialVisit, error) {
	if f.err != nil {
		return nil, f.err
	}
	visit, ok := f.visits[reference]
	if !ok {
		return nil, visitRepo.ErrVisitNotFound
	}
	return visit, nil
}

func (f *fakeVisitRepo) GetByPrisonWithFilter(ctx context.Context, filter domain.PrisonVisitsFilter) ([]*domain.OfficialVisit, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []*domain.OfficialVisit
	for _, v := range f.visits {
		if v.PrisonCode != filter.PrisonCode {
			continue
		}
		if filter.Status != nil && v.Status != *filter.Status {
			continue
		}
		result = append(result, v)
	}
	return result, nil
}

func (f *fakeVisitRepo) Cancel(ctx context.Context, id int64, reason string) error {
	f.cancelled[id] = reason
	return nil
}

func (f *fakeVisitRepo) Complete(ctx context.Context, id int64) error {
	f.completed[id] = true
	return nil
}

func (f *fakeVisitRepo) UpdateAttendance(ctx context.Context, visitID int64, attendance []domain.VisitorAttendance) error {
	f.attendance[visitID] = attendance
	return nil
}

type fakePublisher struct {
	published []events.Event
}

func (f *fakePublisher) Publish(ctx context.Context, event events.Event) error {
	f.published = append(f.published, event)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func bookedVisit() *domain.OfficialVisit {
	return &domain.OfficialVisit{
		ID:             1,
		Reference:      uuid.MustParse("3f6c1f0a-8a2e-4b67-9d2e-1a0b3c4d5e6f"),
		VisitSlotID:    100,
		TimeSlotID:     1,
		PrisonCode:     "HEI",
		PrisonerNumber: "A1234BC",
		VisitDate:      time.Date(2026, time.September, 4, 0, 0, 0, 0, time.UTC),
		VisitType:      domain.VisitTypeInPerson,
		Status:         domain.StatusBooked,
		Visitors: []domain.Visitor{
			{ID: 10, VisitID: 1, ContactID: 42, FirstName: "John", LastName: "Smith"},
			{ID: 11, VisitID: 1, ContactID: 43, FirstName: "Jane", LastName: "Smith"},
		},
	}
}

func TestGetByReference(t *testing.T) {
	visit := bookedVisit()
	svc := NewService(newFakeVisitRepo(visit), &fakePublisher{}, nopLogger{})

	t.Run("found", func(t *testing.T) {
		resp, err := svc.GetByReference(context.Background(), visit.Reference)
		require.NoError(t, err)
		assert.Equal(t, visit.Reference, resp.Reference)
		assert.Equal(t, "2026-09-04", resp.VisitDate)
		assert.Equal(t, "booked", resp.Status)
		require.Len(t, resp.Visitors, 2)
		assert.Nil(t, resp.Visitors[0].Attended)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByReference(context.Background(), uuid.New())
		require.ErrorIs(t, err, ErrVisitNotFound)
	})
}

func TestGetPrisonVisits(t *testing.T) {
	booked := bookedVisit()
	cancelled := bookedVisit()
	cancelled.ID = 2
	cancelled.Reference = uuid.New()
	cancelled.Status = domain.StatusCancelled

	svc := NewService(newFakeVisitRepo(booked, cancelled), &fakePublisher{}, nopLogger{})

	t.Run("all statuses", func(t *testing.T) {
		resp, err := svc.GetPrisonVisits(context.Background(), &models.GetPrisonVisitsRequest{PrisonCode: "HEI"})
		require.NoError(t, err)
		assert.Len(t, resp.Visits, 2)
	})

	t.Run("filtered by status", func(t *testing.T) {
		resp, err := svc.GetPrisonVisits(context.Background(), &models.GetPrisonVisitsRequest{
			PrisonCode: "HEI",
			Status:     ptr.Ptr("cancelled"),
		})
		require.NoError(t, err)
		require.Len(t, resp.Visits, 1)
		assert.Equal(t, "cancelled", resp.Visits[0].Status)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.GetPrisonVisits(context.Background(), &models.GetPrisonVisitsRequest{
			PrisonCode: "HEI",
			Status:     ptr.Ptr("pending"),
		})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing prison code", func(t *testing.T) {
		_, err := svc.GetPrisonVisits(context.Background(), &models.GetPrisonVisitsRequest{})
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCancel(t *testing.T) {
	t.Run("cancels booked visit and publishes event", func(t *testing.T) {
		visit := bookedVisit()
		repo := newFakeVisitRepo(visit)
		publisher := &fakePublisher{}
		svc := NewService(repo, publisher, nopLogger{})

		err := svc.Cancel(context.Background(), visit.Reference, &models.CancelVisitRequest{
			CancellationReason: "prisoner transferred",
		})
		require.NoError(t, err)
		assert.Equal(t, "prisoner transferred", repo.cancelled[visit.ID])

		require.Len(t, publisher.published, 1)
		assert.Equal(t, events.EventVisitCancelled, publisher.published[0].Type)
	})

	t.Run("requires a reason", func(t *testing.T) {
		visit := bookedVisit()
		svc := NewService(newFakeVisitRepo(visit), &fakePublisher{}, nopLogger{})

		err := svc.Cancel(context.Background(), visit.Reference, &models.CancelVisitRequest{})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("rejects non-booked visit", func(t *testing.T) {
		visit := bookedVisit()
		visit.Status = domain.StatusCompleted
		publisher := &fakePublisher{}
		svc := NewService(newFakeVisitRepo(visit), publisher, nopLogger{})

		err := svc.Cancel(context.Background(), visit.Reference, &models.CancelVisitRequest{
			CancellationReason: "reason",
		})
		require.ErrorIs(t, err, ErrCannotCancel)
		assert.Empty(t, publisher.published)
	})
}

func TestComplete(t *testing.T) {
	t.Run("completes booked visit", func(t *testing.T) {
		visit := bookedVisit()
		repo := newFakeVisitRepo(visit)
		publisher := &fakePublisher{}
		svc := NewService(repo, publisher, nopLogger{})

		err := svc.Complete(context.Background(), visit.Reference)
		require.NoError(t, err)
		assert.True(t, repo.completed[visit.ID])

		require.Len(t, publisher.published, 1)
		assert.Equal(t, events.EventVisitCompleted, publisher.published[0].Type)
	})

	t.Run("rejects cancelled visit", func(t *testing.T) {
		visit := bookedVisit()
		visit.Status = domain.StatusCancelled
		svc := NewService(newFakeVisitRepo(visit), &fakePublisher{}, nopLogger{})

		err := svc.Complete(context.Background(), visit.Reference)
		require.ErrorIs(t, err, ErrCannotComplete)
	})
}

func TestRecordAttendance(t *testing.T) {
	t.Run("records attendance for attached visitors", func(t *testing.T) {
		visit := bookedVisit()
		repo := newFakeVisitRepo(visit)
		svc := NewService(repo, &fakePublisher{}, nopLogger{})

		err := svc.RecordAttendance(context.Background(), visit.Reference, &models.RecordAttendanceRequest{
			Visitors: []models.VisitorAttendanceInput{
				{ContactID: 42, Attended: true},
				{ContactID: 43, Attended: false},
			},
		})
		require.NoError(t, err)
		require.Len(t, repo.attendance[visit.ID], 2)
		assert.Equal(t, domain.VisitorAttendance{ContactID: 42, Attended: true}, repo.attendance[visit.ID][0])
	})

	t.Run("allowed on completed visit", func(t *testing.T) {
		visit := bookedVisit()
		visit.Status = domain.StatusCompleted
		repo := newFakeVisitRepo(visit)
		svc := NewService(repo, &fakePublisher{}, nopLogger{})

		err := svc.RecordAttendance(context.Background(), visit.Reference, &models.RecordAttendanceRequest{
			Visitors: []models.VisitorAttendanceInput{{ContactID: 42, Attended: true}},
		})
		require.NoError(t, err)
	})

	t.Run("rejects unknown visitor", func(t *testing.T) {
		visit := bookedVisit()
		repo := newFakeVisitRepo(visit)
		svc := NewService(repo, &fakePublisher{}, nopLogger{})

		err := svc.RecordAttendance(context.Background(), visit.Reference, &models.RecordAttendanceRequest{
			Visitors: []models.VisitorAttendanceInput{{ContactID: 99, Attended: true}},
		})
		require.ErrorIs(t, err, ErrUnknownVisitor)
		assert.Empty(t, repo.attendance)
	})

	t.Run("rejects expired visit", func(t *testing.T) {
		visit := bookedVisit()
		visit.Status = domain.StatusExpired
		svc := NewService(newFakeVisitRepo(visit), &fakePublisher{}, nopLogger{})

		err := svc.RecordAttendance(context.Background(), visit.Reference, &models.RecordAttendanceRequest{
			Visitors: []models.VisitorAttendanceInput{{ContactID: 42, Attended: true}},
		})
		require.ErrorIs(t, err, ErrCannotRecordAttendance)
	})

	t.Run("repository failure", func(t *testing.T) {
		visit := bookedVisit()
		repo := newFakeVisitRepo(visit)
		repo.err = errors.New("connection refused")
		svc := NewService(repo, &fakePublisher{}, nopLogger{})

		err := svc.RecordAttendance(context.Background(), visit.Reference, &models.RecordAttendanceRequest{
			Visitors: []models.VisitorAttendanceInput{{ContactID: 42, Attended: true}},
		})
		require.ErrorIs(t, err, ErrInternal)
	})
}

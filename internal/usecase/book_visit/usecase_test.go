package book_visit

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
	timeslotRepo "github.com/ovs-lab/OVS-VisitScheduler/internal/infra/storage/timeslot"
	visitslotRepo "github.com/ovs-lab/OVS-VisitScheduler/internal/infra/storage/visitslot"
	"github.com/ovs-lab/OVS-VisitScheduler/pkg/ptr"
)

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type fakeVisitRepo struct {
	created *domain.OfficialVisit
	err     error
}

func (f *fakeVisitRepo) Create(ctx context.Context, visit *domain.OfficialVisit) (*domain.OfficialVisit, error) {
	if f.err != nil {
		return nil, f.err
	}
	stored := *visit
	stored.ID = 1
	stored.CreatedAt = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)
	stored.UpdatedAt = stored.CreatedAt
	f.created = &stored
	return &stored, nil
}

type fakeVisitSlotRepo struct {
	slots map[int64]*domain.VisitSlot
}

func (f *fakeVisitSlotRepo) GetByID(ctx context.Context, id int64) (*domain.VisitSlot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, visitslotRepo.ErrVisitSlotNotFound
	}
	return slot, nil
}

type fakeTimeSlotRepo struct {
	slots map[int64]*domain.RecurringTimeSlot
}

func (f *fakeTimeSlotRepo) GetByID(ctx context.Context, id int64) (*domain.RecurringTimeSlot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, timeslotRepo.ErrTimeSlotNotFound
	}
	return slot, nil
}

type fakePublisher struct {
	published []events.Event
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, event events.Event) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, event)
	return nil
}

// fakeTxManager прозрачный менеджер транзакций для тестов
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Опорное время: вторник 2026-09-01, 10:00
var testNow = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	uc        *UseCase
	visits    *fakeVisitRepo
	publisher *fakePublisher
}

func newFixture() *fixture {
	visits := &fakeVisitRepo{}
	publisher := &fakePublisher{}

	timeSlots := &fakeTimeSlotRepo{slots: map[int64]*domain.RecurringTimeSlot{
		1: {
			ID:            1,
			PrisonCode:    "HEI",
			DayCode:       domain.DayFriday,
			StartTime:     "14:00",
			EndTime:       "16:00",
			EffectiveDate: date(2026, time.January, 1),
		},
	}}

	visitSlots := &fakeVisitSlotRepo{slots: map[int64]*domain.VisitSlot{
		100: {
			ID:               100,
			TimeSlotID:       1,
			DpsLocationID:    uuid.MustParse("b1f0b3a2-66a1-4d1c-9f6e-0f3f6a2b9c01"),
			MaxAdults:        ptr.Ptr(10),
			MaxGroups:        ptr.Ptr(5),
			MaxVideoSessions: ptr.Ptr(4),
		},
		200: {
			ID:         200,
			TimeSlotID: 1,
			MaxAdults:  ptr.Ptr(10),
			MaxGroups:  ptr.Ptr(5),
		},
	}}

	uc := NewUseCase(visits, visitSlots, timeSlots, publisher, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}

	return &fixture{uc: uc, visits: visits, publisher: publisher}
}

func validRequest() *Request {
	return &Request{
		PrisonCode:     "HEI",
		PrisonerNumber: "A1234BC",
		VisitSlotID:    100,
		VisitDate:      date(2026, time.September, 4), // пятница
		VisitType:      domain.VisitTypeInPerson,
		Visitors: []VisitorInput{
			{ContactID: 42, FirstName: "John", LastName: "Smith"},
		},
	}
}

func TestExecuteBooksVisit(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.Reference)
	assert.Equal(t, int64(100), resp.VisitSlotID)
	assert.Equal(t, int64(1), resp.TimeSlotID)
	assert.Equal(t, "HEI", resp.PrisonCode)
	assert.Equal(t, "A1234BC", resp.PrisonerNumber)
	assert.Equal(t, date(2026, time.September, 4), resp.VisitDate)
	assert.Equal(t, string(domain.StatusBooked), resp.Status)
	require.Len(t, resp.Visitors, 1)
	assert.Equal(t, int64(42), resp.Visitors[0].ContactID)

	require.NotNil(t, f.visits.created)
	assert.Equal(t, domain.StatusBooked, f.visits.created.Status)

	require.Len(t, f.publisher.published, 1)
	event := f.publisher.published[0]
	assert.Equal(t, events.EventVisitBooked, event.Type)
	assert.Equal(t, "HEI", event.PrisonCode)
	require.NotNil(t, event.VisitReference)
	assert.Equal(t, resp.Reference, *event.VisitReference)
}

func TestExecuteValidation(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing prison code", func(r *Request) { r.PrisonCode = "" }},
		{"missing prisoner number", func(r *Request) { r.PrisonerNumber = "" }},
		{"missing visit slot id", func(r *Request) { r.VisitSlotID = 0 }},
		{"missing visit date", func(r *Request) { r.VisitDate = time.Time{} }},
		{"unknown visit type", func(r *Request) { r.VisitType = "remote" }},
		{"no visitors", func(r *Request) { r.Visitors = nil }},
		{"visitor without contact id", func(r *Request) { r.Visitors[0].ContactID = 0 }},
		{"visitor without name", func(r *Request) { r.Visitors[0].FirstName = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := f.uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecuteVisitSlotNotFound(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.VisitSlotID = 999

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrVisitSlotNotFound)
	assert.Empty(t, f.publisher.published)
}

func TestExecuteWrongPrison(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.PrisonCode = "LEI"

	// Слот другой тюрьмы неотличим от отсутствующего
	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrVisitSlotNotFound)
}

func TestExecuteDateValidation(t *testing.T) {
	f := newFixture()

	t.Run("date in the past", func(t *testing.T) {
		req := validRequest()
		req.VisitDate = date(2026, time.August, 28)
		_, err := f.uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrVisitDateInPast)
	})

	t.Run("weekday does not match", func(t *testing.T) {
		req := validRequest()
		req.VisitDate = date(2026, time.September, 3) // четверг
		_, err := f.uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrSlotNotAvailableOnDate)
	})

	t.Run("date outside effective window", func(t *testing.T) {
		f := newFixture()
		f.uc.timeSlotRepo.(*fakeTimeSlotRepo).slots[1].ExpiryDate = ptr.Ptr(date(2026, time.September, 4))

		req := validRequest()
		req.VisitDate = date(2026, time.September, 11)
		_, err := f.uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrSlotNotAvailableOnDate)
	})
}

func TestExecuteSameDayCutoff(t *testing.T) {
	f := newFixture()
	ts := f.uc.timeSlotRepo.(*fakeTimeSlotRepo).slots[1]
	ts.DayCode = domain.DayTuesday

	req := validRequest()
	req.VisitDate = date(2026, time.September, 1) // сегодня

	// Слот 14:00-16:00 ещё впереди — бронируется
	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Слот уже закончился к 10:00 — не бронируется
	ts.StartTime = "08:00"
	ts.EndTime = "09:30"
	_, err = f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotNotAvailableOnDate)
}

func TestExecuteNonUTCServerClock(t *testing.T) {
	// Дата визита парсится в UTC, серверные часы могут идти в другой зоне.
	// Сравнение идёт по календарным дням, а не по моментам времени.
	t.Run("same-day cutoff applies with positive offset clock", func(t *testing.T) {
		f := newFixture()
		f.uc.timeProvider = &fixedTimeProvider{
			now: time.Date(2026, time.September, 1, 10, 0, 0, 0, time.FixedZone("UTC+5", 5*60*60)),
		}
		ts := f.uc.timeSlotRepo.(*fakeTimeSlotRepo).slots[1]
		ts.DayCode = domain.DayTuesday
		ts.StartTime = "08:00"
		ts.EndTime = "09:30"

		req := validRequest()
		req.VisitDate = date(2026, time.September, 1) // сегодня

		_, err := f.uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, ErrSlotNotAvailableOnDate)
	})

	t.Run("booking for today is allowed with negative offset clock", func(t *testing.T) {
		f := newFixture()
		f.uc.timeProvider = &fixedTimeProvider{
			now: time.Date(2026, time.September, 1, 10, 0, 0, 0, time.FixedZone("UTC-5", -5*60*60)),
		}
		f.uc.timeSlotRepo.(*fakeTimeSlotRepo).slots[1].DayCode = domain.DayTuesday

		req := validRequest()
		req.VisitDate = date(2026, time.September, 1) // сегодня, слот ещё впереди

		_, err := f.uc.Execute(context.Background(), req)
		require.NoError(t, err)
	})
}

func TestExecuteVideoRequiresVideoCapacity(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.VisitType = domain.VisitTypeVideo
	req.VisitSlotID = 200 // без видеосессий

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrVideoNotSupported)

	req.VisitSlotID = 100
	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, string(domain.VisitTypeVideo), resp.VisitType)
}

func TestExecutePublishFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture()
	f.publisher.err = errors.New("redis: connection refused")

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, resp.Reference)
}

func TestExecuteStorageFailure(t *testing.T) {
	f := newFixture()
	f.visits.err = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.publisher.published)
}

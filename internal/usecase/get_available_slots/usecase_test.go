package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
	"github.com/ovs-lab/OVS-VisitScheduler/pkg/ptr"
)

// fixedTimeProvider фиксированное время для детерминированных тестов
type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

// fakeScheduleRepo имитация репозитория расписания
type fakeScheduleRepo struct {
	slots []*domain.ConfiguredSlot
	err   error
}

func (f *fakeScheduleRepo) GetConfiguredSlots(ctx context.Context, prisonCode string) ([]*domain.ConfiguredSlot, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []*domain.ConfiguredSlot
	for _, s := range f.slots {
		if s.PrisonCode == prisonCode {
			result = append(result, s)
		}
	}
	return result, nil
}

// fakeVisitRepo имитация репозитория визитов
type fakeVisitRepo struct {
	occupancy []*domain.BookedOccupancy
	err       error
}

func (f *fakeVisitRepo) GetBookedOccupancy(ctx context.Context, prisonCode string, fromDate, toDate time.Time) ([]*domain.BookedOccupancy, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.occupancy, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Опорное время всех сценариев: вторник 2026-09-01, 10:00
var testNow = time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)

var testLocationID = uuid.MustParse("b1f0b3a2-66a1-4d1c-9f6e-0f3f6a2b9c01")

// fridaySlot настроенный слот по пятницам 14:00-16:00 с вместимостью 10/5/4
func fridaySlot() *domain.ConfiguredSlot {
	return &domain.ConfiguredSlot{
		TimeSlotID:       1,
		VisitSlotID:      100,
		PrisonCode:       "HEI",
		DayCode:          domain.DayFriday,
		StartTime:        "14:00",
		EndTime:          "16:00",
		EffectiveDate:    date(2026, time.January, 1),
		DpsLocationID:    testLocationID,
		MaxAdults:        10,
		MaxGroups:        5,
		MaxVideoSessions: 4,
	}
}

func newTestUseCase(schedule *fakeScheduleRepo, visits *fakeVisitRepo) *UseCase {
	uc := NewUseCase(schedule, visits, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func TestExecuteValidation(t *testing.T) {
	uc := newTestUseCase(&fakeScheduleRepo{}, &fakeVisitRepo{})

	t.Run("from date in the past", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			PrisonCode: "HEI",
			FromDate:   date(2026, time.August, 31),
			ToDate:     date(2026, time.September, 7),
		})
		require.Error(t, err)
		assert.EqualError(t, err, "The from date must be on or after today's date")
	})

	t.Run("to date before from date", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			PrisonCode: "HEI",
			FromDate:   date(2026, time.September, 7),
			ToDate:     date(2026, time.September, 6),
		})
		require.Error(t, err)
		assert.EqualError(t, err, "The to date must be on or after the from date")
	})

	t.Run("from date today is allowed", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), &Request{
			PrisonCode: "HEI",
			FromDate:   date(2026, time.September, 1),
			ToDate:     date(2026, time.September, 1),
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
	})

	t.Run("missing prison code", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			FromDate: date(2026, time.September, 1),
			ToDate:   date(2026, time.September, 7),
		})
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecuteNoBookings(t *testing.T) {
	uc := newTestUseCase(
		&fakeScheduleRepo{slots: []*domain.ConfiguredSlot{fridaySlot()}},
		&fakeVisitRepo{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		PrisonCode: "HEI",
		FromDate:   date(2026, time.September, 1),
		ToDate:     date(2026, time.September, 7),
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)

	slot := resp.Slots[0]
	assert.Equal(t, int64(100), slot.VisitSlotID)
	assert.Equal(t, int64(1), slot.TimeSlotID)
	assert.Equal(t, "HEI", slot.PrisonCode)
	assert.Equal(t, domain.DayFriday, slot.DayCode)
	assert.Equal(t, "Friday", slot.DayDescription)
	assert.Equal(t, date(2026, time.September, 4), slot.VisitDate)
	assert.Equal(t, testLocationID, slot.DpsLocationID)
	assert.Equal(t, 10, slot.AvailableAdults)
	assert.Equal(t, 5, slot.AvailableGroups)
	assert.Equal(t, 4, slot.AvailableVideoSessions)
}

func TestExecuteSubtractsBookedOccupancy(t *testing.T) {
	friday := date(2026, time.September, 4)

	// 2 обычных визита и 1 видеовизит на пятницу
	occupancy := []*domain.BookedOccupancy{
		{TimeSlotID: 1, VisitSlotID: 100, VisitDate: friday},
		{TimeSlotID: 1, VisitSlotID: 100, VisitDate: friday},
		{TimeSlotID: 1, VisitSlotID: 100, VisitDate: friday, IsVideo: true},
	}

	uc := newTestUseCase(
		&fakeScheduleRepo{slots: []*domain.ConfiguredSlot{fridaySlot()}},
		&fakeVisitRepo{occupancy: occupancy},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		PrisonCode: "HEI",
		FromDate:   date(2026, time.September, 1),
		ToDate:     date(2026, time.September, 7),
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)

	slot := resp.Slots[0]
	assert.Equal(t, 7, slot.AvailableAdults)
	assert.Equal(t, 2, slot.AvailableGroups)
	assert.Equal(t, 3, slot.AvailableVideoSessions)
}

func TestExecuteVideoBookingConsumesAllDimensions(t *testing.T) {
	friday := date(2026, time.September, 4)

	// 1 обычный визит и 1 видеовизит: видеовизит тоже занимает
	// по единице adults и groups
	occupancy := []*domain.BookedOccupancy{
		{TimeSlotID: 1, VisitSlotID: 100, VisitDate: friday},
		{TimeSlotID: 1, VisitSlotID: 100, VisitDate: friday, IsVideo: true},
	}

	uc := newTestUseCase(
		&fakeScheduleRepo{slots: []*domain.ConfiguredSlot{fridaySlot()}},
		&fakeVisitRepo{occupancy: occupancy},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		PrisonCode: "HEI",
		FromDate:   date(2026, time.September, 1),
		ToDate:     date(2026, time.September, 7),
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)

	slot := resp.Slots[0]
	assert.Equal(t, 8, slot.AvailableAdults)
	assert.Equal(t, 3, slot.AvailableGroups)
	assert.Equal(t, 3, slot.AvailableVideoSessions)
}

func TestExecuteFullyBookedSlotOmitted(t *testing.T) {
	friday := date(2026, time.September, 4)

	slot := fridaySlot()
	slot.MaxAdults = 2
	slot.MaxGroups = 2

	occupancy := make([]*domain.BookedOccupancy, 0, 2)
	for i := 0; i < 2; i++ {
		occupancy = append(occupancy, &domain.BookedOccupancy{TimeSlotID: 1, VisitSlotID: 100, VisitDate: friday})
	}

	uc := newTestUseCase(
		&fakeScheduleRepo{slots: []*domain.ConfiguredSlot{slot}},
		&fakeVisitRepo{occupancy: occupancy},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		PrisonCode: "HEI",
		FromDate:   date(2026, time.September, 1),
		ToDate:     date(2026, time.September, 7),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots, "fully booked slot must be absent from a non-video listing")
}

func TestExecuteOverbookedClampsToZero(t *testing.T) {
	friday := date(2026, time.September, 4)

	slot := fridaySlot()
	slot.MaxAdults = 1
	slot.MaxGroups = 5

	// Занятость превышает максимум adults: остаток не должен стать отрицательным
	occupancy := make([]*domain.BookedOccupancy, 0, 3)
	for i := 0; i < 3; i++ {
		occupancy = append(occupancy, &domain.BookedOccupancy{TimeSlotID: 1, VisitSlotID: 100, VisitDate: friday})
	}

	uc := newTestUseCase(
		&fakeScheduleRepo{slots: []*domain.ConfiguredSlot{slot}},
		&fakeVisitRepo{occupancy: occupancy},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		PrisonCode: "HEI",
		FromDate:   date(2026, time.September, 1),
		ToDate:     date(2026, time.September, 7),
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, 0, resp.Slots[0].AvailableAdults)
	assert.Equal(t, 2, resp.Slots[0].AvailableGroups)
}

func TestExecuteVideoOnlyFilter(t *testing.T) {
	friday := date(2026, time.September, 4)

	slot := fridaySlot()
	slot.MaxVideoSessions = 1

	occupancy := []*domain.BookedOccupancy{
		{TimeSlotID: 1, VisitSlotID: 100, VisitDate: friday, IsVideo: true},
	}

	uc := newTestUseCase(
		&fakeScheduleRepo{slots: []*domain.ConfiguredSlot{slot}},
		&fakeVisitRepo{occupancy: occupancy},
	)

	req := &Request{
		PrisonCode: "HEI",
		FromDate:   date(2026, time.September, 1),
		ToDate:     date(2026, time.September, 7),
		VideoOnly:  true,
	}

	// Видеосессии исчерпаны: в videoOnly-выдаче слота нет,
	// хотя adults/groups ещё свободны
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)

	// В обычной выдаче слот остаётся
	req.VideoOnly = false
	resp, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, 0, resp.Slots[0].AvailableVideoSessions)
}

func TestExecuteVideoOnlyExcludesSlotsWithoutVideoCapacity(t *testing.T) {
	slot := fridaySlot()
	slot.MaxVideoSessions = 0

	uc := newTestUseCase(
		&fakeScheduleRepo{slots: []*domain.ConfiguredSlot{slot}},
		&fakeVisitRepo{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		PrisonCode: "HEI",
		FromDate:   date(2026, time.September, 1),
		ToDate:     date(2026, time.September, 7),
		VideoOnly:  true,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecuteSameDayTimeCutoff(t *testing.T) {
	// Сегодня вторник 2026-09-01, сейчас 10:00
	morning := fridaySlot()
	morning.VisitSlotID = 101
	morning.DayCode = domain.DayTuesday
	morning.StartTime = "08:00"
	morning.EndTime = "09:30" // уже закончился

	running := fridaySlot()
	running.VisitSlotID = 102
	running.DayCode = domain.DayTuesday
	running.StartTime = "09:00"
	running.EndTime = "11:00" // начался, но ещё идёт

	boundary := fridaySlot()
	boundary.VisitSlotID = 103
	boundary.DayCode = domain.DayTuesday
	boundary.StartTime = "09:00"
	boundary.EndTime = "10:00" // закончился ровно сейчас — не предлагается

	uc := newTestUseCase(
		&fakeScheduleRepo{slots: []*domain.ConfiguredSlot{morning, running, boundary}},
		&fakeVisitRepo{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		PrisonCode: "HEI",
		FromDate:   date(2026, time.September, 1),
		ToDate:     date(2026, time.September, 8),
	})
	require.NoError(t, err)

	got := make(map[int64][]string)
	for _, s := range resp.Slots {
		got[s.VisitSlotID] = append(got[s.VisitSlotID], s.VisitDate.Format(domain.DateFormat))
	}

	// Сегодня доступен только ещё идущий слот; на следующий вторник — все три
	assert.Equal(t, []string{"2026-09-08"}, got[101])
	assert.Equal(t, []string{"2026-09-01", "2026-09-08"}, got[102])
	assert.Equal(t, []string{"2026-09-08"}, got[103])
}

func TestExecuteNonUTCServerClock(t *testing.T) {
	// Даты запроса парсятся в UTC, серверные часы могут идти в другой зоне.
	// Сравнение идёт по календарным дням, а не по моментам времени.
	t.Run("same-day cutoff applies with positive offset clock", func(t *testing.T) {
		morning := fridaySlot()
		morning.DayCode = domain.DayTuesday
		morning.StartTime = "08:00"
		morning.EndTime = "09:30"

		uc := newTestUseCase(
			&fakeScheduleRepo{slots: []*domain.ConfiguredSlot{morning}},
			&fakeVisitRepo{},
		)
		uc.timeProvider = &fixedTimeProvider{
			now: time.Date(2026, time.September, 1, 10, 0, 0, 0, time.FixedZone("UTC+5", 5*60*60)),
		}

		resp, err := uc.Execute(context.Background(), &Request{
			PrisonCode: "HEI",
			FromDate:   date(2026, time.September, 1),
			ToDate:     date(2026, time.September, 1),
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
	})

	t.Run("from date today is allowed with negative offset clock", func(t *testing.T) {
		uc := newTestUseCase(&fakeScheduleRepo{}, &fakeVisitRepo{})
		uc.timeProvider = &fixedTimeProvider{
			now: time.Date(2026, time.September, 1, 10, 0, 0, 0, time.FixedZone("UTC-5", -5*60*60)),
		}

		resp, err := uc.Execute(context.Background(), &Request{
			PrisonCode: "HEI",
			FromDate:   date(2026, time.September, 1),
			ToDate:     date(2026, time.September, 1),
		})
		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
	})
}

func TestExecuteWeekdayNotInRange(t *testing.T) {
	uc := newTestUseCase(
		&fakeScheduleRepo{slots: []*domain.ConfiguredSlot{fridaySlot()}},
		&fakeVisitRepo{},
	)

	// Вторник-четверг: пятничный слот не даёт ни одного экземпляра
	resp, err := uc.Execute(context.Background(), &Request{
		PrisonCode: "HEI",
		FromDate:   date(2026, time.September, 1),
		ToDate:     date(2026, time.September, 3),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecuteEffectiveExpiryWindow(t *testing.T) {
	notYetEffective := fridaySlot()
	notYetEffective.VisitSlotID = 110
	notYetEffective.EffectiveDate = date(2026, time.October, 1)

	alreadyExpired := fridaySlot()
	alreadyExpired.VisitSlotID = 111
	alreadyExpired.ExpiryDate = ptr.Ptr(date(2026, time.August, 31))

	expiresMidRange := fridaySlot()
	expiresMidRange.VisitSlotID = 112
	expiresMidRange.ExpiryDate = ptr.Ptr(date(2026, time.September, 4))

	uc := newTestUseCase(
		&fakeScheduleRepo{slots: []*domain.ConfiguredSlot{notYetEffective, alreadyExpired, expiresMidRange}},
		&fakeVisitRepo{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		PrisonCode: "HEI",
		FromDate:   date(2026, time.September, 1),
		ToDate:     date(2026, time.September, 14),
	})
	require.NoError(t, err)

	// Только слот 112 и только первая пятница (дата истечения включительна)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, int64(112), resp.Slots[0].VisitSlotID)
	assert.Equal(t, date(2026, time.September, 4), resp.Slots[0].VisitDate)
}

func TestExecuteMultipleWeeks(t *testing.T) {
	uc := newTestUseCase(
		&fakeScheduleRepo{slots: []*domain.ConfiguredSlot{fridaySlot()}},
		&fakeVisitRepo{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		PrisonCode: "HEI",
		FromDate:   date(2026, time.September, 1),
		ToDate:     date(2026, time.September, 30),
	})
	require.NoError(t, err)

	var dates []string
	for _, s := range resp.Slots {
		dates = append(dates, s.VisitDate.Format(domain.DateFormat))
	}
	assert.ElementsMatch(t, []string{"2026-09-04", "2026-09-11", "2026-09-18", "2026-09-25"}, dates)
}

func TestExecuteUnknownPrisonYieldsEmptyResult(t *testing.T) {
	uc := newTestUseCase(
		&fakeScheduleRepo{slots: []*domain.ConfiguredSlot{fridaySlot()}},
		&fakeVisitRepo{},
	)

	resp, err := uc.Execute(context.Background(), &Request{
		PrisonCode: "XXX",
		FromDate:   date(2026, time.September, 1),
		ToDate:     date(2026, time.September, 7),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecuteIdempotent(t *testing.T) {
	friday := date(2026, time.September, 4)
	occupancy := []*domain.BookedOccupancy{
		{TimeSlotID: 1, VisitSlotID: 100, VisitDate: friday, IsVideo: true},
	}

	uc := newTestUseCase(
		&fakeScheduleRepo{slots: []*domain.ConfiguredSlot{fridaySlot()}},
		&fakeVisitRepo{occupancy: occupancy},
	)

	req := &Request{
		PrisonCode: "HEI",
		FromDate:   date(2026, time.September, 1),
		ToDate:     date(2026, time.September, 14),
	}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
}

func TestExecuteRepositoryErrorsPropagate(t *testing.T) {
	storageErr := errors.New("connection refused")

	t.Run("schedule repository failure", func(t *testing.T) {
		uc := newTestUseCase(&fakeScheduleRepo{err: storageErr}, &fakeVisitRepo{})
		_, err := uc.Execute(context.Background(), &Request{
			PrisonCode: "HEI",
			FromDate:   date(2026, time.September, 1),
			ToDate:     date(2026, time.September, 7),
		})
		require.ErrorIs(t, err, ErrInternal)
	})

	t.Run("visit repository failure is not masked as zero bookings", func(t *testing.T) {
		uc := newTestUseCase(
			&fakeScheduleRepo{slots: []*domain.ConfiguredSlot{fridaySlot()}},
			&fakeVisitRepo{err: storageErr},
		)
		_, err := uc.Execute(context.Background(), &Request{
			PrisonCode: "HEI",
			FromDate:   date(2026, time.September, 1),
			ToDate:     date(2026, time.September, 7),
		})
		require.ErrorIs(t, err, ErrInternal)
	})
}

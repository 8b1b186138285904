package get_available_slots

import (
	"time"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
	"github.com/ovs-lab/OVS-VisitScheduler/pkg/types"
)

// occupancyKey ключ агрегации занятости: конкретный слот на конкретную дату
type occupancyKey struct {
	visitSlotID int64
	date        string // YYYY-MM-DD
}

// occupancyCounts количество занятых единиц по каждому измерению вместимости
type occupancyCounts struct {
	adults        int
	groups        int
	videoSessions int
}

// aggregateOccupancy сворачивает строки занятости в счётчики по (slot, дата).
// Каждый booked-визит занимает одну единицу adults и одну groups,
// видеовизит дополнительно одну видеосессию.
func aggregateOccupancy(occupancy []*domain.BookedOccupancy) map[occupancyKey]occupancyCounts {
	counts := make(map[occupancyKey]occupancyCounts, len(occupancy))

	for _, row := range occupancy {
		key := occupancyKey{
			visitSlotID: row.VisitSlotID,
			date:        row.VisitDate.Format(domain.DateFormat),
		}

		c := counts[key]
		c.adults++
		c.groups++
		if row.IsVideo {
			c.videoSessions++
		}
		counts[key] = c
	}

	return counts
}

// buildAvailableSlots разворачивает настроенные шаблоны в экземпляры по датам
// периода и вычитает занятость.
//
// Для каждой даты периода [fromDate, toDate] и каждого настроенного слота,
// чей день недели совпадает и чьё окно действия покрывает дату, строится
// кандидат. Кандидаты на сегодня отбрасываются, если слот уже закончился
// (endTime не строго позже текущего времени). Остаток вместимости по каждому
// измерению ограничивается снизу нулём. Затем применяется фильтр videoOnly.
//
// Результат упорядочен по (дата, время начала, visit slot id) — порядок
// следования не является частью контракта API.
func buildAvailableSlots(
	configured []*domain.ConfiguredSlot,
	occupancy map[occupancyKey]occupancyCounts,
	fromDate, toDate time.Time,
	now time.Time,
	videoOnly bool,
) []domain.AvailableSlot {
	result := make([]domain.AvailableSlot, 0)

	today := domain.DateOnly(now)
	nowTime := types.NewTimeString(now)

	from := domain.DateOnly(fromDate)
	to := domain.DateOnly(toDate)

	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		for _, slot := range configured {
			if !slot.AppliesOn(date) {
				continue
			}

			// Слоты, уже закончившиеся сегодня, не предлагаются.
			// Начавшийся, но не закончившийся слот ещё доступен.
			if date.Equal(today) && !slot.EndTime.IsAfter(nowTime) {
				continue
			}

			candidate := toAvailableSlot(slot, date, occupancy)

			if videoOnly {
				if !candidate.HasVideoCapacity() {
					continue
				}
			} else if !candidate.HasVisitCapacity() {
				continue
			}

			result = append(result, candidate)
		}
	}

	return result
}

// toAvailableSlot строит экземпляр доступного слота на дату,
// вычитая занятость из настроенных максимумов
func toAvailableSlot(
	slot *domain.ConfiguredSlot,
	date time.Time,
	occupancy map[occupancyKey]occupancyCounts,
) domain.AvailableSlot {
	key := occupancyKey{
		visitSlotID: slot.VisitSlotID,
		date:        date.Format(domain.DateFormat),
	}
	booked := occupancy[key]

	return domain.AvailableSlot{
		VisitSlotID:    slot.VisitSlotID,
		TimeSlotID:     slot.TimeSlotID,
		PrisonCode:     slot.PrisonCode,
		DayCode:        slot.DayCode,
		DayDescription: slot.DayCode.Description(),
		VisitDate:      date,
		StartTime:      slot.StartTime,
		EndTime:        slot.EndTime,
		DpsLocationID:  slot.DpsLocationID,

		AvailableVideoSessions: remaining(slot.MaxVideoSessions, booked.videoSessions),
		AvailableAdults:        remaining(slot.MaxAdults, booked.adults),
		AvailableGroups:        remaining(slot.MaxGroups, booked.groups),
	}
}

// remaining возвращает остаток вместимости, никогда не ниже нуля
func remaining(max, booked int) int {
	if booked >= max {
		return 0
	}
	return max - booked
}

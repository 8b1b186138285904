package get_available_slots

import (
	"time"

	"github.com/ovs-lab/OVS-VisitScheduler/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	PrisonCode string    // Код тюрьмы
	FromDate   time.Time // Начало периода (включительно, без времени)
	ToDate     time.Time // Конец периода (включительно, без времени)
	VideoOnly  bool      // Только слоты с доступными видеосессиями
}

// Response модель ответа со списком доступных слотов
type Response struct {
	PrisonCode string
	FromDate   time.Time
	ToDate     time.Time
	VideoOnly  bool
	Slots      []domain.AvailableSlot
}

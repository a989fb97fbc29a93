package pricing

import (
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Длительность единиц тарификации в миллисекундах
const (
	hourMs int64 = 3_600_000
	dayMs  int64 = 86_400_000
	weekMs int64 = 604_800_000
)

func unitLengthMs(unit domain.BillingUnit) int64 {
	switch unit {
	case domain.BillingHour:
		return hourMs
	case domain.BillingWeek:
		return weekMs
	default:
		return dayMs
	}
}

// ComputeDuration возвращает длительность периода в единицах тарификации с округлением вверх
// Если end <= start, возвращается 0, иначе результат не меньше 1
func ComputeDuration(start, end time.Time, unit domain.BillingUnit) int {
	if !end.After(start) {
		return 0
	}

	elapsed := end.Sub(start).Milliseconds()
	length := unitLengthMs(unit)

	duration := elapsed / length
	if elapsed%length != 0 {
		duration++
	}
	if duration < 1 {
		duration = 1
	}
	return int(duration)
}

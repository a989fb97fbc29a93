package pricing

import "errors"

var (
	// ErrInvalidTierDuration возвращается, если MinDuration тарифа меньше 1
	ErrInvalidTierDuration = errors.New("pricing: tier min duration must be at least 1")

	// ErrInvalidTierDiscount возвращается, если скидка вне диапазона 0-100
	ErrInvalidTierDiscount = errors.New("pricing: tier discount must be between 0 and 100")

	// ErrTierOverlap возвращается, если два тарифа начинаются с одной длительности
	ErrTierOverlap = errors.New("pricing: tiers overlap")

	// ErrStrictTiersEmpty возвращается, если строгий режим включен без тарифов
	ErrStrictTiersEmpty = errors.New("pricing: strict tiers require at least one tier")

	// ErrTierUncoveredDuration возвращается, если в строгом режиме есть длительности без тарифа
	ErrTierUncoveredDuration = errors.New("pricing: durations are not covered by any tier")
)

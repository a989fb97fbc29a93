package inventoryguard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCannotDisableUnitTrackingWithCombinations возвращается при отключении учета единиц,
	// если есть активные бронирования конкретных комбинаций
	ErrCannotDisableUnitTrackingWithCombinations = errors.New("inventoryguard: cannot disable unit tracking while reservations hold specific combinations")

	// ErrUnitStatusConflictsWithReservations возвращается, если после изменения доступных единиц
	// комбинации станет меньше, чем забронировано
	ErrUnitStatusConflictsWithReservations = errors.New("inventoryguard: unit changes conflict with reservations")
)

// Conflict нехватка по одной комбинации
type Conflict struct {
	CombinationKey string
	Reserved       int
	Available      int
}

// ConflictError отказ в изменении инвентаря со списком конфликтующих комбинаций
type ConflictError struct {
	Reason    error
	Conflicts []Conflict
}

func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 0 {
		return e.Reason.Error()
	}

	parts := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		parts = append(parts, fmt.Sprintf("%s (reserved %d, available %d)", c.CombinationKey, c.Reserved, c.Available))
	}
	return fmt.Sprintf("%s: %s", e.Reason.Error(), strings.Join(parts, "; "))
}

func (e *ConflictError) Unwrap() error {
	return e.Reason
}

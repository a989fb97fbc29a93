package inventoryguard

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/combination"
)

// Edit предлагаемое итоговое состояние инвентаря товара
type Edit struct {
	Axes       []domain.AttributeAxis
	Units      []domain.Unit
	TrackUnits bool
}

// ValidateEdit проверяет изменение инвентаря против активных и будущих бронирований.
// Проверяется итоговое состояние целиком; при ошибке изменение не должно применяться.
// Ошибки возвращаются как *ConflictError.
func ValidateEdit(current *domain.Product, edit Edit, rows []domain.ReservationItemRow, now time.Time) error {
	relevant := activeRows(current, rows, now)
	if len(relevant) == 0 {
		return nil
	}

	// 1. Отключение учета единиц
	if current.TrackUnits && !edit.TrackUnits {
		return checkDisableTracking(relevant)
	}

	// 2. Сокращение доступных единиц
	if current.TrackUnits && edit.TrackUnits {
		return checkCapacity(edit, relevant)
	}

	return nil
}

func activeRows(current *domain.Product, rows []domain.ReservationItemRow, now time.Time) []domain.ReservationItemRow {
	result := make([]domain.ReservationItemRow, 0, len(rows))
	for _, row := range rows {
		if row.ProductID != current.ID {
			continue
		}
		if !row.Status.IsActive() || row.EndDate.Before(now) {
			continue
		}
		result = append(result, row)
	}
	return result
}

func checkDisableTracking(rows []domain.ReservationItemRow) error {
	reserved := make(map[string]int)
	for _, row := range rows {
		key := combination.NormalizeKey(row.CombinationKey)
		if key == combination.DefaultKey {
			continue
		}
		reserved[key] += row.Quantity
	}
	if len(reserved) == 0 {
		return nil
	}

	return &ConflictError{
		Reason:    ErrCannotDisableUnitTrackingWithCombinations,
		Conflicts: toConflicts(reserved, nil),
	}
}

// checkCapacity сравнивает бронь по каждому сохраненному ключу с доступными единицами.
// Незаданные оси ключа подходят под любое значение: спрос ключа включает все брони
// более точных ключей, предложение включает все подходящие комбинации.
func checkCapacity(edit Edit, rows []domain.ReservationItemRow) error {
	reserved := make(map[string]int)
	for _, row := range rows {
		reserved[combination.NormalizeKey(row.CombinationKey)] += row.Quantity
	}

	patterns := make(map[string]combination.Attributes, len(reserved))
	for key := range reserved {
		patterns[key] = combination.ParseKey(key)
	}

	combos := combination.GroupUnits(edit.Axes, edit.Units)

	short := make(map[string]int)
	available := make(map[string]int)
	for key, pattern := range patterns {
		demand := 0
		for other, qty := range reserved {
			if covers(pattern, patterns[other]) {
				demand += qty
			}
		}

		supply := combination.AvailableMatching(combos, pattern)
		if demand > supply {
			short[key] = demand
			available[key] = supply
		}
	}
	if len(short) == 0 {
		return nil
	}

	return &ConflictError{
		Reason:    ErrUnitStatusConflictsWithReservations,
		Conflicts: toConflicts(short, available),
	}
}

// covers returns true if every value fixed by pattern is fixed to the same value in selection
func covers(pattern, selection combination.Attributes) bool {
	for axis, value := range pattern {
		if selection[axis] != value {
			return false
		}
	}
	return true
}

func toConflicts(reserved map[string]int, available map[string]int) []Conflict {
	conflicts := make([]Conflict, 0, len(reserved))
	for key, qty := range reserved {
		conflicts = append(conflicts, Conflict{
			CombinationKey: key,
			Reserved:       qty,
			Available:      available[key],
		})
	}
	sort.Slice(conflicts, func(i, j int) bool {
		return conflicts[i].CombinationKey < conflicts[j].CombinationKey
	})
	return conflicts
}

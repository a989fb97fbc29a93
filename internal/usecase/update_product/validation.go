package update_product

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/combination"
	"github.com/m04kA/SMC-RentalService/internal/engine/inventoryguard"
	"github.com/m04kA/SMC-RentalService/internal/engine/pricing"
)

// validateRequest валидирует и нормализует входные данные запроса
func validateRequest(req *Request) error {
	if req.StoreID == uuid.Nil || req.ProductID == uuid.Nil {
		return fmt.Errorf("%w: storeID and productID are required", ErrInvalidInput)
	}

	if !domain.BillingUnit(req.BillingUnit).IsValid() {
		return fmt.Errorf("%w: unknown billingUnit %q", ErrInvalidInput, req.BillingUnit)
	}

	if req.BasePrice.IsNegative() {
		return fmt.Errorf("%w: basePrice must not be negative", ErrInvalidInput)
	}

	if req.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidInput)
	}

	if err := validateAxes(req.BookingAttributeAxes); err != nil {
		return err
	}

	if err := pricing.ValidateTiers(req.PricingTiers, req.EnforceStrictTiers); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return validateUnits(req.BookingAttributeAxes, req.Units)
}

// validateAxes проверяет, что ключи осей непустые и уникальные
func validateAxes(axes []domain.AttributeAxis) error {
	seen := make(map[string]struct{}, len(axes))
	for i := range axes {
		axis := &axes[i]
		axis.Key = strings.TrimSpace(axis.Key)
		axis.Label = strings.TrimSpace(axis.Label)

		if axis.Key == "" {
			return fmt.Errorf("%w: axis %d has empty key", ErrInvalidInput, i)
		}
		if _, ok := seen[axis.Key]; ok {
			return fmt.Errorf("%w: duplicate axis key %q", ErrInvalidInput, axis.Key)
		}
		seen[axis.Key] = struct{}{}

		if axis.Label == "" {
			axis.Label = axis.Key
		}
		if len(axis.Label) > domain.MaxNameLength {
			return fmt.Errorf("%w: axis %q label is too long (max %d)", ErrInvalidInput, axis.Key, domain.MaxNameLength)
		}
	}
	return nil
}

// validateUnits проверяет единицы: уникальные идентификаторы, известные статусы и ключи атрибутов
func validateUnits(axes []domain.AttributeAxis, units []domain.Unit) error {
	if len(units) > domain.MaxUnitsPerProduct {
		return fmt.Errorf("%w: too many units (max %d)", ErrInvalidInput, domain.MaxUnitsPerProduct)
	}

	seen := make(map[string]struct{}, len(units))
	for i := range units {
		unit := &units[i]
		unit.Identifier = strings.TrimSpace(unit.Identifier)

		if unit.Identifier == "" {
			return fmt.Errorf("%w: unit %d has empty identifier", ErrInvalidInput, i)
		}
		if _, ok := seen[unit.Identifier]; ok {
			return fmt.Errorf("%w: duplicate unit identifier %q", ErrInvalidInput, unit.Identifier)
		}
		seen[unit.Identifier] = struct{}{}

		if unit.Status == "" {
			unit.Status = domain.UnitAvailable
		}
		if !unit.Status.IsValid() {
			return fmt.Errorf("%w: unit %q has unknown status %q", ErrInvalidInput, unit.Identifier, unit.Status)
		}

		if err := combination.ValidateAttributes(axes, unit.Attributes); err != nil {
			return fmt.Errorf("%w: unit %q: %v", ErrInvalidInput, unit.Identifier, err)
		}
		unit.Attributes = combination.Canonicalize(axes, unit.Attributes)

		if unit.Notes != nil && len(*unit.Notes) > domain.MaxNotesLength {
			return fmt.Errorf("%w: unit %q notes are too long (max %d)", ErrInvalidInput, unit.Identifier, domain.MaxNotesLength)
		}
	}
	return nil
}

// ownUnits сбрасывает ID единиц, которые не принадлежат товару
func ownUnits(current *domain.Product, units []domain.Unit) []domain.Unit {
	known := make(map[uuid.UUID]struct{}, len(current.Units))
	for _, u := range current.Units {
		known[u.ID] = struct{}{}
	}

	result := make([]domain.Unit, 0, len(units))
	for _, u := range units {
		if _, ok := known[u.ID]; !ok {
			u.ID = uuid.Nil
		}
		u.ProductID = current.ID
		result = append(result, u)
	}
	return result
}

// rejectionReason метка причины отказа для метрик
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, inventoryguard.ErrCannotDisableUnitTrackingWithCombinations):
		return "disable_tracking"
	case errors.Is(err, inventoryguard.ErrUnitStatusConflictsWithReservations):
		return "unit_shortage"
	default:
		return "other"
	}
}

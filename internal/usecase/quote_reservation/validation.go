package quote_reservation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// validateRequest валидирует входные данные запроса и проставляет ID строкам без него
func validateRequest(req *Request) error {
	if req.StoreID == uuid.Nil {
		return fmt.Errorf("%w: storeID is required", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if !req.EndDate.After(req.StartDate) {
		return fmt.Errorf("%w: endDate must be after startDate", ErrInvalidInput)
	}

	return validateLines(req.Lines)
}

// validateLines проверяет строки черновика
func validateLines(lines []domain.ReservationLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: at least one line is required", ErrInvalidInput)
	}

	if len(lines) > domain.MaxLinesPerReservation {
		return fmt.Errorf("%w: too many lines (max %d)", ErrInvalidInput, domain.MaxLinesPerReservation)
	}

	seen := make(map[string]struct{}, len(lines))
	for i := range lines {
		line := &lines[i]

		if line.ID == "" {
			line.ID = uuid.NewString()
		}
		if _, ok := seen[line.ID]; ok {
			return fmt.Errorf("%w: duplicate line id %s", ErrInvalidInput, line.ID)
		}
		seen[line.ID] = struct{}{}

		if line.Quantity < 1 {
			return fmt.Errorf("%w: line %s: quantity must be positive", ErrInvalidInput, line.ID)
		}

		if line.PriceOverride != nil && line.PriceOverride.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: line %s: price override must not be negative", ErrInvalidInput, line.ID)
		}

		if !line.IsCustom() {
			continue
		}

		// Произвольная позиция
		name := strings.TrimSpace(line.CustomName)
		if name == "" {
			return fmt.Errorf("%w: line %s: custom line requires a name", ErrInvalidInput, line.ID)
		}
		if len(name) > domain.MaxNameLength {
			return fmt.Errorf("%w: line %s: name is too long (max %d)", ErrInvalidInput, line.ID, domain.MaxNameLength)
		}
		if line.PriceOverride == nil {
			return fmt.Errorf("%w: line %s: custom line requires a unit price", ErrInvalidInput, line.ID)
		}
		line.CustomName = name
	}

	return nil
}

// productIDs возвращает уникальные ID товаров из строк в порядке появления
func productIDs(lines []domain.ReservationLine) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if line.IsCustom() {
			continue
		}
		if _, ok := seen[*line.ProductID]; ok {
			continue
		}
		seen[*line.ProductID] = struct{}{}
		ids = append(ids, *line.ProductID)
	}
	return ids
}

// missingProduct возвращает первый товар из строк, которого нет среди загруженных
func missingProduct(ids []uuid.UUID, products map[uuid.UUID]*domain.Product) (uuid.UUID, bool) {
	for _, id := range ids {
		if _, ok := products[id]; !ok {
			return id, true
		}
	}
	return uuid.Nil, false
}

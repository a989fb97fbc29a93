package availability

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Warning предупреждение о нехватке товара на период; не блокирует бронирование
type Warning struct {
	ProductID               uuid.UUID
	ProductName             string
	Requested               int
	Available               int
	ConflictingReservations int
}

// ProductAvailability остаток товара на период
type ProductAvailability struct {
	ProductID               uuid.UUID
	ProductName             string
	Stock                   int
	Reserved                int
	Requested               int
	Available               int
	ConflictingReservations int
}

// Result результат проверки доступности
type Result struct {
	Warnings []Warning
	Products []ProductAvailability

	// ByLine доступное количество по ID строки; для произвольных позиций равно запрошенному
	ByLine map[string]int
}

// HasWarnings returns true if at least one product is short
func (r Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Check сравнивает запрошенное количество с остатком за вычетом пересекающихся активных бронирований
// Учитывается только суммарный остаток товара, без разбивки по комбинациям
func Check(
	period domain.Period,
	products map[uuid.UUID]*domain.Product,
	others []domain.Reservation,
	lines []domain.ReservationLine,
) Result {
	reserved := make(map[uuid.UUID]int)
	conflicts := make(map[uuid.UUID]int)

	for i := range others {
		reservation := &others[i]
		if !reservation.Status.IsActive() || !period.Overlaps(reservation.Period()) {
			continue
		}

		touched := make(map[uuid.UUID]struct{})
		for _, item := range reservation.Items {
			if item.ProductID == nil {
				continue
			}
			reserved[*item.ProductID] += item.Quantity
			touched[*item.ProductID] = struct{}{}
		}
		for productID := range touched {
			conflicts[productID]++
		}
	}

	requested := make(map[uuid.UUID]int)
	var order []uuid.UUID
	for _, line := range lines {
		if line.IsCustom() {
			continue
		}
		if _, ok := requested[*line.ProductID]; !ok {
			order = append(order, *line.ProductID)
		}
		requested[*line.ProductID] += line.Quantity
	}

	result := Result{ByLine: make(map[string]int, len(lines))}
	available := make(map[uuid.UUID]int, len(order))

	for _, productID := range order {
		product, ok := products[productID]
		if !ok {
			continue
		}

		stock := product.Stock()
		pa := ProductAvailability{
			ProductID:               productID,
			ProductName:             product.Name,
			Stock:                   stock,
			Reserved:                reserved[productID],
			Requested:               requested[productID],
			Available:               max(0, stock-reserved[productID]),
			ConflictingReservations: conflicts[productID],
		}
		available[productID] = pa.Available
		result.Products = append(result.Products, pa)

		if pa.Requested > pa.Available {
			result.Warnings = append(result.Warnings, Warning{
				ProductID:               productID,
				ProductName:             pa.ProductName,
				Requested:               pa.Requested,
				Available:               pa.Available,
				ConflictingReservations: pa.ConflictingReservations,
			})
		}
	}

	for _, line := range lines {
		if line.IsCustom() {
			result.ByLine[line.ID] = line.Quantity
			continue
		}
		result.ByLine[line.ID] = available[*line.ProductID]
	}

	return result
}

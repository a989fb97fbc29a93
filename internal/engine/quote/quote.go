package quote

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/availability"
	"github.com/m04kA/SMC-RentalService/internal/engine/capacity"
	"github.com/m04kA/SMC-RentalService/internal/engine/combination"
	"github.com/m04kA/SMC-RentalService/internal/engine/pricing"
)

// Line расчет одной строки черновика
type Line struct {
	LineID             string
	ProductID          *uuid.UUID
	Name               string
	Quantity           int
	BillingUnit        domain.BillingUnit
	SelectedAttributes combination.Attributes
	CombinationKey     string

	Price       pricing.Resolution
	Constraints capacity.LineConstraints
	Total       decimal.Decimal

	// Available остаток товара на период; для произвольной позиции равен Quantity
	Available int
	IsCustom  bool
}

// ExceedsCapacity returns true if the line asks for more than the draft allows
func (l Line) ExceedsCapacity() bool {
	return !l.Constraints.Unbounded && l.Quantity > l.Constraints.LineMaxQuantity
}

// Quote расчет черновика бронирования на период
type Quote struct {
	Period   domain.Period
	Lines    []Line
	Subtotal decimal.Decimal
	Warnings []availability.Warning
	Products []availability.ProductAvailability
}

// Build рассчитывает длительность, цену, емкость и доступность для каждой строки.
// Строки без ID или с повторяющимся ID отклоняются; атрибуты проверяются на неизвестные ключи.
// Произвольная позиция оплачивается как ручная цена × количество, без длительности.
func Build(
	period domain.Period,
	products map[uuid.UUID]*domain.Product,
	lines []domain.ReservationLine,
	others []domain.Reservation,
) (*Quote, error) {
	canonical := make([]domain.ReservationLine, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if line.ID == "" {
			return nil, ErrMissingLineID
		}
		if _, ok := seen[line.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLineID, line.ID)
		}
		seen[line.ID] = struct{}{}

		if line.IsCustom() {
			if line.PriceOverride == nil {
				return nil, fmt.Errorf("%w: line %s", ErrCustomLineWithoutPrice, line.ID)
			}
			canonical = append(canonical, line)
			continue
		}

		product, ok := products[*line.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, line.ProductID.String())
		}
		axes := product.BookingAxes()
		if err := combination.ValidateAttributes(axes, line.SelectedAttributes); err != nil {
			return nil, fmt.Errorf("line %s: %w", line.ID, err)
		}
		line.SelectedAttributes = combination.Canonicalize(axes, line.SelectedAttributes)
		canonical = append(canonical, line)
	}

	avail := availability.Check(period, products, others, canonical)

	q := &Quote{
		Period:   period,
		Lines:    make([]Line, 0, len(canonical)),
		Subtotal: decimal.Zero,
		Warnings: avail.Warnings,
		Products: avail.Products,
	}

	for _, line := range canonical {
		var ql Line
		if line.IsCustom() {
			ql = customLine(line)
		} else {
			ql = productLine(period, products[*line.ProductID], line, canonical)
		}
		ql.Available = avail.ByLine[line.ID]

		q.Subtotal = q.Subtotal.Add(ql.Total)
		q.Lines = append(q.Lines, ql)
	}

	return q, nil
}

func productLine(period domain.Period, product *domain.Product, line domain.ReservationLine, all []domain.ReservationLine) Line {
	duration := pricing.ComputeDuration(period.Start, period.End, product.BillingUnit)
	resolution := pricing.ResolvePrice(product.PricingTiers, duration, product.BasePrice, line.PriceOverride)
	constraints := capacity.Constraints(product, line, all)

	return Line{
		LineID:             line.ID,
		ProductID:          line.ProductID,
		Name:               product.Name,
		Quantity:           line.Quantity,
		BillingUnit:        product.BillingUnit,
		SelectedAttributes: combination.Attributes(line.SelectedAttributes),
		CombinationKey:     constraints.CombinationKey,
		Price:              resolution,
		Constraints:        constraints,
		Total:              resolution.LineTotal(line.Quantity),
	}
}

func customLine(line domain.ReservationLine) Line {
	resolution := pricing.ResolvePrice(nil, 1, line.PriceOverride.UnitPrice, line.PriceOverride)

	return Line{
		LineID:         line.ID,
		Name:           line.CustomName,
		Quantity:       line.Quantity,
		CombinationKey: combination.DefaultKey,
		Price:          resolution,
		Constraints:    capacity.LineConstraints{Unbounded: true},
		Total:          resolution.LineTotal(line.Quantity),
		IsCustom:       true,
	}
}

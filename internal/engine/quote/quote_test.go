package quote

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/capacity"
	"github.com/m04kA/SMC-RentalService/internal/engine/combination"
)

var (
	start  = time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	period = domain.Period{Start: start, End: start.Add(5 * 24 * time.Hour)}
)

func bike() *domain.Product {
	p := &domain.Product{
		ID:                   uuid.New(),
		Name:                 "Bike",
		BillingUnit:          domain.BillingDay,
		BasePrice:            decimal.NewFromInt(20),
		TrackUnits:           true,
		BookingAttributeAxes: []domain.AttributeAxis{{Key: "size", Label: "Size"}},
		PricingTiers: []domain.Tier{
			{MinDuration: 3, DiscountPercent: decimal.NewFromInt(10)},
			{MinDuration: 7, DiscountPercent: decimal.NewFromInt(20)},
		},
		Units: []domain.Unit{
			{Status: domain.UnitAvailable, Attributes: map[string]string{"size": "S"}},
			{Status: domain.UnitAvailable, Attributes: map[string]string{"size": "S"}},
			{Status: domain.UnitAvailable, Attributes: map[string]string{"size": "M"}},
		},
	}
	p.DeriveQuantity()
	return p
}

func newProductLine(id string, p *domain.Product, qty int, attrs map[string]string) domain.ReservationLine {
	pid := p.ID
	return domain.ReservationLine{ID: id, ProductID: &pid, Quantity: qty, SelectedAttributes: attrs}
}

func TestBuild_PricesAndTotals(t *testing.T) {
	p := bike()
	products := map[uuid.UUID]*domain.Product{p.ID: p}
	lines := []domain.ReservationLine{
		newProductLine("a", p, 2, map[string]string{"size": " S "}),
		{ID: "c", CustomName: "Delivery", Quantity: 1, PriceOverride: &domain.PriceOverride{UnitPrice: decimal.NewFromInt(15)}},
	}

	q, err := Build(period, products, lines, nil)
	require.NoError(t, err)
	require.Len(t, q.Lines, 2)

	bikeLine := q.Lines[0]
	assert.Equal(t, 5, bikeLine.Price.Duration)
	assert.True(t, bikeLine.Price.EffectivePrice.Equal(decimal.NewFromInt(18)))
	assert.True(t, bikeLine.Total.Equal(decimal.NewFromInt(180)))
	assert.Equal(t, "size=S", bikeLine.CombinationKey)
	assert.Equal(t, combination.Attributes{"size": "S"}, bikeLine.SelectedAttributes)
	assert.Equal(t, capacity.ModeFull, bikeLine.Constraints.SelectionMode)
	assert.Equal(t, 2, bikeLine.Constraints.LineMaxQuantity)
	assert.False(t, bikeLine.ExceedsCapacity())
	assert.Equal(t, 3, bikeLine.Available)

	custom := q.Lines[1]
	assert.True(t, custom.IsCustom)
	assert.True(t, custom.Total.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, 1, custom.Available)
	assert.False(t, custom.ExceedsCapacity())

	assert.True(t, q.Subtotal.Equal(decimal.NewFromInt(195)))
	assert.Empty(t, q.Warnings)
}

func TestBuild_FlagsCapacityAndWarnings(t *testing.T) {
	p := bike()
	products := map[uuid.UUID]*domain.Product{p.ID: p}
	lines := []domain.ReservationLine{
		newProductLine("a", p, 1, map[string]string{"size": "M"}),
		newProductLine("b", p, 1, map[string]string{"size": "M"}),
	}

	pid := p.ID
	others := []domain.Reservation{{
		Status:    domain.StatusConfirmed,
		StartDate: start.Add(-24 * time.Hour),
		EndDate:   start.Add(24 * time.Hour),
		Items:     []domain.ReservationItem{{ProductID: &pid, Quantity: 2}},
	}}

	q, err := Build(period, products, lines, others)
	require.NoError(t, err)

	assert.True(t, q.Lines[0].ExceedsCapacity())
	assert.True(t, q.Lines[1].ExceedsCapacity())
	require.Len(t, q.Warnings, 1)
	assert.Equal(t, 2, q.Warnings[0].Requested)
	assert.Equal(t, 1, q.Warnings[0].Available)
}

func TestBuild_Errors(t *testing.T) {
	p := bike()
	products := map[uuid.UUID]*domain.Product{p.ID: p}

	_, err := Build(period, products, []domain.ReservationLine{newProductLine("a", p, 1, map[string]string{"color": "red"})}, nil)
	assert.ErrorIs(t, err, combination.ErrUnknownAttribute)

	other := &domain.Product{ID: uuid.New()}
	_, err = Build(period, products, []domain.ReservationLine{newProductLine("a", other, 1, nil)}, nil)
	assert.ErrorIs(t, err, ErrUnknownProduct)

	_, err = Build(period, products, []domain.ReservationLine{{ID: "c", CustomName: "Fee", Quantity: 1}}, nil)
	assert.ErrorIs(t, err, ErrCustomLineWithoutPrice)
}

func TestBuild_RejectsMissingOrDuplicateLineIDs(t *testing.T) {
	p := bike()
	products := map[uuid.UUID]*domain.Product{p.ID: p}

	_, err := Build(period, products, []domain.ReservationLine{newProductLine("", p, 1, nil)}, nil)
	assert.ErrorIs(t, err, ErrMissingLineID)

	_, err = Build(period, products, []domain.ReservationLine{
		newProductLine("a", p, 1, map[string]string{"size": "S"}),
		newProductLine("a", p, 1, map[string]string{"size": "M"}),
	}, nil)
	assert.ErrorIs(t, err, ErrDuplicateLineID)
}

package handlers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/engine/availability"
)

func TestParseRentalTime(t *testing.T) {
	got, err := ParseRentalTime("2025-06-01T10:00:00+03:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC), got)

	got, err = ParseRentalTime("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseRentalTime("01.06.2025")
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestToDomainLines(t *testing.T) {
	productID := uuid.New()
	price := decimal.NewFromInt(15)

	lines := ToDomainLines([]LineRequest{
		{ID: "a", ProductID: &productID, Quantity: 2, SelectedAttributes: map[string]string{"size": "M"}},
		{CustomName: "Delivery", Quantity: 1, PriceOverride: &price},
	})

	require.Len(t, lines, 2)
	assert.False(t, lines[0].IsCustom())
	assert.Nil(t, lines[0].PriceOverride)
	assert.Equal(t, "M", lines[0].SelectedAttributes["size"])

	assert.True(t, lines[1].IsCustom())
	require.NotNil(t, lines[1].PriceOverride)
	assert.True(t, price.Equal(lines[1].PriceOverride.UnitPrice))
}

func TestFromWarnings(t *testing.T) {
	assert.NotNil(t, FromWarnings(nil))

	id := uuid.New()
	got := FromWarnings([]availability.Warning{{ProductID: id, ProductName: "Kayak", Requested: 3, Available: 1, ConflictingReservations: 2}})
	assert.Equal(t, []WarningResponse{{ProductID: id, ProductName: "Kayak", Requested: 3, Available: 1, ConflictingReservations: 2}}, got)
}

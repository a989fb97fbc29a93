package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

func TestResolvePrice_TierDiscount(t *testing.T) {
	tiers := []domain.Tier{tier(3, 10), tier(7, 20)}
	base := decimal.NewFromInt(100)

	res := ResolvePrice(tiers, 5, base, nil)

	require.True(t, res.Computed)
	require.NotNil(t, res.MatchedTier)
	assert.Equal(t, 3, res.MatchedTier.MinDuration)
	assert.True(t, res.EffectivePrice.Equal(decimal.NewFromInt(90)), res.EffectivePrice.String())
	assert.True(t, res.HasDiscount)
	assert.True(t, res.HasTieredPricing)
	assert.False(t, res.HasPriceOverride)
}

func TestResolvePrice_NoMatchingTier(t *testing.T) {
	tiers := []domain.Tier{tier(3, 10)}
	base := decimal.RequireFromString("49.90")

	res := ResolvePrice(tiers, 2, base, nil)

	require.True(t, res.Computed)
	assert.Nil(t, res.MatchedTier)
	assert.True(t, res.EffectivePrice.Equal(base))
	assert.False(t, res.HasDiscount)
	assert.True(t, res.HasTieredPricing)
}

func TestResolvePrice_ZeroDiscountTier(t *testing.T) {
	res := ResolvePrice([]domain.Tier{tier(1, 0)}, 4, decimal.NewFromInt(10), nil)

	require.NotNil(t, res.MatchedTier)
	assert.False(t, res.HasDiscount)
	assert.True(t, res.EffectivePrice.Equal(decimal.NewFromInt(10)))
}

func TestResolvePrice_Override(t *testing.T) {
	tiers := []domain.Tier{tier(1, 50)}
	override := &domain.PriceOverride{UnitPrice: decimal.NewFromInt(42)}

	res := ResolvePrice(tiers, 3, decimal.NewFromInt(100), override)

	assert.True(t, res.HasPriceOverride)
	assert.True(t, res.CalculatedPrice.Equal(decimal.NewFromInt(50)))
	assert.True(t, res.EffectivePrice.Equal(decimal.NewFromInt(42)))
	assert.True(t, res.LineTotal(2).Equal(decimal.NewFromInt(252)))
}

func TestResolvePrice_ZeroDuration(t *testing.T) {
	res := ResolvePrice([]domain.Tier{tier(1, 10)}, 0, decimal.NewFromInt(100), nil)

	assert.False(t, res.Computed)
	assert.Nil(t, res.MatchedTier)
	assert.True(t, res.EffectivePrice.IsZero())
	assert.True(t, res.HasTieredPricing)
	assert.True(t, res.LineTotal(3).IsZero())
}

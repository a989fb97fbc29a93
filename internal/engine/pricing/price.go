package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Resolution результат расчета цены за единицу
type Resolution struct {
	// Computed false, если длительность 0 и цена не рассчитывалась
	Computed bool

	Duration        int
	BasePrice       decimal.Decimal
	CalculatedPrice decimal.Decimal
	EffectivePrice  decimal.Decimal
	MatchedTier     *domain.Tier

	HasDiscount      bool
	HasTieredPricing bool
	HasPriceOverride bool
}

// ResolvePrice рассчитывает эффективную цену за единицу для длительности
func ResolvePrice(tiers []domain.Tier, duration int, basePrice decimal.Decimal, override *domain.PriceOverride) Resolution {
	res := Resolution{
		Duration:         duration,
		BasePrice:        basePrice,
		HasTieredPricing: len(tiers) > 0,
		HasPriceOverride: override != nil,
	}

	if duration <= 0 {
		return res
	}

	res.Computed = true
	res.CalculatedPrice = basePrice

	if tier, ok := MatchTier(tiers, duration); ok {
		res.MatchedTier = &tier
		if !tier.DiscountPercent.IsZero() {
			res.HasDiscount = true
			factor := decimal.NewFromInt(1).Sub(tier.DiscountPercent.Div(hundred))
			res.CalculatedPrice = basePrice.Mul(factor)
		}
	}

	res.EffectivePrice = res.CalculatedPrice
	if override != nil {
		res.EffectivePrice = override.UnitPrice
	}

	return res
}

// LineTotal стоимость строки: цена за единицу × количество × длительность
func (r Resolution) LineTotal(quantity int) decimal.Decimal {
	if !r.Computed || quantity <= 0 {
		return decimal.Zero
	}
	return r.EffectivePrice.Mul(decimal.NewFromInt(int64(quantity))).Mul(decimal.NewFromInt(int64(r.Duration)))
}

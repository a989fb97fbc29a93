package pricing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// MatchTier возвращает тариф с наибольшим MinDuration, не превышающим duration
// Порядок тарифов во входном срезе не важен
func MatchTier(tiers []domain.Tier, duration int) (domain.Tier, bool) {
	var (
		matched domain.Tier
		found   bool
	)
	for _, tier := range tiers {
		if tier.MinDuration > duration {
			continue
		}
		if !found || tier.MinDuration > matched.MinDuration {
			matched = tier
			found = true
		}
	}
	return matched, found
}

// SortTiers сортирует тарифы по возрастанию MinDuration
func SortTiers(tiers []domain.Tier) []domain.Tier {
	sorted := make([]domain.Tier, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinDuration < sorted[j].MinDuration
	})
	return sorted
}

// ValidateTiers проверяет набор тарифов при сохранении товара
// strict включает правила EnforceStrictTiers: список не пуст и покрывает все длительности начиная с 1
func ValidateTiers(tiers []domain.Tier, strict bool) error {
	seen := make(map[int]struct{}, len(tiers))
	for i, tier := range tiers {
		if tier.MinDuration < 1 {
			return fmt.Errorf("%w: tier %d has min duration %d", ErrInvalidTierDuration, i, tier.MinDuration)
		}
		if tier.DiscountPercent.IsNegative() || tier.DiscountPercent.GreaterThan(hundred) {
			return fmt.Errorf("%w: tier %d has discount %s", ErrInvalidTierDiscount, i, tier.DiscountPercent.String())
		}
		if _, ok := seen[tier.MinDuration]; ok {
			return fmt.Errorf("%w: min duration %d is used more than once", ErrTierOverlap, tier.MinDuration)
		}
		seen[tier.MinDuration] = struct{}{}
	}

	if !strict {
		return nil
	}

	if len(tiers) == 0 {
		return ErrStrictTiersEmpty
	}

	first := SortTiers(tiers)[0]
	if first.MinDuration != 1 {
		return fmt.Errorf("%w: durations 1..%d have no tier", ErrTierUncoveredDuration, first.MinDuration-1)
	}

	return nil
}

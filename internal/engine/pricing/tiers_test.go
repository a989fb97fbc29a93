package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

func tier(minDuration int, discount int64) domain.Tier {
	return domain.Tier{MinDuration: minDuration, DiscountPercent: decimal.NewFromInt(discount)}
}

func TestMatchTier(t *testing.T) {
	tiers := []domain.Tier{tier(7, 20), tier(3, 10), tier(14, 30)}

	tests := []struct {
		duration int
		wantMin  int
		wantOK   bool
	}{
		{1, 0, false},
		{2, 0, false},
		{3, 3, true},
		{5, 3, true},
		{7, 7, true},
		{13, 7, true},
		{100, 14, true},
	}

	for _, tt := range tests {
		got, ok := MatchTier(tiers, tt.duration)
		require.Equal(t, tt.wantOK, ok, "duration %d", tt.duration)
		if ok {
			assert.Equal(t, tt.wantMin, got.MinDuration, "duration %d", tt.duration)
		}
	}
}

func TestMatchTier_SelectsLargestNotExceeding(t *testing.T) {
	tiers := []domain.Tier{tier(2, 5), tier(4, 10), tier(6, 15), tier(9, 20)}

	for duration := 0; duration <= 12; duration++ {
		got, ok := MatchTier(tiers, duration)

		best := 0
		for _, tr := range tiers {
			if tr.MinDuration <= duration && tr.MinDuration > best {
				best = tr.MinDuration
			}
		}

		if best == 0 {
			assert.False(t, ok, "duration %d", duration)
			continue
		}
		require.True(t, ok, "duration %d", duration)
		assert.Equal(t, best, got.MinDuration, "duration %d", duration)
	}
}

func TestValidateTiers(t *testing.T) {
	tests := []struct {
		name    string
		tiers   []domain.Tier
		strict  bool
		wantErr error
	}{
		{"empty relaxed", nil, false, nil},
		{"valid relaxed", []domain.Tier{tier(3, 10), tier(7, 20)}, false, nil},
		{"zero min duration", []domain.Tier{tier(0, 10)}, false, ErrInvalidTierDuration},
		{"negative discount", []domain.Tier{tier(1, -1)}, false, ErrInvalidTierDiscount},
		{"discount over 100", []domain.Tier{tier(1, 101)}, false, ErrInvalidTierDiscount},
		{"full discount allowed", []domain.Tier{tier(1, 100)}, false, nil},
		{"duplicate min duration", []domain.Tier{tier(3, 10), tier(3, 15)}, false, ErrTierOverlap},
		{"strict empty", nil, true, ErrStrictTiersEmpty},
		{"strict uncovered prefix", []domain.Tier{tier(3, 10)}, true, ErrTierUncoveredDuration},
		{"strict covered", []domain.Tier{tier(7, 20), tier(1, 0)}, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTiers(tt.tiers, tt.strict)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSortTiers_DoesNotMutateInput(t *testing.T) {
	tiers := []domain.Tier{tier(7, 20), tier(1, 0), tier(3, 10)}

	sorted := SortTiers(tiers)

	assert.Equal(t, []int{1, 3, 7}, []int{sorted[0].MinDuration, sorted[1].MinDuration, sorted[2].MinDuration})
	assert.Equal(t, 7, tiers[0].MinDuration)
}

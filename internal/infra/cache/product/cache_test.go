package product

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

func TestKey(t *testing.T) {
	storeID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	productID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	assert.Equal(t,
		"product:11111111-1111-1111-1111-111111111111:22222222-2222-2222-2222-222222222222",
		Key(storeID, productID))
}

func TestProductJSONRoundTripKeepsPrices(t *testing.T) {
	product := &domain.Product{
		ID:          uuid.New(),
		StoreID:     uuid.New(),
		Name:        "Kayak",
		BillingUnit: domain.BillingDay,
		BasePrice:   decimal.RequireFromString("19.99"),
		TrackUnits:  true,
		PricingTiers: []domain.Tier{
			{ID: uuid.New(), MinDuration: 3, DiscountPercent: decimal.RequireFromString("12.5")},
		},
		Units: []domain.Unit{{ID: uuid.New(), Identifier: "K-1", Status: domain.UnitAvailable, Attributes: map[string]string{"size": "M"}}},
	}

	raw, err := json.Marshal(product)
	require.NoError(t, err)

	var decoded domain.Product
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.True(t, decoded.BasePrice.Equal(product.BasePrice))
	assert.True(t, decoded.PricingTiers[0].DiscountPercent.Equal(product.PricingTiers[0].DiscountPercent))
	assert.Equal(t, product.Units[0].Attributes, decoded.Units[0].Attributes)
}

func TestNop(t *testing.T) {
	var c Nop
	ctx := context.Background()

	product, found, err := c.Get(ctx, uuid.New(), uuid.New())
	assert.Nil(t, product)
	assert.False(t, found)
	assert.NoError(t, err)
	assert.NoError(t, c.Set(ctx, &domain.Product{}))
	assert.NoError(t, c.Invalidate(ctx, uuid.New(), uuid.New()))
}

// fakeRedis хранит значения в памяти; остальные методы Cmdable не используются
type fakeRedis struct {
	redis.Cmdable
	data   map[string]string
	ttl    time.Duration
	getErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = string(value.([]byte))
	f.ttl = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestCache_SetGetInvalidate(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	c := NewCache(rdb, 30*time.Second)

	product := &domain.Product{
		ID:          uuid.New(),
		StoreID:     uuid.New(),
		Name:        "Snowboard",
		BillingUnit: domain.BillingDay,
		BasePrice:   decimal.NewFromInt(25),
		Quantity:    3,
	}

	_, found, err := c.Get(ctx, product.StoreID, product.ID)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, product))
	assert.Equal(t, 30*time.Second, rdb.ttl)

	cached, found, err := c.Get(ctx, product.StoreID, product.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Snowboard", cached.Name)
	assert.Equal(t, 3, cached.Quantity)

	require.NoError(t, c.Invalidate(ctx, product.StoreID, product.ID))
	_, found, err = c.Get(ctx, product.StoreID, product.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCache_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("read error", func(t *testing.T) {
		rdb := newFakeRedis()
		rdb.getErr = errors.New("connection refused")

		_, _, err := NewCache(rdb, 0).Get(ctx, uuid.New(), uuid.New())
		assert.ErrorIs(t, err, ErrCacheRead)
	})

	t.Run("corrupted value", func(t *testing.T) {
		rdb := newFakeRedis()
		storeID, productID := uuid.New(), uuid.New()
		rdb.data[Key(storeID, productID)] = "{not json"

		_, _, err := NewCache(rdb, 0).Get(ctx, storeID, productID)
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("default ttl", func(t *testing.T) {
		rdb := newFakeRedis()
		require.NoError(t, NewCache(rdb, 0).Set(ctx, &domain.Product{ID: uuid.New(), StoreID: uuid.New()}))
		assert.Equal(t, DefaultTTL, rdb.ttl)
	})
}

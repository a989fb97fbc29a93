package products

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetByID(ctx context.Context, storeID, productID uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, storeID, productID)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetByIDs(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]*domain.Product, error) {
	args := m.Called(ctx, storeID, ids)
	if p := args.Get(0); p != nil {
		return p.([]*domain.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, storeID, productID uuid.UUID) (*domain.Product, bool, error) {
	args := m.Called(ctx, storeID, productID)
	if p := args.Get(0); p != nil {
		return p.(*domain.Product), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, product *domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

type mockMetrics struct {
	hits, misses int
}

func (m *mockMetrics) IncProductCache(hit bool) {
	if hit {
		m.hits++
		return
	}
	m.misses++
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func sizedProduct(storeID uuid.UUID) *domain.Product {
	productID := uuid.New()
	unit := func(identifier, size string, status domain.UnitStatus) domain.Unit {
		return domain.Unit{
			ID:         uuid.New(),
			ProductID:  productID,
			Identifier: identifier,
			Status:     status,
			Attributes: map[string]string{"size": size},
		}
	}

	return &domain.Product{
		ID:                   productID,
		StoreID:              storeID,
		Name:                 "Ski boots",
		BillingUnit:          domain.BillingDay,
		BasePrice:            decimal.NewFromInt(20),
		Quantity:             3,
		TrackUnits:           true,
		BookingAttributeAxes: []domain.AttributeAxis{{Key: "size", Label: "Size"}},
		Units: []domain.Unit{
			unit("B-1", "S", domain.UnitAvailable),
			unit("B-2", "M", domain.UnitAvailable),
			unit("B-3", "S", domain.UnitAvailable),
			unit("B-4", "L", domain.UnitMaintenance),
		},
	}
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()

	t.Run("cache miss loads from repository and sorts combinations", func(t *testing.T) {
		product := sizedProduct(storeID)
		repo := &mockRepo{}
		cache := &mockCache{}
		metrics := &mockMetrics{}

		cache.On("Get", ctx, storeID, product.ID).Return(nil, false, nil)
		repo.On("GetByIDs", ctx, storeID, []uuid.UUID{product.ID}).Return([]*domain.Product{product}, nil)
		cache.On("Set", ctx, product).Return(nil)

		svc := NewService(repo, cache, metrics, nopLogger{})
		resp, err := svc.GetByID(ctx, storeID, product.ID)
		require.NoError(t, err)

		require.Len(t, resp.Combinations, 2)
		assert.Equal(t, "size=M", resp.Combinations[0].Key)
		assert.Equal(t, 1, resp.Combinations[0].Available)
		assert.Equal(t, "size=S", resp.Combinations[1].Key)
		assert.Equal(t, 2, resp.Combinations[1].Available)
		assert.Len(t, resp.Units, 4)
		assert.Equal(t, 1, metrics.misses)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		product := sizedProduct(storeID)
		repo := &mockRepo{}
		cache := &mockCache{}
		metrics := &mockMetrics{}

		cache.On("Get", ctx, storeID, product.ID).Return(product, true, nil)

		svc := NewService(repo, cache, metrics, nopLogger{})
		resp, err := svc.GetByID(ctx, storeID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ski boots", resp.Name)
		assert.Equal(t, 1, metrics.hits)

		repo.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		productID := uuid.New()
		repo := &mockRepo{}
		cache := &mockCache{}

		cache.On("Get", ctx, storeID, productID).Return(nil, false, nil)
		repo.On("GetByIDs", ctx, storeID, []uuid.UUID{productID}).Return([]*domain.Product{}, nil)

		svc := NewService(repo, cache, &mockMetrics{}, nopLogger{})
		_, err := svc.GetByID(ctx, storeID, productID)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("untracked product has default combination", func(t *testing.T) {
		product := &domain.Product{ID: uuid.New(), StoreID: storeID, Name: "Helmet", Quantity: 7, BillingUnit: domain.BillingDay}
		repo := &mockRepo{}
		cache := &mockCache{}

		cache.On("Get", ctx, storeID, product.ID).Return(product, true, nil)

		svc := NewService(repo, cache, &mockMetrics{}, nopLogger{})
		resp, err := svc.GetByID(ctx, storeID, product.ID)
		require.NoError(t, err)
		require.Len(t, resp.Combinations, 1)
		assert.Equal(t, "__default__", resp.Combinations[0].Key)
		assert.Equal(t, 7, resp.Combinations[0].Available)
	})
}

func TestLoadMany(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()

	t.Run("duplicate ids are loaded once after cache errors", func(t *testing.T) {
		product := sizedProduct(storeID)
		repo := &mockRepo{}
		cache := &mockCache{}

		cache.On("Get", ctx, storeID, product.ID).Return(nil, false, errors.New("redis down"))
		repo.On("GetByIDs", ctx, storeID, []uuid.UUID{product.ID}).Return([]*domain.Product{product}, nil)
		cache.On("Set", ctx, product).Return(errors.New("redis down"))

		svc := NewService(repo, cache, &mockMetrics{}, nopLogger{})
		got, err := svc.LoadMany(ctx, storeID, []uuid.UUID{product.ID, product.ID})
		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Same(t, product, got[product.ID])
		cache.AssertNumberOfCalls(t, "Get", 1)
		repo.AssertExpectations(t)
	})

	t.Run("cached product of another store is ignored", func(t *testing.T) {
		foreign := sizedProduct(uuid.New())
		repo := &mockRepo{}
		cache := &mockCache{}

		cache.On("Get", ctx, storeID, foreign.ID).Return(foreign, true, nil)
		repo.On("GetByIDs", ctx, storeID, []uuid.UUID{foreign.ID}).Return([]*domain.Product{}, nil)

		svc := NewService(repo, cache, &mockMetrics{}, nopLogger{})
		got, err := svc.LoadMany(ctx, storeID, []uuid.UUID{foreign.ID})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("repository error", func(t *testing.T) {
		productID := uuid.New()
		repo := &mockRepo{}
		cache := &mockCache{}

		cache.On("Get", ctx, storeID, productID).Return(nil, false, nil)
		repo.On("GetByIDs", ctx, storeID, []uuid.UUID{productID}).Return(nil, errors.New("db down"))

		svc := NewService(repo, cache, &mockMetrics{}, nopLogger{})
		_, err := svc.LoadMany(ctx, storeID, []uuid.UUID{productID})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/combination"
	productRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/product"
	"github.com/m04kA/SMC-RentalService/internal/service/products/models"
)

// Service сервис чтения товаров с кешем
type Service struct {
	productRepo ProductRepository
	cache       ProductCache
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса товаров
func NewService(
	productRepo ProductRepository,
	cache ProductCache,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		productRepo: productRepo,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
	}
}

// GetByID получает товар с единицами, тарифами и комбинациями в порядке отображения
func (s *Service) GetByID(ctx context.Context, storeID, productID uuid.UUID) (*models.ProductResponse, error) {
	s.logger.Info("GetByID: fetching product id=%s for store=%s", productID, storeID)

	products, err := s.LoadMany(ctx, storeID, []uuid.UUID{productID})
	if err != nil {
		return nil, err
	}

	product, ok := products[productID]
	if !ok {
		s.logger.Warn("GetByID: product id=%s not found in store=%s", productID, storeID)
		return nil, ErrProductNotFound
	}

	combos := combination.Group(product)
	combination.SortForDisplay(combos)

	return models.FromDomainProduct(product, combos), nil
}

// LoadMany получает товары магазина по ID (cache-aside).
// Отсутствующие товары в результат не попадают; ошибки кеша не прерывают чтение.
func (s *Service) LoadMany(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error) {
	result := make(map[uuid.UUID]*domain.Product, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	var misses []uuid.UUID

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		product, found, err := s.cache.Get(ctx, storeID, id)
		if err != nil {
			s.logger.Warn("LoadMany: cache read failed for product id=%s: %v", id, err)
		}
		if found && product.StoreID == storeID {
			s.metrics.IncProductCache(true)
			result[id] = product
			continue
		}

		s.metrics.IncProductCache(false)
		misses = append(misses, id)
	}

	if len(misses) == 0 {
		return result, nil
	}

	loaded, err := s.productRepo.GetByIDs(ctx, storeID, misses)
	if err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			return result, nil
		}
		s.logger.Error("LoadMany: repository error for store=%s: %v", storeID, err)
		return nil, fmt.Errorf("%w: LoadMany - repository error: %w", ErrInternal, err)
	}

	for _, product := range loaded {
		result[product.ID] = product
		if err := s.cache.Set(ctx, product); err != nil {
			s.logger.Warn("LoadMany: cache write failed for product id=%s: %v", product.ID, err)
		}
	}

	return result, nil
}

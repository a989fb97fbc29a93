package update_product

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/combination"
	"github.com/m04kA/SMC-RentalService/internal/engine/inventoryguard"
	"github.com/m04kA/SMC-RentalService/internal/engine/pricing"
	"github.com/m04kA/SMC-RentalService/internal/infra/events"
	productRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/product"
)

// UseCase use case для изменения инвентаря, осей и тарифов товара
type UseCase struct {
	productRepo     ProductRepository
	reservationRepo ReservationRepository
	cache           ProductCache
	publisher       EventPublisher
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	productRepo ProductRepository,
	reservationRepo ReservationRepository,
	cache ProductCache,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		productRepo:     productRepo,
		reservationRepo: reservationRepo,
		cache:           cache,
		publisher:       publisher,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute применяет изменение целиком или не применяет ничего
// Товар блокируется на время проверки, чтобы параллельное бронирование не прошло между проверкой и записью
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateProduct: store=%s, product=%s, trackUnits=%t, units=%d, tiers=%d",
		req.StoreID, req.ProductID, req.TrackUnits, len(req.Units), len(req.PricingTiers))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateProduct: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.Product

	// 3. Проверка и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Текущее состояние товара (FOR UPDATE)
		current, err := uc.productRepo.GetByID(txCtx, req.StoreID, req.ProductID)
		if err != nil {
			if errors.Is(err, productRepo.ErrProductNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("%w: failed to get product: %w", ErrInternal, err)
		}

		units := ownUnits(current, req.Units)

		// 3.2. Активные и будущие бронирования товара
		rows, err := uc.reservationRepo.GetActiveItemRowsByProduct(txCtx, req.ProductID, now)
		if err != nil {
			return fmt.Errorf("%w: failed to get reservation rows: %w", ErrInternal, err)
		}

		// 3.3. Проверяем итоговое состояние против бронирований
		edit := inventoryguard.Edit{
			Axes:       req.BookingAttributeAxes,
			Units:      units,
			TrackUnits: req.TrackUnits,
		}
		if err := inventoryguard.ValidateEdit(current, edit, rows, now); err != nil {
			uc.metrics.IncInventoryGuardRejection(rejectionReason(err))
			return fmt.Errorf("%w: %w", ErrInventoryConflict, err)
		}

		// 3.4. Обновляем товар
		updated := *current
		updated.BillingUnit = domain.BillingUnit(req.BillingUnit)
		updated.BasePrice = req.BasePrice
		updated.Quantity = req.Quantity
		updated.TrackUnits = req.TrackUnits
		updated.BookingAttributeAxes = req.BookingAttributeAxes
		updated.EnforceStrictTiers = req.EnforceStrictTiers
		updated.Units = units
		updated.DeriveQuantity()

		if err := uc.productRepo.Update(txCtx, &updated); err != nil {
			if errors.Is(err, productRepo.ErrProductNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("%w: failed to update product: %w", ErrInternal, err)
		}

		// 3.5. Тарифы и единицы
		tiers, err := uc.productRepo.ReplaceTiers(txCtx, updated.ID, req.PricingTiers)
		if err != nil {
			return fmt.Errorf("%w: failed to replace tiers: %w", ErrInternal, err)
		}
		updated.PricingTiers = pricing.SortTiers(tiers)

		savedUnits, err := uc.productRepo.ReconcileUnits(txCtx, updated.ID, units)
		if err != nil {
			return fmt.Errorf("%w: failed to reconcile units: %w", ErrInternal, err)
		}
		updated.Units = savedUnits

		result = &updated
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInventoryConflict):
			uc.logger.Warn("UpdateProduct: product id=%s rejected: %v", req.ProductID, err)
		case errors.Is(err, ErrProductNotFound):
			uc.logger.Warn("UpdateProduct: product id=%s not found in store=%s", req.ProductID, req.StoreID)
		default:
			uc.logger.Error("UpdateProduct: %v", err)
		}
		return nil, err
	}

	// 4. Сбрасываем кеш и публикуем событие
	if err := uc.cache.Invalidate(ctx, result.StoreID, result.ID); err != nil {
		uc.logger.Error("UpdateProduct: failed to invalidate cache for product id=%s: %v", result.ID, err)
	}

	payload := events.ProductInventoryUpdatedPayload{
		ProductID:  result.ID,
		StoreID:    result.StoreID,
		Quantity:   result.Quantity,
		TrackUnits: result.TrackUnits,
		UnitCount:  len(result.Units),
		TierCount:  len(result.PricingTiers),
	}
	if err := uc.publisher.Publish(ctx, events.EventProductInventoryUpdated, result.ID.String(), payload); err != nil {
		uc.logger.Error("UpdateProduct: failed to publish event for product id=%s: %v", result.ID, err)
	}

	combos := combination.Group(result)
	combination.SortForDisplay(combos)

	uc.logger.Info("UpdateProduct: product id=%s updated, quantity=%d", result.ID, result.Quantity)
	return &Response{Product: result, Combinations: combos}, nil
}

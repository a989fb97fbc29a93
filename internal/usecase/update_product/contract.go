package update_product

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	GetByID(ctx context.Context, storeID, productID uuid.UUID) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	ReplaceTiers(ctx context.Context, productID uuid.UUID, tiers []domain.Tier) ([]domain.Tier, error)
	ReconcileUnits(ctx context.Context, productID uuid.UUID, units []domain.Unit) ([]domain.Unit, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetActiveItemRowsByProduct(ctx context.Context, productID uuid.UUID, now time.Time) ([]domain.ReservationItemRow, error)
}

// ProductCache интерфейс кеша товаров
type ProductCache interface {
	Invalidate(ctx context.Context, storeID, productID uuid.UUID) error
}

// EventPublisher интерфейс издателя доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, eventType, key string, payload interface{}) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	IncInventoryGuardRejection(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

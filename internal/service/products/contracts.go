package products

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	GetByIDs(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]*domain.Product, error)
}

// ProductCache интерфейс кеша товаров
type ProductCache interface {
	Get(ctx context.Context, storeID, productID uuid.UUID) (*domain.Product, bool, error)
	Set(ctx context.Context, product *domain.Product) error
}

// Metrics интерфейс метрик кеша
type Metrics interface {
	IncProductCache(hit bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

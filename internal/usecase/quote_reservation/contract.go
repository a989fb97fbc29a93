package quote_reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/integrations/storeservice"
)

// StoreServiceClient интерфейс клиента для StoreService
type StoreServiceClient interface {
	GetActiveStore(ctx context.Context, storeID uuid.UUID) (*storeservice.Store, error)
}

// ProductLoader загружает товары магазина (через кеш)
type ProductLoader interface {
	LoadMany(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]*domain.Product, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByStoreWithFilter(ctx context.Context, filter domain.StoreReservationsFilter) ([]*domain.Reservation, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс доменных метрик
type Metrics interface {
	AddAvailabilityWarnings(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

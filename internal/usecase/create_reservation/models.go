package create_reservation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/availability"
)

// Request модель запроса на создание бронирования
type Request struct {
	StoreID       uuid.UUID                // ID магазина
	StartDate     time.Time                // Начало аренды
	EndDate       time.Time                // Конец аренды (не включая)
	CustomerName  string                   // Имя клиента
	CustomerEmail string                   // Email клиента (опционально)
	Notes         *string                  // Заметки (опционально)
	Lines         []domain.ReservationLine // Строки бронирования
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            uuid.UUID
	StoreID       uuid.UUID
	Number        string
	CustomerName  string
	CustomerEmail string
	StartDate     time.Time
	EndDate       time.Time
	Status        string
	Currency      string
	Items         []domain.ReservationItem
	Subtotal      decimal.Decimal
	Notes         *string

	// Нехватка на период не блокирует создание и возвращается предупреждением
	Warnings []availability.Warning

	CreatedAt time.Time
	UpdatedAt time.Time
}

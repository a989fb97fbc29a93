package quote_reservation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/availability"
	"github.com/m04kA/SMC-RentalService/internal/engine/quote"
)

// Request модель запроса на расчет черновика бронирования
type Request struct {
	StoreID   uuid.UUID                // ID магазина
	StartDate time.Time                // Начало аренды
	EndDate   time.Time                // Конец аренды (не включая)
	Lines     []domain.ReservationLine // Строки черновика; пустой ID строки будет сгенерирован
}

// Response модель ответа с расчетом
type Response struct {
	StoreID   uuid.UUID
	Currency  string
	StartDate time.Time
	EndDate   time.Time
	Lines     []quote.Line
	Subtotal  decimal.Decimal

	// Предупреждения о нехватке не блокируют бронирование
	Warnings []availability.Warning
	Products []availability.ProductAvailability
}

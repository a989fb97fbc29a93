package update_product

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/combination"
)

// Request модель запроса на изменение инвентаря и цены товара
// Оси, тарифы и единицы передаются целиком и заменяют текущие
type Request struct {
	StoreID              uuid.UUID
	ProductID            uuid.UUID
	BillingUnit          string
	BasePrice            decimal.Decimal
	Quantity             int // Используется только без учета единиц
	TrackUnits           bool
	BookingAttributeAxes []domain.AttributeAxis
	PricingTiers         []domain.Tier
	EnforceStrictTiers   bool
	Units                []domain.Unit // Единица без ID или с чужим ID считается новой
}

// Response модель ответа с обновленным товаром
type Response struct {
	Product      *domain.Product
	Combinations []combination.Combination
}

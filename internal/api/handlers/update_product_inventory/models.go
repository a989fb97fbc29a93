package update_product_inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/inventoryguard"
	updateProduct "github.com/m04kA/SMC-RentalService/internal/usecase/update_product"
)

// AxisRequest ось атрибутов; порядок осей в запросе задает порядок в ключе комбинации
type AxisRequest struct {
	Key   string `json:"key"`
	Label string `json:"label,omitempty"`
}

// TierRequest скидочный порог
type TierRequest struct {
	MinDuration     int             `json:"minDuration"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
}

// UnitRequest единица товара
type UnitRequest struct {
	ID         *uuid.UUID        `json:"id,omitempty"` // Пусто для новой единицы
	Identifier string            `json:"identifier"`
	Status     string            `json:"status,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Notes      *string           `json:"notes,omitempty"`
}

// UpdateInventoryRequest HTTP request model; оси, тарифы и единицы заменяются целиком
type UpdateInventoryRequest struct {
	BillingUnit          string          `json:"billingUnit"`
	BasePrice            decimal.Decimal `json:"basePrice"`
	Quantity             int             `json:"quantity"`
	TrackUnits           bool            `json:"trackUnits"`
	BookingAttributeAxes []AxisRequest   `json:"bookingAttributeAxes"`
	PricingTiers         []TierRequest   `json:"pricingTiers"`
	EnforceStrictTiers   bool            `json:"enforceStrictTiers"`
	Units                []UnitRequest   `json:"units"`
}

// ConflictResponse конфликт комбинации с активными бронированиями
type ConflictResponse struct {
	CombinationKey string `json:"combinationKey"`
	Reserved       int    `json:"reserved"`
	Available      int    `json:"available"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateInventoryRequest) ToUseCaseRequest(storeID, productID uuid.UUID) *updateProduct.Request {
	req := &updateProduct.Request{
		StoreID:            storeID,
		ProductID:          productID,
		BillingUnit:        r.BillingUnit,
		BasePrice:          r.BasePrice,
		Quantity:           r.Quantity,
		TrackUnits:         r.TrackUnits,
		EnforceStrictTiers: r.EnforceStrictTiers,
	}

	for _, axis := range r.BookingAttributeAxes {
		req.BookingAttributeAxes = append(req.BookingAttributeAxes, domain.AttributeAxis{Key: axis.Key, Label: axis.Label})
	}

	for _, tier := range r.PricingTiers {
		req.PricingTiers = append(req.PricingTiers, domain.Tier{
			MinDuration:     tier.MinDuration,
			DiscountPercent: tier.DiscountPercent,
		})
	}

	for _, u := range r.Units {
		unit := domain.Unit{
			ProductID:  productID,
			Identifier: u.Identifier,
			Status:     domain.UnitStatus(u.Status),
			Attributes: u.Attributes,
			Notes:      u.Notes,
		}
		if u.ID != nil {
			unit.ID = *u.ID
		}
		req.Units = append(req.Units, unit)
	}

	return req
}

// FromConflicts конвертирует конфликты guard в HTTP модель
func FromConflicts(conflicts []inventoryguard.Conflict) []ConflictResponse {
	result := make([]ConflictResponse, 0, len(conflicts))
	for _, c := range conflicts {
		result = append(result, ConflictResponse{
			CombinationKey: c.CombinationKey,
			Reserved:       c.Reserved,
			Available:      c.Available,
		})
	}
	return result
}

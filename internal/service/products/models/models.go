package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/combination"
)

// AxisResponse ось атрибутов
type AxisResponse struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// TierResponse скидочный тариф
type TierResponse struct {
	ID              uuid.UUID       `json:"id"`
	MinDuration     int             `json:"minDuration"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
}

// UnitResponse единица товара
type UnitResponse struct {
	ID         uuid.UUID         `json:"id"`
	Identifier string            `json:"identifier"`
	Status     string            `json:"status"`
	Attributes map[string]string `json:"attributes"`
	Notes      *string           `json:"notes,omitempty"`
}

// SlotResponse значение оси в комбинации; Value пустое, если ось не задана
type SlotResponse struct {
	AxisKey string `json:"axisKey"`
	Value   string `json:"value,omitempty"`
	Set     bool   `json:"set"`
}

// CombinationResponse комбинация с количеством доступных единиц
type CombinationResponse struct {
	Key        string            `json:"key"`
	Attributes map[string]string `json:"attributes"`
	Slots      []SlotResponse    `json:"slots"`
	Available  int               `json:"available"`
}

// ProductResponse ответ с данными товара
type ProductResponse struct {
	ID                   uuid.UUID             `json:"id"`
	StoreID              uuid.UUID             `json:"storeId"`
	Name                 string                `json:"name"`
	BillingUnit          string                `json:"billingUnit"`
	BasePrice            decimal.Decimal       `json:"basePrice"`
	Quantity             int                   `json:"quantity"`
	TrackUnits           bool                  `json:"trackUnits"`
	EnforceStrictTiers   bool                  `json:"enforceStrictTiers"`
	BookingAttributeAxes []AxisResponse        `json:"bookingAttributeAxes"`
	PricingTiers         []TierResponse        `json:"pricingTiers"`
	Units                []UnitResponse        `json:"units"`
	Combinations         []CombinationResponse `json:"combinations"`
	CreatedAt            time.Time             `json:"createdAt"`
	UpdatedAt            time.Time             `json:"updatedAt"`
}

// FromDomainProduct конвертирует товар и его комбинации в DTO
func FromDomainProduct(p *domain.Product, combos []combination.Combination) *ProductResponse {
	if p == nil {
		return nil
	}

	resp := &ProductResponse{
		ID:                   p.ID,
		StoreID:              p.StoreID,
		Name:                 p.Name,
		BillingUnit:          string(p.BillingUnit),
		BasePrice:            p.BasePrice,
		Quantity:             p.Quantity,
		TrackUnits:           p.TrackUnits,
		EnforceStrictTiers:   p.EnforceStrictTiers,
		BookingAttributeAxes: make([]AxisResponse, 0, len(p.BookingAttributeAxes)),
		PricingTiers:         make([]TierResponse, 0, len(p.PricingTiers)),
		Units:                make([]UnitResponse, 0, len(p.Units)),
		Combinations:         make([]CombinationResponse, 0, len(combos)),
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}

	for _, axis := range p.BookingAttributeAxes {
		resp.BookingAttributeAxes = append(resp.BookingAttributeAxes, AxisResponse{Key: axis.Key, Label: axis.Label})
	}
	for _, tier := range p.PricingTiers {
		resp.PricingTiers = append(resp.PricingTiers, TierResponse{
			ID:              tier.ID,
			MinDuration:     tier.MinDuration,
			DiscountPercent: tier.DiscountPercent,
		})
	}
	for _, unit := range p.Units {
		attrs := unit.Attributes
		if attrs == nil {
			attrs = map[string]string{}
		}
		resp.Units = append(resp.Units, UnitResponse{
			ID:         unit.ID,
			Identifier: unit.Identifier,
			Status:     string(unit.Status),
			Attributes: attrs,
			Notes:      unit.Notes,
		})
	}
	for _, c := range combos {
		slots := make([]SlotResponse, 0, len(c.Slots))
		for _, s := range c.Slots {
			slots = append(slots, SlotResponse{AxisKey: s.AxisKey, Value: s.Value, Set: s.Set})
		}
		resp.Combinations = append(resp.Combinations, CombinationResponse{
			Key:        c.Key,
			Attributes: c.Attributes,
			Slots:      slots,
			Available:  c.Available,
		})
	}

	return resp
}

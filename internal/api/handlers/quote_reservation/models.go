package quote_reservation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	quoteReservation "github.com/m04kA/SMC-RentalService/internal/usecase/quote_reservation"
)

// QuoteRequest HTTP request model
type QuoteRequest struct {
	StartDate string                 `json:"startDate"` // RFC3339 или "2025-06-01"
	EndDate   string                 `json:"endDate"`
	Lines     []handlers.LineRequest `json:"lines"`
}

// MatchedTierResponse примененный скидочный порог
type MatchedTierResponse struct {
	MinDuration     int             `json:"minDuration"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
}

// QuoteLineResponse расчет строки
type QuoteLineResponse struct {
	LineID             string            `json:"lineId"`
	ProductID          *uuid.UUID        `json:"productId,omitempty"`
	Name               string            `json:"name"`
	Quantity           int               `json:"quantity"`
	BillingUnit        string            `json:"billingUnit,omitempty"`
	SelectedAttributes map[string]string `json:"selectedAttributes"`
	CombinationKey     string            `json:"combinationKey"`

	Duration         int                  `json:"duration"`
	BasePrice        decimal.Decimal      `json:"basePrice"`
	CalculatedPrice  decimal.Decimal      `json:"calculatedPrice"`
	EffectivePrice   decimal.Decimal      `json:"effectivePrice"`
	MatchedTier      *MatchedTierResponse `json:"matchedTier,omitempty"`
	HasDiscount      bool                 `json:"hasDiscount"`
	HasTieredPricing bool                 `json:"hasTieredPricing"`
	HasPriceOverride bool                 `json:"hasPriceOverride"`
	Total            decimal.Decimal      `json:"total"`

	LineMaxQuantity   int    `json:"lineMaxQuantity"`
	SelectionCapacity int    `json:"selectionCapacity"`
	SelectionMode     string `json:"selectionMode"`
	Unbounded         bool   `json:"unbounded"`
	Available         int    `json:"available"`
	IsCustom          bool   `json:"isCustom"`
}

// ProductAvailabilityResponse остаток товара на период
type ProductAvailabilityResponse struct {
	ProductID               uuid.UUID `json:"productId"`
	ProductName             string    `json:"productName"`
	Stock                   int       `json:"stock"`
	Reserved                int       `json:"reserved"`
	Requested               int       `json:"requested"`
	Available               int       `json:"available"`
	ConflictingReservations int       `json:"conflictingReservations"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	StoreID   uuid.UUID                     `json:"storeId"`
	Currency  string                        `json:"currency"`
	StartDate time.Time                     `json:"startDate"`
	EndDate   time.Time                     `json:"endDate"`
	Lines     []QuoteLineResponse           `json:"lines"`
	Subtotal  decimal.Decimal               `json:"subtotal"`
	Warnings  []handlers.WarningResponse    `json:"warnings"`
	Products  []ProductAvailabilityResponse `json:"products"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuoteRequest) ToUseCaseRequest(storeID uuid.UUID) (*quoteReservation.Request, error) {
	start, err := handlers.ParseRentalTime(r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := handlers.ParseRentalTime(r.EndDate)
	if err != nil {
		return nil, err
	}

	return &quoteReservation.Request{
		StoreID:   storeID,
		StartDate: start,
		EndDate:   end,
		Lines:     handlers.ToDomainLines(r.Lines),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quoteReservation.Response) *QuoteResponse {
	result := &QuoteResponse{
		StoreID:   resp.StoreID,
		Currency:  resp.Currency,
		StartDate: resp.StartDate,
		EndDate:   resp.EndDate,
		Lines:     make([]QuoteLineResponse, 0, len(resp.Lines)),
		Subtotal:  resp.Subtotal,
		Warnings:  handlers.FromWarnings(resp.Warnings),
		Products:  make([]ProductAvailabilityResponse, 0, len(resp.Products)),
	}

	for _, l := range resp.Lines {
		attrs := map[string]string(l.SelectedAttributes)
		if attrs == nil {
			attrs = map[string]string{}
		}

		line := QuoteLineResponse{
			LineID:             l.LineID,
			ProductID:          l.ProductID,
			Name:               l.Name,
			Quantity:           l.Quantity,
			BillingUnit:        string(l.BillingUnit),
			SelectedAttributes: attrs,
			CombinationKey:     l.CombinationKey,
			Duration:           l.Price.Duration,
			BasePrice:          l.Price.BasePrice,
			CalculatedPrice:    l.Price.CalculatedPrice,
			EffectivePrice:     l.Price.EffectivePrice,
			HasDiscount:        l.Price.HasDiscount,
			HasTieredPricing:   l.Price.HasTieredPricing,
			HasPriceOverride:   l.Price.HasPriceOverride,
			Total:              l.Total,
			LineMaxQuantity:    l.Constraints.LineMaxQuantity,
			SelectionCapacity:  l.Constraints.SelectionCapacity,
			SelectionMode:      string(l.Constraints.SelectionMode),
			Unbounded:          l.Constraints.Unbounded,
			Available:          l.Available,
			IsCustom:           l.IsCustom,
		}
		if tier := l.Price.MatchedTier; tier != nil {
			line.MatchedTier = &MatchedTierResponse{
				MinDuration:     tier.MinDuration,
				DiscountPercent: tier.DiscountPercent,
			}
		}
		result.Lines = append(result.Lines, line)
	}

	for _, p := range resp.Products {
		result.Products = append(result.Products, ProductAvailabilityResponse{
			ProductID:               p.ProductID,
			ProductName:             p.ProductName,
			Stock:                   p.Stock,
			Reserved:                p.Reserved,
			Requested:               p.Requested,
			Available:               p.Available,
			ConflictingReservations: p.ConflictingReservations,
		})
	}

	return result
}

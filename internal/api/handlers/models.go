package handlers

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/availability"
)

// ErrInvalidTime возвращается, если время не в формате RFC3339 и не дата YYYY-MM-DD
var ErrInvalidTime = errors.New("invalid time format")

// LineRequest строка черновика бронирования в HTTP запросе
type LineRequest struct {
	ID                 string            `json:"id,omitempty"`
	ProductID          *uuid.UUID        `json:"productId,omitempty"` // Пусто для произвольной позиции
	CustomName         string            `json:"customName,omitempty"`
	Quantity           int               `json:"quantity"`
	SelectedAttributes map[string]string `json:"selectedAttributes,omitempty"`
	PriceOverride      *decimal.Decimal  `json:"priceOverride,omitempty"`
}

// WarningResponse предупреждение о нехватке товара на период
type WarningResponse struct {
	ProductID               uuid.UUID `json:"productId"`
	ProductName             string    `json:"productName"`
	Requested               int       `json:"requested"`
	Available               int       `json:"available"`
	ConflictingReservations int       `json:"conflictingReservations"`
}

// ParseRentalTime разбирает границу периода аренды.
// Дата без времени трактуется как полночь UTC.
func ParseRentalTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(domain.DateFormat, raw); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidTime
}

// ToDomainLines конвертирует строки запроса в строки черновика
func ToDomainLines(lines []LineRequest) []domain.ReservationLine {
	result := make([]domain.ReservationLine, 0, len(lines))
	for _, l := range lines {
		line := domain.ReservationLine{
			ID:                 l.ID,
			ProductID:          l.ProductID,
			CustomName:         l.CustomName,
			Quantity:           l.Quantity,
			SelectedAttributes: l.SelectedAttributes,
		}
		if l.PriceOverride != nil {
			line.PriceOverride = &domain.PriceOverride{UnitPrice: *l.PriceOverride}
		}
		result = append(result, line)
	}
	return result
}

// FromWarnings конвертирует предупреждения движка в HTTP модель; никогда не возвращает nil
func FromWarnings(warnings []availability.Warning) []WarningResponse {
	result := make([]WarningResponse, 0, len(warnings))
	for _, w := range warnings {
		result = append(result, WarningResponse{
			ProductID:               w.ProductID,
			ProductName:             w.ProductName,
			Requested:               w.Requested,
			Available:               w.Available,
			ConflictingReservations: w.ConflictingReservations,
		})
	}
	return result
}

package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")
)

// Request модели

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GetStoreReservationsRequest запрос на получение бронирований магазина
type GetStoreReservationsRequest struct {
	StoreID         uuid.UUID  `json:"storeId"`
	From            *time.Time `json:"from,omitempty"`            // Начало периода (опционально)
	To              *time.Time `json:"to,omitempty"`              // Конец периода (опционально)
	Statuses        []string   `json:"statuses,omitempty"`        // Фильтр по статусам (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить завершенные и отмененные
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetStoreReservationsRequest) ToDomainFilter() (domain.StoreReservationsFilter, error) {
	filter := domain.StoreReservationsFilter{
		StoreID:         r.StoreID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	for _, raw := range r.Statuses {
		status, err := ToDomainReservationStatus(raw)
		if err != nil {
			return filter, err
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	return filter, nil
}

// Response модели

// ReservationItemResponse позиция бронирования
type ReservationItemResponse struct {
	ID                 uuid.UUID         `json:"id"`
	ProductID          *uuid.UUID        `json:"productId,omitempty"`
	Name               string            `json:"name"`
	Quantity           int               `json:"quantity"`
	UnitPrice          decimal.Decimal   `json:"unitPrice"`
	TotalPrice         decimal.Decimal   `json:"totalPrice"`
	Duration           int               `json:"duration"`
	BillingUnit        string            `json:"billingUnit,omitempty"`
	CombinationKey     string            `json:"combinationKey"`
	SelectedAttributes map[string]string `json:"selectedAttributes"`
	PriceOverridden    bool              `json:"priceOverridden"`
	IsCustom           bool              `json:"isCustom"`
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID            uuid.UUID                 `json:"id"`
	StoreID       uuid.UUID                 `json:"storeId"`
	Number        string                    `json:"number"`
	CustomerName  string                    `json:"customerName"`
	CustomerEmail string                    `json:"customerEmail"`
	StartDate     time.Time                 `json:"startDate"`
	EndDate       time.Time                 `json:"endDate"`
	Status        string                    `json:"status"`
	Items         []ReservationItemResponse `json:"items"`
	Subtotal      decimal.Decimal           `json:"subtotal"`
	Notes         *string                   `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:            r.ID,
		StoreID:       r.StoreID,
		Number:        r.Number,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		Status:        string(r.Status),
		Items:         make([]ReservationItemResponse, 0, len(r.Items)),
		Subtotal:      r.Subtotal,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}

	for _, item := range r.Items {
		attrs := item.SelectedAttributes
		if attrs == nil {
			attrs = map[string]string{}
		}
		resp.Items = append(resp.Items, ReservationItemResponse{
			ID:                 item.ID,
			ProductID:          item.ProductID,
			Name:               item.Name,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			TotalPrice:         item.TotalPrice,
			Duration:           item.Duration,
			BillingUnit:        string(item.BillingUnit),
			CombinationKey:     item.CombinationKey,
			SelectedAttributes: attrs,
			PriceOverridden:    item.PriceOverridden,
			IsCustom:           item.IsCustom,
		})
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, reservation := range reservations {
		if r := FromDomainReservation(reservation); r != nil {
			resp.Reservations = append(resp.Reservations, *r)
		}
	}

	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

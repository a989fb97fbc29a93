package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusOngoing   ReservationStatus = "ongoing"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusRejected  ReservationStatus = "rejected"
)

// IsValid returns true if the status is known
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusOngoing, StatusCompleted, StatusCancelled, StatusRejected:
		return true
	}
	return false
}

// IsActive returns true if reservations in this status hold stock
func (s ReservationStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusOngoing
}

// IsTerminal returns true if the status cannot be changed anymore
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusRejected
}

// Reservation represents a rental reservation in the system
type Reservation struct {
	ID            uuid.UUID
	StoreID       uuid.UUID
	Number        string
	CustomerName  string
	CustomerEmail string
	StartDate     time.Time
	EndDate       time.Time
	Status        ReservationStatus
	Items         []ReservationItem
	Subtotal      decimal.Decimal
	Notes         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Period returns the rental period of the reservation
func (r *Reservation) Period() Period {
	return Period{Start: r.StartDate, End: r.EndDate}
}

// ConsumesCapacity returns true if the reservation still holds stock at the given moment
func (r *Reservation) ConsumesCapacity(now time.Time) bool {
	return r.Status.IsActive() && !r.EndDate.Before(now)
}

// ReservationItem позиция сохраненного бронирования
// Название, цена и ключ комбинации денормализованы для истории
type ReservationItem struct {
	ID                 uuid.UUID
	ReservationID      uuid.UUID
	ProductID          *uuid.UUID // nil для произвольной позиции
	Name               string
	Quantity           int
	UnitPrice          decimal.Decimal
	TotalPrice         decimal.Decimal
	Duration           int
	BillingUnit        BillingUnit
	CombinationKey     string
	SelectedAttributes map[string]string
	PriceOverridden    bool
	IsCustom           bool
}

// PriceOverride ручная цена за единицу
type PriceOverride struct {
	UnitPrice decimal.Decimal
}

// ReservationLine строка черновика бронирования
type ReservationLine struct {
	ID                 string
	ProductID          *uuid.UUID // nil для произвольной позиции
	CustomName         string
	Quantity           int
	SelectedAttributes map[string]string
	PriceOverride      *PriceOverride
}

// IsCustom returns true if the line does not reference a catalog product
func (l *ReservationLine) IsCustom() bool {
	return l.ProductID == nil
}

// ReservationItemRow плоская строка "позиция + бронирование", по которой проверяются изменения инвентаря
type ReservationItemRow struct {
	ReservationID  uuid.UUID
	ProductID      uuid.UUID
	Status         ReservationStatus
	StartDate      time.Time
	EndDate        time.Time
	Quantity       int
	CombinationKey string
}

// StoreReservationsFilter фильтр для получения бронирований магазина
type StoreReservationsFilter struct {
	StoreID         uuid.UUID           // Обязательный параметр
	From            *time.Time          // Начало периода пересечения (опционально)
	To              *time.Time          // Конец периода пересечения (опционально)
	Statuses        []ReservationStatus // Пустой список - все статусы
	IncludeInactive bool                // Включать ли завершенные и отмененные
	Lock            bool                // Блокировать строки (FOR UPDATE), действует только в транзакции
}

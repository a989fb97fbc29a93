package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillingUnit единица тарификации товара
type BillingUnit string

const (
	BillingHour BillingUnit = "hour"
	BillingDay  BillingUnit = "day"
	BillingWeek BillingUnit = "week"
)

// IsValid returns true if the billing unit is known
func (u BillingUnit) IsValid() bool {
	switch u {
	case BillingHour, BillingDay, BillingWeek:
		return true
	}
	return false
}

// UnitStatus represents the status of a physical unit
type UnitStatus string

const (
	UnitAvailable   UnitStatus = "available"
	UnitMaintenance UnitStatus = "maintenance"
	UnitRetired     UnitStatus = "retired"
)

// IsValid returns true if the unit status is known
func (s UnitStatus) IsValid() bool {
	switch s {
	case UnitAvailable, UnitMaintenance, UnitRetired:
		return true
	}
	return false
}

// AttributeAxis ось атрибутов (например, размер или цвет)
// Позиция оси в срезе Product.BookingAttributeAxes и есть её порядок
type AttributeAxis struct {
	Key   string
	Label string
}

// Tier скидочный порог: начиная с MinDuration единиц тарификации действует DiscountPercent
type Tier struct {
	ID              uuid.UUID
	MinDuration     int
	DiscountPercent decimal.Decimal
}

// Unit represents a single trackable item of a product
type Unit struct {
	ID         uuid.UUID
	ProductID  uuid.UUID
	Identifier string // Уникален в пределах товара
	Status     UnitStatus
	Attributes map[string]string
	Notes      *string
}

// IsAvailable returns true if the unit can be rented
func (u *Unit) IsAvailable() bool {
	return u.Status == UnitAvailable
}

// Product represents a rentable catalog item of a store
type Product struct {
	ID          uuid.UUID
	StoreID     uuid.UUID
	Name        string
	BillingUnit BillingUnit
	BasePrice   decimal.Decimal

	// Quantity при TrackUnits всегда равно количеству доступных единиц
	Quantity   int
	TrackUnits bool

	BookingAttributeAxes []AttributeAxis
	PricingTiers         []Tier
	EnforceStrictTiers   bool
	Units                []Unit

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AvailableUnits returns the number of units with status available
func (p *Product) AvailableUnits() int {
	count := 0
	for i := range p.Units {
		if p.Units[i].IsAvailable() {
			count++
		}
	}
	return count
}

// Stock returns the total rentable stock of the product
func (p *Product) Stock() int {
	if p.TrackUnits {
		return p.AvailableUnits()
	}
	return p.Quantity
}

// DeriveQuantity пересчитывает Quantity по единицам для товаров с учетом единиц
func (p *Product) DeriveQuantity() {
	if p.TrackUnits {
		p.Quantity = p.AvailableUnits()
	}
}

// BookingAxes возвращает оси, по которым делится товар; без учета единиц оси не действуют
func (p *Product) BookingAxes() []AttributeAxis {
	if !p.TrackUnits {
		return nil
	}
	return p.BookingAttributeAxes
}

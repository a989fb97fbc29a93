package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Типы доменных событий
const (
	EventReservationCreated      = "reservation.created"
	EventProductInventoryUpdated = "product.inventory_updated"
)

// Envelope конверт события в топике
type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	Payload      json.RawMessage `json:"payload"`
}

// ReservationItemPayload позиция созданного бронирования
type ReservationItemPayload struct {
	ProductID      *uuid.UUID `json:"product_id,omitempty"`
	Quantity       int        `json:"quantity"`
	CombinationKey string     `json:"combination_key"`
}

// ReservationCreatedPayload данные события reservation.created
type ReservationCreatedPayload struct {
	ReservationID uuid.UUID                `json:"reservation_id"`
	StoreID       uuid.UUID                `json:"store_id"`
	Number        string                   `json:"number"`
	Status        string                   `json:"status"`
	StartDate     time.Time                `json:"start_date"`
	EndDate       time.Time                `json:"end_date"`
	Subtotal      string                   `json:"subtotal"`
	Items         []ReservationItemPayload `json:"items"`
}

// ProductInventoryUpdatedPayload данные события product.inventory_updated
type ProductInventoryUpdatedPayload struct {
	ProductID  uuid.UUID `json:"product_id"`
	StoreID    uuid.UUID `json:"store_id"`
	Quantity   int       `json:"quantity"`
	TrackUnits bool      `json:"track_units"`
	UnitCount  int       `json:"unit_count"`
	TierCount  int       `json:"tier_count"`
}

// NewEnvelope упаковывает payload в конверт
func NewEnvelope(eventType, producer string, payload interface{}, now time.Time) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}

	return Envelope{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		EventVersion: 1,
		OccurredAt:   now.UTC(),
		Producer:     producer,
		Payload:      raw,
	}, nil
}

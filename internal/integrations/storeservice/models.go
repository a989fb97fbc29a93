package storeservice

import "github.com/google/uuid"

// Store модель магазина из StoreService
type Store struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Currency string    `json:"currency"`
	Timezone string    `json:"timezone"`
	IsActive bool      `json:"is_active"`
}

// ErrorResponse модель ошибки от StoreService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

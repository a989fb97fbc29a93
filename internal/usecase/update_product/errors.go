package update_product

import "errors"

var (
	// ErrProductNotFound возвращается, когда товар не найден в магазине
	ErrProductNotFound = errors.New("update_product: product not found")

	// ErrInventoryConflict возвращается, когда изменение инвентаря противоречит активным бронированиям
	// Детали конфликта доступны через errors.As(err, *inventoryguard.ConflictError)
	ErrInventoryConflict = errors.New("update_product: inventory change conflicts with reservations")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_product: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_product: internal error")
)

package quote_reservation

import "errors"

var (
	// ErrStoreNotFound возвращается, когда магазин не найден
	ErrStoreNotFound = errors.New("quote_reservation: store not found")

	// ErrStoreInactive возвращается, когда магазин не принимает бронирования
	ErrStoreInactive = errors.New("quote_reservation: store is inactive")

	// ErrProductNotFound возвращается, когда товар строки не найден в магазине
	ErrProductNotFound = errors.New("quote_reservation: product not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_reservation: internal error")
)

package create_reservation

import "errors"

var (
	// ErrStoreNotFound возвращается, когда магазин не найден
	ErrStoreNotFound = errors.New("create_reservation: store not found")

	// ErrStoreInactive возвращается, когда магазин не принимает бронирования
	ErrStoreInactive = errors.New("create_reservation: store is inactive")

	// ErrProductNotFound возвращается, когда товар строки не найден в магазине
	ErrProductNotFound = errors.New("create_reservation: product not found")

	// ErrQuantityExceedsCapacity возвращается, когда количество строки больше допустимого
	// с учетом остальных строк бронирования
	ErrQuantityExceedsCapacity = errors.New("create_reservation: quantity exceeds capacity")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

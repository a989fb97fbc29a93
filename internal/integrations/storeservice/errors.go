package storeservice

import "errors"

var (
	// ErrStoreNotFound возвращается, когда магазин не найден
	ErrStoreNotFound = errors.New("store not found")

	// ErrStoreInactive возвращается, когда магазин отключен и не принимает бронирования
	ErrStoreInactive = errors.New("store is inactive")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("storeservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("storeservice client: invalid response")
)

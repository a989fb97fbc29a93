package products

import "errors"

var (
	// ErrProductNotFound возвращается, когда товар не найден
	ErrProductNotFound = errors.New("product not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("products service: internal error")
)

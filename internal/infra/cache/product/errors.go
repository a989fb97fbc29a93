package product

import "errors"

var (
	// ErrCacheRead возвращается при ошибке чтения из Redis
	ErrCacheRead = errors.New("product.cache: failed to read")

	// ErrCacheWrite возвращается при ошибке записи в Redis
	ErrCacheWrite = errors.New("product.cache: failed to write")

	// ErrDecode возвращается, если значение в кеше повреждено
	ErrDecode = errors.New("product.cache: failed to decode cached product")
)

package combination

import "errors"

var (
	// ErrUnknownAttribute возвращается, если ключ атрибута не входит в оси товара
	ErrUnknownAttribute = errors.New("combination: unknown attribute key")
)

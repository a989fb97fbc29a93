package capacity

import "errors"

var (
	// ErrQuantityExceedsCapacity возвращается при попытке взять больше, чем доступно для строки
	ErrQuantityExceedsCapacity = errors.New("capacity: quantity exceeds line capacity")

	// ErrInvalidQuantity возвращается для количества меньше 1
	ErrInvalidQuantity = errors.New("capacity: quantity must be at least 1")

	// ErrLineNotFound возвращается, если строки нет в черновике
	ErrLineNotFound = errors.New("capacity: line not found")

	// ErrUnknownProduct возвращается, если строка ссылается на товар, не загруженный в черновик
	ErrUnknownProduct = errors.New("capacity: unknown product")

	// ErrDuplicateLine возвращается при добавлении строки с уже существующим ID
	ErrDuplicateLine = errors.New("capacity: duplicate line id")
)

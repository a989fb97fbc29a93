package quote

import "errors"

var (
	// ErrUnknownProduct возвращается, если строка ссылается на товар, которого нет в наборе
	ErrUnknownProduct = errors.New("quote: unknown product")

	// ErrCustomLineWithoutPrice возвращается для произвольной позиции без ручной цены
	ErrCustomLineWithoutPrice = errors.New("quote: custom line requires a unit price")

	// ErrMissingLineID возвращается для строки без ID
	ErrMissingLineID = errors.New("quote: line id is required")

	// ErrDuplicateLineID возвращается, если две строки черновика имеют одинаковый ID
	ErrDuplicateLineID = errors.New("quote: duplicate line id")
)

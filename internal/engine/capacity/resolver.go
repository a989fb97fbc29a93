package capacity

import (
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/combination"
)

// Mode насколько выбор атрибутов строки определяет комбинацию
type Mode string

const (
	// ModeNone у товара нет осей
	ModeNone Mode = "none"
	// ModePartial заданы не все оси
	ModePartial Mode = "partial"
	// ModeFull заданы все оси, комбинация определена однозначно
	ModeFull Mode = "full"
)

// LineConstraints ограничения количества для строки черновика
type LineConstraints struct {
	LineMaxQuantity   int
	SelectionCapacity int
	SelectionMode     Mode
	CombinationKey    string

	// Unbounded true для произвольных позиций без товара
	Unbounded bool
}

// ModeOf определяет режим выбора по каноническим атрибутам
func ModeOf(axes []domain.AttributeAxis, selected combination.Attributes) Mode {
	if len(axes) == 0 {
		return ModeNone
	}
	for _, axis := range axes {
		if _, ok := selected[axis.Key]; !ok {
			return ModePartial
		}
	}
	return ModeFull
}

// Constraints рассчитывает емкость строки с учетом соседних строк того же товара
// Строки других товаров и сама строка (по ID) в siblings игнорируются
func Constraints(product *domain.Product, line domain.ReservationLine, siblings []domain.ReservationLine) LineConstraints {
	axes := product.BookingAxes()
	selected := combination.Canonicalize(axes, line.SelectedAttributes)
	mode := ModeOf(axes, selected)
	identity := combination.Identify(axes, selected)
	combos := combination.Group(product)

	var (
		siblingTotal int
		pinnedToLine int
		ownSiblings  = productSiblings(product, line, siblings)
	)
	for _, sibling := range ownSiblings {
		siblingTotal += sibling.Quantity

		if mode != ModeFull {
			continue
		}
		siblingSelected := combination.Canonicalize(axes, sibling.SelectedAttributes)
		if ModeOf(axes, siblingSelected) != ModeFull {
			continue
		}
		if combination.Key(axes, siblingSelected) == identity.Key {
			pinnedToLine += sibling.Quantity
		}
	}

	var selectionCapacity int
	switch mode {
	case ModeFull:
		for i := range combos {
			if combos[i].Key == identity.Key {
				selectionCapacity = combos[i].Available
				break
			}
		}
		selectionCapacity -= pinnedToLine
	default:
		for i := range combos {
			if combos[i].Matches(selected) {
				selectionCapacity += combos[i].Available
			}
		}
		selectionCapacity -= siblingTotal
	}

	productRemaining := product.Stock() - siblingTotal

	return LineConstraints{
		LineMaxQuantity:   max(0, min(productRemaining, selectionCapacity)),
		SelectionCapacity: max(0, selectionCapacity),
		SelectionMode:     mode,
		CombinationKey:    identity.Key,
	}
}

func productSiblings(product *domain.Product, line domain.ReservationLine, siblings []domain.ReservationLine) []domain.ReservationLine {
	result := make([]domain.ReservationLine, 0, len(siblings))
	for _, sibling := range siblings {
		if sibling.ProductID == nil || *sibling.ProductID != product.ID {
			continue
		}
		if line.ID != "" && sibling.ID == line.ID {
			continue
		}
		result = append(result, sibling)
	}
	return result
}

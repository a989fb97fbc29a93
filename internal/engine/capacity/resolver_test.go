package capacity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/combination"
)

var sizeAxis = []domain.AttributeAxis{{Key: "size", Label: "Size"}}

var sizeColorAxes = []domain.AttributeAxis{
	{Key: "size", Label: "Size"},
	{Key: "color", Label: "Color"},
}

func untrackedProduct(quantity int) *domain.Product {
	return &domain.Product{ID: uuid.New(), Quantity: quantity}
}

// trackedProduct создает товар с доступными единицами по указанным атрибутам
func trackedProduct(axes []domain.AttributeAxis, units ...map[string]string) *domain.Product {
	p := &domain.Product{ID: uuid.New(), TrackUnits: true, BookingAttributeAxes: axes}
	for _, attrs := range units {
		p.Units = append(p.Units, domain.Unit{ID: uuid.New(), Status: domain.UnitAvailable, Attributes: attrs})
	}
	p.DeriveQuantity()
	return p
}

func line(id string, product *domain.Product, quantity int, attrs map[string]string) domain.ReservationLine {
	productID := product.ID
	return domain.ReservationLine{ID: id, ProductID: &productID, Quantity: quantity, SelectedAttributes: attrs}
}

func TestModeOf(t *testing.T) {
	assert.Equal(t, ModeNone, ModeOf(nil, combination.Attributes{"size": "M"}))
	assert.Equal(t, ModePartial, ModeOf(sizeColorAxes, combination.Attributes{"size": "M"}))
	assert.Equal(t, ModePartial, ModeOf(sizeColorAxes, nil))
	assert.Equal(t, ModeFull, ModeOf(sizeColorAxes, combination.Attributes{"size": "M", "color": "red"}))
}

func TestConstraints_CapacityConservation(t *testing.T) {
	product := untrackedProduct(5)

	first := Constraints(product, line("a", product, 1, nil), nil)
	assert.Equal(t, 5, first.LineMaxQuantity)
	assert.Equal(t, ModeNone, first.SelectionMode)
	assert.Equal(t, combination.DefaultKey, first.CombinationKey)

	second := Constraints(product, line("b", product, 1, nil), []domain.ReservationLine{line("a", product, 2, nil)})
	assert.Equal(t, 3, second.LineMaxQuantity)
}

func TestConstraints_FullSelectionExactness(t *testing.T) {
	product := trackedProduct(sizeAxis,
		map[string]string{"size": "S"},
		map[string]string{"size": "S"},
		map[string]string{"size": "M"},
	)

	first := Constraints(product, line("a", product, 1, map[string]string{"size": "M"}), nil)
	assert.Equal(t, ModeFull, first.SelectionMode)
	assert.Equal(t, 1, first.SelectionCapacity)
	assert.Equal(t, 1, first.LineMaxQuantity)
	assert.Equal(t, "size=M", first.CombinationKey)

	siblings := []domain.ReservationLine{line("a", product, 1, map[string]string{"size": "M"})}
	second := Constraints(product, line("b", product, 1, map[string]string{"size": "M"}), siblings)
	assert.Equal(t, 0, second.SelectionCapacity)
	assert.Equal(t, 0, second.LineMaxQuantity)

	small := Constraints(product, line("c", product, 1, map[string]string{"size": "S"}), siblings)
	assert.Equal(t, 2, small.LineMaxQuantity)
}

func TestConstraints_PartialSelection(t *testing.T) {
	product := trackedProduct(sizeColorAxes,
		map[string]string{"size": "M", "color": "red"},
		map[string]string{"size": "M", "color": "blue"},
		map[string]string{"size": "M", "color": "blue"},
		map[string]string{"size": "L", "color": "red"},
	)

	partial := Constraints(product, line("a", product, 1, map[string]string{"size": "M"}), nil)
	assert.Equal(t, ModePartial, partial.SelectionMode)
	assert.Equal(t, 3, partial.SelectionCapacity)
	assert.Equal(t, 3, partial.LineMaxQuantity)

	// частичный выбор вычитает все соседние строки товара
	siblings := []domain.ReservationLine{line("b", product, 1, map[string]string{"size": "L", "color": "red"})}
	partial = Constraints(product, line("a", product, 1, map[string]string{"size": "M"}), siblings)
	assert.Equal(t, 2, partial.SelectionCapacity)
	assert.Equal(t, 2, partial.LineMaxQuantity)
}

func TestConstraints_FullIgnoresPartialSiblingsButProductCapApplies(t *testing.T) {
	product := trackedProduct(sizeAxis,
		map[string]string{"size": "S"},
		map[string]string{"size": "M"},
		map[string]string{"size": "M"},
	)

	siblings := []domain.ReservationLine{line("p", product, 2, nil)}
	full := Constraints(product, line("f", product, 1, map[string]string{"size": "M"}), siblings)

	assert.Equal(t, 2, full.SelectionCapacity)
	assert.Equal(t, 1, full.LineMaxQuantity)
}

func TestConstraints_IgnoresOtherProductsAndSelf(t *testing.T) {
	product := untrackedProduct(4)
	other := untrackedProduct(10)

	siblings := []domain.ReservationLine{
		line("a", product, 3, nil),
		line("x", other, 5, nil),
		{ID: "custom", CustomName: "Delivery", Quantity: 1},
	}

	c := Constraints(product, line("a", product, 3, nil), siblings)
	assert.Equal(t, 4, c.LineMaxQuantity)
}

func TestConstraints_NeverNegative(t *testing.T) {
	product := untrackedProduct(2)
	siblings := []domain.ReservationLine{line("a", product, 5, nil)}

	c := Constraints(product, line("b", product, 1, nil), siblings)
	assert.Equal(t, 0, c.LineMaxQuantity)
	assert.Equal(t, 0, c.SelectionCapacity)
}

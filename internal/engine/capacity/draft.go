package capacity

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/engine/combination"
)

// SelectionOutcome результат смены выбора атрибутов строки
type SelectionOutcome struct {
	Clamped     bool
	Dropped     bool
	Constraints LineConstraints
}

// Draft черновик бронирования: строки хранятся по стабильному ID,
// срезы по товару вычисляются при каждом обращении.
// Не потокобезопасен.
type Draft struct {
	products map[uuid.UUID]*domain.Product
	lines    map[string]*domain.ReservationLine
	order    []string
}

// NewDraft создает черновик для набора товаров
func NewDraft(products ...*domain.Product) *Draft {
	d := &Draft{
		products: make(map[uuid.UUID]*domain.Product, len(products)),
		lines:    make(map[string]*domain.ReservationLine),
	}
	for _, p := range products {
		d.products[p.ID] = p
	}
	return d
}

// AddLine добавляет строку; пустой ID заменяется сгенерированным
func (d *Draft) AddLine(line domain.ReservationLine) (domain.ReservationLine, error) {
	if line.ID == "" {
		line.ID = uuid.NewString()
	}
	if _, ok := d.lines[line.ID]; ok {
		return domain.ReservationLine{}, fmt.Errorf("%w: %s", ErrDuplicateLine, line.ID)
	}
	if line.Quantity < 1 {
		return domain.ReservationLine{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, line.Quantity)
	}

	stored := cloneLine(line)
	if !line.IsCustom() {
		product, err := d.product(line)
		if err != nil {
			return domain.ReservationLine{}, err
		}
		if err := combination.ValidateAttributes(product.BookingAxes(), line.SelectedAttributes); err != nil {
			return domain.ReservationLine{}, err
		}
		stored.SelectedAttributes = combination.Canonicalize(product.BookingAxes(), line.SelectedAttributes)

		constraints := Constraints(product, stored, d.productLines(product.ID, stored.ID))
		if stored.Quantity > constraints.LineMaxQuantity {
			return domain.ReservationLine{}, fmt.Errorf("%w: requested %d, max %d", ErrQuantityExceedsCapacity, stored.Quantity, constraints.LineMaxQuantity)
		}
	}

	d.lines[stored.ID] = &stored
	d.order = append(d.order, stored.ID)
	return cloneLine(stored), nil
}

// SetQuantity меняет количество строки; увеличение сверх LineMaxQuantity отклоняется
func (d *Draft) SetQuantity(lineID string, quantity int) error {
	line, ok := d.lines[lineID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrLineNotFound, lineID)
	}
	if quantity < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}

	if quantity > line.Quantity && !line.IsCustom() {
		constraints, err := d.Constraints(lineID)
		if err != nil {
			return err
		}
		if quantity > constraints.LineMaxQuantity {
			return fmt.Errorf("%w: requested %d, max %d", ErrQuantityExceedsCapacity, quantity, constraints.LineMaxQuantity)
		}
	}

	line.Quantity = quantity
	return nil
}

// ChangeSelection меняет выбор атрибутов и пересчитывает емкость:
// количество урезается до новой емкости, при нулевой емкости строка удаляется
func (d *Draft) ChangeSelection(lineID string, selected map[string]string) (SelectionOutcome, error) {
	line, ok := d.lines[lineID]
	if !ok {
		return SelectionOutcome{}, fmt.Errorf("%w: %s", ErrLineNotFound, lineID)
	}
	if line.IsCustom() {
		return SelectionOutcome{Constraints: LineConstraints{Unbounded: true}}, nil
	}

	product, err := d.product(*line)
	if err != nil {
		return SelectionOutcome{}, err
	}
	axes := product.BookingAxes()
	if err := combination.ValidateAttributes(axes, selected); err != nil {
		return SelectionOutcome{}, err
	}

	line.SelectedAttributes = combination.Canonicalize(axes, selected)
	constraints := Constraints(product, *line, d.productLines(product.ID, line.ID))

	outcome := SelectionOutcome{Constraints: constraints}
	switch {
	case constraints.LineMaxQuantity == 0:
		d.remove(lineID)
		outcome.Dropped = true
	case line.Quantity > constraints.LineMaxQuantity:
		line.Quantity = constraints.LineMaxQuantity
		outcome.Clamped = true
	}

	return outcome, nil
}

// RemoveLine удаляет строку из черновика
func (d *Draft) RemoveLine(lineID string) error {
	if _, ok := d.lines[lineID]; !ok {
		return fmt.Errorf("%w: %s", ErrLineNotFound, lineID)
	}
	d.remove(lineID)
	return nil
}

// Line возвращает копию строки
func (d *Draft) Line(lineID string) (domain.ReservationLine, bool) {
	line, ok := d.lines[lineID]
	if !ok {
		return domain.ReservationLine{}, false
	}
	return cloneLine(*line), true
}

// Lines возвращает копии строк в порядке добавления
func (d *Draft) Lines() []domain.ReservationLine {
	result := make([]domain.ReservationLine, 0, len(d.order))
	for _, id := range d.order {
		result = append(result, cloneLine(*d.lines[id]))
	}
	return result
}

// Constraints рассчитывает ограничения строки по текущему состоянию черновика
func (d *Draft) Constraints(lineID string) (LineConstraints, error) {
	line, ok := d.lines[lineID]
	if !ok {
		return LineConstraints{}, fmt.Errorf("%w: %s", ErrLineNotFound, lineID)
	}
	if line.IsCustom() {
		return LineConstraints{Unbounded: true}, nil
	}

	product, err := d.product(*line)
	if err != nil {
		return LineConstraints{}, err
	}
	return Constraints(product, *line, d.productLines(product.ID, line.ID)), nil
}

func (d *Draft) product(line domain.ReservationLine) (*domain.Product, error) {
	product, ok := d.products[*line.ProductID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, line.ProductID.String())
	}
	return product, nil
}

// productLines строки товара, кроме exceptID
func (d *Draft) productLines(productID uuid.UUID, exceptID string) []domain.ReservationLine {
	var result []domain.ReservationLine
	for _, id := range d.order {
		line := d.lines[id]
		if id == exceptID || line.ProductID == nil || *line.ProductID != productID {
			continue
		}
		result = append(result, *line)
	}
	return result
}

func (d *Draft) remove(lineID string) {
	delete(d.lines, lineID)
	for i, id := range d.order {
		if id == lineID {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

func cloneLine(line domain.ReservationLine) domain.ReservationLine {
	if line.SelectedAttributes != nil {
		attrs := make(map[string]string, len(line.SelectedAttributes))
		for k, v := range line.SelectedAttributes {
			attrs[k] = v
		}
		line.SelectedAttributes = attrs
	}
	if line.ProductID != nil {
		id := *line.ProductID
		line.ProductID = &id
	}
	if line.PriceOverride != nil {
		override := *line.PriceOverride
		line.PriceOverride = &override
	}
	return line
}

package combination

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// Combination группа единиц товара с одинаковым набором атрибутов
type Combination struct {
	Identity
	Attributes Attributes
	Available  int
}

// Matches returns true if every value of the partial selection equals the combination value
func (c *Combination) Matches(partial Attributes) bool {
	for key, value := range partial {
		if c.Attributes[key] != value {
			return false
		}
	}
	return true
}

// Group группирует доступные единицы товара по комбинациям
// Товар без учета единиц представлен одной комбинацией по умолчанию с емкостью Quantity
func Group(product *domain.Product) []Combination {
	if !product.TrackUnits {
		return []Combination{{
			Identity:   Identity{Key: DefaultKey},
			Attributes: Attributes{},
			Available:  product.Quantity,
		}}
	}

	return GroupUnits(product.BookingAttributeAxes, product.Units)
}

// GroupUnits группирует доступные единицы по комбинациям заданных осей
func GroupUnits(axes []domain.AttributeAxis, units []domain.Unit) []Combination {
	index := make(map[string]int)
	var combos []Combination

	for i := range units {
		unit := &units[i]
		if !unit.IsAvailable() {
			continue
		}

		attrs := Canonicalize(axes, unit.Attributes)
		identity := Identify(axes, attrs)

		if pos, ok := index[identity.Key]; ok {
			combos[pos].Available++
			continue
		}

		index[identity.Key] = len(combos)
		combos = append(combos, Combination{
			Identity:   identity,
			Attributes: attrs,
			Available:  1,
		})
	}

	return combos
}

// AvailableMatching суммирует доступные единицы комбинаций, подходящих под частичный выбор
func AvailableMatching(combos []Combination, partial Attributes) int {
	total := 0
	for i := range combos {
		if combos[i].Matches(partial) {
			total += combos[i].Available
		}
	}
	return total
}

// SortForDisplay упорядочивает комбинации по значениям осей с учетом правил сравнения строк
// Оси без значения идут после заданных, при равенстве сравниваются ключи
func SortForDisplay(combos []Combination) {
	collator := collate.New(language.Und, collate.Loose)

	sort.SliceStable(combos, func(i, j int) bool {
		a, b := combos[i].Slots, combos[j].Slots
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k].Set != b[k].Set {
				return a[k].Set
			}
			if !a[k].Set {
				continue
			}
			if cmp := collator.CompareString(a[k].Value, b[k].Value); cmp != 0 {
				return cmp < 0
			}
		}
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return combos[i].Key < combos[j].Key
	})
}

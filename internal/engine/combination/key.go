package combination

import (
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

const (
	// UnsetSentinel значение в ключе для оси без выбранного значения
	UnsetSentinel = "__unset__"

	// DefaultKey ключ единственной комбинации товара без осей
	DefaultKey = "__default__"

	pairDelimiter  = "|"
	valueDelimiter = "="
)

// Attributes канонический набор атрибутов: только известные оси с непустыми значениями
type Attributes map[string]string

// Slot позиция оси в ключе комбинации
type Slot struct {
	AxisKey string
	Value   string
	Set     bool
}

// Identity структурированное представление ключа комбинации
type Identity struct {
	Key   string
	Slots []Slot
}

// Canonicalize оставляет значения известных осей, обрезая пробелы и отбрасывая пустые
func Canonicalize(axes []domain.AttributeAxis, raw map[string]string) Attributes {
	attrs := make(Attributes, len(axes))
	for _, axis := range axes {
		value, ok := raw[axis.Key]
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		attrs[axis.Key] = value
	}
	return attrs
}

// ValidateAttributes отклоняет ключи, которых нет среди осей товара
func ValidateAttributes(axes []domain.AttributeAxis, raw map[string]string) error {
	known := make(map[string]struct{}, len(axes))
	for _, axis := range axes {
		known[axis.Key] = struct{}{}
	}

	var unknown []string
	for key := range raw {
		if _, ok := known[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}

	sort.Strings(unknown)
	return fmt.Errorf("%w: %s", ErrUnknownAttribute, strings.Join(unknown, ", "))
}

// Identify строит ключ комбинации и его слоты по всем осям в порядке их позиций
func Identify(axes []domain.AttributeAxis, attrs map[string]string) Identity {
	if len(axes) == 0 {
		return Identity{Key: DefaultKey}
	}

	canonical := Canonicalize(axes, attrs)
	slots := make([]Slot, 0, len(axes))
	pairs := make([]string, 0, len(axes))

	for _, axis := range axes {
		value, ok := canonical[axis.Key]
		slots = append(slots, Slot{AxisKey: axis.Key, Value: value, Set: ok})

		if !ok {
			value = UnsetSentinel
		}
		pairs = append(pairs, axis.Key+valueDelimiter+value)
	}

	return Identity{
		Key:   strings.Join(pairs, pairDelimiter),
		Slots: slots,
	}
}

// Key возвращает строковый ключ комбинации
func Key(axes []domain.AttributeAxis, attrs map[string]string) string {
	return Identify(axes, attrs).Key
}

// NormalizeKey подставляет ключ по умолчанию для пустого сохраненного ключа
func NormalizeKey(key string) string {
	if key == "" {
		return DefaultKey
	}
	return key
}

// ParseKey восстанавливает выбранные значения осей из сохраненного ключа.
// Оси со значением UnsetSentinel пропускаются, ключ по умолчанию дает пустой набор.
func ParseKey(key string) Attributes {
	attrs := Attributes{}
	key = NormalizeKey(key)
	if key == DefaultKey {
		return attrs
	}

	for _, pair := range strings.Split(key, pairDelimiter) {
		axis, value, ok := strings.Cut(pair, valueDelimiter)
		if !ok || value == UnsetSentinel {
			continue
		}
		attrs[axis] = value
	}
	return attrs
}

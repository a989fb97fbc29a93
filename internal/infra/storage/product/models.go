package product

import (
	"encoding/json"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// axisJSON представление оси в колонке products.booking_attribute_axes
type axisJSON struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

func encodeAxes(axes []domain.AttributeAxis) ([]byte, error) {
	rows := make([]axisJSON, 0, len(axes))
	for _, axis := range axes {
		rows = append(rows, axisJSON{Key: axis.Key, Label: axis.Label})
	}
	return json.Marshal(rows)
}

func decodeAxes(raw []byte) ([]domain.AttributeAxis, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var rows []axisJSON
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}

	axes := make([]domain.AttributeAxis, 0, len(rows))
	for _, row := range rows {
		axes = append(axes, domain.AttributeAxis{Key: row.Key, Label: row.Label})
	}
	return axes, nil
}

func encodeAttributes(attrs map[string]string) ([]byte, error) {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return json.Marshal(attrs)
}

func decodeAttributes(raw []byte) (map[string]string, error) {
	attrs := map[string]string{}
	if len(raw) == 0 {
		return attrs, nil
	}
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}

package units

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Quantity is a value tagged with the unit expression it was recorded in.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Q builds a quantity; handy in tests and fixtures.
func Q(v float64, unit string) *Quantity {
	return &Quantity{Value: v, Unit: unit}
}

// In returns the value expressed in the target unit.
func (q Quantity) In(to Unit) (float64, error) {
	from, err := Parse(q.Unit)
	if err != nil {
		return 0, err
	}
	return Convert(q.Value, from, to)
}

func (q Quantity) String() string {
	if q.Unit == "" {
		return strconv.FormatFloat(q.Value, 'g', -1, 64)
	}
	return strconv.FormatFloat(q.Value, 'g', -1, 64) + " " + q.Unit
}

// UnmarshalJSON accepts {"value": 5, "unit": "MSun"}, "5 MSun" or a bare
// number, which is read as dimensionless.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty quantity")
	}
	switch data[0] {
	case '{':
		type plain Quantity
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		*q = Quantity(p)
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseQuantity(s)
		if err != nil {
			return err
		}
		*q = parsed
		return nil
	default:
		v, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("quantity: %w", err)
		}
		*q = Quantity{Value: v}
		return nil
	}
}

// ParseQuantity reads the "<value> <unit>" form, e.g. "1.5 MSun" or
// "2e-8 MSun / yr".
func ParseQuantity(s string) (Quantity, error) {
	s = strings.TrimSpace(s)
	num, unit, _ := strings.Cut(s, " ")
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Quantity{}, fmt.Errorf("quantity %q: %w", s, err)
	}
	unit = strings.TrimSpace(unit)
	if _, err := Parse(unit); err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: v, Unit: unit}, nil
}

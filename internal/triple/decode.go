package triple

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Flag is a boolean attribute. The history writes these either as JSON
// booleans or as 0/1 numbers.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	switch s := string(bytes.TrimSpace(data)); s {
	case "true":
		*f = true
	case "false":
		*f = false
	default:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("flag: cannot parse %s", s)
		}
		*f = v != 0
	}
	return nil
}

// Int returns 1 for true and 0 for false.
func (f Flag) Int() int64 {
	if f {
		return 1
	}
	return 0
}

// Code is an integer attribute; integral floats such as 3.0 are accepted,
// and booleans decode to 1 and 0.
type Code int64

func (c *Code) UnmarshalJSON(data []byte) error {
	s := string(bytes.TrimSpace(data))
	switch s {
	case "true":
		*c = 1
		return nil
	case "false":
		*c = 0
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*c = Code(n)
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("code: cannot parse %s", s)
	}
	if v != math.Trunc(v) || math.IsInf(v, 0) {
		return fmt.Errorf("code: %s is not an integer", s)
	}
	*c = Code(v)
	return nil
}

// UnmarshalJSON decodes a snapshot together with its two children.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	type plain Snapshot
	aux := struct {
		*plain
		Child1 json.RawMessage `json:"child1"`
		Child2 json.RawMessage `json:"child2"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	if s.Child1, err = decodeNode(aux.Child1); err != nil {
		return fmt.Errorf("child1: %w", err)
	}
	if s.Child2, err = decodeNode(aux.Child2); err != nil {
		return fmt.Errorf("child2: %w", err)
	}
	return nil
}

// UnmarshalJSON decodes a binary together with its two children.
func (b *Binary) UnmarshalJSON(data []byte) error {
	type plain Binary
	aux := struct {
		*plain
		Child1 json.RawMessage `json:"child1"`
		Child2 json.RawMessage `json:"child2"`
	}{plain: (*plain)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	if b.Child1, err = decodeNode(aux.Child1); err != nil {
		return fmt.Errorf("child1: %w", err)
	}
	if b.Child2, err = decodeNode(aux.Child2); err != nil {
		return fmt.Errorf("child2: %w", err)
	}
	return nil
}

// decodeNode picks Star or Binary from the is_star attribute, falling back
// to the presence of children. Absent children decode to a nil Node.
func decodeNode(raw json.RawMessage) (Node, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var head struct {
		IsStar *Flag           `json:"is_star"`
		Child1 json.RawMessage `json:"child1"`
		Child2 json.RawMessage `json:"child2"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	isStar := head.Child1 == nil && head.Child2 == nil
	if head.IsStar != nil {
		isStar = bool(*head.IsStar)
	}
	if isStar {
		var st Star
		if err := json.Unmarshal(raw, &st); err != nil {
			return nil, err
		}
		return &st, nil
	}
	var b Binary
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

package rdc

import (
	"math"

	"github.com/keboola/go-utils/pkg/orderedmap"
)

// Record is one flattened snapshot. Field order is insertion order; setting
// an existing field replaces its value and keeps its position.
type Record struct {
	fields *orderedmap.OrderedMap
}

func newRecord() Record {
	return Record{fields: orderedmap.New()}
}

// Keys returns the field names in column order.
func (r Record) Keys() []string {
	if r.fields == nil {
		return nil
	}
	return r.fields.Keys()
}

// Get returns a field value: int64 or float64.
func (r Record) Get(name string) (any, bool) {
	if r.fields == nil {
		return nil, false
	}
	return r.fields.Get(name)
}

// Float returns a numeric field as float64.
func (r Record) Float(name string) (float64, bool) {
	v, ok := r.Get(name)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.Keys())
}

// MarshalJSON encodes the record as an object with keys in column order.
// Non-finite floats become null.
func (r Record) MarshalJSON() ([]byte, error) {
	out := orderedmap.New()
	for _, k := range r.Keys() {
		v, _ := r.Get(k)
		if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			v = nil
		}
		out.Set(k, v)
	}
	return out.MarshalJSON()
}

func (r Record) set(name string, v any) {
	r.fields.Set(name, v)
}

// Table is the reduced history: records in history order, with the columns
// every record carries.
type Table struct {
	Columns []string
	Records []Record
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.Records)
}

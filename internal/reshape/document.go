package reshape

import (
	"bytes"
	"encoding/json"
)

// Value is one slot of a Document. It is a closed union of
// String, Float, List and *Document; no other type implements it.
type Value interface {
	isValue()
}

// String is a scalar tag or attribute value
type String string

// Float is a parsed coordinate
type Float float64

// List is an ordered sequence of values, produced for structural
// children (coordinates, node_refs, members) and for tag collisions
type List []Value

func (String) isValue()    {}
func (Float) isValue()     {}
func (List) isValue()      {}
func (*Document) isValue() {}

// Document is a string-keyed mapping that remembers insertion order.
// Overwriting an existing key keeps its original position.
type Document struct {
	keys   []string
	values map[string]Value
}

// NewDocument returns an empty document
func NewDocument() *Document {
	return &Document{values: make(map[string]Value)}
}

// Get returns the value stored under key
func (d *Document) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Set stores v under key
func (d *Document) Set(key string, v Value) {
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

// Keys returns the keys in insertion order
func (d *Document) Keys() []string {
	keys := make([]string, len(d.keys))
	copy(keys, d.keys)
	return keys
}

// Len returns the number of keys
func (d *Document) Len() int {
	return len(d.keys)
}

// Map converts the document into plain Go values: string, float64,
// []interface{} and map[string]interface{}
func (d *Document) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(d.keys))
	for _, k := range d.keys {
		m[k] = Plain(d.values[k])
	}
	return m
}

// Plain converts a single Value into plain Go values
func Plain(v Value) interface{} {
	switch t := v.(type) {
	case String:
		return string(t)
	case Float:
		return float64(t)
	case List:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = Plain(item)
		}
		return out
	case *Document:
		return t.Map()
	}
	return nil
}

// MarshalJSON writes the keys in insertion order
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(d.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

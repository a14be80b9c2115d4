// Package value models the heterogeneous values found in configuration
// profiles and schema defaults: booleans, numbers, strings, dates, data,
// arrays and dictionaries. A Value can be built from a YAML node or from
// the Go values produced by a property list decoder, and two Values can be
// compared with Equal regardless of which source they came from.
package value

import (
	"bytes"
	"time"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Integer
	Real
	String
	Date
	Data
	Array
	Dict
)

var kindNames = map[Kind]string{
	Null:    "null",
	Bool:    "bool",
	Integer: "integer",
	Real:    "real",
	String:  "string",
	Date:    "date",
	Data:    "data",
	Array:   "array",
	Dict:    "dict",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Value is a tagged union over the supported variants. The zero Value is Null.
type Value struct {
	kind  Kind
	b     bool
	i     int64
	f     float64
	s     string
	t     time.Time
	data  []byte
	items []Value
	keys  []string
	dict  map[string]Value
}

// Pair is one entry of a dictionary Value.
type Pair struct {
	Key   string
	Value Value
}

func NullValue() Value                { return Value{} }
func BoolValue(b bool) Value          { return Value{kind: Bool, b: b} }
func IntValue(i int64) Value          { return Value{kind: Integer, i: i} }
func RealValue(f float64) Value       { return Value{kind: Real, f: f} }
func StringValue(s string) Value      { return Value{kind: String, s: s} }
func DateValue(t time.Time) Value     { return Value{kind: Date, t: t} }
func DataValue(data []byte) Value     { return Value{kind: Data, data: data} }
func ArrayValue(items ...Value) Value { return Value{kind: Array, items: items} }

// DictValue builds a dictionary that remembers insertion order. A repeated
// key keeps its first position and takes the last value.
func DictValue(pairs ...Pair) Value {
	v := Value{kind: Dict, dict: make(map[string]Value, len(pairs))}
	for _, p := range pairs {
		if _, seen := v.dict[p.Key]; !seen {
			v.keys = append(v.keys, p.Key)
		}
		v.dict[p.Key] = p.Value
	}
	return v
}

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsNull() bool    { return v.kind == Null }
func (v Value) Bool() bool      { return v.b }
func (v Value) Int() int64      { return v.i }
func (v Value) Float() float64  { return v.f }
func (v Value) Str() string     { return v.s }
func (v Value) Time() time.Time { return v.t }
func (v Value) Bytes() []byte   { return v.data }
func (v Value) Items() []Value  { return v.items }
func (v Value) Keys() []string  { return v.keys }

// Len returns the number of elements of an array or dictionary, zero otherwise.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.items)
	case Dict:
		return len(v.keys)
	}
	return 0
}

// Get looks up a dictionary entry.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Dict {
		return Value{}, false
	}
	e, ok := v.dict[key]
	return e, ok
}

// Equal reports whether a and b hold the same value. Integers and reals
// compare numerically; booleans never equal numbers. Dictionary comparison
// ignores key order.
func Equal(a, b Value) bool {
	if a.isNumber() && b.isNumber() {
		if a.kind == Integer && b.kind == Integer {
			return a.i == b.i
		}
		return a.number() == b.number()
	}
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case Null:
		return true
	case Bool:
		return a.b == b.b
	case String:
		return a.s == b.s
	case Date:
		return a.t.Equal(b.t)
	case Data:
		return bytes.Equal(a.data, b.data)
	case Array:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case Dict:
		if len(a.keys) != len(b.keys) {
			return false
		}
		for _, k := range a.keys {
			other, ok := b.dict[k]
			if !ok || !Equal(a.dict[k], other) {
				return false
			}
		}
		return true
	}
	return false
}

func (v Value) isNumber() bool {
	return v.kind == Integer || v.kind == Real
}

func (v Value) number() float64 {
	if v.kind == Integer {
		return float64(v.i)
	}
	return v.f
}

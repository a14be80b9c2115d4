package value

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

// FromNative converts a Go value as produced by howett.net/plist (or any
// similar generic decoder) into a Value. Dictionary keys are ordered
// lexically since Go maps carry no order.
func FromNative(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return x, nil
	case bool:
		return BoolValue(x), nil
	case int:
		return IntValue(int64(x)), nil
	case int8:
		return IntValue(int64(x)), nil
	case int16:
		return IntValue(int64(x)), nil
	case int32:
		return IntValue(int64(x)), nil
	case int64:
		return IntValue(x), nil
	case uint:
		return fromUnsigned(uint64(x)), nil
	case uint8:
		return IntValue(int64(x)), nil
	case uint16:
		return IntValue(int64(x)), nil
	case uint32:
		return IntValue(int64(x)), nil
	case uint64:
		return fromUnsigned(x), nil
	case float32:
		return RealValue(float64(x)), nil
	case float64:
		return RealValue(x), nil
	case string:
		return StringValue(x), nil
	case time.Time:
		return DateValue(x), nil
	case []byte:
		return DataValue(x), nil
	case []any:
		items := make([]Value, 0, len(x))
		for i, e := range x {
			item, err := FromNative(e)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, item)
		}
		return ArrayValue(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]Pair, 0, len(keys))
		for _, k := range keys {
			item, err := FromNative(x[k])
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			pairs = append(pairs, Pair{Key: k, Value: item})
		}
		return DictValue(pairs...), nil
	}
	return Value{}, fmt.Errorf("unsupported value type %T", v)
}

// uint64 values above math.MaxInt64 only fit a real.
func fromUnsigned(u uint64) Value {
	if u > math.MaxInt64 {
		return RealValue(float64(u))
	}
	return IntValue(int64(u))
}

// Native converts v back into plain Go values suitable for plist encoding.
func (v Value) Native() any {
	switch v.kind {
	case Bool:
		return v.b
	case Integer:
		return v.i
	case Real:
		return v.f
	case String:
		return v.s
	case Date:
		return v.t
	case Data:
		return v.data
	case Array:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Native()
		}
		return out
	case Dict:
		out := make(map[string]any, len(v.keys))
		for _, k := range v.keys {
			out[k] = v.dict[k].Native()
		}
		return out
	}
	return nil
}

// FromYAML converts a parsed YAML node into a Value, keeping mapping order.
func FromYAML(node *yaml.Node) (Value, error) {
	if node == nil {
		return NullValue(), nil
	}

	switch node.Kind {
	case 0:
		return NullValue(), nil
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return NullValue(), nil
		}
		return FromYAML(node.Content[0])
	case yaml.AliasNode:
		return FromYAML(node.Alias)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for i, child := range node.Content {
			item, err := FromYAML(child)
			if err != nil {
				return Value{}, fmt.Errorf("line %d: index %d: %w", node.Line, i, err)
			}
			items = append(items, item)
		}
		return ArrayValue(items...), nil
	case yaml.MappingNode:
		pairs := make([]Pair, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			item, err := FromYAML(node.Content[i+1])
			if err != nil {
				return Value{}, fmt.Errorf("line %d: key %q: %w", node.Line, node.Content[i].Value, err)
			}
			pairs = append(pairs, Pair{Key: node.Content[i].Value, Value: item})
		}
		return DictValue(pairs...), nil
	case yaml.ScalarNode:
		return scalarFromYAML(node)
	}
	return Value{}, fmt.Errorf("line %d: unsupported yaml node kind %d", node.Line, node.Kind)
}

func scalarFromYAML(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return NullValue(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return Value{}, err
		}
		return BoolValue(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err == nil {
			return IntValue(i), nil
		}
		var u uint64
		if err := node.Decode(&u); err != nil {
			return Value{}, err
		}
		return fromUnsigned(u), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return Value{}, err
		}
		return RealValue(f), nil
	case "!!timestamp":
		var t time.Time
		if err := node.Decode(&t); err != nil {
			return StringValue(node.Value), nil
		}
		return DateValue(t), nil
	case "!!binary":
		var data []byte
		if err := node.Decode(&data); err != nil {
			return Value{}, err
		}
		return DataValue(data), nil
	}
	return StringValue(node.Value), nil
}

package schema

import (
	"github.com/pkg/errors"

	"github.com/jcewire/jce/wire"
)

// ErrMissingField means an encode input lacked a value for a required
// field (spec §7 MissingField).
var ErrMissingField = errors.New("jce/schema: missing required field")

// ErrTypeMismatch means a declared type and a supplied or decoded value
// disagree and cannot be coerced (spec §7 TypeMismatch).
var ErrTypeMismatch = errors.New("jce/schema: type mismatch")

// ErrUnknownType means value coercion could not guess a wire kind for an
// untyped host value (spec §7 UnknownType).
var ErrUnknownType = errors.New("jce/schema: unknown host type")

func mismatch(f Field, v any) error {
	return errors.Wrapf(ErrTypeMismatch, "field %q (id %d, kind %s): got %T", f.Name, f.ID, f.Kind, v)
}

func missing(f Field) error {
	return errors.Wrapf(ErrMissingField, "field %q (id %d)", f.Name, f.ID)
}

// toWireValue converts a host-supplied value v into the wire.Value to
// encode for a field declared with kind. If v already implements
// wire.Value it is returned unchanged - spec §4.4's "if the value is
// already a tagged-wire instance, defer to that instance's own to_bytes".
func toWireValue(kind Kind, v any, nested *Schema) (wire.Value, error) {
	if wv, ok := v.(wire.Value); ok {
		return wv, nil
	}
	switch kind {
	case KindByte:
		switch b := v.(type) {
		case byte:
			return wire.ByteValue(b), nil
		case int:
			return wire.ByteValue(byte(b)), nil
		}
	case KindBool:
		if b, ok := v.(bool); ok {
			return wire.BoolValue(b), nil
		}
	case KindInt:
		if n, ok := toInt64(v); ok {
			return wire.IntValue(n), nil
		}
	case KindFloat32:
		if f, ok := toFloat64(v); ok {
			return wire.Float32Value(float32(f)), nil
		}
	case KindFloat64:
		if f, ok := toFloat64(v); ok {
			return wire.Float64Value(f), nil
		}
	case KindString:
		if s, ok := v.(string); ok {
			return wire.StringValue(s), nil
		}
	case KindBytes:
		if b, ok := v.([]byte); ok {
			return wire.BytesValue(b), nil
		}
	case KindMap:
		return toWireMap(v)
	case KindList:
		return toWireList(v)
	case KindStruct:
		inst, ok := asInstance(v)
		if !ok || nested == nil {
			break
		}
		bag, err := buildBag(nested, inst)
		if err != nil {
			return nil, err
		}
		return wire.StructBag(bag), nil
	}
	return nil, errors.Wrapf(ErrTypeMismatch, "kind %s: got %T", kind, v)
}

// toWireMap type-guesses each key/value of a host mapping (spec §4.6
// "Host -> wire-type inference", exercised per-entry exactly as
// MAP.validate does in the original).
func toWireMap(v any) (wire.Value, error) {
	m, ok := v.(map[any]any)
	if !ok {
		if sm, ok := v.(map[string]any); ok {
			m = make(map[any]any, len(sm))
			for k, val := range sm {
				m[k] = val
			}
		} else {
			return nil, errors.Wrapf(ErrTypeMismatch, "map: got %T", v)
		}
	}
	out := make(wire.MapValue, 0, len(m))
	for k, val := range m {
		kv, err := guessWireValue(k)
		if err != nil {
			return nil, errors.Wrapf(err, "map key %v", k)
		}
		vv, err := guessWireValue(val)
		if err != nil {
			return nil, errors.Wrapf(err, "map value for key %v", k)
		}
		out = append(out, wire.MapEntry{Key: kv, Value: vv})
	}
	return out, nil
}

// toWireList type-guesses each element of a host iterable (spec §4.6,
// LIST.validate in the original).
func toWireList(v any) (wire.Value, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, errors.Wrapf(ErrTypeMismatch, "list: got %T", v)
	}
	out := make(wire.ListValue, 0, len(items))
	for i, item := range items {
		wv, err := guessWireValue(item)
		if err != nil {
			return nil, errors.Wrapf(err, "list item %d", i)
		}
		out = append(out, wv)
	}
	return out, nil
}

// guessWireValue infers a wire kind from the Go type of an untyped host
// value (spec §4.6 host -> wire-type inference table) and converts it.
// Used for map/list elements, which carry no per-entry declared kind.
func guessWireValue(v any) (wire.Value, error) {
	if wv, ok := v.(wire.Value); ok {
		return wv, nil
	}
	switch t := v.(type) {
	case byte:
		return wire.ByteValue(t), nil
	case bool:
		return wire.BoolValue(t), nil
	case int, int8, int16, int32, int64, uint, uint16, uint32, uint64:
		n, _ := toInt64(v)
		return wire.IntValue(n), nil
	case float32:
		return wire.Float32Value(t), nil
	case float64:
		return wire.Float64Value(t), nil
	case string:
		return wire.StringValue(t), nil
	case []byte:
		return wire.BytesValue(t), nil
	case map[string]any, map[any]any:
		return toWireMap(t)
	case []any:
		return toWireList(t)
	default:
		return nil, errors.Wrapf(ErrUnknownType, "%T", v)
	}
}

// asInstance accepts either an Instance or a bare map[string]any for a
// nested-struct field, since Go type assertions don't see through a named
// map type to its underlying one.
func asInstance(v any) (Instance, bool) {
	switch t := v.(type) {
	case Instance:
		return t, true
	case map[string]any:
		return Instance(t), true
	default:
		return nil, false
	}
}

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint:
		return int64(t), true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint64:
		return int64(t), true
	default:
		return 0, false
	}
}

func toFloat64(v any) (float64, bool) {
	switch t := v.(type) {
	case float32:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}

// fromWireValue coerces a raw decoded wire.Value into the Go value a field
// declared with kind should reassemble to, performing the upcasts spec
// §4.6 describes (e.g. a byte-width int widened to int64, a raw byte
// reinterpreted as bool).
func fromWireValue(f Field, raw wire.Value) (any, error) {
	switch f.Kind {
	case KindByte:
		if b, ok := raw.(wire.ByteValue); ok {
			return byte(b), nil
		}
	case KindBool:
		switch b := raw.(type) {
		case wire.ByteValue:
			return b != 0, nil
		case wire.IntValue:
			return b != 0, nil
		}
	case KindInt:
		switch n := raw.(type) {
		case wire.ByteValue:
			return int64(int8(n)), nil
		case wire.IntValue:
			return int64(n), nil
		case wire.BytesValue:
			v, ok := intFromBytes([]byte(n))
			if ok {
				return v, nil
			}
		}
	case KindFloat32:
		if f32, ok := raw.(wire.Float32Value); ok {
			return float32(f32), nil
		}
	case KindFloat64:
		switch d := raw.(type) {
		case wire.Float64Value:
			return float64(d), nil
		case wire.Float32Value:
			return float64(d), nil
		}
	case KindString:
		if s, ok := raw.(wire.StringValue); ok {
			return string(s), nil
		}
	case KindBytes:
		if b, ok := raw.(wire.BytesValue); ok {
			return []byte(b), nil
		}
	case KindMap:
		if m, ok := raw.(wire.MapValue); ok {
			return m, nil
		}
	case KindList:
		if l, ok := raw.(wire.ListValue); ok {
			return l, nil
		}
	case KindStruct:
		if bag, ok := raw.(wire.StructBag); ok {
			if f.Struct == nil {
				return nil, errors.Errorf("field %q: struct kind with no nested schema", f.Name)
			}
			return reassemble(f.Struct, map[int]wire.Value(bag), nil)
		}
	}
	return nil, mismatch(f, raw)
}

// intFromBytes reinterprets a raw byte sequence as a signed integer of the
// width implied by its length (spec §4.6 "a raw byte sequence ... selecting
// the integer width by length: 1->byte, 2->int16, 4->int32, 8->int64").
func intFromBytes(b []byte) (int64, bool) {
	switch len(b) {
	case 1:
		return int64(int8(b[0])), true
	case 2:
		return int64(int16(uint16(b[0])<<8 | uint16(b[1]))), true
	case 4:
		var n uint32
		for _, c := range b {
			n = n<<8 | uint32(c)
		}
		return int64(int32(n)), true
	case 8:
		var n uint64
		for _, c := range b {
			n = n<<8 | uint64(c)
		}
		return int64(n), true
	default:
		return 0, false
	}
}

package wire

import "github.com/pkg/errors"

// DefaultTypes records which wire-type codes decodeBody accepts; a code
// missing from it (or set to false) decodes as ErrUnknownWireType. It maps
// each code to a bool, not to a handler: the handler for every code is
// fixed in decodeBody's switch, and no schema can substitute a different
// handler for a code. DecodeRaw and the composite codecs all consult this
// one package-level table.
var DefaultTypes = map[Type]bool{
	Byte: true, Int16: true, Int32: true, Int64: true,
	Float32: true, Float64: true, ShortString: true, LongString: true,
	Map: true, List: true, StructStart: true, StructEnd: true,
	ZeroTag: true, Bytes: true,
}

// DecodeRaw decodes buf as a flat, top-level sequence of tagged fields
// (spec §6 decode_raw), with no struct-start/struct-end framing expected.
// Duplicate field ids overwrite earlier ones - "last wins" (spec §4.5).
func DecodeRaw(buf []byte) (map[int]Value, error) {
	bag := make(map[int]Value)
	offset := 0
	for offset < len(buf) {
		fieldID, val, n, err := decodeTagged(buf[offset:])
		if err != nil {
			return nil, offsetf(err, offset)
		}
		if val != nil {
			bag[fieldID] = val
		}
		offset += n
	}
	return bag, nil
}

// decodeTagged reads one full tagged field (header + body) from the front
// of buf and returns its field id, decoded value, and total bytes
// consumed. A struct-end header decodes to a nil Value with no body, the
// same leniency the reference implementation shows a stray struct-end at
// the top level.
func decodeTagged(buf []byte) (fieldID int, val Value, consumed int, err error) {
	fieldID, t, hlen, err := ReadHeader(buf)
	if err != nil {
		return 0, nil, 0, err
	}
	body := buf[hlen:]
	val, blen, err := decodeBody(t, body)
	if err != nil {
		return 0, nil, 0, fieldf(err, fieldID, t)
	}
	return fieldID, val, hlen + blen, nil
}

func decodeBody(t Type, body []byte) (Value, int, error) {
	if !DefaultTypes[t] {
		return nil, 0, errors.Wrapf(ErrUnknownWireType, "code %d", uint8(t))
	}
	switch t {
	case Byte:
		b, n, err := decodeByteBody(body)
		return ByteValue(b), n, err
	case Int16:
		v, n, err := decodeInt16Body(body)
		return IntValue(v), n, err
	case Int32:
		v, n, err := decodeInt32Body(body)
		return IntValue(v), n, err
	case Int64:
		v, n, err := decodeInt64Body(body)
		return IntValue(v), n, err
	case Float32:
		v, n, err := decodeFloat32Body(body)
		return Float32Value(v), n, err
	case Float64:
		v, n, err := decodeFloat64Body(body)
		return Float64Value(v), n, err
	case ShortString:
		s, n, err := decodeShortStringBody(body)
		return StringValue(s), n, err
	case LongString:
		s, n, err := decodeLongStringBody(body)
		return StringValue(s), n, err
	case Bytes:
		return decodeBytesBody(body)
	case Map:
		return decodeMapBody(body)
	case List:
		return decodeListBody(body)
	case StructStart:
		return decodeStructBody(body)
	case StructEnd:
		return nil, 0, nil
	case ZeroTag:
		return ByteValue(0), 0, nil
	default:
		return nil, 0, errors.Wrapf(ErrUnknownWireType, "code %d", uint8(t))
	}
}

// asCount coerces a decoded length/count value to a non-negative int,
// failing with ErrInvalidLength otherwise (spec §7 InvalidLength).
func asCount(v Value) (int, error) {
	var n int64
	switch t := v.(type) {
	case ByteValue:
		n = int64(int8(t))
	case IntValue:
		n = int64(t)
	default:
		return 0, errors.Wrapf(ErrInvalidLength, "count has wire type %s", v.WireType())
	}
	if n < 0 {
		return 0, errors.Wrapf(ErrInvalidLength, "negative count %d", n)
	}
	return int(n), nil
}

func decodeBytesBody(body []byte) (Value, int, error) {
	// Inner header is a fixed 0x00 (field id 0, type byte); spec §4.2.
	_, it, ihlen, err := ReadHeader(body)
	if err != nil {
		return nil, 0, err
	}
	if it != Byte {
		return nil, 0, errors.Wrapf(ErrTruncated, "byte-array inner header has wire type %s", it)
	}
	offset := ihlen
	_, lenVal, lenLen, err := decodeTagged(body[offset:])
	if err != nil {
		return nil, 0, err
	}
	offset += lenLen
	n, err := asCount(lenVal)
	if err != nil {
		return nil, 0, err
	}
	if len(body)-offset < n {
		return nil, 0, shortBufferf(n, len(body)-offset)
	}
	out := make([]byte, n)
	copy(out, body[offset:offset+n])
	return BytesValue(out), offset + n, nil
}

func decodeMapBody(body []byte) (Value, int, error) {
	_, countVal, offset, err := decodeTagged(body)
	if err != nil {
		return nil, 0, err
	}
	count, err := asCount(countVal)
	if err != nil {
		return nil, 0, err
	}
	out := make(MapValue, 0, count)
	for i := 0; i < count; i++ {
		if offset >= len(body) {
			return nil, 0, errors.Wrapf(ErrTruncated, "map wanted %d entries, got %d", count, i)
		}
		_, key, klen, err := decodeTagged(body[offset:])
		if err != nil {
			return nil, 0, err
		}
		offset += klen
		if offset >= len(body) {
			return nil, 0, errors.Wrapf(ErrTruncated, "map entry %d missing value", i)
		}
		_, value, vlen, err := decodeTagged(body[offset:])
		if err != nil {
			return nil, 0, err
		}
		offset += vlen
		out = append(out, MapEntry{Key: key, Value: value})
	}
	return out, offset, nil
}

func decodeListBody(body []byte) (Value, int, error) {
	_, countVal, offset, err := decodeTagged(body)
	if err != nil {
		return nil, 0, err
	}
	count, err := asCount(countVal)
	if err != nil {
		return nil, 0, err
	}
	out := make(ListValue, 0, count)
	for i := 0; i < count; i++ {
		if offset >= len(body) {
			return nil, 0, errors.Wrapf(ErrTruncated, "list wanted %d items, got %d", count, i)
		}
		_, item, ilen, err := decodeTagged(body[offset:])
		if err != nil {
			return nil, 0, err
		}
		offset += ilen
		out = append(out, item)
	}
	return out, offset, nil
}

// decodeStructBody consumes tagged fields until a struct-end header is
// seen, failing with ErrTruncated if the buffer runs out first (spec §3
// invariant "nested structs always have a matching struct-end").
func decodeStructBody(body []byte) (Value, int, error) {
	bag := make(StructBag)
	offset := 0
	for {
		if offset >= len(body) {
			return nil, 0, errors.Wrap(ErrTruncated, "nested struct missing struct-end")
		}
		fieldID, t, hlen, err := ReadHeader(body[offset:])
		if err != nil {
			return nil, 0, err
		}
		if t == StructEnd {
			offset += hlen
			return bag, offset, nil
		}
		val, blen, err := decodeBody(t, body[offset+hlen:])
		if err != nil {
			return nil, 0, fieldf(err, fieldID, t)
		}
		if val != nil {
			bag[fieldID] = val
		}
		offset += hlen + blen
	}
}

func encodeMap(fieldID int, m MapValue) ([]byte, error) {
	h, err := WriteHeader(fieldID, Map)
	if err != nil {
		return nil, err
	}
	countBytes, err := encodeInt(0, int64(len(m)))
	if err != nil {
		return nil, err
	}
	out := append(h, countBytes...)
	for _, e := range m {
		kb, err := e.Key.Encode(0)
		if err != nil {
			return nil, err
		}
		vb, err := e.Value.Encode(1)
		if err != nil {
			return nil, err
		}
		out = append(out, kb...)
		out = append(out, vb...)
	}
	return out, nil
}

func encodeList(fieldID int, l ListValue) ([]byte, error) {
	h, err := WriteHeader(fieldID, List)
	if err != nil {
		return nil, err
	}
	countBytes, err := encodeInt(0, int64(len(l)))
	if err != nil {
		return nil, err
	}
	out := append(h, countBytes...)
	for _, item := range l {
		ib, err := item.Encode(0)
		if err != nil {
			return nil, err
		}
		out = append(out, ib...)
	}
	return out, nil
}

// EncodeFields concatenates the tagged-value bytes of each entry in bag in
// ascending field-id order, with no struct framing - this is both the
// top-level re-encode used by DecodeRaw round-trip tests and the body a
// nested struct wraps in struct-start/struct-end (see encodeStructBag).
func EncodeFields(bag map[int]Value) ([]byte, error) {
	ids := make([]int, 0, len(bag))
	for id := range bag {
		ids = append(ids, id)
	}
	sortInts(ids)

	var out []byte
	for _, id := range ids {
		b, err := bag[id].Encode(id)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

func encodeStructBag(fieldID int, bag StructBag) ([]byte, error) {
	start, err := WriteHeader(fieldID, StructStart)
	if err != nil {
		return nil, err
	}
	body, err := EncodeFields(bag)
	if err != nil {
		return nil, err
	}
	end, err := WriteHeader(fieldID, StructEnd)
	if err != nil {
		return nil, err
	}
	out := append(start, body...)
	return append(out, end...), nil
}

func sortInts(ids []int) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j-1] > ids[j]; j-- {
			ids[j-1], ids[j] = ids[j], ids[j-1]
		}
	}
}

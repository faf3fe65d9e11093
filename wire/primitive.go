package wire

import (
	"encoding/binary"
	"math"
)

// encodeByteBody writes a single raw byte, eliding an all-zero payload to a
// bare zero-tag header (spec §4.2 "zero-byte elision").
func encodeByteBody(fieldID int, b byte) ([]byte, error) {
	if b == 0 {
		h, err := WriteHeader(fieldID, ZeroTag)
		if err != nil {
			return nil, err
		}
		return h, nil
	}
	h, err := WriteHeader(fieldID, Byte)
	if err != nil {
		return nil, err
	}
	return append(h, b), nil
}

// encodeInt chooses the narrowest of byte/int16/int32/int64 that holds n -
// a pure function of magnitude, never of any declared type (spec §4.2
// "Integer narrowing policy").
func encodeInt(fieldID int, n int64) ([]byte, error) {
	switch {
	case n >= -128 && n <= 127:
		return encodeByteBody(fieldID, byte(int8(n)))
	case n >= -32768 && n <= 32767:
		h, err := WriteHeader(fieldID, Int16)
		if err != nil {
			return nil, err
		}
		var buf [2]byte
		binary.BigEndian.PutUint16(buf[:], uint16(int16(n)))
		return append(h, buf[:]...), nil
	case n >= -2147483648 && n <= 2147483647:
		h, err := WriteHeader(fieldID, Int32)
		if err != nil {
			return nil, err
		}
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], uint32(int32(n)))
		return append(h, buf[:]...), nil
	default:
		h, err := WriteHeader(fieldID, Int64)
		if err != nil {
			return nil, err
		}
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], uint64(n))
		return append(h, buf[:]...), nil
	}
}

func encodeFloat32(fieldID int, f float32) ([]byte, error) {
	h, err := WriteHeader(fieldID, Float32)
	if err != nil {
		return nil, err
	}
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], math.Float32bits(f))
	return append(h, buf[:]...), nil
}

func encodeFloat64(fieldID int, f float64) ([]byte, error) {
	h, err := WriteHeader(fieldID, Float64)
	if err != nil {
		return nil, err
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(f))
	return append(h, buf[:]...), nil
}

// encodeString picks short- or long-string framing by UTF-8 byte length
// (spec §4.2 "String width selection").
func encodeString(fieldID int, s string) ([]byte, error) {
	b := []byte(s)
	if len(b) < 256 {
		h, err := WriteHeader(fieldID, ShortString)
		if err != nil {
			return nil, err
		}
		h = append(h, byte(len(b)))
		return append(h, b...), nil
	}
	h, err := WriteHeader(fieldID, LongString)
	if err != nil {
		return nil, err
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(b)))
	h = append(h, lenBuf[:]...)
	return append(h, b...), nil
}

// encodeBytes frames an arbitrary-length byte-array: its own header, an
// inner byte-type header (field id 0), a tagged int length at field id 0,
// then the raw bytes (spec §4.2 byte-array body layout).
func encodeBytes(fieldID int, b []byte) ([]byte, error) {
	h, err := WriteHeader(fieldID, Bytes)
	if err != nil {
		return nil, err
	}
	inner, err := WriteHeader(0, Byte)
	if err != nil {
		return nil, err
	}
	lenBytes, err := encodeInt(0, int64(len(b)))
	if err != nil {
		return nil, err
	}
	out := append(h, inner...)
	out = append(out, lenBytes...)
	return append(out, b...), nil
}

func decodeByteBody(buf []byte) (byte, int, error) {
	if len(buf) < 1 {
		return 0, 0, shortBufferf(1, len(buf))
	}
	return buf[0], 1, nil
}

func decodeInt16Body(buf []byte) (int64, int, error) {
	if len(buf) < 2 {
		return 0, 0, shortBufferf(2, len(buf))
	}
	return int64(int16(binary.BigEndian.Uint16(buf))), 2, nil
}

func decodeInt32Body(buf []byte) (int64, int, error) {
	if len(buf) < 4 {
		return 0, 0, shortBufferf(4, len(buf))
	}
	return int64(int32(binary.BigEndian.Uint32(buf))), 4, nil
}

func decodeInt64Body(buf []byte) (int64, int, error) {
	if len(buf) < 8 {
		return 0, 0, shortBufferf(8, len(buf))
	}
	return int64(binary.BigEndian.Uint64(buf)), 8, nil
}

func decodeFloat32Body(buf []byte) (float32, int, error) {
	if len(buf) < 4 {
		return 0, 0, shortBufferf(4, len(buf))
	}
	return math.Float32frombits(binary.BigEndian.Uint32(buf)), 4, nil
}

func decodeFloat64Body(buf []byte) (float64, int, error) {
	if len(buf) < 8 {
		return 0, 0, shortBufferf(8, len(buf))
	}
	return math.Float64frombits(binary.BigEndian.Uint64(buf)), 8, nil
}

func decodeShortStringBody(buf []byte) (string, int, error) {
	if len(buf) < 1 {
		return "", 0, shortBufferf(1, len(buf))
	}
	n := int(buf[0])
	if len(buf) < 1+n {
		return "", 0, shortBufferf(1+n, len(buf))
	}
	return string(buf[1 : 1+n]), 1 + n, nil
}

func decodeLongStringBody(buf []byte) (string, int, error) {
	if len(buf) < 4 {
		return "", 0, shortBufferf(4, len(buf))
	}
	n := int(binary.BigEndian.Uint32(buf))
	if n < 0 {
		return "", 0, ErrInvalidLength
	}
	if len(buf) < 4+n {
		return "", 0, shortBufferf(4+n, len(buf))
	}
	return string(buf[4 : 4+n]), 4 + n, nil
}

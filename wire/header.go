package wire

import "github.com/pkg/errors"

// WriteHeader produces the 1- or 2-byte tag header for fieldID/t: one byte
// packing min(fieldID,15) into the high nibble and t into the low nibble,
// followed by an overflow byte carrying the full fieldID when fieldID >= 15.
// Field id 0 is valid at the wire level - it's the fixed id composite types
// use for their internal framing (a byte-array's inner length, a map's key
// and count, a list's items and count; spec §4.2); schema-declared fields
// are restricted to 1..255 one level up, in schema.validateID.
//
// Grounded on wirepb.Field.Pack's key-varint packing (wirepb/wire.go), with
// the varint swapped for JCE's nibble-plus-overflow-byte scheme.
func WriteHeader(fieldID int, t Type) ([]byte, error) {
	if fieldID < 0 || fieldID > 255 {
		return nil, errors.Wrapf(ErrInvalidFieldID, "field id %d", fieldID)
	}
	nibble := fieldID
	if nibble > 15 {
		nibble = 15
	}
	b := byte(nibble<<4) | byte(t)
	if fieldID >= 15 {
		return []byte{b, byte(fieldID)}, nil
	}
	return []byte{b}, nil
}

// ReadHeader reads the tag header at the front of buf, returning the field
// id, wire type, and number of bytes consumed (1 or 2).
func ReadHeader(buf []byte) (fieldID int, t Type, consumed int, err error) {
	if len(buf) < 1 {
		return 0, 0, 0, shortBufferf(1, len(buf))
	}
	b := buf[0]
	t = Type(b & 0x0F)
	nibble := int(b >> 4)
	if nibble == 0x0F {
		if len(buf) < 2 {
			return 0, 0, 0, shortBufferf(2, len(buf))
		}
		return int(buf[1]), t, 2, nil
	}
	return nibble, t, 1, nil
}

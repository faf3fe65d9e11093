// Package wire implements the tagged-value byte format that underlies the
// JCE wire protocol: per-field headers, the fixed wire-type table, and the
// primitive and composite codecs that translate between wire bytes and Go
// values. It knows nothing about schemas or struct field names; that layer
// lives in package schema.
package wire

import "fmt"

// Type identifies how a tagged value is framed on the wire. The assigned
// codes are 0..13; a header's low nibble can also carry 14 or 15, which
// Valid reports as unassigned.
type Type uint8

// The fixed wire-type assignment. Values outside this set decode as
// ErrUnknownWireType.
const (
	Byte        Type = 0
	Int16       Type = 1
	Int32       Type = 2
	Int64       Type = 3
	Float32     Type = 4
	Float64     Type = 5
	ShortString Type = 6
	LongString  Type = 7
	Map         Type = 8
	List        Type = 9
	StructStart Type = 10
	StructEnd   Type = 11
	ZeroTag     Type = 12
	Bytes       Type = 13
)

// String renders t the way a field-id/wire-type pair would appear in a
// diagnostic: the wire-type's mnemonic name, or "Type(n)" for an unassigned
// code.
func (t Type) String() string {
	switch t {
	case Byte:
		return "Byte"
	case Int16:
		return "Int16"
	case Int32:
		return "Int32"
	case Int64:
		return "Int64"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	case ShortString:
		return "ShortString"
	case LongString:
		return "LongString"
	case Map:
		return "Map"
	case List:
		return "List"
	case StructStart:
		return "StructStart"
	case StructEnd:
		return "StructEnd"
	case ZeroTag:
		return "ZeroTag"
	case Bytes:
		return "Bytes"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Valid reports whether t is one of the fourteen assigned wire-type codes.
func (t Type) Valid() bool {
	return t <= Bytes
}

// Package schema implements the JCE schema model: an ordered, name-indexed
// set of fields each bound to a field id and a declared wire kind, plus the
// struct encoder and decoder that transcode between a name->value mapping
// and wire bytes.
//
// This generalizes the "surrounding validation/defaulting framework" the
// original Python (pydantic-backed) implementation coupled the schema to
// (see _examples/original_source/jce/field.py, jce/types.py JceField /
// JceModelField): rather than deriving a schema from struct tags and a
// third-party validation library, the caller builds one explicitly (spec
// §9 Design Notes option (b)).
package schema

import (
	"github.com/pkg/errors"

	"github.com/jcewire/jce/wire"
)

// Kind is a field's declared wire-type family. Unlike wire.Type, a Kind
// names the host-level shape a field is declared with (e.g. Int covers all
// of byte/int16/int32/int64, mirroring the INT hierarchy in the original
// Python types module); the concrete wire width is still chosen at encode
// time by magnitude.
type Kind int

const (
	KindByte Kind = iota
	KindBool
	KindInt
	KindFloat32
	KindFloat64
	KindString
	KindBytes
	KindMap
	KindList
	KindStruct
)

func (k Kind) String() string {
	switch k {
	case KindByte:
		return "byte"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindMap:
		return "map"
	case KindList:
		return "list"
	case KindStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// Field is one declared schema field: a name, a field id, a declared kind,
// and an optional default.
//
// Corresponds to JceModelField (_examples/original_source/jce/field.py)
// plus JceField's default/default_factory split
// (_examples/original_source/jce/types.py).
type Field struct {
	Name   string
	ID     int
	Kind   Kind
	Struct *Schema // only set when Kind == KindStruct

	// Default supplies the field's value when it is absent on decode.
	// Exactly one of Default or DefaultFunc should be set; if neither is
	// set the field is required (spec §7 MissingField on encode, and
	// decode simply has nothing to fall back to - callers needing a
	// "required on decode too" field should supply extras instead).
	Default     any
	DefaultFunc func() any

	// Wire is false for "non-wire" fields: state the caller supplies only
	// through the decode extras map, never read from or written to the
	// wire (mirrors JceField's ability to declare pure Python-side state).
	Wire bool
}

func (f Field) hasDefault() bool {
	return f.Default != nil || f.DefaultFunc != nil
}

func (f Field) defaultValue() any {
	if f.DefaultFunc != nil {
		return f.DefaultFunc()
	}
	return f.Default
}

// byField marks a field as schema-bound (read from and written to the
// wire), the common case.
func byField(name string, id int, kind Kind) Field {
	return Field{Name: name, ID: id, Kind: kind, Wire: true}
}

func validateID(id int) error {
	if id < 1 || id > 255 {
		return errors.Wrapf(wire.ErrInvalidFieldID, "field id %d out of range 1..255", id)
	}
	return nil
}

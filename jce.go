// Package jce implements the JCE binary wire format: a tagged,
// self-describing, field-numbered encoding in the family of Thrift/
// Protocol Buffers, associated with the Tencent TAF/TARS RPC stack.
//
// The wire-level tagged-value format, primitive and composite codecs, and
// header framing live in package wire. The schema model - named fields
// bound to field ids and declared wire kinds, plus the struct encoder and
// decoder - lives in package schema. This package glues the two into the
// four operations spec.md §6 calls the public API surface, and re-exports
// the handful of types an application needs to declare a schema without
// importing the subpackages directly.
package jce

import (
	"github.com/jcewire/jce/schema"
	"github.com/jcewire/jce/wire"
)

// Re-exported schema-building types, so a typical caller only imports this
// package: jce.NewBuilder("Server").Field("port", 2, jce.KindInt).Build().
type (
	Schema   = schema.Schema
	Builder  = schema.Builder
	Field    = schema.Field
	Kind     = schema.Kind
	Instance = schema.Instance
)

// Wire-kind constants for Builder.Field/Struct declarations.
const (
	KindByte    = schema.KindByte
	KindBool    = schema.KindBool
	KindInt     = schema.KindInt
	KindFloat32 = schema.KindFloat32
	KindFloat64 = schema.KindFloat64
	KindString  = schema.KindString
	KindBytes   = schema.KindBytes
	KindMap     = schema.KindMap
	KindList    = schema.KindList
	KindStruct  = schema.KindStruct
)

// NewBuilder starts building a Schema (spec §9 Design Notes option (b)).
func NewBuilder(name string) *Builder { return schema.NewBuilder(name) }

// WithDefault and WithDefaultFunc customize a Builder.Field/Struct/Extra
// declaration.
var (
	WithDefault     = schema.WithDefault
	WithDefaultFunc = schema.WithDefaultFunc
)

// Encode serializes value against s (spec §6 encode(value) -> bytes).
func Encode(s *Schema, value Instance) ([]byte, error) {
	return schema.Encode(s, value)
}

// Decode deserializes data against s, using extras to populate non-wire
// fields (spec §6 decode(schema, bytes, extras?) -> value). extras may be
// nil.
func Decode(s *Schema, data []byte, extras Instance) (Instance, error) {
	return schema.Decode(s, data, extras)
}

// DecodeList decodes a top-level payload, pulls the list at fieldID, and
// reassembles each entry against s (spec §6 decode_list).
func DecodeList(s *Schema, data []byte, fieldID int, extras Instance) ([]Instance, error) {
	return schema.DecodeList(s, data, fieldID, extras)
}

// DecodeRaw decodes data with no schema, returning the raw field_id ->
// wire.Value mapping (spec §6 decode_raw).
func DecodeRaw(data []byte) (map[int]wire.Value, error) {
	return wire.DecodeRaw(data)
}

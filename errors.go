package jce

import (
	"github.com/jcewire/jce/schema"
	"github.com/jcewire/jce/wire"
)

// The eight error kinds of spec §7, re-exported so callers can test
// errors.Is(err, jce.ErrTypeMismatch) without importing wire or schema
// directly. The underlying sentinel lives wherever it is first detected:
// buffer- and wire-type-level failures in package wire, schema-level
// failures (a value that can't be coerced to a declared kind, a required
// field left unset) in package schema.
var (
	ErrShortBuffer     = wire.ErrShortBuffer
	ErrUnknownWireType = wire.ErrUnknownWireType
	ErrInvalidFieldID  = wire.ErrInvalidFieldID
	ErrInvalidLength   = wire.ErrInvalidLength
	ErrTruncated       = wire.ErrTruncated

	ErrUnknownType  = schema.ErrUnknownType
	ErrTypeMismatch = schema.ErrTypeMismatch
	ErrMissingField = schema.ErrMissingField
)

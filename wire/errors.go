package wire

import (
	"github.com/pkg/errors"
)

// Sentinel error kinds, matched with errors.Is. Call sites wrap these with
// github.com/pkg/errors to attach byte-offset and field-id/wire-type
// context without losing the underlying kind.
var (
	// ErrShortBuffer means a reader needed more bytes than were present.
	ErrShortBuffer = errors.New("jce/wire: short buffer")

	// ErrUnknownWireType means a tag header carried a wire-type code with
	// no handler.
	ErrUnknownWireType = errors.New("jce/wire: unknown wire type")

	// ErrInvalidFieldID means a field id was outside 1..255, or (at the
	// schema layer) a struct declared two fields with the same id.
	ErrInvalidFieldID = errors.New("jce/wire: invalid field id")

	// ErrInvalidLength means a decoded length or count was negative or
	// was not an integer value. A length that runs past the end of the
	// buffer is reported as ErrShortBuffer, and a container count that
	// runs past it as ErrTruncated, not as ErrInvalidLength.
	ErrInvalidLength = errors.New("jce/wire: invalid length")

	// ErrTruncated means a container's declared count could not be
	// satisfied, or a nested struct never reached its struct-end.
	ErrTruncated = errors.New("jce/wire: truncated")
)

// offsetf wraps err with the byte offset at which it was detected.
func offsetf(err error, offset int) error {
	return errors.Wrapf(err, "at offset %d", offset)
}

// fieldf wraps err with the field id and wire type under decode.
func fieldf(err error, fieldID int, t Type) error {
	return errors.Wrapf(err, "field %d (%s)", fieldID, t)
}

func shortBufferf(need, have int) error {
	return errors.Wrapf(ErrShortBuffer, "need %d bytes, have %d", need, have)
}

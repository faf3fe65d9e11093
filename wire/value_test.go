package wire

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/require"
)

// hexBytes is a tiny helper for writing the space-separated hex literals
// spec §8's worked scenarios use, e.g. "10 F0".
func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	var out []byte
	cur := -1
	for _, c := range s {
		if c == ' ' {
			continue
		}
		var v int
		switch {
		case c >= '0' && c <= '9':
			v = int(c - '0')
		case c >= 'A' && c <= 'F':
			v = int(c-'A') + 10
		case c >= 'a' && c <= 'f':
			v = int(c-'a') + 10
		default:
			t.Fatalf("bad hex digit %q", c)
		}
		if cur < 0 {
			cur = v
		} else {
			out = append(out, byte(cur<<4|v))
			cur = -1
		}
	}
	return out
}

func TestByteFieldEncoding(t *testing.T) {
	b, err := ByteValue(0xF0).Encode(1)
	require.NoError(t, err)
	require.Equal(t, hexBytes(t, "10 F0"), b)

	b, err = ByteValue(0x00).Encode(1)
	require.NoError(t, err)
	require.Equal(t, hexBytes(t, "1C"), b, "zero-byte elides to a zero-tag")
}

func TestIntNarrowing(t *testing.T) {
	tests := []struct {
		value int64
		want  string
	}{
		{127, "10 7F"},
		{-32768, "11 80 00"},
		{-2147483648, "12 80 00 00 00"},
		{123123123123123123, "13 01 B5 6B D4 01 63 F3 B3"},
	}
	for _, test := range tests {
		got, err := IntValue(test.value).Encode(1)
		require.NoError(t, err)
		require.Equal(t, hexBytes(t, test.want), got, "value %d", test.value)
	}
}

func TestStringWidthSelection(t *testing.T) {
	short, err := StringValue("Hello").Encode(1)
	require.NoError(t, err)
	require.Equal(t, hexBytes(t, "16 05 48 65 6C 6C 6F"), short)

	long := ""
	for i := 0; i < 100; i++ {
		long += "Hello"
	}
	gotLong, err := StringValue(long).Encode(1)
	require.NoError(t, err)
	require.Equal(t, hexBytes(t, "17 00 00 01 F4"), gotLong[:5])
	require.Equal(t, long, string(gotLong[5:]))
}

func TestMapEncoding(t *testing.T) {
	m := MapValue{
		{Key: StringValue("one"), Value: StringValue("foo")},
		{Key: StringValue("two"), Value: StringValue("bar")},
	}
	got, err := m.Encode(1)
	require.NoError(t, err)
	want := hexBytes(t, "18 00 02 06 03 6F 6E 65 16 03 66 6F 6F 06 03 74 77 6F 16 03 62 61 72")
	require.Equal(t, want, got)
}

func TestDecodeRawRoundTrip(t *testing.T) {
	input := hexBytes(t, "16 04 72 63 6E 62 21 1F 40 86 04 72 63 6E 62")
	got, err := DecodeRaw(input)
	require.NoError(t, err)

	want := map[int]Value{
		1: StringValue("rcnb"),
		2: IntValue(8000),
		8: StringValue("rcnb"),
	}
	if diff := pretty.Compare(got, want); diff != "" {
		t.Errorf("DecodeRaw result differs from expected (-got +want)\n%s", diff)
	}

	reencoded, err := EncodeFields(got)
	require.NoError(t, err)
	require.Equal(t, input, reencoded, "re-encoding a decoded bag in ascending field-id order reproduces the original bytes")
}

func TestNestedStructRoundTrip(t *testing.T) {
	bag := StructBag{1: StringValue("inner"), 2: IntValue(42)}
	encoded, err := bag.Encode(5)
	require.NoError(t, err)

	fieldID, val, n, err := decodeTagged(encoded)
	require.NoError(t, err)
	require.Equal(t, 5, fieldID)
	require.Equal(t, len(encoded), n)

	gotBag, ok := val.(StructBag)
	require.True(t, ok)
	if diff := pretty.Compare(gotBag, bag); diff != "" {
		t.Errorf("nested struct round-trip differs (-got +want)\n%s", diff)
	}
}

func TestTruncatedNestedStructIsError(t *testing.T) {
	bag := StructBag{1: StringValue("inner")}
	encoded, err := bag.Encode(5)
	require.NoError(t, err)

	_, _, _, err = decodeTagged(encoded[:len(encoded)-1]) // drop the struct-end byte
	require.ErrorIs(t, err, ErrTruncated)
}

func TestUnknownWireType(t *testing.T) {
	_, _, _, err := decodeTagged([]byte{0x1E}) // field 1, type 14 (unassigned)
	require.ErrorIs(t, err, ErrUnknownWireType)
}

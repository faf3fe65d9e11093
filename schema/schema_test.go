package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcewire/jce/wire"
)

func mustBuild(t *testing.T, b *Builder) *Schema {
	t.Helper()
	s, err := b.Build()
	require.NoError(t, err)
	return s
}

func serverSchema(t *testing.T) *Schema {
	t.Helper()
	return mustBuild(t, NewBuilder("Server").
		Field("server", 1, KindString).
		Field("port", 2, KindInt).
		Field("location", 8, KindString).
		Extra("extra", WithDefault(nil)).
		Extra("extra_default", WithDefault("extra")))
}

func TestDuplicateFieldIDFailsBuild(t *testing.T) {
	_, err := NewBuilder("Dup").
		Field("a", 1, KindString).
		Field("b", 1, KindInt).
		Build()
	require.ErrorIs(t, err, wire.ErrInvalidFieldID)
}

func TestInvalidFieldIDRange(t *testing.T) {
	_, err := NewBuilder("Bad").Field("a", 0, KindByte).Build()
	require.ErrorIs(t, err, wire.ErrInvalidFieldID)

	_, err = NewBuilder("Bad").Field("a", 256, KindByte).Build()
	require.ErrorIs(t, err, wire.ErrInvalidFieldID)
}

func TestFieldsOrderedByAscendingID(t *testing.T) {
	s := mustBuild(t, NewBuilder("Out of order").
		Field("c", 8, KindString).
		Field("a", 1, KindString).
		Field("b", 2, KindInt))
	var ids []int
	for _, f := range s.Fields() {
		ids = append(ids, f.ID)
	}
	require.Equal(t, []int{1, 2, 8}, ids)
}

// TestEndToEndStruct matches spec §8f's worked example exactly: the same
// bytes, the same extras, the same reassembled instance.
func TestEndToEndStruct(t *testing.T) {
	s := serverSchema(t)

	encoded, err := Encode(s, Instance{
		"server":   "rcnb",
		"port":     8000,
		"location": "rcnb",
	})
	require.NoError(t, err)

	want := hexDecode(t, "16 04 72 63 6E 62 21 1F 40 86 04 72 63 6E 62")
	require.Equal(t, want, encoded)

	got, err := Decode(s, encoded, Instance{"extra": "xxx"})
	require.NoError(t, err)

	require.Equal(t, Instance{
		"server":        "rcnb",
		"port":          int64(8000),
		"location":      "rcnb",
		"extra":         "xxx",
		"extra_default": "extra",
	}, got)
}

func TestEncodeMissingRequiredField(t *testing.T) {
	s := serverSchema(t)
	_, err := Encode(s, Instance{"server": "rcnb", "location": "rcnb"})
	require.ErrorIs(t, err, ErrMissingField)
}

func TestDecodeUnknownIDsAreDropped(t *testing.T) {
	s := mustBuild(t, NewBuilder("Narrow").Field("a", 1, KindString))
	encoded, err := Encode(
		mustBuild(t, NewBuilder("Wide").Field("a", 1, KindString).Field("b", 2, KindInt)),
		Instance{"a": "x", "b": 1},
	)
	require.NoError(t, err)

	got, err := Decode(s, encoded, nil)
	require.NoError(t, err)
	require.Equal(t, Instance{"a": "x"}, got)
}

func TestDecodeListReassemblesEachElement(t *testing.T) {
	item := mustBuild(t, NewBuilder("Item").Field("name", 1, KindString))

	list := wire.ListValue{
		wire.StructBag{1: wire.StringValue("alpha")},
		wire.StructBag{1: wire.StringValue("beta")},
	}
	body, err := list.Encode(3)
	require.NoError(t, err)

	got, err := DecodeList(item, body, 3, nil)
	require.NoError(t, err)
	require.Equal(t, []Instance{{"name": "alpha"}, {"name": "beta"}}, got)
}

func TestDecodeListTypeMismatchWhenNotAList(t *testing.T) {
	item := mustBuild(t, NewBuilder("Item").Field("name", 1, KindString))
	body, err := wire.StringValue("not a list").Encode(3)
	require.NoError(t, err)

	_, err = DecodeList(item, body, 3, nil)
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestNestedStructFields(t *testing.T) {
	inner := mustBuild(t, NewBuilder("Inner").Field("x", 1, KindInt))
	outer := mustBuild(t, NewBuilder("Outer").
		Field("name", 1, KindString).
		Struct("inner", 2, inner))

	encoded, err := Encode(outer, Instance{
		"name":  "n",
		"inner": Instance{"x": int64(7)},
	})
	require.NoError(t, err)

	got, err := Decode(outer, encoded, nil)
	require.NoError(t, err)
	require.Equal(t, Instance{
		"name":  "n",
		"inner": Instance{"x": int64(7)},
	}, got)
}

func TestMapAndListHostTypeGuessing(t *testing.T) {
	s := mustBuild(t, NewBuilder("Bag").
		Field("m", 1, KindMap).
		Field("l", 2, KindList))

	encoded, err := Encode(s, Instance{
		"m": map[string]any{"one": "foo"},
		"l": []any{int64(1), "two"},
	})
	require.NoError(t, err)

	got, err := Decode(s, encoded, nil)
	require.NoError(t, err)

	m, ok := got["m"].(wire.MapValue)
	require.True(t, ok)
	require.Len(t, m, 1)
	require.Equal(t, wire.StringValue("one"), m[0].Key)
	require.Equal(t, wire.StringValue("foo"), m[0].Value)

	l, ok := got["l"].(wire.ListValue)
	require.True(t, ok)
	require.Equal(t, wire.ListValue{wire.ByteValue(1), wire.StringValue("two")}, l)
}

func hexDecode(t *testing.T, s string) []byte {
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

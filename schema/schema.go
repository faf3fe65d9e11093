package schema

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/jcewire/jce/wire"
)

// Schema is an ordered, name-indexed set of fields: wire fields by
// ascending field id (spec §3 "Struct schema"), then non-wire fields in
// declaration order. Schemas are built once via NewBuilder and are safe to
// share by reference for the lifetime of a process.
type Schema struct {
	name   string
	byName map[string]Field
	fields []Field // wire fields ascending by ID, then non-wire fields
}

// Name is the schema's declared name, used only for diagnostics.
func (s *Schema) Name() string { return s.name }

// Fields returns the schema's wire fields in ascending field-id order,
// followed by its non-wire fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks up a declared field by name.
func (s *Schema) Field(name string) (Field, bool) {
	f, ok := s.byName[name]
	return f, ok
}

// Builder assembles a Schema field by field; see NewBuilder.
//
// This is the "explicit builder" option from spec §9 Design Notes:
//
//	NewBuilder("Server").Field("server", 1, KindString).Field("port", 2, KindInt).Build()
//
// The codec engine in wire/ and the encode/decode logic below never depend
// on this builder - only on the Schema/Field values it produces - so an
// application is free to derive a Schema some other way (a struct-tag
// derive, a generated table) without touching the codec.
type Builder struct {
	name   string
	fields []Field
	err    error
}

// NewBuilder starts building a schema named name (used only in error
// messages and diagnostics).
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// Field declares a wire-bound field. opts may set a default (use
// WithDefault or WithDefaultFunc); non-wire fields are declared with Extra.
func (b *Builder) Field(name string, id int, kind Kind, opts ...FieldOption) *Builder {
	f := byField(name, id, kind)
	for _, opt := range opts {
		opt(&f)
	}
	return b.add(f)
}

// Struct declares a nested-struct field bound to sub.
func (b *Builder) Struct(name string, id int, sub *Schema, opts ...FieldOption) *Builder {
	f := byField(name, id, KindStruct)
	f.Struct = sub
	for _, opt := range opts {
		opt(&f)
	}
	return b.add(f)
}

// Extra declares a non-wire field: caller-supplied state that never
// appears on the wire (spec §4.5 "non-wire" fields, and the original's
// **extra-sourced fields in JceDecoder.from_jce_dict).
func (b *Builder) Extra(name string, opts ...FieldOption) *Builder {
	f := Field{Name: name, Wire: false}
	for _, opt := range opts {
		opt(&f)
	}
	return b.add(f)
}

func (b *Builder) add(f Field) *Builder {
	if b.err != nil {
		return b
	}
	if f.Wire {
		if err := validateID(f.ID); err != nil {
			b.err = err
			return b
		}
	}
	b.fields = append(b.fields, f)
	return b
}

// Build validates and finalizes the schema: field ids must be unique
// within 1..255 (spec §3 invariant "within any one struct, ids must be
// unique"), and fields are sorted into ascending field-id order.
func (b *Builder) Build() (*Schema, error) {
	if b.err != nil {
		return nil, b.err
	}
	byName := make(map[string]Field, len(b.fields))
	seen := make(map[int]string)
	for _, f := range b.fields {
		if _, dup := byName[f.Name]; dup {
			return nil, errors.Errorf("schema %q: duplicate field name %q", b.name, f.Name)
		}
		byName[f.Name] = f
		if f.Wire {
			if other, dup := seen[f.ID]; dup {
				return nil, errors.Wrapf(wire.ErrInvalidFieldID, "schema %q: id %d used by both %q and %q", b.name, f.ID, other, f.Name)
			}
			seen[f.ID] = f.Name
		}
	}
	wireFields := make([]Field, 0, len(b.fields))
	for _, f := range b.fields {
		if f.Wire {
			wireFields = append(wireFields, f)
		}
	}
	sort.Slice(wireFields, func(i, j int) bool { return wireFields[i].ID < wireFields[j].ID })

	ordered := make([]Field, 0, len(b.fields))
	ordered = append(ordered, wireFields...)
	for _, f := range b.fields {
		if !f.Wire {
			ordered = append(ordered, f)
		}
	}

	return &Schema{name: b.name, byName: byName, fields: ordered}, nil
}

// FieldOption customizes a field declared through Builder.
type FieldOption func(*Field)

// WithDefault sets a fixed default value used when the field is absent on
// decode, or encode input omits it.
func WithDefault(v any) FieldOption {
	return func(f *Field) { f.Default = v }
}

// WithDefaultFunc sets a "produce on demand" default (spec §3 "a default
// may be ... a produce-on-demand callable-equivalent"), so mutable zero
// values (an empty map or list) aren't shared across decoded instances.
func WithDefaultFunc(fn func() any) FieldOption {
	return func(f *Field) { f.DefaultFunc = fn }
}

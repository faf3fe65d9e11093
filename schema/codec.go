package schema

import (
	"github.com/pkg/errors"

	"github.com/jcewire/jce/wire"
)

// Instance is a reassembled (or to-be-encoded) struct value: a name-indexed
// bag of Go values. The codec engine never depends on a concrete struct
// type - only on this mapping - per spec §1's note that the schema
// mechanism is a thin external collaborator.
type Instance map[string]any

// Encode serializes data against s, in ascending field-id order, with no
// struct-start/struct-end framing - spec §4.4's "No framing is added at the
// top level; only nested structs carry those markers."
func Encode(s *Schema, data Instance) ([]byte, error) {
	bag, err := buildBag(s, data)
	if err != nil {
		return nil, err
	}
	return wire.EncodeFields(bag)
}

// buildBag converts an Instance into the field_id -> wire.Value bag the
// wire-level encoder works over (spec §4.4 struct encoder).
func buildBag(s *Schema, data Instance) (map[int]wire.Value, error) {
	bag := make(map[int]wire.Value, len(s.fields))
	for _, f := range s.fields {
		if !f.Wire {
			continue
		}
		v, present := data[f.Name]
		if !present {
			if !f.hasDefault() {
				return nil, missing(f)
			}
			v = f.defaultValue()
		}
		wv, err := toWireValue(f.Kind, v, f.Struct)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding field %q (id %d)", f.Name, f.ID)
		}
		bag[f.ID] = wv
	}
	return bag, nil
}

// Decode deserializes data against s. extras supplies values for non-wire
// fields, and backstops wire fields absent from data (a wire field present
// in data always takes its decoded value); see spec §4.5 reassembly and
// §8f's worked example.
func Decode(s *Schema, data []byte, extras Instance) (Instance, error) {
	raw, err := wire.DecodeRaw(data)
	if err != nil {
		return nil, err
	}
	return reassemble(s, raw, extras)
}

// DecodeList decodes a top-level payload, pulls the list found at fieldID,
// and reassembles each element against s (spec §6 decode_list). Each list
// element must itself be a decoded nested struct.
func DecodeList(s *Schema, data []byte, fieldID int, extras Instance) ([]Instance, error) {
	raw, err := wire.DecodeRaw(data)
	if err != nil {
		return nil, err
	}
	v, ok := raw[fieldID]
	if !ok {
		return nil, errors.Wrapf(ErrTypeMismatch, "no value at field id %d", fieldID)
	}
	list, ok := v.(wire.ListValue)
	if !ok {
		return nil, errors.Wrapf(ErrTypeMismatch, "value at field id %d is %s, not a list", fieldID, v.WireType())
	}
	out := make([]Instance, 0, len(list))
	for i, item := range list {
		bag, ok := item.(wire.StructBag)
		if !ok {
			return nil, errors.Wrapf(ErrTypeMismatch, "list item %d is %s, not a struct", i, item.WireType())
		}
		inst, err := reassemble(s, map[int]wire.Value(bag), extras)
		if err != nil {
			return nil, errors.Wrapf(err, "list item %d", i)
		}
		out = append(out, inst)
	}
	return out, nil
}

// reassemble builds a typed Instance from a raw field_id -> wire.Value bag
// (spec §4.5 "Reassembly into a typed instance"). Bag entries with no
// matching schema field are silently dropped (documented as a future
// round-trip extension in spec §9).
func reassemble(s *Schema, raw map[int]wire.Value, extras Instance) (Instance, error) {
	out := make(Instance, len(s.fields))
	for _, f := range s.fields {
		if !f.Wire {
			if extras != nil {
				if v, ok := extras[f.Name]; ok {
					out[f.Name] = v
					continue
				}
			}
			if f.hasDefault() {
				out[f.Name] = f.defaultValue()
			}
			continue
		}

		if v, ok := raw[f.ID]; ok {
			val, err := fromWireValue(f, v)
			if err != nil {
				return nil, errors.Wrapf(err, "field %q (id %d)", f.Name, f.ID)
			}
			out[f.Name] = val
			continue
		}
		if extras != nil {
			if v, ok := extras[f.Name]; ok {
				out[f.Name] = v
				continue
			}
		}
		if f.hasDefault() {
			out[f.Name] = f.defaultValue()
		}
	}
	return out, nil
}

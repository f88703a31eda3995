// Copyright 2026 The Lodestone Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

// Value is a node of the dynamic tree representation, used when no
// static Go type drives decoding (inspection, dumping, generic
// tooling). Decoding into any or *Value produces these; all concrete
// implementations live in this package. Each node owns its children —
// trees, never graphs.
type Value interface {
	// Kind returns the wire kind the node encodes as.
	Kind() Kind
}

// Scalar nodes. Each is a named Go primitive so the decoded tree
// stays cheap and comparable.
type (
	// Byte is a TagByte payload.
	Byte int8
	// Short is a TagShort payload.
	Short int16
	// Int is a TagInt payload.
	Int int32
	// Long is a TagLong payload.
	Long int64
	// Float is a TagFloat payload.
	Float float32
	// Double is a TagDouble payload.
	Double float64
	// String is a TagString payload.
	String string
)

// Packed array nodes. These same types double as the encode-side
// annotation selecting the packed array encoding for struct fields
// and map values (see the package comment, "Lists versus Arrays").
type (
	// ByteArray is a TagByteArray payload.
	ByteArray []int8
	// IntArray is a TagIntArray payload.
	IntArray []int32
	// LongArray is a TagLongArray payload.
	LongArray []int64
)

// List is a homogeneous sequence of nameless values.
type List []Value

// CompoundEntry is one named value inside a Compound.
type CompoundEntry struct {
	Name  string
	Value Value
}

// Compound is an ordered collection of named values. The wire format
// treats entry order as meaningless, but the decoder preserves
// encounter order so a decoded tree re-encodes byte-identically.
type Compound []CompoundEntry

func (Byte) Kind() Kind      { return TagByte }
func (Short) Kind() Kind     { return TagShort }
func (Int) Kind() Kind       { return TagInt }
func (Long) Kind() Kind      { return TagLong }
func (Float) Kind() Kind     { return TagFloat }
func (Double) Kind() Kind    { return TagDouble }
func (String) Kind() Kind    { return TagString }
func (ByteArray) Kind() Kind { return TagByteArray }
func (IntArray) Kind() Kind  { return TagIntArray }
func (LongArray) Kind() Kind { return TagLongArray }
func (List) Kind() Kind      { return TagList }
func (Compound) Kind() Kind  { return TagCompound }

// Get returns the first entry with the given name. The second result
// is false when no entry matches.
func (c Compound) Get(name string) (Value, bool) {
	for _, entry := range c {
		if entry.Name == name {
			return entry.Value, true
		}
	}
	return nil, false
}

// Equal compares two compounds ignoring entry order, which is how
// the wire format defines compound equality. Values are compared
// with valueEqual, so nested compounds are also order-insensitive.
func (c Compound) Equal(other Compound) bool {
	if len(c) != len(other) {
		return false
	}
	for _, entry := range c {
		got, ok := other.Get(entry.Name)
		if !ok || !valueEqual(entry.Value, got) {
			return false
		}
	}
	return true
}

// valueEqual compares two values structurally, treating compounds as
// unordered.
func valueEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Compound:
		return av.Equal(b.(Compound))
	case List:
		bv := b.(List)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valueEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case ByteArray:
		bv := b.(ByteArray)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case IntArray:
		bv := b.(IntArray)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case LongArray:
		bv := b.(LongArray)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// Native converts a dynamic tree to plain Go values for interchange
// with JSON and CBOR tooling: compounds become map[string]any (order
// is lost — acceptable because the format defines compounds as
// unordered), lists become []any, packed arrays become their element
// slices, and scalars become the underlying primitives.
func Native(v Value) any {
	switch value := v.(type) {
	case Byte:
		return int8(value)
	case Short:
		return int16(value)
	case Int:
		return int32(value)
	case Long:
		return int64(value)
	case Float:
		return float32(value)
	case Double:
		return float64(value)
	case String:
		return string(value)
	case ByteArray:
		return []int8(value)
	case IntArray:
		return []int32(value)
	case LongArray:
		return []int64(value)
	case List:
		out := make([]any, len(value))
		for i, element := range value {
			out[i] = Native(element)
		}
		return out
	case Compound:
		out := make(map[string]any, len(value))
		for _, entry := range value {
			out[entry.Name] = Native(entry.Value)
		}
		return out
	default:
		return nil
	}
}

// Copyright 2026 The Lodestone Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strings"
)

// Marshal encodes v as a single NBT document and returns the bytes.
// The value must be record-shaped — a struct, a map with string
// keys, or a Compound — because the format requires a compound root.
// The root's name is written empty.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// An Encoder writes NBT documents to a stream. Documents written
// back to back form a multi-document stream that Decoder consumes
// one Decode call at a time.
type Encoder struct {
	w *writer
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: newWriter(w)}
}

// Encode writes v as one NBT document. Shapes with no wire
// representation fail with *UnsupportedTypeError; representable
// shapes that are not record-like fail with ErrExpectedRootCompound.
// Nothing is written unless the root shape is acceptable.
func (e *Encoder) Encode(v any) error {
	rv := reflect.ValueOf(v)
	kind, err := kindOfValue(rv)
	if err != nil {
		return err
	}
	if kind != TagCompound {
		return ErrExpectedRootCompound
	}
	state := &encodeState{w: e.w}
	// The root's discarded name is just a pending empty name: the
	// compound writes its kind byte, then "", then its entries.
	return state.marshal(rv, withName(""))
}

// encodeState carries the per-call engine state: the primitive
// writer and the recursion depth.
type encodeState struct {
	w     *writer
	depth int
}

func (e *encodeState) push() error {
	e.depth++
	if e.depth > maxDepth {
		return ErrMaxDepth
	}
	return nil
}

func (e *encodeState) pop() {
	e.depth--
}

// Named-type handles used to pick the packed array encoding and to
// keep Compound from encoding as a generic slice.
var (
	byteArrayType = reflect.TypeOf(ByteArray(nil))
	intArrayType  = reflect.TypeOf(IntArray(nil))
	longArrayType = reflect.TypeOf(LongArray(nil))
)

// marshal writes one complete tag: its kind byte, the pending header
// suffix its parent supplied, and its payload. The value decides its
// own kind; the parent's context (entry name or list count) rides in
// on the pending parameter. This is the whole deferred-header
// protocol — no buffering, no backtracking.
func (e *encodeState) marshal(rv reflect.Value, p pending) error {
	rv = unwrap(rv)
	if !rv.IsValid() {
		return &UnsupportedTypeError{Type: nil}
	}

	switch rv.Type() {
	case compoundType:
		return e.marshalCompound(rv.Interface().(Compound), p)
	case byteArrayType:
		return e.marshalByteArray(rv.Interface().(ByteArray), p)
	case intArrayType:
		return e.marshalIntArray(rv.Interface().(IntArray), p)
	case longArrayType:
		return e.marshalLongArray(rv.Interface().(LongArray), p)
	}

	switch rv.Kind() {
	case reflect.Bool:
		if err := e.w.writeTagHeader(TagByte, p); err != nil {
			return err
		}
		var b int8
		if rv.Bool() {
			b = 1
		}
		return e.w.writeByte(b)
	case reflect.Int8:
		if err := e.w.writeTagHeader(TagByte, p); err != nil {
			return err
		}
		return e.w.writeByte(int8(rv.Int()))
	case reflect.Int16:
		if err := e.w.writeTagHeader(TagShort, p); err != nil {
			return err
		}
		return e.w.writeShort(int16(rv.Int()))
	case reflect.Int32:
		if err := e.w.writeTagHeader(TagInt, p); err != nil {
			return err
		}
		return e.w.writeInt(int32(rv.Int()))
	case reflect.Int, reflect.Int64:
		if err := e.w.writeTagHeader(TagLong, p); err != nil {
			return err
		}
		return e.w.writeLong(rv.Int())
	case reflect.Float32:
		if err := e.w.writeTagHeader(TagFloat, p); err != nil {
			return err
		}
		return e.w.writeFloat(float32(rv.Float()))
	case reflect.Float64:
		if err := e.w.writeTagHeader(TagDouble, p); err != nil {
			return err
		}
		return e.w.writeDouble(rv.Float())
	case reflect.String:
		if err := e.w.writeTagHeader(TagString, p); err != nil {
			return err
		}
		return e.w.writeString(rv.String())
	case reflect.Slice, reflect.Array:
		return e.marshalList(rv, p)
	case reflect.Map:
		return e.marshalMap(rv, p)
	case reflect.Struct:
		return e.marshalStruct(rv, p)
	default:
		return &UnsupportedTypeError{Type: rv.Type()}
	}
}

// marshalList encodes a generic sequence as a List. An empty
// sequence completes its own header immediately — element kind End,
// count zero — because there is no first element to defer to. A
// non-empty sequence defers the count to the first element, whose
// kind byte doubles as the list's declared element kind; elements
// after the first are bare payloads.
func (e *encodeState) marshalList(rv reflect.Value, p pending) error {
	if _, err := kindOfValue(rv); err != nil {
		return err
	}
	if err := e.w.writeTagHeader(TagList, p); err != nil {
		return err
	}
	length := rv.Len()
	if length == 0 {
		if err := e.w.writeTagHeader(TagEnd, pending{}); err != nil {
			return err
		}
		return e.w.writeInt(0)
	}
	if length > math.MaxInt32 {
		return fmt.Errorf("nbt: list of %d elements exceeds the format's 32-bit count", length)
	}
	if err := e.push(); err != nil {
		return err
	}
	defer e.pop()

	first := unwrap(rv.Index(0))
	elemKind, err := kindOfValue(first)
	if err != nil {
		return err
	}
	if err := e.marshal(first, withLength(int32(length))); err != nil {
		return err
	}
	for i := 1; i < length; i++ {
		element := unwrap(rv.Index(i))
		kind, err := kindOfValue(element)
		if err != nil {
			return err
		}
		// A list is homogeneous on the wire. A mixed sequence
		// would silently corrupt the stream, so it is rejected
		// before any of the offending element's bytes are written.
		if kind != elemKind {
			return &TagMismatchError{Received: kind, Expected: elemKind}
		}
		if err := e.marshal(element, payloadOnly()); err != nil {
			return err
		}
	}
	return nil
}

func (e *encodeState) marshalByteArray(a ByteArray, p pending) error {
	if err := e.w.writeTagHeader(TagByteArray, p); err != nil {
		return err
	}
	if err := e.w.writeInt(int32(len(a))); err != nil {
		return err
	}
	for _, v := range a {
		if err := e.w.writeByte(v); err != nil {
			return err
		}
	}
	return nil
}

func (e *encodeState) marshalIntArray(a IntArray, p pending) error {
	if err := e.w.writeTagHeader(TagIntArray, p); err != nil {
		return err
	}
	if err := e.w.writeInt(int32(len(a))); err != nil {
		return err
	}
	for _, v := range a {
		if err := e.w.writeInt(v); err != nil {
			return err
		}
	}
	return nil
}

func (e *encodeState) marshalLongArray(a LongArray, p pending) error {
	if err := e.w.writeTagHeader(TagLongArray, p); err != nil {
		return err
	}
	if err := e.w.writeInt(int32(len(a))); err != nil {
		return err
	}
	for _, v := range a {
		if err := e.w.writeLong(v); err != nil {
			return err
		}
	}
	return nil
}

// marshalMap encodes a map with string keys as a compound. Entries
// are written in sorted key order so equal logical values produce
// identical bytes.
func (e *encodeState) marshalMap(rv reflect.Value, p pending) error {
	if rv.Type().Key().Kind() != reflect.String {
		return &UnsupportedTypeError{Type: rv.Type()}
	}
	if err := e.w.writeTagHeader(TagCompound, p); err != nil {
		return err
	}
	if err := e.push(); err != nil {
		return err
	}
	defer e.pop()

	keys := make([]string, 0, rv.Len())
	for _, key := range rv.MapKeys() {
		keys = append(keys, key.String())
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if isNil(value) {
			// Omission of the entry is the format's only way to
			// express absence.
			continue
		}
		if err := e.marshal(value, withName(key)); err != nil {
			return err
		}
	}
	return e.w.writeTagHeader(TagEnd, pending{})
}

// marshalStruct encodes a struct as a compound, fields in
// declaration order. The `nbt` tag names the entry; untagged fields
// use the Go field name. Nil pointer fields are omitted.
func (e *encodeState) marshalStruct(rv reflect.Value, p pending) error {
	if err := e.w.writeTagHeader(TagCompound, p); err != nil {
		return err
	}
	if err := e.push(); err != nil {
		return err
	}
	defer e.pop()

	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("nbt")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = field.Name
		}
		value := rv.Field(i)
		if isNil(value) {
			continue
		}
		if err := e.marshal(value, withName(name)); err != nil {
			return fmt.Errorf("nbt: field %q: %w", name, err)
		}
	}
	return e.w.writeTagHeader(TagEnd, pending{})
}

// marshalCompound encodes a dynamic Compound, preserving its entry
// order.
func (e *encodeState) marshalCompound(c Compound, p pending) error {
	if err := e.w.writeTagHeader(TagCompound, p); err != nil {
		return err
	}
	if err := e.push(); err != nil {
		return err
	}
	defer e.pop()

	for _, entry := range c {
		if entry.Value == nil {
			return fmt.Errorf("nbt: compound entry %q has a nil value", entry.Name)
		}
		if err := e.marshal(reflect.ValueOf(entry.Value), withName(entry.Name)); err != nil {
			return err
		}
	}
	return e.w.writeTagHeader(TagEnd, pending{})
}

// unwrap follows interfaces and non-nil pointers down to the value
// that decides the wire kind.
func unwrap(rv reflect.Value) reflect.Value {
	for {
		switch rv.Kind() {
		case reflect.Interface:
			if rv.IsNil() {
				return rv
			}
			rv = rv.Elem()
		case reflect.Pointer:
			if rv.IsNil() {
				return rv
			}
			rv = rv.Elem()
		default:
			return rv
		}
	}
}

// isNil reports whether a field or map value is an absent optional:
// a nil pointer or a nil interface.
func isNil(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// kindOfValue returns the wire kind a value encodes as, without
// writing anything. Shapes with no wire representation — unsigned
// integers, []byte, channels, funcs, complex numbers, maps with
// non-string keys — return *UnsupportedTypeError.
func kindOfValue(rv reflect.Value) (Kind, error) {
	rv = unwrap(rv)
	if !rv.IsValid() || (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil() {
		return 0, &UnsupportedTypeError{Type: nil}
	}

	switch rv.Type() {
	case compoundType:
		return TagCompound, nil
	case byteArrayType:
		return TagByteArray, nil
	case intArrayType:
		return TagIntArray, nil
	case longArrayType:
		return TagLongArray, nil
	}

	switch rv.Kind() {
	case reflect.Bool, reflect.Int8:
		return TagByte, nil
	case reflect.Int16:
		return TagShort, nil
	case reflect.Int32:
		return TagInt, nil
	case reflect.Int, reflect.Int64:
		return TagLong, nil
	case reflect.Float32:
		return TagFloat, nil
	case reflect.Float64:
		return TagDouble, nil
	case reflect.String:
		return TagString, nil
	case reflect.Slice, reflect.Array:
		// Unsigned element types have no wire representation, and
		// that includes []byte: raw byte blobs must be ByteArray.
		// Rejecting here (not at the first element) catches empty
		// slices too.
		switch rv.Type().Elem().Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
			reflect.Uint64, reflect.Uintptr:
			return 0, &UnsupportedTypeError{Type: rv.Type()}
		}
		return TagList, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return 0, &UnsupportedTypeError{Type: rv.Type()}
		}
		return TagCompound, nil
	case reflect.Struct:
		return TagCompound, nil
	default:
		return 0, &UnsupportedTypeError{Type: rv.Type()}
	}
}

// kindOfType is the type-level counterpart of kindOfValue, used by
// the decoder to name the expected kind in mismatch errors.
func kindOfType(t reflect.Type) Kind {
	switch t {
	case compoundType:
		return TagCompound
	case byteArrayType:
		return TagByteArray
	case intArrayType:
		return TagIntArray
	case longArrayType:
		return TagLongArray
	}
	switch t.Kind() {
	case reflect.Bool, reflect.Int8:
		return TagByte
	case reflect.Int16:
		return TagShort
	case reflect.Int32:
		return TagInt
	case reflect.Int, reflect.Int64:
		return TagLong
	case reflect.Float32:
		return TagFloat
	case reflect.Float64:
		return TagDouble
	case reflect.String:
		return TagString
	case reflect.Slice, reflect.Array:
		return TagList
	default:
		return TagCompound
	}
}

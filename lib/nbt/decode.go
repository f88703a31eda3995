// Copyright 2026 The Lodestone Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"strings"
)

// Unmarshal decodes a single NBT document from data into v, which
// must be a non-nil pointer. The stream's root must be a compound
// tag; its name is read and discarded.
func Unmarshal(data []byte, v any) error {
	err := NewDecoder(bytes.NewReader(data)).Decode(v)
	if err == io.EOF {
		// A buffer with no root tag at all is malformed input, not
		// a clean end of stream.
		return io.ErrUnexpectedEOF
	}
	return err
}

// A Decoder reads NBT documents from a stream. A stream may hold
// several documents back to back; call Decode until it returns
// io.EOF. The decoder owns the stream for the duration of each call
// and never reads past the end of a document.
type Decoder struct {
	r *reader
}

// NewDecoder returns a decoder reading from r. If the stream is
// gzip- or zlib-compressed, wrap it first (see UnmarshalGzip and
// UnmarshalZlib).
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: newReader(r)}
}

// Decode reads the next document from the stream into v. It returns
// io.EOF when the stream ends cleanly before a root tag; an end of
// stream anywhere inside a tag is io.ErrUnexpectedEOF.
func (d *Decoder) Decode(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("nbt: Decode target must be a non-nil pointer, got %T", v)
	}

	// Root rule: exactly one byte decides, and nothing more is
	// consumed on failure. Any first byte other than the compound
	// discriminant — including bytes that are not a valid kind at
	// all — is rejected the same way.
	var first [1]byte
	if _, err := io.ReadFull(d.r.r, first[:]); err != nil {
		return err
	}
	if first[0] != TagCompound.Byte() {
		return ErrExpectedRootCompound
	}

	// The root compound's name is present on the wire but carries
	// no meaning.
	if _, err := d.r.readString(); err != nil {
		return err
	}

	state := &decodeState{r: d.r}
	return state.value(TagCompound, rv.Elem())
}

// decodeState carries the per-call engine state: the primitive
// reader and the recursion depth. Nothing outlives the call.
type decodeState struct {
	r     *reader
	depth int
}

func (d *decodeState) push() error {
	d.depth++
	if d.depth > maxDepth {
		return ErrMaxDepth
	}
	return nil
}

func (d *decodeState) pop() {
	d.depth--
}

// Reflection types used to recognize dynamic tree targets.
var (
	valueType    = reflect.TypeOf((*Value)(nil)).Elem()
	compoundType = reflect.TypeOf(Compound(nil))
	listType     = reflect.TypeOf(List(nil))
)

// value decodes one payload of the given kind into rv. The kind was
// established by the enclosing context: the root rule, a compound
// entry header, a list's element kind, or an array's element width.
func (d *decodeState) value(kind Kind, rv reflect.Value) error {
	// Optionals: the format has no null tag; an optional target is
	// decoded as always-present.
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	// Dynamic targets: any or Value. Build the tree and assign.
	if rv.Kind() == reflect.Interface && (rv.NumMethod() == 0 || rv.Type() == valueType) {
		node, err := d.dynamic(kind)
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(node))
		return nil
	}

	// Concrete dynamic containers: decoding straight into a
	// Compound or List builds the corresponding subtree.
	switch rv.Type() {
	case compoundType:
		if kind != TagCompound {
			return &TagMismatchError{Received: kind, Expected: TagCompound}
		}
		node, err := d.dynamic(kind)
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(node))
		return nil
	case listType:
		if kind != TagList {
			return &TagMismatchError{Received: kind, Expected: TagList}
		}
		node, err := d.dynamic(kind)
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(node))
		return nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		return d.boolean(kind, rv)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return d.integer(kind, rv)
	case reflect.Float32, reflect.Float64:
		return d.float(kind, rv)
	case reflect.String:
		if kind != TagString {
			return &TagMismatchError{Received: kind, Expected: TagString}
		}
		s, err := d.r.readString()
		if err != nil {
			return err
		}
		rv.SetString(s)
		return nil
	case reflect.Slice:
		return d.sequence(kind, rv)
	case reflect.Array:
		return d.fixedArray(kind, rv)
	case reflect.Map:
		return d.compoundMap(kind, rv)
	case reflect.Struct:
		return d.compoundStruct(kind, rv)
	default:
		return &UnsupportedTypeError{Type: rv.Type()}
	}
}

// boolean enforces the boolean-as-byte rule: the active kind must be
// Byte and the payload must be exactly 0 or 1.
func (d *decodeState) boolean(kind Kind, rv reflect.Value) error {
	if kind != TagByte {
		return &TagMismatchError{Received: kind, Expected: TagByte}
	}
	b, err := d.r.readByte()
	if err != nil {
		return err
	}
	switch b {
	case 0:
		rv.SetBool(false)
	case 1:
		rv.SetBool(true)
	default:
		return &BooleanByteError{Value: b}
	}
	return nil
}

func (d *decodeState) integer(kind Kind, rv reflect.Value) error {
	var n int64
	switch kind {
	case TagByte:
		v, err := d.r.readByte()
		if err != nil {
			return err
		}
		n = int64(v)
	case TagShort:
		v, err := d.r.readShort()
		if err != nil {
			return err
		}
		n = int64(v)
	case TagInt:
		v, err := d.r.readInt()
		if err != nil {
			return err
		}
		n = int64(v)
	case TagLong:
		v, err := d.r.readLong()
		if err != nil {
			return err
		}
		n = v
	default:
		return &TagMismatchError{Received: kind, Expected: kindOfType(rv.Type())}
	}
	if rv.OverflowInt(n) {
		return fmt.Errorf("nbt: %s value %d overflows %s", kind, n, rv.Type())
	}
	rv.SetInt(n)
	return nil
}

func (d *decodeState) float(kind Kind, rv reflect.Value) error {
	var f float64
	switch kind {
	case TagFloat:
		v, err := d.r.readFloat()
		if err != nil {
			return err
		}
		f = float64(v)
	case TagDouble:
		v, err := d.r.readDouble()
		if err != nil {
			return err
		}
		f = v
	default:
		return &TagMismatchError{Received: kind, Expected: kindOfType(rv.Type())}
	}
	rv.SetFloat(f)
	return nil
}

// sequence decodes a List or packed array payload into a slice. A
// list count of zero or less yields an empty slice without touching
// the declared element kind — permissive encoders write End, Byte,
// or garbage there, and the bytes mean nothing.
func (d *decodeState) sequence(kind Kind, rv reflect.Value) error {
	elemKind, count, err := d.sequenceHeader(kind, rv.Type())
	if err != nil {
		return err
	}
	if err := d.push(); err != nil {
		return err
	}
	defer d.pop()

	slice := reflect.MakeSlice(rv.Type(), 0, 0)
	for i := int32(0); i < count; i++ {
		element := reflect.New(rv.Type().Elem()).Elem()
		if err := d.value(elemKind, element); err != nil {
			return err
		}
		slice = reflect.Append(slice, element)
	}
	rv.Set(slice)
	return nil
}

// fixedArray decodes into a Go array target, requiring the wire
// count to match the array length exactly.
func (d *decodeState) fixedArray(kind Kind, rv reflect.Value) error {
	elemKind, count, err := d.sequenceHeader(kind, rv.Type())
	if err != nil {
		return err
	}
	if int(count) != rv.Len() {
		return fmt.Errorf("nbt: %s of %d elements does not fit [%d]%s",
			kind, count, rv.Len(), rv.Type().Elem())
	}
	if err := d.push(); err != nil {
		return err
	}
	defer d.pop()

	for i := 0; i < rv.Len(); i++ {
		if err := d.value(elemKind, rv.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

// sequenceHeader reads the header of a sequence-shaped payload and
// returns the element kind and count. For a List that is the
// declared element kind byte and the count; for the packed array
// kinds the element kind is implied and only the count is on the
// wire. Array elements then decode as bare payloads of that kind,
// which is exactly the wire shape: no per-element kind bytes.
func (d *decodeState) sequenceHeader(kind Kind, target reflect.Type) (Kind, int32, error) {
	var elemKind Kind
	switch kind {
	case TagList:
		// The element kind byte is read raw: when the count is not
		// positive the byte is semantically meaningless and any
		// value — End, out of range, anything — must be accepted.
		var b [1]byte
		if _, err := io.ReadFull(d.r.r, b[:]); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, 0, err
		}
		count, err := d.r.readInt()
		if err != nil {
			return 0, 0, err
		}
		if count <= 0 {
			return TagEnd, 0, nil
		}
		elemKind, err = KindOf(b[0])
		if err != nil {
			return 0, 0, err
		}
		return elemKind, count, nil
	case TagByteArray:
		elemKind = TagByte
	case TagIntArray:
		elemKind = TagInt
	case TagLongArray:
		elemKind = TagLong
	default:
		return 0, 0, &TagMismatchError{Received: kind, Expected: kindOfType(target)}
	}
	count, err := d.r.readInt()
	if err != nil {
		return 0, 0, err
	}
	if count <= 0 {
		count = 0
	}
	return elemKind, count, nil
}

// compoundMap decodes a compound payload into a map with string
// keys. Entry names are always decoded as strings regardless of the
// map's declared key type.
func (d *decodeState) compoundMap(kind Kind, rv reflect.Value) error {
	if kind != TagCompound {
		return &TagMismatchError{Received: kind, Expected: TagCompound}
	}
	if rv.Type().Key().Kind() != reflect.String {
		return &UnsupportedTypeError{Type: rv.Type()}
	}
	if err := d.push(); err != nil {
		return err
	}
	defer d.pop()

	if rv.IsNil() {
		rv.Set(reflect.MakeMap(rv.Type()))
	}
	for {
		entryKind, name, err := d.entryHeader()
		if err != nil {
			return err
		}
		if entryKind == TagEnd {
			return nil
		}
		element := reflect.New(rv.Type().Elem()).Elem()
		if err := d.value(entryKind, element); err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()), element)
	}
}

// compoundStruct decodes a compound payload into a struct. Entries
// without a matching field are skipped kind by kind, never buffered.
func (d *decodeState) compoundStruct(kind Kind, rv reflect.Value) error {
	if kind != TagCompound {
		return &TagMismatchError{Received: kind, Expected: TagCompound}
	}
	if err := d.push(); err != nil {
		return err
	}
	defer d.pop()

	for {
		entryKind, name, err := d.entryHeader()
		if err != nil {
			return err
		}
		if entryKind == TagEnd {
			return nil
		}
		field, ok := structField(rv, name)
		if !ok {
			if err := d.skip(entryKind); err != nil {
				return err
			}
			continue
		}
		if err := d.value(entryKind, field); err != nil {
			return fmt.Errorf("nbt: entry %q: %w", name, err)
		}
	}
}

// entryHeader reads one compound entry header: the value's kind
// byte, then the entry name. The wire order is kind-then-name, and
// this is the only place entry kind bytes are consumed. An End kind
// ends the compound and has no name.
func (d *decodeState) entryHeader() (Kind, string, error) {
	kind, err := d.r.readKind()
	if err != nil {
		if err == io.EOF {
			// A compound must be terminated by End before the
			// stream may finish.
			err = io.ErrUnexpectedEOF
		}
		return 0, "", err
	}
	if kind == TagEnd {
		return TagEnd, "", nil
	}
	name, err := d.r.readString()
	if err != nil {
		return 0, "", err
	}
	return kind, name, nil
}

// structField finds the exported field of rv that a compound entry
// with the given name decodes into: first an exact `nbt` tag match,
// then an exact field-name match, then a case-insensitive field-name
// match.
func structField(rv reflect.Value, name string) (reflect.Value, bool) {
	t := rv.Type()
	var fold reflect.Value
	foundFold := false
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("nbt")
		if tag == "-" {
			continue
		}
		tagName, _, _ := strings.Cut(tag, ",")
		if tagName != "" && tagName == name {
			return rv.Field(i), true
		}
		if tagName == "" {
			if field.Name == name {
				return rv.Field(i), true
			}
			if !foundFold && strings.EqualFold(field.Name, name) {
				fold = rv.Field(i)
				foundFold = true
			}
		}
	}
	return fold, foundFold
}

// dynamic reconstructs a payload of the given kind as a Value tree.
func (d *decodeState) dynamic(kind Kind) (Value, error) {
	switch kind {
	case TagByte:
		v, err := d.r.readByte()
		return Byte(v), err
	case TagShort:
		v, err := d.r.readShort()
		return Short(v), err
	case TagInt:
		v, err := d.r.readInt()
		return Int(v), err
	case TagLong:
		v, err := d.r.readLong()
		return Long(v), err
	case TagFloat:
		v, err := d.r.readFloat()
		return Float(v), err
	case TagDouble:
		v, err := d.r.readDouble()
		return Double(v), err
	case TagString:
		v, err := d.r.readString()
		return String(v), err
	case TagByteArray:
		count, err := d.r.readInt()
		if err != nil {
			return nil, err
		}
		array := ByteArray{}
		for i := int32(0); i < count; i++ {
			v, err := d.r.readByte()
			if err != nil {
				return nil, err
			}
			array = append(array, v)
		}
		return array, nil
	case TagIntArray:
		count, err := d.r.readInt()
		if err != nil {
			return nil, err
		}
		array := IntArray{}
		for i := int32(0); i < count; i++ {
			v, err := d.r.readInt()
			if err != nil {
				return nil, err
			}
			array = append(array, v)
		}
		return array, nil
	case TagLongArray:
		count, err := d.r.readInt()
		if err != nil {
			return nil, err
		}
		array := LongArray{}
		for i := int32(0); i < count; i++ {
			v, err := d.r.readLong()
			if err != nil {
				return nil, err
			}
			array = append(array, v)
		}
		return array, nil
	case TagList:
		elemKind, count, err := d.sequenceHeader(TagList, valueType)
		if err != nil {
			return nil, err
		}
		if err := d.push(); err != nil {
			return nil, err
		}
		defer d.pop()
		list := List{}
		for i := int32(0); i < count; i++ {
			element, err := d.dynamic(elemKind)
			if err != nil {
				return nil, err
			}
			list = append(list, element)
		}
		return list, nil
	case TagCompound:
		if err := d.push(); err != nil {
			return nil, err
		}
		defer d.pop()
		compound := Compound{}
		for {
			entryKind, name, err := d.entryHeader()
			if err != nil {
				return nil, err
			}
			if entryKind == TagEnd {
				return compound, nil
			}
			value, err := d.dynamic(entryKind)
			if err != nil {
				return nil, err
			}
			compound = append(compound, CompoundEntry{Name: name, Value: value})
		}
	default:
		return nil, &InvalidTagError{ID: kind.Byte()}
	}
}

// skip consumes one payload of the given kind without building a
// value. Used for compound entries that have no matching struct
// field.
func (d *decodeState) skip(kind Kind) error {
	switch kind {
	case TagByte:
		_, err := d.r.fill(1)
		return err
	case TagShort:
		_, err := d.r.fill(2)
		return err
	case TagInt, TagFloat:
		_, err := d.r.fill(4)
		return err
	case TagLong, TagDouble:
		_, err := d.r.fill(8)
		return err
	case TagString:
		_, err := d.r.readString()
		return err
	case TagByteArray, TagIntArray, TagLongArray:
		count, err := d.r.readInt()
		if err != nil {
			return err
		}
		width := int64(1)
		if kind == TagIntArray {
			width = 4
		} else if kind == TagLongArray {
			width = 8
		}
		if count <= 0 {
			return nil
		}
		return d.discard(int64(count) * width)
	case TagList:
		elemKind, count, err := d.sequenceHeader(TagList, valueType)
		if err != nil {
			return err
		}
		if err := d.push(); err != nil {
			return err
		}
		defer d.pop()
		for i := int32(0); i < count; i++ {
			if err := d.skip(elemKind); err != nil {
				return err
			}
		}
		return nil
	case TagCompound:
		if err := d.push(); err != nil {
			return err
		}
		defer d.pop()
		for {
			entryKind, _, err := d.entryHeader()
			if err != nil {
				return err
			}
			if entryKind == TagEnd {
				return nil
			}
			if err := d.skip(entryKind); err != nil {
				return err
			}
		}
	default:
		return &InvalidTagError{ID: kind.Byte()}
	}
}

// discard drains exactly n payload bytes from the stream.
func (d *decodeState) discard(n int64) error {
	if _, err := io.CopyN(io.Discard, d.r.r, n); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	return nil
}

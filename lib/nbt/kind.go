// Copyright 2026 The Lodestone Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import "fmt"

// Kind identifies a tag's payload shape. The values are protocol
// constants — they are the discriminant byte written to the wire, so
// changing them breaks format compatibility.
type Kind byte

const (
	// TagEnd terminates a compound. It carries no name and no
	// payload, and never appears as a regular compound entry.
	TagEnd Kind = 0

	// TagByte is a single signed byte. Also the encoding for
	// booleans (0 or 1).
	TagByte Kind = 1

	// TagShort is a signed big-endian 16-bit integer.
	TagShort Kind = 2

	// TagInt is a signed big-endian 32-bit integer.
	TagInt Kind = 3

	// TagLong is a signed big-endian 64-bit integer.
	TagLong Kind = 4

	// TagFloat is a big-endian IEEE-754 single-precision float.
	TagFloat Kind = 5

	// TagDouble is a big-endian IEEE-754 double-precision float.
	TagDouble Kind = 6

	// TagByteArray is a count-prefixed run of raw signed bytes.
	TagByteArray Kind = 7

	// TagString is a u16 byte-length-prefixed UTF-8 string.
	TagString Kind = 8

	// TagList is a homogeneous sequence: one element-kind byte, a
	// signed 32-bit count, then that many nameless payloads.
	TagList Kind = 9

	// TagCompound is a run of (kind, name, payload) entries
	// terminated by TagEnd. Entry order carries no meaning.
	TagCompound Kind = 10

	// TagIntArray is a count-prefixed run of raw big-endian 32-bit
	// integers, with no per-element kind byte.
	TagIntArray Kind = 11

	// TagLongArray is a count-prefixed run of raw big-endian 64-bit
	// integers, with no per-element kind byte.
	TagLongArray Kind = 12
)

// kindNames is indexed by Kind. The names follow the format's
// conventional TAG_* spelling without the prefix.
var kindNames = [...]string{
	"End", "Byte", "Short", "Int", "Long", "Float", "Double",
	"ByteArray", "String", "List", "Compound", "IntArray", "LongArray",
}

// KindOf converts a wire discriminant byte to a Kind. Bytes outside
// 0–12 are a format violation and return *InvalidTagError — they are
// never clamped or passed through.
func KindOf(b byte) (Kind, error) {
	if b > byte(TagLongArray) {
		return 0, &InvalidTagError{ID: b}
	}
	return Kind(b), nil
}

// Byte returns the wire discriminant for the kind.
func (k Kind) Byte() byte {
	return byte(k)
}

// IsValid reports whether the kind is one of the 13 defined tag kinds.
func (k Kind) IsValid() bool {
	return k <= TagLongArray
}

// String returns the kind's conventional name.
func (k Kind) String() string {
	if !k.IsValid() {
		return fmt.Sprintf("invalid(%d)", byte(k))
	}
	return kindNames[k]
}

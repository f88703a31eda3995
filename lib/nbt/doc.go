// Copyright 2026 The Lodestone Authors
// SPDX-License-Identifier: Apache-2.0

// Package nbt encodes and decodes the named binary tag format used by
// Minecraft to persist world and configuration data.
//
// The format is a tree of tags. Every tag has a kind (one byte on the
// wire), an optional name, and a payload. The root of every stream is
// a compound tag whose name is present but carries no meaning. Inside
// a compound, tags are named; inside a list or array, they are not.
// All multi-byte values are big-endian.
//
// For buffer-oriented use:
//
//	data, err := nbt.Marshal(value)
//	err = nbt.Unmarshal(data, &value)
//
// For stream-oriented use, including multi-document streams where
// Decode is called until it returns io.EOF:
//
//	encoder := nbt.NewEncoder(w)
//	decoder := nbt.NewDecoder(r)
//
// World files are usually gzip- or zlib-compressed; UnmarshalGzip and
// UnmarshalZlib wrap the stream before decoding. The region file
// container that bundles many compressed trees into one file lives in
// lib/region.
//
// # Struct Mapping
//
// Struct fields map to compound entries. The `nbt` struct tag names
// the wire entry; without a tag the Go field name is used verbatim
// (Minecraft's own names are PascalCase, so this is usually what you
// want). A tag of "-" skips the field. Nil pointer fields are omitted
// from the output — omission is the format's only notion of absence.
//
// Signed integers and floats map to the fixed-width tag of the same
// size; plain int and int64 encode as Long. Booleans encode as a Byte
// holding 0 or 1, and only the bytes 0 and 1 decode into a bool.
// Unsigned integers, []byte, and other shapes without a wire
// representation are rejected with UnsupportedTypeError.
//
// # Lists versus Arrays
//
// The wire format has two sequence shapes: a List (one element-kind
// byte, a count, then nameless payloads) and the packed ByteArray,
// IntArray, and LongArray kinds (a count, then raw fixed-width
// elements with no per-element kind byte). Element type alone cannot
// distinguish them, so the choice is an explicit annotation on the Go
// side: the named types ByteArray, IntArray, and LongArray select the
// packed encoding, while any other slice encodes as a List.
package nbt

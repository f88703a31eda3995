// Copyright 2026 The Lodestone Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides Lodestone's standard CBOR encoding
// configuration.
//
// Lodestone works with three serialization formats with a clear
// boundary:
//
//   - NBT is the wire format the project exists for (lib/nbt). It is
//     what world files, region chunks, and the protocol speak.
//   - JSON is the human surface: CLI output and anything meant to be
//     piped into jq.
//   - CBOR is the interchange surface: a self-describing binary
//     projection of a decoded NBT tree for tooling that wants
//     structure without NBT's schema conventions (deferred headers,
//     named entries, packed arrays).
//
// This package provides the shared CBOR encoding and decoding modes so
// every re-encoding of a decoded tree produces identical bytes. The
// encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys, smallest integer encoding, no indefinite-length items.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(w)
//	decoder := codec.NewDecoder(r)
//
// The usual input is the output of [nbt.Native]: map[string]any trees
// with the codec's scalar types (int8/int16/int32/int64, float32/64,
// string) at the leaves. CBOR carries all of these natively, so the
// projection is lossless up to NBT's array-versus-list distinction,
// which CBOR does not have.
package codec

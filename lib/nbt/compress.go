// Copyright 2026 The Lodestone Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// gzipMagic is the two-byte gzip signature. Standalone NBT files
// (level.dat, servers.dat) are usually gzipped; IsGzip sniffs it so
// tools can accept both forms.
var gzipMagic = [2]byte{0x1f, 0x8b}

// UnmarshalGzip decodes a gzip-compressed NBT document from r into
// v. This is the usual shape of standalone world files.
func UnmarshalGzip(r io.Reader, v any) error {
	decompressor, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("nbt: gzip stream: %w", err)
	}
	defer decompressor.Close()
	return NewDecoder(decompressor).Decode(v)
}

// UnmarshalZlib decodes a zlib-compressed NBT document from r into
// v. Region files compress chunk payloads this way.
func UnmarshalZlib(r io.Reader, v any) error {
	decompressor, err := zlib.NewReader(r)
	if err != nil {
		return fmt.Errorf("nbt: zlib stream: %w", err)
	}
	defer decompressor.Close()
	return NewDecoder(decompressor).Decode(v)
}

// IsGzip reports whether data starts with the gzip signature.
func IsGzip(data []byte) bool {
	return len(data) >= 2 && data[0] == gzipMagic[0] && data[1] == gzipMagic[1]
}

// Copyright 2026 The Lodestone Authors
// SPDX-License-Identifier: Apache-2.0

// Package region reads Minecraft region files (.mca), the sector
// based container that stores up to 1024 chunks per file.
//
// A region file starts with an 8 KiB header: 1024 location entries
// (a 3-byte sector offset and a 1-byte sector count each) followed by
// 1024 big-endian 32-bit modification timestamps. A zero location
// entry means the chunk has not been generated. Each stored chunk is
// a 32-bit length, a one-byte compression scheme, and the compressed
// NBT document.
//
// The package separates container parsing from payload access: [Load]
// validates the header and chunk framing up front, while
// decompression and NBT decoding happen lazily per chunk through
// [Chunk.Payload] and [Chunk.Decode].
package region

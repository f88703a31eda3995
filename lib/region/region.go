// Copyright 2026 The Lodestone Authors
// SPDX-License-Identifier: Apache-2.0

package region

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/zeebo/blake3"

	"github.com/lodestone-foundation/nbt/lib/nbt"
)

const (
	// sectorSize is the allocation unit of a region file. Both the
	// header tables and chunk storage are sector aligned.
	sectorSize = 4096

	// tableEntries is the number of chunks a region file addresses:
	// a 32 by 32 grid.
	tableEntries = 1024

	// headerSize covers the location table and the timestamp table.
	headerSize = 2 * tableEntries * 4
)

// Scheme identifies the compression applied to a stored chunk. The
// values are container format constants.
type Scheme uint8

const (
	// SchemeGzip is RFC 1952 gzip. Rare in practice but part of the
	// format.
	SchemeGzip Scheme = 1

	// SchemeZlib is RFC 1950 zlib, the scheme vanilla servers write.
	SchemeZlib Scheme = 2

	// SchemeNone stores the NBT document uncompressed.
	SchemeNone Scheme = 3
)

// String returns the human-readable name of a compression scheme.
func (s Scheme) String() string {
	switch s {
	case SchemeGzip:
		return "gzip"
	case SchemeZlib:
		return "zlib"
	case SchemeNone:
		return "none"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// Hash is a 32-byte BLAKE3 digest of a chunk's decompressed payload.
type Hash [32]byte

// String returns the hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// chunkDomainKey separates chunk content hashes from any other BLAKE3
// use. The bytes are the ASCII domain name zero-padded to 32 bytes so
// the key stays readable in hex dumps.
var chunkDomainKey = [32]byte{
	'l', 'o', 'd', 'e', 's', 't', 'o', 'n', 'e', '.',
	'r', 'e', 'g', 'i', 'o', 'n', '.', 'c', 'h', 'u', 'n', 'k',
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// Chunk is one stored chunk of a region file. The compressed bytes
// are retained; decompression happens on demand.
type Chunk struct {
	// X and Z are region-local chunk coordinates, each in [0, 32).
	X, Z int

	// Timestamp is the chunk's last modification time as recorded in
	// the region header.
	Timestamp time.Time

	// Scheme is the compression applied to the stored document.
	Scheme Scheme

	compressed []byte
}

// Size returns the stored (compressed) payload size in bytes.
func (c *Chunk) Size() int {
	return len(c.compressed)
}

// Payload decompresses and returns the chunk's NBT document.
func (c *Chunk) Payload() ([]byte, error) {
	var r io.Reader
	switch c.Scheme {
	case SchemeGzip:
		gz, err := gzip.NewReader(bytes.NewReader(c.compressed))
		if err != nil {
			return nil, fmt.Errorf("region: chunk (%d, %d): %w", c.X, c.Z, err)
		}
		defer gz.Close()
		r = gz
	case SchemeZlib:
		zl, err := zlib.NewReader(bytes.NewReader(c.compressed))
		if err != nil {
			return nil, fmt.Errorf("region: chunk (%d, %d): %w", c.X, c.Z, err)
		}
		defer zl.Close()
		r = zl
	case SchemeNone:
		return bytes.Clone(c.compressed), nil
	default:
		return nil, fmt.Errorf("region: chunk (%d, %d): unknown compression scheme %d", c.X, c.Z, uint8(c.Scheme))
	}
	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("region: chunk (%d, %d): %w", c.X, c.Z, err)
	}
	return payload, nil
}

// Decode decompresses the chunk and unmarshals its NBT document into
// v, which follows the rules of [nbt.Unmarshal].
func (c *Chunk) Decode(v any) error {
	payload, err := c.Payload()
	if err != nil {
		return err
	}
	return nbt.Unmarshal(payload, v)
}

// ContentHash returns the domain-keyed BLAKE3 digest of the chunk's
// decompressed payload. Hashing uncompressed bytes makes the digest
// stable across compression scheme changes, so equal chunks compare
// equal between region files regardless of how they were stored.
func (c *Chunk) ContentHash() (Hash, error) {
	payload, err := c.Payload()
	if err != nil {
		return Hash{}, err
	}
	hasher, err := blake3.NewKeyed(chunkDomainKey[:])
	if err != nil {
		panic("region: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(payload)
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash, nil
}

// File is a parsed region file. Chunk payloads stay compressed until
// accessed.
type File struct {
	chunks [tableEntries]*Chunk
}

// Read consumes r to the end and parses the result as a region file.
func Read(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("region: %w", err)
	}
	return Load(data)
}

// Load parses a region file from memory. The header and every stored
// chunk's framing are validated; the compressed payloads are sliced
// out of data without copying.
func Load(data []byte) (*File, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("region: file is %d bytes, header needs %d", len(data), headerSize)
	}

	file := &File{}
	for index := 0; index < tableEntries; index++ {
		entry := data[index*4 : index*4+4]
		sectorOffset := int(entry[0])<<16 | int(entry[1])<<8 | int(entry[2])
		sectorCount := int(entry[3])
		if sectorOffset == 0 && sectorCount == 0 {
			continue
		}
		x, z := index%32, index/32
		if sectorOffset < 2 {
			return nil, fmt.Errorf("region: chunk (%d, %d): sector offset %d overlaps the header", x, z, sectorOffset)
		}
		start := sectorOffset * sectorSize
		end := start + sectorCount*sectorSize
		if end > len(data) {
			return nil, fmt.Errorf("region: chunk (%d, %d): sectors [%d, %d) exceed file size %d",
				x, z, sectorOffset, sectorOffset+sectorCount, len(data))
		}

		// The 32-bit length counts the scheme byte plus the payload.
		length := binary.BigEndian.Uint32(data[start : start+4])
		if length < 1 {
			return nil, fmt.Errorf("region: chunk (%d, %d): zero-length chunk", x, z)
		}
		if int(length) > end-start-4 {
			return nil, fmt.Errorf("region: chunk (%d, %d): length %d exceeds allocated sectors", x, z, length)
		}
		scheme := Scheme(data[start+4])
		switch scheme {
		case SchemeGzip, SchemeZlib, SchemeNone:
		default:
			return nil, fmt.Errorf("region: chunk (%d, %d): unknown compression scheme %d", x, z, uint8(scheme))
		}

		timestamp := binary.BigEndian.Uint32(data[tableEntries*4+index*4 : tableEntries*4+index*4+4])
		file.chunks[index] = &Chunk{
			X:          x,
			Z:          z,
			Timestamp:  time.Unix(int64(timestamp), 0).UTC(),
			Scheme:     scheme,
			compressed: data[start+5 : start+4+int(length)],
		}
	}
	return file, nil
}

// Chunk returns the chunk at region-local coordinates (x, z), or nil
// if that chunk is absent. Coordinates outside [0, 32) return nil.
func (f *File) Chunk(x, z int) *Chunk {
	if x < 0 || x >= 32 || z < 0 || z >= 32 {
		return nil
	}
	return f.chunks[z*32+x]
}

// Chunks returns the present chunks in table order (z-major, matching
// the header layout).
func (f *File) Chunks() []*Chunk {
	var present []*Chunk
	for _, chunk := range f.chunks {
		if chunk != nil {
			present = append(present, chunk)
		}
	}
	return present
}

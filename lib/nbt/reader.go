// Copyright 2026 The Lodestone Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// reader decodes the format's primitive shapes from a byte stream.
// Every method consumes exactly the documented number of bytes; short
// input surfaces as io.ErrUnexpectedEOF (or io.EOF from readKind when
// the stream ends cleanly on a tag boundary).
type reader struct {
	r   io.Reader
	buf [8]byte
}

func newReader(r io.Reader) *reader {
	return &reader{r: r}
}

// fill reads exactly n bytes into the scratch buffer.
func (r *reader) fill(n int) ([]byte, error) {
	b := r.buf[:n]
	if _, err := io.ReadFull(r.r, b); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return b, nil
}

// readKind reads one tag discriminant byte. A clean EOF here is
// passed through as io.EOF: a tag boundary is the one place a stream
// may legitimately end, which lets multi-document callers loop until
// Decode returns io.EOF.
func (r *reader) readKind() (Kind, error) {
	if _, err := io.ReadFull(r.r, r.buf[:1]); err != nil {
		return 0, err
	}
	return KindOf(r.buf[0])
}

func (r *reader) readByte() (int8, error) {
	b, err := r.fill(1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

func (r *reader) readShort() (int16, error) {
	b, err := r.fill(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(b)), nil
}

func (r *reader) readInt() (int32, error) {
	b, err := r.fill(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (r *reader) readLong() (int64, error) {
	b, err := r.fill(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

// readFloat and readDouble go through the raw bit pattern so NaN
// payloads survive the trip untouched.
func (r *reader) readFloat() (float32, error) {
	b, err := r.fill(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

func (r *reader) readDouble() (float64, error) {
	b, err := r.fill(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// readString reads a u16 big-endian byte-length prefix and then that
// many bytes of UTF-8. The format nominally uses Java's modified
// UTF-8; treating it as standard UTF-8 and rejecting invalid bytes is
// a documented simplification — real world data is plain ASCII names
// almost without exception.
func (r *reader) readString() (string, error) {
	b, err := r.fill(2)
	if err != nil {
		return "", err
	}
	length := binary.BigEndian.Uint16(b)
	if length == 0 {
		return "", nil
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(r.r, data); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("nbt: string is not valid UTF-8")
	}
	return string(data), nil
}

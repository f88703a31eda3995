// Copyright 2026 The Lodestone Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// pendingForm selects what, if anything, a tag writes immediately
// after its own kind byte on behalf of its parent.
type pendingForm uint8

const (
	// pendingNone: the tag writes its kind byte and payload only
	// (root tags and the terminating End of a compound).
	pendingNone pendingForm = iota

	// pendingName: a compound entry. The parent knows the entry
	// name; the child writes it right after its kind byte.
	pendingName

	// pendingLength: the first element of a non-empty list. The
	// parent knows the count; the element writes it right after its
	// kind byte, completing the list header.
	pendingLength

	// pendingOmit: a list element after the first. On the wire,
	// list elements are bare payloads — no kind byte, no name — so
	// the header write is suppressed entirely.
	pendingOmit
)

// pending is the deferred header suffix threaded through every
// recursive encode call. The wire format puts a tag's kind byte
// first, but the surrounding context (entry name, list count) is
// known only to the parent while the kind is known only to the child
// once it serializes. The parent hands the child this value; the
// child writes kind byte, then suffix, then payload.
type pending struct {
	form   pendingForm
	name   string
	length int32
}

func withName(name string) pending { return pending{form: pendingName, name: name} }
func withLength(n int32) pending   { return pending{form: pendingLength, length: n} }
func payloadOnly() pending         { return pending{form: pendingOmit} }

// writer encodes the format's primitive shapes to a byte stream,
// mirroring reader exactly.
type writer struct {
	w   io.Writer
	buf [8]byte
}

func newWriter(w io.Writer) *writer {
	return &writer{w: w}
}

func (w *writer) write(b []byte) error {
	_, err := w.w.Write(b)
	return err
}

// writeTagHeader writes a tag's kind byte followed by the pending
// suffix supplied by the parent context. With pendingOmit it writes
// nothing — the caller emits a bare payload.
func (w *writer) writeTagHeader(kind Kind, p pending) error {
	if p.form == pendingOmit {
		return nil
	}
	w.buf[0] = kind.Byte()
	if err := w.write(w.buf[:1]); err != nil {
		return err
	}
	switch p.form {
	case pendingName:
		return w.writeString(p.name)
	case pendingLength:
		return w.writeInt(p.length)
	}
	return nil
}

func (w *writer) writeByte(v int8) error {
	w.buf[0] = byte(v)
	return w.write(w.buf[:1])
}

func (w *writer) writeShort(v int16) error {
	binary.BigEndian.PutUint16(w.buf[:2], uint16(v))
	return w.write(w.buf[:2])
}

func (w *writer) writeInt(v int32) error {
	binary.BigEndian.PutUint32(w.buf[:4], uint32(v))
	return w.write(w.buf[:4])
}

func (w *writer) writeLong(v int64) error {
	binary.BigEndian.PutUint64(w.buf[:8], uint64(v))
	return w.write(w.buf[:8])
}

func (w *writer) writeFloat(v float32) error {
	binary.BigEndian.PutUint32(w.buf[:4], math.Float32bits(v))
	return w.write(w.buf[:4])
}

func (w *writer) writeDouble(v float64) error {
	binary.BigEndian.PutUint64(w.buf[:8], math.Float64bits(v))
	return w.write(w.buf[:8])
}

// writeString writes the u16 byte-length prefix (byte length, not
// rune count) followed by the string's bytes.
func (w *writer) writeString(s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("nbt: string of %d bytes exceeds the 65535-byte limit", len(s))
	}
	if err := w.writeShort(int16(uint16(len(s)))); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	return w.write([]byte(s))
}

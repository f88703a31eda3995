// Copyright 2026 The Lodestone Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestStringLengthPrefixIsByteLength(t *testing.T) {
	// "étage" is 5 runes but 6 bytes; the prefix counts bytes.
	var buf bytes.Buffer
	w := newWriter(&buf)
	if err := w.writeString("étage"); err != nil {
		t.Fatalf("writeString: %v", err)
	}
	if got := buf.Bytes()[:2]; got[0] != 0 || got[1] != 6 {
		t.Errorf("length prefix = % x, want 00 06", got)
	}

	r := newReader(&buf)
	s, err := r.readString()
	if err != nil {
		t.Fatalf("readString: %v", err)
	}
	if s != "étage" {
		t.Errorf("round trip = %q", s)
	}
}

func TestWriteStringTooLong(t *testing.T) {
	w := newWriter(io.Discard)
	if err := w.writeString(strings.Repeat("a", 70000)); err == nil {
		t.Fatal("expected error for string over 65535 bytes")
	}
}

func TestReadStringRejectsInvalidUTF8(t *testing.T) {
	r := newReader(bytes.NewReader([]byte{0x00, 0x02, 0xff, 0xfe}))
	if _, err := r.readString(); err == nil {
		t.Fatal("expected error for invalid UTF-8")
	}
}

func TestShortInputIsUnexpectedEOF(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		read func(*reader) error
	}{
		{"long", []byte{1, 2, 3}, func(r *reader) error { _, err := r.readLong(); return err }},
		{"string body", []byte{0x00, 0x05, 'a'}, func(r *reader) error { _, err := r.readString(); return err }},
		{"double", nil, func(r *reader) error { _, err := r.readDouble(); return err }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.read(newReader(bytes.NewReader(c.data)))
			if err != io.ErrUnexpectedEOF {
				t.Errorf("got %v, want io.ErrUnexpectedEOF", err)
			}
		})
	}
}

func TestPrimitiveRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := newWriter(&buf)
	if err := w.writeByte(-12); err != nil {
		t.Fatal(err)
	}
	if err := w.writeShort(-30000); err != nil {
		t.Fatal(err)
	}
	if err := w.writeInt(-2000000000); err != nil {
		t.Fatal(err)
	}
	if err := w.writeLong(-9000000000000000000); err != nil {
		t.Fatal(err)
	}
	if err := w.writeFloat(3.5); err != nil {
		t.Fatal(err)
	}
	if err := w.writeDouble(-2.25); err != nil {
		t.Fatal(err)
	}

	r := newReader(&buf)
	if v, _ := r.readByte(); v != -12 {
		t.Errorf("byte = %d", v)
	}
	if v, _ := r.readShort(); v != -30000 {
		t.Errorf("short = %d", v)
	}
	if v, _ := r.readInt(); v != -2000000000 {
		t.Errorf("int = %d", v)
	}
	if v, _ := r.readLong(); v != -9000000000000000000 {
		t.Errorf("long = %d", v)
	}
	if v, _ := r.readFloat(); v != 3.5 {
		t.Errorf("float = %v", v)
	}
	if v, _ := r.readDouble(); v != -2.25 {
		t.Errorf("double = %v", v)
	}
}

func TestWriteTagHeaderDeferredSuffix(t *testing.T) {
	var buf bytes.Buffer
	w := newWriter(&buf)

	// A compound entry header: kind byte, then the parent's name.
	if err := w.writeTagHeader(TagString, withName("ip")); err != nil {
		t.Fatalf("writeTagHeader: %v", err)
	}
	want := []byte{0x08, 0x00, 0x02, 'i', 'p'}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("name suffix: got % x, want % x", buf.Bytes(), want)
	}

	// A first list element header: kind byte, then the count.
	buf.Reset()
	if err := w.writeTagHeader(TagCompound, withLength(3)); err != nil {
		t.Fatalf("writeTagHeader: %v", err)
	}
	want = []byte{0x0a, 0x00, 0x00, 0x00, 0x03}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("length suffix: got % x, want % x", buf.Bytes(), want)
	}

	// A later list element writes nothing at all.
	buf.Reset()
	if err := w.writeTagHeader(TagCompound, payloadOnly()); err != nil {
		t.Fatalf("writeTagHeader: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("payload-only header wrote % x", buf.Bytes())
	}
}

// Copyright 2026 The Lodestone Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

func TestUnmarshalGzip(t *testing.T) {
	var compressed bytes.Buffer
	gz := gzip.NewWriter(&compressed)
	if _, err := gz.Write(serversDocument); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}

	if !IsGzip(compressed.Bytes()) {
		t.Error("IsGzip did not recognize gzip output")
	}

	var value serverList
	if err := UnmarshalGzip(&compressed, &value); err != nil {
		t.Fatalf("UnmarshalGzip: %v", err)
	}
	if len(value.Servers) != 1 || value.Servers[0].IP != "loucaskreger.com" {
		t.Errorf("got %+v", value)
	}
}

func TestUnmarshalZlib(t *testing.T) {
	var compressed bytes.Buffer
	zl := zlib.NewWriter(&compressed)
	if _, err := zl.Write(serversDocument); err != nil {
		t.Fatalf("zlib write: %v", err)
	}
	if err := zl.Close(); err != nil {
		t.Fatalf("zlib close: %v", err)
	}

	var value serverList
	if err := UnmarshalZlib(&compressed, &value); err != nil {
		t.Fatalf("UnmarshalZlib: %v", err)
	}
	if value.Servers[0].Name != "Minecraft Server" {
		t.Errorf("got %+v", value)
	}
}

func TestIsGzipRejectsPlainDocuments(t *testing.T) {
	if IsGzip(serversDocument) {
		t.Error("plain document misidentified as gzip")
	}
	if IsGzip(nil) || IsGzip([]byte{0x1f}) {
		t.Error("short input misidentified as gzip")
	}
}

// Copyright 2026 The Lodestone Authors
// SPDX-License-Identifier: Apache-2.0

package nbtfmt

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/lodestone-foundation/nbt/lib/nbt"
)

func TestSprintTree(t *testing.T) {
	tree := nbt.Compound{
		{Name: "DataVersion", Value: nbt.Int(3465)},
		{Name: "servers", Value: nbt.List{
			nbt.Compound{
				{Name: "ip", Value: nbt.String("loucaskreger.com")},
				{Name: "name", Value: nbt.String("Minecraft Server")},
			},
		}},
	}

	want := strings.Join([]string{
		"Compound (2 entries)",
		"  DataVersion: Int 3465",
		"  servers: List of Compound (1 element)",
		"    Compound (2 entries)",
		`      ip: String "loucaskreger.com"`,
		`      name: String "Minecraft Server"`,
		"",
	}, "\n")
	if got := Sprint(tree); got != want {
		t.Errorf("Sprint:\n%s\nwant:\n%s", got, want)
	}
}

func TestSprintScalarsAndArrays(t *testing.T) {
	tree := nbt.Compound{
		{Name: "b", Value: nbt.Byte(-5)},
		{Name: "s", Value: nbt.Short(300)},
		{Name: "l", Value: nbt.Long(1 << 40)},
		{Name: "f", Value: nbt.Float(1.5)},
		{Name: "d", Value: nbt.Double(-2.25)},
		{Name: "bytes", Value: nbt.ByteArray{1, -1, 127}},
		{Name: "ints", Value: nbt.IntArray{10, 20}},
		{Name: "longs", Value: nbt.LongArray{30}},
		{Name: "empty", Value: nbt.List{}},
	}

	want := strings.Join([]string{
		"Compound (9 entries)",
		"  b: Byte -5",
		"  s: Short 300",
		"  l: Long 1099511627776",
		"  f: Float 1.5",
		"  d: Double -2.25",
		"  bytes: ByteArray [1, -1, 127]",
		"  ints: IntArray [10, 20]",
		"  longs: LongArray [30]",
		"  empty: List (empty)",
		"",
	}, "\n")
	if got := Sprint(tree); got != want {
		t.Errorf("Sprint:\n%s\nwant:\n%s", got, want)
	}
}

func TestFprintCustomIndent(t *testing.T) {
	tree := nbt.Compound{
		{Name: "inner", Value: nbt.Compound{
			{Name: "v", Value: nbt.Int(1)},
		}},
	}

	var buf bytes.Buffer
	opts := Options{Indent: "\t"}
	if err := opts.Fprint(&buf, tree); err != nil {
		t.Fatalf("Fprint: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if !strings.HasPrefix(lines[1], "\tinner:") {
		t.Errorf("level 1 line %q not tab indented", lines[1])
	}
	if !strings.HasPrefix(lines[2], "\t\tv:") {
		t.Errorf("level 2 line %q not double tab indented", lines[2])
	}
}

func TestFprintPropagatesWriteErrors(t *testing.T) {
	tree := nbt.Compound{{Name: "v", Value: nbt.Int(1)}}
	if err := Fprint(failWriter{}, tree); err == nil {
		t.Error("Fprint swallowed the write error")
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, io.ErrShortWrite
}

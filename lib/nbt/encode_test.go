// Copyright 2026 The Lodestone Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"bytes"
	"errors"
	"testing"
)

type server struct {
	IP   string `nbt:"ip"`
	Name string `nbt:"name"`
}

type serverList struct {
	Servers []server `nbt:"servers"`
}

// serversDocument is the wire encoding of
// {servers: [{ip: "loucaskreger.com", name: "Minecraft Server"}]}:
// root compound header, a List entry named "servers" whose header is
// completed by the first element (element kind Compound, count 1),
// the nested compound's two String entries, and the two End markers.
var serversDocument = []byte{
	0x0a, 0x00, 0x00, // root Compound, empty name
	0x09, 0x00, 0x07, 's', 'e', 'r', 'v', 'e', 'r', 's', // List entry "servers"
	0x0a, 0x00, 0x00, 0x00, 0x01, // element kind Compound, count 1
	0x08, 0x00, 0x02, 'i', 'p', // String entry "ip"
	0x00, 0x10, 'l', 'o', 'u', 'c', 'a', 's', 'k', 'r', 'e', 'g', 'e', 'r', '.', 'c', 'o', 'm',
	0x08, 0x00, 0x04, 'n', 'a', 'm', 'e', // String entry "name"
	0x00, 0x10, 'M', 'i', 'n', 'e', 'c', 'r', 'a', 'f', 't', ' ', 'S', 'e', 'r', 'v', 'e', 'r',
	0x00, // nested End
	0x00, // root End
}

func TestMarshalServersDocument(t *testing.T) {
	value := serverList{Servers: []server{{
		IP:   "loucaskreger.com",
		Name: "Minecraft Server",
	}}}

	data, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(data, serversDocument) {
		t.Errorf("encoding mismatch:\ngot  % x\nwant % x", data, serversDocument)
	}
}

func TestMarshalEmptyList(t *testing.T) {
	// An empty list completes its own header: element kind End,
	// count 0. No element bytes follow.
	data, err := Marshal(struct {
		Items []int32 `nbt:"items"`
	}{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := []byte{
		0x0a, 0x00, 0x00,
		0x09, 0x00, 0x05, 'i', 't', 'e', 'm', 's',
		0x00, 0x00, 0x00, 0x00, 0x00, // element kind End, count 0
		0x00,
	}
	if !bytes.Equal(data, want) {
		t.Errorf("got % x\nwant % x", data, want)
	}
}

func TestMarshalListWritesSingleHeader(t *testing.T) {
	// A multi-element list carries exactly one element-kind byte
	// and one count; later elements are bare payloads.
	data, err := Marshal(struct {
		Values []int16 `nbt:"v"`
	}{Values: []int16{1, 2, 3}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := []byte{
		0x0a, 0x00, 0x00,
		0x09, 0x00, 0x01, 'v',
		0x02, 0x00, 0x00, 0x00, 0x03, // element kind Short, count 3
		0x00, 0x01, 0x00, 0x02, 0x00, 0x03,
		0x00,
	}
	if !bytes.Equal(data, want) {
		t.Errorf("got % x\nwant % x", data, want)
	}
}

func TestMarshalIntArray(t *testing.T) {
	// The packed encoding: kind byte 11, count, raw big-endian
	// elements, no per-element kind bytes.
	data, err := Marshal(struct {
		Values IntArray `nbt:"v"`
	}{Values: IntArray{1, 2, 3}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := []byte{
		0x0a, 0x00, 0x00,
		0x0b, 0x00, 0x01, 'v',
		0x00, 0x00, 0x00, 0x03,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x02,
		0x00, 0x00, 0x00, 0x03,
		0x00,
	}
	if !bytes.Equal(data, want) {
		t.Errorf("got % x\nwant % x", data, want)
	}
}

func TestMarshalBooleanAsByte(t *testing.T) {
	data, err := Marshal(struct {
		On  bool `nbt:"on"`
		Off bool `nbt:"off"`
	}{On: true})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := []byte{
		0x0a, 0x00, 0x00,
		0x01, 0x00, 0x02, 'o', 'n', 0x01,
		0x01, 0x00, 0x03, 'o', 'f', 'f', 0x00,
		0x00,
	}
	if !bytes.Equal(data, want) {
		t.Errorf("got % x\nwant % x", data, want)
	}
}

func TestMarshalRootMustBeCompound(t *testing.T) {
	for _, value := range []any{int32(5), "hello", []int32{1}, 3.5, true} {
		if _, err := Marshal(value); !errors.Is(err, ErrExpectedRootCompound) {
			t.Errorf("Marshal(%#v) = %v, want ErrExpectedRootCompound", value, err)
		}
	}
}

func TestMarshalUnrepresentableTypes(t *testing.T) {
	cases := []any{
		struct{ V uint32 }{},
		struct{ V []byte }{V: []byte{1}},
		struct{ V complex128 }{},
		struct{ V map[int]string }{V: map[int]string{1: "x"}},
	}
	for _, value := range cases {
		_, err := Marshal(value)
		var unsupported *UnsupportedTypeError
		if !errors.As(err, &unsupported) {
			t.Errorf("Marshal(%#v) = %v, want *UnsupportedTypeError", value, err)
		}
	}
}

func TestMarshalHeterogeneousListFails(t *testing.T) {
	_, err := Marshal(struct {
		Items []any `nbt:"items"`
	}{Items: []any{int32(1), "two"}})
	var mismatch *TagMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("got %v, want *TagMismatchError", err)
	}
	if mismatch.Received != TagString || mismatch.Expected != TagInt {
		t.Errorf("mismatch = received %s expected %s", mismatch.Received, mismatch.Expected)
	}
}

func TestMarshalOmitsNilPointerFields(t *testing.T) {
	seed := int64(7)
	withField, err := Marshal(struct {
		Seed *int64 `nbt:"LootTableSeed"`
	}{Seed: &seed})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	withoutField, err := Marshal(struct {
		Seed *int64 `nbt:"LootTableSeed"`
	}{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Contains(withField, []byte("LootTableSeed")) {
		t.Error("set pointer field missing from output")
	}
	if bytes.Contains(withoutField, []byte("LootTableSeed")) {
		t.Error("nil pointer field present in output")
	}
}

func TestMarshalMapDeterministic(t *testing.T) {
	value := map[string]int32{"zebra": 1, "apple": 2, "mango": 3}
	first, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for i := 0; i < 16; i++ {
		again, err := Marshal(value)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("map encoding not deterministic:\n% x\n% x", first, again)
		}
	}
	// Sorted order: apple before mango before zebra.
	if bytes.Index(first, []byte("apple")) > bytes.Index(first, []byte("zebra")) {
		t.Error("map keys not sorted")
	}
}

func TestMarshalCompoundPreservesOrder(t *testing.T) {
	value := Compound{
		{Name: "zzz", Value: Byte(1)},
		{Name: "aaa", Value: Byte(2)},
	}
	data, err := Marshal(value)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if bytes.Index(data, []byte("zzz")) > bytes.Index(data, []byte("aaa")) {
		t.Error("compound entry order not preserved")
	}
}

func TestMarshalDepthLimit(t *testing.T) {
	type node struct {
		Child *node `nbt:"child"`
	}
	root := &node{}
	current := root
	for i := 0; i < maxDepth+8; i++ {
		next := &node{}
		current.Child = next
		current = next
	}
	if _, err := Marshal(root); !errors.Is(err, ErrMaxDepth) {
		t.Fatalf("got %v, want ErrMaxDepth", err)
	}
}

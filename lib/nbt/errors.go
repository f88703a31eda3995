// Copyright 2026 The Lodestone Authors
// SPDX-License-Identifier: Apache-2.0

package nbt

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrExpectedRootCompound is returned when a stream's first tag is
// not a compound, or when a value whose shape is not record-like is
// encoded at the root. The format requires a compound root.
var ErrExpectedRootCompound = errors.New("nbt: root tag must be a compound")

// ErrMaxDepth is returned when a tree nests deeper than maxDepth
// levels. The limit bounds the engine's recursion so adversarial
// input exhausts the error path instead of the stack.
var ErrMaxDepth = errors.New("nbt: maximum nesting depth exceeded")

// maxDepth is the nesting limit shared by the decode and encode
// engines. 512 is far beyond any legitimate world data.
const maxDepth = 512

// InvalidTagError reports a wire discriminant byte outside the
// defined range 0–12.
type InvalidTagError struct {
	ID byte
}

func (e *InvalidTagError) Error() string {
	return fmt.Sprintf("nbt: invalid tag id %d", e.ID)
}

// TagMismatchError reports a tag whose kind cannot satisfy the shape
// the target requested: for example a String tag decoded into an int
// field, or a heterogeneous slice encoded as a list.
type TagMismatchError struct {
	Received Kind
	Expected Kind
}

func (e *TagMismatchError) Error() string {
	return fmt.Sprintf("nbt: expected %s tag but received %s", e.Expected, e.Received)
}

// BooleanByteError reports a Byte tag decoded into a bool target
// whose payload was neither 0 nor 1.
type BooleanByteError struct {
	Value int8
}

func (e *BooleanByteError) Error() string {
	return fmt.Sprintf("nbt: expected a boolean byte of 0 or 1 but got %d", e.Value)
}

// UnsupportedTypeError reports a Go type with no wire representation:
// unsigned integers, []byte, channels, funcs, complex numbers, and
// maps with non-string keys.
type UnsupportedTypeError struct {
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	if e.Type == nil {
		return "nbt: unsupported value: nil"
	}
	return fmt.Sprintf("nbt: unsupported type: %s", e.Type)
}

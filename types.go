// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package dngmeta

import (
	"encoding/binary"
	"fmt"
)

const (
	byteOrderBigEndian    = 0x4d4d
	byteOrderLittleEndian = 0x4949
)

// ByteOrder is the byte order of a file, set once from the header.
//
//go:generate stringer -type=ByteOrder
type ByteOrder int

const (
	// BigEndian is the Motorola ("MM") byte order.
	BigEndian ByteOrder = iota
	// LittleEndian is the Intel ("II") byte order.
	LittleEndian
)

func (o ByteOrder) binary() binary.ByteOrder {
	if o == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// WordSize is derived from the header's magic number.
// It is informational only; all offsets are read as 32-bit values.
//
//go:generate stringer -type=WordSize
type WordSize int

const (
	// WordSize32 is classic TIFF (magic number 42).
	WordSize32 WordSize = iota
	// WordSize64 is BigTIFF (magic number 43).
	WordSize64
)

// Type is a TIFF 6.0 field type.
//
//go:generate stringer -type=Type -trimprefix=Type
type Type uint16

const (
	TypeByte      Type = 1
	TypeASCII     Type = 2
	TypeShort     Type = 3
	TypeLong      Type = 4
	TypeRational  Type = 5
	TypeSByte     Type = 6
	TypeUndefined Type = 7
	TypeSShort    Type = 8
	TypeSLong     Type = 9
	TypeSRational Type = 10
	TypeFloat     Type = 11
	TypeDouble    Type = 12
)

// Size in bytes of each type.
var typeSize = [...]int{
	TypeByte:      1,
	TypeASCII:     1,
	TypeShort:     2,
	TypeLong:      4,
	TypeRational:  8,
	TypeSByte:     1,
	TypeUndefined: 1,
	TypeSShort:    2,
	TypeSLong:     4,
	TypeSRational: 8,
	TypeFloat:     4,
	TypeDouble:    8,
}

// Size returns the width in bytes of one value of type t.
func (t Type) Size() (int, error) {
	if t < TypeByte || t > TypeDouble {
		return 0, fmt.Errorf("%w: %d", ErrUnknownType, uint16(t))
	}
	return typeSize[t], nil
}

// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package dngmeta

import (
	"encoding/binary"
	"fmt"
)

const (
	meaningOfLife    = 42
	meaningOfBigLife = 43
	headerSize       = 8
)

// Header is the 8 byte TIFF image file header.
type Header struct {
	ByteOrder ByteOrder
	WordSize  WordSize
	// FirstIFDOffset is the absolute offset of IFD0.
	FirstIFDOffset uint32
}

// ParseHeader parses the image file header at the start of b.
func ParseHeader(b []byte) (Header, error) {
	var h Header

	probe := bufReader{b: b, byteOrder: binary.BigEndian}
	byteOrderTag, err := probe.read2(0)
	if err != nil {
		return h, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}

	switch byteOrderTag {
	case byteOrderBigEndian:
		h.ByteOrder = BigEndian
	case byteOrderLittleEndian:
		h.ByteOrder = LittleEndian
	default:
		return h, fmt.Errorf("%w: byte order marker 0x%04x", ErrInvalidHeader, byteOrderTag)
	}

	r := newBufReader(b, h.ByteOrder)

	// The magic number is a 16-bit word in the file's byte order,
	// i.e. its significant byte is at index 2 for II and 3 for MM.
	magic, err := r.read2(2)
	if err != nil {
		return h, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	switch magic {
	case meaningOfLife:
		h.WordSize = WordSize32
	case meaningOfBigLife:
		h.WordSize = WordSize64
	default:
		return h, fmt.Errorf("%w: magic number %d", ErrInvalidHeader, magic)
	}

	h.FirstIFDOffset, err = r.read4(4)
	if err != nil {
		return h, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}

	return h, nil
}

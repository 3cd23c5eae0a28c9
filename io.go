// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package dngmeta

import (
	"encoding/binary"
)

// bufReader provides bounds checked reads of binary data from an in-memory buffer.
// It never modifies the buffer and is safe for concurrent use.
type bufReader struct {
	b         []byte
	byteOrder binary.ByteOrder
}

func newBufReader(b []byte, order ByteOrder) bufReader {
	return bufReader{b: b, byteOrder: order.binary()}
}

// check verifies that n bytes can be read starting at off.
func (e bufReader) check(off, n uint64) error {
	size := uint64(len(e.b))
	if n > size || off > size-n {
		return newOutOfBoundsErrorf("reading %d bytes at offset %d, buffer length %d", n, off, size)
	}
	return nil
}

func (e bufReader) read1(off uint64) (uint8, error) {
	if err := e.check(off, 1); err != nil {
		return 0, err
	}
	return e.b[off], nil
}

func (e bufReader) read2(off uint64) (uint16, error) {
	const n = 2
	if err := e.check(off, n); err != nil {
		return 0, err
	}
	return e.byteOrder.Uint16(e.b[off : off+n]), nil
}

func (e bufReader) read4(off uint64) (uint32, error) {
	const n = 4
	if err := e.check(off, n); err != nil {
		return 0, err
	}
	return e.byteOrder.Uint32(e.b[off : off+n]), nil
}

func (e bufReader) read8(off uint64) (uint64, error) {
	const n = 8
	if err := e.check(off, n); err != nil {
		return 0, err
	}
	return e.byteOrder.Uint64(e.b[off : off+n]), nil
}

// readBytesVolatile returns a slice of the underlying buffer.
// The caller must not modify it.
func (e bufReader) readBytesVolatile(off, n uint64) ([]byte, error) {
	if err := e.check(off, n); err != nil {
		return nil, err
	}
	return e.b[off : off+n], nil
}

// readBytes returns a copy of n bytes starting at off.
func (e bufReader) readBytes(off, n uint64) ([]byte, error) {
	b, err := e.readBytesVolatile(off, n)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), b...), nil
}

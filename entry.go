// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package dngmeta

import "fmt"

// Entry is one directory entry in an IFD.
//
// An entry is represented in 12 bytes:
//   - 2 bytes for the tag ID
//   - 2 bytes for the data type
//   - 4 bytes for the number of data values of the specified type
//   - 4 bytes for the value itself, if it fits, otherwise for the absolute
//     offset of the values in the file.
type Entry struct {
	Tag   Tag
	Type  Type
	Count uint32
	// ValueOrOffset is the last 4 bytes of the entry decoded as an uint32 in the file's byte order.
	ValueOrOffset uint32
}

// Size returns the total size in bytes of the entry's values.
func (e Entry) Size() (uint64, error) {
	width, err := e.Type.Size()
	if err != nil {
		return 0, err
	}
	return uint64(width) * uint64(e.Count), nil
}

// IsInline reports whether the values are stored in the entry itself.
func (e Entry) IsInline() (bool, error) {
	size, err := e.Size()
	if err != nil {
		return false, err
	}
	return size <= 4, nil
}

// Values decodes the entry's values from b, the complete file.
//
// Values of 4 bytes or less are stored in the entry itself, left-justified
// in the file's byte order. They are decoded from the 4 bytes exactly as
// they appear in the file. Larger values are read from the absolute offset
// ValueOrOffset.
func (e Entry) Values(b []byte, order ByteOrder) (Values, error) {
	return e.values(newBufReader(b, order))
}

func (e Entry) values(r bufReader) (Values, error) {
	width, err := e.Type.Size()
	if err != nil {
		return Values{}, fmt.Errorf("tag %s: %w", e.Tag, err)
	}
	size := uint64(width) * uint64(e.Count)

	var (
		src   bufReader
		start uint64
	)

	if size <= 4 {
		var inline [4]byte
		r.byteOrder.PutUint32(inline[:], e.ValueOrOffset)
		src = bufReader{b: inline[:], byteOrder: r.byteOrder}
	} else {
		// Check the complete range before allocating anything.
		if err := r.check(uint64(e.ValueOrOffset), size); err != nil {
			return Values{}, fmt.Errorf("tag %s: %w", e.Tag, err)
		}
		src = r
		start = uint64(e.ValueOrOffset)
	}

	vals := make([]Value, e.Count)
	for i := range vals {
		v, err := src.decodeValue(e.Type, start+uint64(i)*uint64(width))
		if err != nil {
			return Values{}, fmt.Errorf("tag %s: %w", e.Tag, err)
		}
		vals[i] = v
	}

	return Values{vals: vals}, nil
}

// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package dngmeta

import (
	"fmt"
	"slices"
)

const entrySize = 12

// IFD is an Image File Directory.
type IFD struct {
	// Offset is the absolute offset the IFD was read from. It identifies the IFD.
	Offset uint32

	// Entries keyed by tag.
	Entries map[Tag]Entry

	// NextIFDOffset is the offset stored after the last entry.
	// DNG does not chain IFDs, so this is never followed.
	NextIFDOffset uint32
}

// Entry returns the entry for tag, if present.
func (ifd *IFD) Entry(tag Tag) (Entry, bool) {
	e, found := ifd.Entries[tag]
	return e, found
}

// Has reports whether the IFD has an entry for tag.
func (ifd *IFD) Has(tag Tag) bool {
	_, found := ifd.Entries[tag]
	return found
}

// Tags returns the tags in the IFD in ascending order.
func (ifd *IFD) Tags() []Tag {
	tags := make([]Tag, 0, len(ifd.Entries))
	for t := range ifd.Entries {
		tags = append(tags, t)
	}
	slices.Sort(tags)
	return tags
}

// ParseIFD parses the IFD at the absolute offset in b.
func ParseIFD(b []byte, offset uint32, order ByteOrder) (*IFD, error) {
	return parseIFD(newBufReader(b, order), offset, func(string, ...any) {})
}

func parseIFD(r bufReader, offset uint32, warnf func(string, ...any)) (*IFD, error) {
	pos := uint64(offset)

	numEntries, err := r.read2(pos)
	if err != nil {
		return nil, fmt.Errorf("IFD at offset %d: entry count: %w", offset, err)
	}
	pos += 2

	// Check the complete table, including the next IFD offset, up front.
	if err := r.check(pos, uint64(numEntries)*entrySize+4); err != nil {
		return nil, fmt.Errorf("IFD at offset %d with %d entries: %w", offset, numEntries, err)
	}

	ifd := &IFD{
		Offset:  offset,
		Entries: make(map[Tag]Entry, numEntries),
	}

	var prev Tag
	for i := range int(numEntries) {
		e, err := readEntry(r, pos)
		if err != nil {
			return nil, fmt.Errorf("IFD at offset %d: entry %d: %w", offset, i, err)
		}
		if _, found := ifd.Entries[e.Tag]; found {
			warnf("IFD at offset %d: duplicate tag %s, the last one wins", offset, e.Tag)
		} else if i > 0 && e.Tag < prev {
			warnf("IFD at offset %d: tag %s is out of ascending order", offset, e.Tag)
		}
		prev = e.Tag
		ifd.Entries[e.Tag] = e
		pos += entrySize
	}

	ifd.NextIFDOffset, err = r.read4(pos)
	if err != nil {
		return nil, fmt.Errorf("IFD at offset %d: next IFD offset: %w", offset, err)
	}

	return ifd, nil
}

func readEntry(r bufReader, pos uint64) (Entry, error) {
	var (
		e   Entry
		err error
		u16 uint16
	)
	if u16, err = r.read2(pos); err != nil {
		return e, err
	}
	e.Tag = Tag(u16)
	if u16, err = r.read2(pos + 2); err != nil {
		return e, err
	}
	e.Type = Type(u16)
	if e.Count, err = r.read4(pos + 4); err != nil {
		return e, err
	}
	if e.ValueOrOffset, err = r.read4(pos + 8); err != nil {
		return e, err
	}
	return e, nil
}

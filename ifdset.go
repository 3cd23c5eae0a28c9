// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package dngmeta

import (
	"fmt"
	"slices"
)

const defaultLimitNumIFDs = 1000

// IFDSet is the resolved tree of IFDs in a file, IFD0 and all
// SubIFDs reachable from it, keyed by their absolute offsets.
type IFDSet struct {
	root uint32
	ifds map[uint32]*IFD

	thumbnail    uint32
	hasThumbnail bool

	rawImage    uint32
	hasRawImage bool
}

// Root returns IFD0.
func (s *IFDSet) Root() *IFD {
	return s.ifds[s.root]
}

// Get returns the IFD at offset.
func (s *IFDSet) Get(offset uint32) (*IFD, bool) {
	ifd, found := s.ifds[offset]
	return ifd, found
}

// Len returns the number of IFDs.
func (s *IFDSet) Len() int {
	return len(s.ifds)
}

// IFDs returns all IFDs keyed by offset. The returned map must not be modified.
func (s *IFDSet) IFDs() map[uint32]*IFD {
	return s.ifds
}

// Offsets returns the offsets of all IFDs in ascending order.
func (s *IFDSet) Offsets() []uint32 {
	offsets := make([]uint32, 0, len(s.ifds))
	for off := range s.ifds {
		offsets = append(offsets, off)
	}
	slices.Sort(offsets)
	return offsets
}

// Thumbnail returns the offset of the thumbnail IFD, the IFD with the lowest
// offset that has a NewSubFileType of 1.
func (s *IFDSet) Thumbnail() (uint32, bool) {
	return s.thumbnail, s.hasThumbnail
}

// RawImage returns the offset of the main image IFD, the largest IFD
// with a NewSubFileType of 0.
func (s *IFDSet) RawImage() (uint32, bool) {
	return s.rawImage, s.hasRawImage
}

type resolveOptions struct {
	limitNumIFDs uint32
	warnf        func(string, ...any)
}

// ResolveIFDs parses IFD0 at h.FirstIFDOffset and every IFD reachable through SubIFDs.
func ResolveIFDs(b []byte, h Header) (*IFDSet, error) {
	opts := resolveOptions{
		limitNumIFDs: defaultLimitNumIFDs,
		warnf:        func(string, ...any) {},
	}
	return resolveIFDs(newBufReader(b, h.ByteOrder), h, opts)
}

// ifdFrame is an IFD on the current traversal path
// with the SubIFDs not yet visited.
type ifdFrame struct {
	offset   uint32
	children []uint32
	next     int
}

func resolveIFDs(r bufReader, h Header, opts resolveOptions) (*IFDSet, error) {
	if h.FirstIFDOffset < headerSize {
		return nil, fmt.Errorf("%w: first IFD offset %d overlaps the header", ErrInvalidHeader, h.FirstIFDOffset)
	}

	s := &IFDSet{
		root: h.FirstIFDOffset,
		ifds: make(map[uint32]*IFD),
	}

	var stack []*ifdFrame
	onPath := make(map[uint32]bool)

	push := func(offset uint32) error {
		if uint32(len(s.ifds)) >= opts.limitNumIFDs {
			return fmt.Errorf("%w: more than %d IFDs", ErrLimitExceeded, opts.limitNumIFDs)
		}
		ifd, err := parseIFD(r, offset, opts.warnf)
		if err != nil {
			return err
		}
		s.ifds[offset] = ifd
		children, err := subIFDOffsets(r, ifd)
		if err != nil {
			return err
		}
		stack = append(stack, &ifdFrame{offset: offset, children: children})
		onPath[offset] = true
		return nil
	}

	if err := push(h.FirstIFDOffset); err != nil {
		return nil, err
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next == len(top.children) {
			stack = stack[:len(stack)-1]
			delete(onPath, top.offset)
			continue
		}
		child := top.children[top.next]
		top.next++

		if onPath[child] {
			return nil, fmt.Errorf("%w: IFD at offset %d refers back to IFD at offset %d", ErrCyclicStructure, top.offset, child)
		}
		if _, done := s.ifds[child]; done {
			// Reachable through more than one parent.
			continue
		}
		if err := push(child); err != nil {
			return nil, err
		}
	}

	if err := s.selectThumbnail(r); err != nil {
		return nil, err
	}
	s.selectRawImage(r, opts.warnf)

	return s, nil
}

func subIFDOffsets(r bufReader, ifd *IFD) ([]uint32, error) {
	e, found := ifd.Entry(TagSubIFDs)
	if !found {
		return nil, nil
	}
	vals, err := e.values(r)
	if err != nil {
		return nil, fmt.Errorf("IFD at offset %d: %w", ifd.Offset, err)
	}
	offsets, err := vals.Uint32s()
	if err != nil {
		return nil, fmt.Errorf("IFD at offset %d: tag %s as uint32: %w", ifd.Offset, TagSubIFDs, err)
	}
	return offsets, nil
}

// subFileType returns the NewSubFileType of ifd, if set.
func subFileType(r bufReader, ifd *IFD) (uint32, bool, error) {
	e, found := ifd.Entry(TagNewSubFileType)
	if !found {
		return 0, false, nil
	}
	vals, err := e.values(r)
	if err != nil {
		return 0, false, fmt.Errorf("IFD at offset %d: %w", ifd.Offset, err)
	}
	v, err := vals.Uint32()
	if err != nil {
		return 0, false, fmt.Errorf("IFD at offset %d: tag %s as uint32: %w", ifd.Offset, TagNewSubFileType, err)
	}
	return v, true, nil
}

// DNG 1.6, SubIFD Trees: the reduced resolution preview is marked with NewSubFileType 1.
func (s *IFDSet) selectThumbnail(r bufReader) error {
	for _, offset := range s.Offsets() {
		typ, found, err := subFileType(r, s.ifds[offset])
		if err != nil {
			return err
		}
		if found && typ == subFileTypeThumbnail && !s.hasThumbnail {
			s.thumbnail, s.hasThumbnail = offset, true
		}
	}
	return nil
}

func (s *IFDSet) selectRawImage(r bufReader, warnf func(string, ...any)) {
	var bestArea uint64
	for _, offset := range s.Offsets() {
		ifd := s.ifds[offset]
		typ, found, err := subFileType(r, ifd)
		if err != nil {
			// Not reachable, selectThumbnail fails on the same IFDs.
			continue
		}
		if !found || typ != subFileTypeMain {
			continue
		}
		w, err := optionalUint32(r, ifd, TagImageWidth)
		if err != nil {
			warnf("IFD at offset %d: %s", offset, err)
		}
		h, err := optionalUint32(r, ifd, TagImageLength)
		if err != nil {
			warnf("IFD at offset %d: %s", offset, err)
		}
		area := uint64(w) * uint64(h)
		if !s.hasRawImage || area > bestArea {
			s.rawImage, s.hasRawImage, bestArea = offset, true, area
		}
	}
}

func optionalUint32(r bufReader, ifd *IFD, tag Tag) (uint32, error) {
	e, found := ifd.Entry(tag)
	if !found {
		return 0, nil
	}
	vals, err := e.values(r)
	if err != nil {
		return 0, err
	}
	v, err := vals.Uint32()
	if err != nil {
		return 0, fmt.Errorf("tag %s as uint32: %w", tag, err)
	}
	return v, nil
}

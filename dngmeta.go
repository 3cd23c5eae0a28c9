// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

// Package dngmeta decodes the IFD structure of Digital Negative (DNG) files
// and extracts the embedded uncompressed RGB thumbnail.
package dngmeta

import (
	"errors"
	"fmt"
)

// Options contains the options for the Decode function.
type Options struct {
	// The complete file contents. Decode never modifies it.
	Data []byte

	// Warnf will be called for each warning.
	Warnf func(string, ...any)

	// LimitNumIFDs is the maximum number of IFDs to resolve.
	// Default value is 1000.
	LimitNumIFDs uint32
}

// DNG is a decoded DNG file.
// It is immutable and safe for concurrent use.
type DNG struct {
	r      bufReader
	header Header
	ifds   *IFDSet
	warnf  func(string, ...any)
}

// Decode parses the header and resolves the IFD tree in opts.Data.
//
// Structurally broken files fail with an error for which IsInvalidFormat returns true.
func Decode(opts Options) (dng *DNG, err error) {
	defer func() {
		if err != nil && isInvalidFormatErrorCandidate(err) {
			err = newInvalidFormatError(err)
		}
	}()

	if opts.Data == nil {
		return nil, fmt.Errorf("no data provided")
	}
	if opts.Warnf == nil {
		opts.Warnf = func(string, ...any) {}
	}
	if opts.LimitNumIFDs == 0 {
		opts.LimitNumIFDs = defaultLimitNumIFDs
	}

	h, err := ParseHeader(opts.Data)
	if err != nil {
		return nil, err
	}
	if h.WordSize == WordSize64 {
		opts.Warnf("BigTIFF magic number found; offsets are read as 32-bit values")
	}

	r := newBufReader(opts.Data, h.ByteOrder)

	ifds, err := resolveIFDs(r, h, resolveOptions{
		limitNumIFDs: opts.LimitNumIFDs,
		warnf:        opts.Warnf,
	})
	if err != nil {
		return nil, err
	}

	return &DNG{
		r:      r,
		header: h,
		ifds:   ifds,
		warnf:  opts.Warnf,
	}, nil
}

// Header returns the image file header.
func (d *DNG) Header() Header {
	return d.header
}

// IFDs returns the resolved IFD tree.
func (d *DNG) IFDs() *IFDSet {
	return d.ifds
}

// Values decodes the values of tag in the IFD at ifdOffset.
func (d *DNG) Values(ifdOffset uint32, tag Tag) (Values, error) {
	ifd, found := d.ifds.Get(ifdOffset)
	if !found {
		return Values{}, fmt.Errorf("no IFD at offset %d", ifdOffset)
	}
	e, found := ifd.Entry(tag)
	if !found {
		return Values{}, &MissingRequiredTagError{Tag: tag, IFDOffset: ifdOffset}
	}
	return e.values(d.r)
}

// ASCII returns the value of the ASCII tag in the IFD at ifdOffset as a string.
func (d *DNG) ASCII(ifdOffset uint32, tag Tag) (string, error) {
	vals, err := d.Values(ifdOffset, tag)
	if err != nil {
		return "", err
	}
	return vals.Text()
}

// Thumbnail extracts the thumbnail selected by IFDSet.Thumbnail.
func (d *DNG) Thumbnail() (*ThumbnailImage, error) {
	offset, found := d.ifds.Thumbnail()
	if !found {
		return nil, ErrThumbnailNotFound
	}
	return d.ThumbnailFrom(d.ifds.ifds[offset])
}

// ThumbnailFrom extracts an uncompressed RGB8 image from ifd,
// regardless of its NewSubFileType.
func (d *DNG) ThumbnailFrom(ifd *IFD) (*ThumbnailImage, error) {
	if ifd == nil {
		return nil, ErrThumbnailNotFound
	}
	return extractThumbnail(d.r, ifd)
}

// XMP returns the raw XMP packet stored in IFD0.
func (d *DNG) XMP() ([]byte, error) {
	vals, err := d.Values(d.ifds.root, TagXMP)
	if err != nil {
		return nil, err
	}
	return vals.Bytes()
}

// ExifIFD parses the EXIF IFD referenced from IFD0.
// It is not part of the IFDSet.
func (d *DNG) ExifIFD() (*IFD, error) {
	vals, err := d.Values(d.ifds.root, TagExifIFDPointer)
	if err != nil {
		return nil, err
	}
	offset, err := vals.Uint32()
	if err != nil {
		return nil, fmt.Errorf("tag %s as uint32: %w", TagExifIFDPointer, err)
	}
	return parseIFD(d.r, offset, d.warnf)
}

// HandleTagFunc is the function that is called for each tag.
type HandleTagFunc func(info TagInfo) error

// TagInfo contains information about a tag.
type TagInfo struct {
	// The offset of the IFD the tag was found in.
	IFDOffset uint32
	// The directory entry.
	Entry Entry
	// The decoded values.
	Values Values
}

// Walk calls fn for every entry in every IFD, ordered by IFD offset and then by tag.
// Walking stops at the first error; ErrStopWalking stops without error.
func (d *DNG) Walk(fn HandleTagFunc) error {
	for _, offset := range d.ifds.Offsets() {
		ifd := d.ifds.ifds[offset]
		for _, tag := range ifd.Tags() {
			e := ifd.Entries[tag]
			vals, err := e.values(d.r)
			if err != nil {
				return fmt.Errorf("IFD at offset %d: %w", offset, err)
			}
			if err := fn(TagInfo{IFDOffset: offset, Entry: e, Values: vals}); err != nil {
				if errors.Is(err, ErrStopWalking) {
					return nil
				}
				return err
			}
		}
	}
	return nil
}

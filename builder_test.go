// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package dngmeta

import (
	"encoding/binary"
	"math"
)

// testEntry is a directory entry with its values already encoded in the file's byte order.
type testEntry struct {
	tag   Tag
	typ   Type
	count uint32
	data  []byte

	// If direct is set, valueOrOffset is written as is to the value field.
	direct        bool
	valueOrOffset uint32
}

type byteOrderAppender interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// dngBuilder writes synthetic DNG files for tests.
type dngBuilder struct {
	o byteOrderAppender
	b []byte
}

func newDNGBuilder(order ByteOrder) *dngBuilder {
	b := &dngBuilder{o: order.binary().(byteOrderAppender)}
	if order == LittleEndian {
		b.b = append(b.b, 'I', 'I')
	} else {
		b.b = append(b.b, 'M', 'M')
	}
	b.put16(meaningOfLife)
	b.put32(0) // first IFD, set with setFirstIFD.
	return b
}

func (b *dngBuilder) put16(v uint16) {
	b.b = b.o.AppendUint16(b.b, v)
}

func (b *dngBuilder) put32(v uint32) {
	b.b = b.o.AppendUint32(b.b, v)
}

func (b *dngBuilder) patch32(pos, v uint32) {
	b.o.PutUint32(b.b[pos:], v)
}

func (b *dngBuilder) setFirstIFD(offset uint32) {
	b.patch32(4, offset)
}

// blob appends data and returns its offset.
func (b *dngBuilder) blob(data []byte) uint32 {
	// Keep values word aligned as TIFF recommends.
	if len(b.b)%2 == 1 {
		b.b = append(b.b, 0)
	}
	off := uint32(len(b.b))
	b.b = append(b.b, data...)
	return off
}

// ifd appends the out of line values and then the IFD itself, returning the IFD offset.
func (b *dngBuilder) ifd(entries ...testEntry) uint32 {
	offsets := make([]uint32, len(entries))
	for i, e := range entries {
		if !e.direct && len(e.data) > 4 {
			offsets[i] = b.blob(e.data)
		}
	}
	if len(b.b)%2 == 1 {
		b.b = append(b.b, 0)
	}
	off := uint32(len(b.b))
	b.put16(uint16(len(entries)))
	for i, e := range entries {
		b.put16(uint16(e.tag))
		b.put16(uint16(e.typ))
		b.put32(e.count)
		if e.direct {
			b.put32(e.valueOrOffset)
		} else if len(e.data) > 4 {
			b.put32(offsets[i])
		} else {
			var v [4]byte
			copy(v[:], e.data)
			b.b = append(b.b, v[:]...)
		}
	}
	b.put32(0) // next IFD
	return off
}

// valuePos returns the position of the value field of entry i in the IFD at offset.
func (b *dngBuilder) valuePos(ifdOffset uint32, i int) uint32 {
	return ifdOffset + 2 + uint32(i)*entrySize + 8
}

func (b *dngBuilder) bytes() []byte {
	return b.b
}

func (b *dngBuilder) short(tag Tag, vals ...uint16) testEntry {
	var data []byte
	for _, v := range vals {
		data = b.o.AppendUint16(data, v)
	}
	return testEntry{tag: tag, typ: TypeShort, count: uint32(len(vals)), data: data}
}

func (b *dngBuilder) long(tag Tag, vals ...uint32) testEntry {
	var data []byte
	for _, v := range vals {
		data = b.o.AppendUint32(data, v)
	}
	return testEntry{tag: tag, typ: TypeLong, count: uint32(len(vals)), data: data}
}

func (b *dngBuilder) sshort(tag Tag, vals ...int16) testEntry {
	var data []byte
	for _, v := range vals {
		data = b.o.AppendUint16(data, uint16(v))
	}
	return testEntry{tag: tag, typ: TypeSShort, count: uint32(len(vals)), data: data}
}

func (b *dngBuilder) rational(tag Tag, vals ...uint32) testEntry {
	var data []byte
	for _, v := range vals {
		data = b.o.AppendUint32(data, v)
	}
	return testEntry{tag: tag, typ: TypeRational, count: uint32(len(vals) / 2), data: data}
}

func (b *dngBuilder) double(tag Tag, vals ...float64) testEntry {
	var data []byte
	for _, v := range vals {
		data = b.o.AppendUint64(data, math.Float64bits(v))
	}
	return testEntry{tag: tag, typ: TypeDouble, count: uint32(len(vals)), data: data}
}

func (b *dngBuilder) ascii(tag Tag, s string) testEntry {
	data := append([]byte(s), 0)
	return testEntry{tag: tag, typ: TypeASCII, count: uint32(len(data)), data: data}
}

// raw creates an entry with the value field set to valueOrOffset.
func (b *dngBuilder) raw(tag Tag, typ Type, count, valueOrOffset uint32) testEntry {
	return testEntry{tag: tag, typ: typ, count: count, direct: true, valueOrOffset: valueOrOffset}
}

func (b *dngBuilder) byteEntry(tag Tag, typ Type, data []byte) testEntry {
	return testEntry{tag: tag, typ: typ, count: uint32(len(data)), data: data}
}

// testPixels returns w*h RGB8 pixels with a recognizable pattern.
func testPixels(w, h int) []byte {
	pix := make([]byte, w*h*3)
	for i := range pix {
		pix[i] = byte(i*7 + 1)
	}
	return pix
}

// thumbnailEntries returns the tags of a valid w x h RGB8 thumbnail stored at stripOffset.
func (b *dngBuilder) thumbnailEntries(w, h uint16, stripOffset uint32) []testEntry {
	return []testEntry{
		b.long(TagNewSubFileType, subFileTypeThumbnail),
		b.short(TagImageWidth, w),
		b.short(TagImageLength, h),
		b.short(TagBitsPerSample, 8, 8, 8),
		b.short(TagCompression, 1),
		b.short(TagPhotometricInterpretation, 2),
		b.long(TagStripOffsets, stripOffset),
		b.short(TagOrientation, 1),
		b.short(TagSamplesPerPixel, 3),
		b.short(TagRowsPerStrip, h),
		b.long(TagStripByteCounts, uint32(w)*uint32(h)*3),
		b.short(TagPlanarConfiguration, 1),
	}
}

// testDNG describes a file created by newTestDNG.
type testDNG struct {
	data         []byte
	pix          []byte
	ifd0         uint32
	rawIFD       uint32
	previewIFD   uint32
	exifIFD      uint32
	xmp          []byte
	stripOffset  uint32
	subIFDsArray uint32
}

// newTestDNG creates a DNG laid out like camera output: IFD0 is the 4x2
// RGB8 thumbnail and has two SubIFDs, the raw image and a larger
// compressed preview.
func newTestDNG(order ByteOrder) testDNG {
	b := newDNGBuilder(order)
	t := testDNG{
		pix: testPixels(4, 2),
		xmp: []byte(`<x:xmpmeta xmlns:x="adobe:ns:meta/"></x:xmpmeta>`),
	}

	t.stripOffset = b.blob(t.pix)
	t.subIFDsArray = b.blob(make([]byte, 8))

	entries := b.thumbnailEntries(4, 2, t.stripOffset)
	entries = append(entries,
		b.ascii(TagMake, "Canon"),
		b.ascii(TagModel, "Canon EOS 6D"),
		b.raw(TagSubIFDs, TypeLong, 2, t.subIFDsArray),
		b.byteEntry(TagXMP, TypeByte, t.xmp),
		b.raw(TagExifIFDPointer, TypeLong, 1, 0), // patched below.
		b.byteEntry(TagDNGVersion, TypeByte, []byte{1, 4, 0, 0}),
		b.ascii(TagUniqueCameraModel, "Canon EOS 6D"),
	)
	sortTestEntries(entries)
	t.ifd0 = b.ifd(entries...)
	b.setFirstIFD(t.ifd0)

	t.rawIFD = b.ifd(
		b.long(TagNewSubFileType, subFileTypeMain),
		b.long(TagImageWidth, 6000),
		b.long(TagImageLength, 4000),
		b.short(TagCompression, 7),
	)
	t.previewIFD = b.ifd(
		b.long(TagNewSubFileType, subFileTypeThumbnail),
		b.long(TagImageWidth, 1024),
		b.long(TagImageLength, 683),
		b.short(TagCompression, 7),
	)
	t.exifIFD = b.ifd(
		b.rational(0x829a, 1, 200), // ExposureTime
		b.short(0x8827, 400),       // ISOSpeedRatings
	)

	b.patch32(t.subIFDsArray, t.rawIFD)
	b.patch32(t.subIFDsArray+4, t.previewIFD)
	for i, e := range entries {
		if e.tag == TagExifIFDPointer {
			b.patch32(b.valuePos(t.ifd0, i), t.exifIFD)
		}
	}

	t.data = b.bytes()

	return t
}

func sortTestEntries(entries []testEntry) {
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j].tag < entries[j-1].tag; j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
}

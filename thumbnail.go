// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package dngmeta

import (
	"fmt"
	"image"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/nfnt/resize"
)

// ThumbnailImage is an uncompressed, interleaved RGB8 thumbnail.
type ThumbnailImage struct {
	// Pix holds the pixels in row-major order, 3 bytes per pixel, copied verbatim from the file.
	Pix    []byte
	Width  uint32
	Height uint32
}

// Image converts the thumbnail to an opaque *image.RGBA.
func (t *ThumbnailImage) Image() (*image.RGBA, error) {
	w, h := int(t.Width), int(t.Height)
	if w == 0 || h == 0 {
		return image.NewRGBA(image.Rectangle{}), nil
	}
	if uint64(len(t.Pix))/3/uint64(t.Width) < uint64(t.Height) {
		return nil, fmt.Errorf("%w: %d bytes of pixel data for %dx%d RGB8", ErrUnsupportedThumbnailLayout, len(t.Pix), w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		src := t.Pix[y*w*3 : (y+1)*w*3]
		dst := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := range w {
			dst[x*4+0] = src[x*3+0]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+2]
			dst[x*4+3] = 0xff
		}
	}
	return img, nil
}

// Resize scales the thumbnail down to fit within maxWidth x maxHeight, preserving the aspect ratio.
// The image is returned unchanged if it already fits.
func (t *ThumbnailImage) Resize(maxWidth, maxHeight uint) (image.Image, error) {
	img, err := t.Image()
	if err != nil {
		return nil, err
	}
	return resize.Thumbnail(maxWidth, maxHeight, img, resize.Lanczos3), nil
}

// thumbnailLayout holds the tags needed to extract a thumbnail.
type thumbnailLayout struct {
	width                     uint32
	length                    uint32
	bitsPerSample             []uint16
	compression               uint16
	photometricInterpretation uint16
	stripOffset               int
	orientation               uint16
	samplesPerPixel           uint16
	rowsPerStrip              uint32
	stripByteCount            int
	planarConfiguration       uint32
}

// tagReader resolves required tags in one IFD and remembers the first failure.
type tagReader struct {
	r   bufReader
	ifd *IFD
	err error
}

func (t *tagReader) values(tag Tag) (Values, bool) {
	if t.err != nil {
		return Values{}, false
	}
	e, found := t.ifd.Entry(tag)
	if !found {
		t.err = &MissingRequiredTagError{Tag: tag, IFDOffset: t.ifd.Offset}
		return Values{}, false
	}
	vals, err := e.values(t.r)
	if err != nil {
		t.err = fmt.Errorf("IFD at offset %d: %w", t.ifd.Offset, err)
		return Values{}, false
	}
	return vals, true
}

func (t *tagReader) fail(tag Tag, as string, err error) {
	t.err = fmt.Errorf("IFD at offset %d: tag %s as %s: %w", t.ifd.Offset, tag, as, err)
}

func (t *tagReader) uint16(tag Tag) uint16 {
	vals, ok := t.values(tag)
	if !ok {
		return 0
	}
	v, err := vals.Uint16()
	if err != nil {
		t.fail(tag, "uint16", err)
	}
	return v
}

func (t *tagReader) uint32(tag Tag) uint32 {
	vals, ok := t.values(tag)
	if !ok {
		return 0
	}
	v, err := vals.Uint32()
	if err != nil {
		t.fail(tag, "uint32", err)
	}
	return v
}

func (t *tagReader) int(tag Tag) int {
	vals, ok := t.values(tag)
	if !ok {
		return 0
	}
	v, err := vals.Int()
	if err != nil {
		t.fail(tag, "int", err)
	}
	return v
}

func (t *tagReader) uint16s(tag Tag) []uint16 {
	vals, ok := t.values(tag)
	if !ok {
		return nil
	}
	v, err := vals.Uint16s()
	if err != nil {
		t.fail(tag, "[]uint16", err)
	}
	return v
}

func readThumbnailLayout(r bufReader, ifd *IFD) (thumbnailLayout, error) {
	t := &tagReader{r: r, ifd: ifd}
	l := thumbnailLayout{
		width:                     t.uint32(TagImageWidth),
		length:                    t.uint32(TagImageLength),
		bitsPerSample:             t.uint16s(TagBitsPerSample),
		compression:               t.uint16(TagCompression),
		photometricInterpretation: t.uint16(TagPhotometricInterpretation),
		stripOffset:               t.int(TagStripOffsets),
		orientation:               t.uint16(TagOrientation),
		samplesPerPixel:           t.uint16(TagSamplesPerPixel),
		rowsPerStrip:              t.uint32(TagRowsPerStrip),
		stripByteCount:            t.int(TagStripByteCounts),
		planarConfiguration:       t.uint32(TagPlanarConfiguration),
	}
	return l, t.err
}

// validate checks that l is a single strip, uncompressed, chunky RGB8 image.
// All violations are reported.
func (l thumbnailLayout) validate() error {
	var err error
	if !slices.Equal(l.bitsPerSample, []uint16{8, 8, 8}) {
		err = multierror.Append(err, fmt.Errorf("BitsPerSample is %v, expected [8 8 8]", l.bitsPerSample))
	}
	if l.compression != 1 {
		err = multierror.Append(err, fmt.Errorf("Compression is %d, expected 1 (uncompressed)", l.compression))
	}
	if l.photometricInterpretation != 2 {
		err = multierror.Append(err, fmt.Errorf("PhotometricInterpretation is %d, expected 2 (RGB)", l.photometricInterpretation))
	}
	if l.orientation != 1 {
		err = multierror.Append(err, fmt.Errorf("Orientation is %d, expected 1", l.orientation))
	}
	if l.samplesPerPixel != 3 {
		err = multierror.Append(err, fmt.Errorf("SamplesPerPixel is %d, expected 3", l.samplesPerPixel))
	}
	if l.rowsPerStrip != l.length {
		err = multierror.Append(err, fmt.Errorf("RowsPerStrip is %d, expected ImageLength %d (single strip)", l.rowsPerStrip, l.length))
	}
	if l.planarConfiguration != 1 {
		err = multierror.Append(err, fmt.Errorf("PlanarConfiguration is %d, expected 1 (chunky)", l.planarConfiguration))
	}
	return err
}

func extractThumbnail(r bufReader, ifd *IFD) (*ThumbnailImage, error) {
	l, err := readThumbnailLayout(r, ifd)
	if err != nil {
		return nil, err
	}
	if err := l.validate(); err != nil {
		return nil, &UnsupportedThumbnailLayoutError{IFDOffset: ifd.Offset, Err: err}
	}

	pix, err := r.readBytes(uint64(l.stripOffset), uint64(l.stripByteCount))
	if err != nil {
		return nil, fmt.Errorf("IFD at offset %d: strip: %w", ifd.Offset, err)
	}

	return &ThumbnailImage{
		Pix:    pix,
		Width:  l.width,
		Height: l.length,
	}, nil
}

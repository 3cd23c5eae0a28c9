// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package dngmeta

import (
	"errors"
	"testing"
)

func FuzzDecode(f *testing.F) {
	f.Add(newTestDNG(LittleEndian).data)
	f.Add(newTestDNG(BigEndian).data)

	cyclic := append([]byte{}, newTestDNG(LittleEndian).data...)
	td := newTestDNG(LittleEndian)
	LittleEndian.binary().PutUint32(cyclic[td.subIFDsArray:], td.ifd0)
	f.Add(cyclic)

	f.Add([]byte{0x49, 0x49, 42, 0, 8, 0, 0, 0})
	f.Add([]byte{0x4D, 0x4D, 0, 42, 0, 0, 0, 8, 0xff, 0xff})

	f.Fuzz(func(t *testing.T, data []byte) {
		fuzzDecodeBytes(t, data)
	})
}

func fuzzDecodeBytes(t *testing.T, data []byte) {
	dng, err := Decode(Options{Data: data, LimitNumIFDs: 100})
	if err != nil {
		if data != nil && !IsInvalidFormat(err) {
			t.Fatalf("unknown error in Decode: %v %T", err, err)
		}
		return
	}

	thumb, err := dng.Thumbnail()
	if err != nil {
		if !isExpectedThumbnailError(err) {
			t.Fatalf("unknown error in Thumbnail: %v %T", err, err)
		}
	} else {
		_, _ = thumb.Image()
	}

	for _, ifd := range dng.IFDs().IFDs() {
		if _, err := dng.ThumbnailFrom(ifd); err != nil && !isExpectedThumbnailError(err) {
			t.Fatalf("unknown error in ThumbnailFrom: %v %T", err, err)
		}
	}

	_ = dng.Walk(func(info TagInfo) error {
		_, _ = info.Values.Text()
		_, _ = info.Values.Uint32s()
		return nil
	})

	_, _ = dng.XMP()
	_, _ = dng.ExifIFD()
}

func isExpectedThumbnailError(err error) bool {
	return IsInvalidFormat(err) ||
		errors.Is(err, ErrThumbnailNotFound) ||
		errors.Is(err, ErrMissingRequiredTag) ||
		errors.Is(err, ErrUnsupportedThumbnailLayout)
}

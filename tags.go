// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package dngmeta

import "fmt"

// UnknownPrefix is used as prefix for unknown tags.
const UnknownPrefix = "UnknownTag_"

// Tag is a TIFF/DNG tag number.
type Tag uint16

const (
	TagNewSubFileType            Tag = 0x00fe
	TagImageWidth                Tag = 0x0100
	TagImageLength               Tag = 0x0101
	TagBitsPerSample             Tag = 0x0102
	TagCompression               Tag = 0x0103
	TagPhotometricInterpretation Tag = 0x0106
	TagMake                      Tag = 0x010f
	TagModel                     Tag = 0x0110
	TagStripOffsets              Tag = 0x0111
	TagOrientation               Tag = 0x0112
	TagSamplesPerPixel           Tag = 0x0115
	TagRowsPerStrip              Tag = 0x0116
	TagStripByteCounts           Tag = 0x0117
	TagPlanarConfiguration       Tag = 0x011c
	TagSoftware                  Tag = 0x0131
	TagDateTime                  Tag = 0x0132
	TagSubIFDs                   Tag = 0x014a
	TagXMP                       Tag = 0x02bc
	TagExifIFDPointer            Tag = 0x8769
	TagDNGVersion                Tag = 0xc612
	TagDNGBackwardVersion        Tag = 0xc613
	TagUniqueCameraModel         Tag = 0xc614
	TagDefaultCropSize           Tag = 0xc620
)

var tagNames = map[Tag]string{
	TagNewSubFileType:            "NewSubFileType",
	TagImageWidth:                "ImageWidth",
	TagImageLength:               "ImageLength",
	TagBitsPerSample:             "BitsPerSample",
	TagCompression:               "Compression",
	TagPhotometricInterpretation: "PhotometricInterpretation",
	TagMake:                      "Make",
	TagModel:                     "Model",
	TagStripOffsets:              "StripOffsets",
	TagOrientation:               "Orientation",
	TagSamplesPerPixel:           "SamplesPerPixel",
	TagRowsPerStrip:              "RowsPerStrip",
	TagStripByteCounts:           "StripByteCounts",
	TagPlanarConfiguration:       "PlanarConfiguration",
	TagSoftware:                  "Software",
	TagDateTime:                  "DateTime",
	TagSubIFDs:                   "SubIFDs",
	TagXMP:                       "XMP",
	TagExifIFDPointer:            "ExifIFDPointer",
	TagDNGVersion:                "DNGVersion",
	TagDNGBackwardVersion:        "DNGBackwardVersion",
	TagUniqueCameraModel:         "UniqueCameraModel",
	TagDefaultCropSize:           "DefaultCropSize",
}

// String returns the tag name, or UnknownPrefix followed by the tag number in hex.
func (t Tag) String() string {
	if name, found := tagNames[t]; found {
		return name
	}
	return fmt.Sprintf("%s0x%x", UnknownPrefix, uint16(t))
}

// NewSubFileType values.
const (
	subFileTypeMain      = 0
	subFileTypeThumbnail = 1
)

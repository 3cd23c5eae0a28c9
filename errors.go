// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package dngmeta

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHeader is returned when the byte order marker or the magic number is not recognized.
	ErrInvalidHeader = errors.New("dngmeta: invalid header")

	// ErrOutOfBounds is returned when a read would go past the end of the buffer.
	ErrOutOfBounds = errors.New("dngmeta: read out of bounds")

	// ErrUnknownType is returned for directory entry type codes outside 1-12.
	ErrUnknownType = errors.New("dngmeta: unknown type")

	// ErrCyclicStructure is returned when a SubIFD refers back to an IFD on the current path.
	ErrCyclicStructure = errors.New("dngmeta: cyclic IFD structure")

	// ErrLimitExceeded is returned when the number of IFDs exceeds Options.LimitNumIFDs.
	ErrLimitExceeded = errors.New("dngmeta: limit exceeded")

	// ErrMissingRequiredTag is returned when a required tag is not present in an IFD.
	ErrMissingRequiredTag = errors.New("dngmeta: missing required tag")

	// ErrUnsupportedThumbnailLayout is returned when the thumbnail is not a
	// single strip, uncompressed, chunky RGB8 image.
	ErrUnsupportedThumbnailLayout = errors.New("dngmeta: unsupported thumbnail layout")

	// ErrThumbnailNotFound is returned when no IFD is marked as a reduced resolution image.
	ErrThumbnailNotFound = errors.New("dngmeta: thumbnail not found")

	// ErrNumericOverflow is returned when a value does not fit in the requested type.
	ErrNumericOverflow = errors.New("dngmeta: numeric overflow")

	// ErrUnsupportedCoercion is returned when a value can not be converted to the requested type.
	ErrUnsupportedCoercion = errors.New("dngmeta: unsupported coercion")

	// ErrStopWalking is a sentinel error to signal that the walk should stop.
	ErrStopWalking = fmt.Errorf("stop walking")
)

// InvalidFormatError is used when the format is invalid.
type InvalidFormatError struct {
	Err error
}

func (e *InvalidFormatError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// IsInvalidFormat reports whether err is an InvalidFormatError
// or one of the errors describing a structurally broken file.
func IsInvalidFormat(err error) bool {
	if err == nil {
		return false
	}
	var e *InvalidFormatError
	if errors.As(err, &e) {
		return true
	}
	return isInvalidFormatErrorCandidate(err)
}

func isInvalidFormatErrorCandidate(err error) bool {
	for _, candidate := range []error{
		ErrInvalidHeader,
		ErrOutOfBounds,
		ErrUnknownType,
		ErrCyclicStructure,
		ErrLimitExceeded,
		ErrNumericOverflow,
		ErrUnsupportedCoercion,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

func newInvalidFormatError(err error) error {
	var e *InvalidFormatError
	if errors.As(err, &e) {
		return err
	}
	return &InvalidFormatError{Err: err}
}

// MissingRequiredTagError is returned when an IFD lacks a tag
// needed to complete an operation.
type MissingRequiredTagError struct {
	Tag       Tag
	IFDOffset uint32
}

func (e *MissingRequiredTagError) Error() string {
	return fmt.Sprintf("%s: %s (%d) in IFD at offset %d", ErrMissingRequiredTag, e.Tag, uint16(e.Tag), e.IFDOffset)
}

// Is reports whether target is ErrMissingRequiredTag.
func (e *MissingRequiredTagError) Is(target error) bool {
	return target == ErrMissingRequiredTag
}

// UnsupportedThumbnailLayoutError lists the reasons a thumbnail IFD was rejected.
type UnsupportedThumbnailLayoutError struct {
	IFDOffset uint32
	// Err holds all the violated constraints, usually a *multierror.Error.
	Err error
}

func (e *UnsupportedThumbnailLayoutError) Error() string {
	return fmt.Sprintf("%s: IFD at offset %d: %s", ErrUnsupportedThumbnailLayout, e.IFDOffset, e.Err)
}

// Is reports whether target is ErrUnsupportedThumbnailLayout.
func (e *UnsupportedThumbnailLayoutError) Is(target error) bool {
	return target == ErrUnsupportedThumbnailLayout
}

// Unwrap returns the underlying error.
func (e *UnsupportedThumbnailLayoutError) Unwrap() error {
	return e.Err
}

func newOutOfBoundsErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrOutOfBounds, fmt.Sprintf(format, args...))
}

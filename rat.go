// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package dngmeta

import (
	"encoding"
	"fmt"
)

// Rat is a rational number.
type Rat[T int32 | uint32] interface {
	Num() T
	Den() T
	Float64() float64

	// String returns the string representation of the rational number.
	// If the denominator is 1, the string will be the numerator only.
	String() string
}

var (
	_ Rat[uint32]              = Rational{}
	_ Rat[int32]               = SRational{}
	_ encoding.TextMarshaler   = Rational{}
	_ encoding.TextMarshaler   = SRational{}
	_ encoding.TextUnmarshaler = (*Rational)(nil)
)

// Rational is a TIFF RATIONAL: two LONGs, numerator then denominator.
// The values are kept as stored in the file, e.g. a zero denominator is preserved.
type Rational [2]uint32

// Num returns the numerator of the rational number.
func (r Rational) Num() uint32 {
	return r[0]
}

// Den returns the denominator of the rational number.
func (r Rational) Den() uint32 {
	return r[1]
}

// Float64 returns the float64 representation of the rational number.
func (r Rational) Float64() float64 {
	return ratFloat64[uint32](r)
}

func (r Rational) String() string {
	return ratString[uint32](r)
}

func (r Rational) MarshalText() (text []byte, err error) {
	return []byte(r.String()), nil
}

func (r *Rational) UnmarshalText(text []byte) error {
	s := string(text)
	var num, den uint32
	if _, err := fmt.Sscanf(s, "%d/%d", &num, &den); err != nil {
		if _, err2 := fmt.Sscanf(s, "%d", &num); err2 != nil {
			return fmt.Errorf("failed to parse %q as a rational number: %w", s, err)
		}
		den = 1
	}
	*r = Rational{num, den}
	return nil
}

// SRational is a TIFF SRATIONAL: two SLONGs, numerator then denominator.
type SRational [2]int32

// Num returns the numerator of the rational number.
func (r SRational) Num() int32 {
	return r[0]
}

// Den returns the denominator of the rational number.
func (r SRational) Den() int32 {
	return r[1]
}

// Float64 returns the float64 representation of the rational number.
func (r SRational) Float64() float64 {
	return ratFloat64[int32](r)
}

func (r SRational) String() string {
	return ratString[int32](r)
}

func (r SRational) MarshalText() (text []byte, err error) {
	return []byte(r.String()), nil
}

func ratFloat64[T int32 | uint32](r Rat[T]) float64 {
	return float64(r.Num()) / float64(r.Den())
}

func ratString[T int32 | uint32](r Rat[T]) string {
	if r.Den() == 1 {
		return fmt.Sprintf("%d", r.Num())
	}
	return fmt.Sprintf("%d/%d", r.Num(), r.Den())
}

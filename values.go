// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package dngmeta

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Value is one decoded TIFF value.
// It is always one of Byte, ASCII, Short, Long, Rational, SByte,
// Undefined, SShort, SLong, SRational, Float or Double.
type Value interface {
	// Type returns the TIFF type the value was decoded as.
	Type() Type
	isValue()
}

type (
	// Byte is an 8-bit unsigned integer.
	Byte uint8
	// ASCII is one 8-bit byte of a NUL terminated string.
	ASCII uint8
	// Short is a 16-bit unsigned integer.
	Short uint16
	// Long is a 32-bit unsigned integer.
	Long uint32
	// SByte is an 8-bit signed integer.
	SByte int8
	// Undefined is an 8-bit byte with no fixed interpretation.
	Undefined uint8
	// SShort is a 16-bit signed integer.
	SShort int16
	// SLong is a 32-bit signed integer.
	SLong int32
	// Float is a 32-bit IEEE floating point number.
	Float float32
	// Double is a 64-bit IEEE floating point number.
	Double float64
)

func (Byte) Type() Type      { return TypeByte }
func (ASCII) Type() Type     { return TypeASCII }
func (Short) Type() Type     { return TypeShort }
func (Long) Type() Type      { return TypeLong }
func (Rational) Type() Type  { return TypeRational }
func (SByte) Type() Type     { return TypeSByte }
func (Undefined) Type() Type { return TypeUndefined }
func (SShort) Type() Type    { return TypeSShort }
func (SLong) Type() Type     { return TypeSLong }
func (SRational) Type() Type { return TypeSRational }
func (Float) Type() Type     { return TypeFloat }
func (Double) Type() Type    { return TypeDouble }

func (Byte) isValue()      {}
func (ASCII) isValue()     {}
func (Short) isValue()     {}
func (Long) isValue()      {}
func (Rational) isValue()  {}
func (SByte) isValue()     {}
func (Undefined) isValue() {}
func (SShort) isValue()    {}
func (SLong) isValue()     {}
func (SRational) isValue() {}
func (Float) isValue()     {}
func (Double) isValue()    {}

// decodeValue decodes one value of type typ at off.
func (e bufReader) decodeValue(typ Type, off uint64) (Value, error) {
	switch typ {
	case TypeByte:
		v, err := e.read1(off)
		return Byte(v), err
	case TypeASCII:
		v, err := e.read1(off)
		return ASCII(v), err
	case TypeSByte:
		v, err := e.read1(off)
		return SByte(int8(v)), err
	case TypeUndefined:
		v, err := e.read1(off)
		return Undefined(v), err
	case TypeShort:
		v, err := e.read2(off)
		return Short(v), err
	case TypeSShort:
		v, err := e.read2(off)
		return SShort(int16(v)), err
	case TypeLong:
		v, err := e.read4(off)
		return Long(v), err
	case TypeSLong:
		v, err := e.read4(off)
		return SLong(int32(v)), err
	case TypeFloat:
		v, err := e.read4(off)
		return Float(math.Float32frombits(v)), err
	case TypeRational:
		n, err := e.read4(off)
		if err != nil {
			return nil, err
		}
		d, err := e.read4(off + 4)
		return Rational{n, d}, err
	case TypeSRational:
		n, err := e.read4(off)
		if err != nil {
			return nil, err
		}
		d, err := e.read4(off + 4)
		return SRational{int32(n), int32(d)}, err
	case TypeDouble:
		v, err := e.read8(off)
		return Double(math.Float64frombits(v)), err
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, uint16(typ))
	}
}

// integer returns v as an int64 if v is one of the integer types.
func integer(v Value) (int64, bool) {
	switch vv := v.(type) {
	case Byte:
		return int64(vv), true
	case ASCII:
		return int64(vv), true
	case Undefined:
		return int64(vv), true
	case Short:
		return int64(vv), true
	case Long:
		return int64(vv), true
	case SByte:
		return int64(vv), true
	case SShort:
		return int64(vv), true
	case SLong:
		return int64(vv), true
	default:
		return 0, false
	}
}

func asUnsigned[T uint8 | uint16 | uint32 | uint64](v Value) (T, error) {
	var zero T
	if v == nil {
		return zero, fmt.Errorf("%w: nil value to %T", ErrUnsupportedCoercion, zero)
	}
	i, ok := integer(v)
	if !ok {
		return zero, fmt.Errorf("%w: %s to %T", ErrUnsupportedCoercion, v.Type(), zero)
	}
	if i < 0 || uint64(i) > uint64(^zero) {
		return zero, fmt.Errorf("%w: %d does not fit in %T", ErrNumericOverflow, i, zero)
	}
	return T(i), nil
}

// AsUint16 converts an integer value to uint16.
// Negative or too large values fail with ErrNumericOverflow,
// rationals and floating point values fail with ErrUnsupportedCoercion.
func AsUint16(v Value) (uint16, error) {
	return asUnsigned[uint16](v)
}

// AsUint32 converts an integer value to uint32.
func AsUint32(v Value) (uint32, error) {
	return asUnsigned[uint32](v)
}

// AsInt converts an integer value to a non-negative int, e.g. an offset or a byte count.
func AsInt(v Value) (int, error) {
	u, err := asUnsigned[uint64](v)
	if err != nil {
		return 0, err
	}
	if u > math.MaxInt {
		return 0, fmt.Errorf("%w: %d does not fit in int", ErrNumericOverflow, u)
	}
	return int(u), nil
}

// AsFloat64 converts any numeric value to float64.
func AsFloat64(v Value) (float64, error) {
	if i, ok := integer(v); ok {
		return float64(i), nil
	}
	switch vv := v.(type) {
	case Rational:
		return vv.Float64(), nil
	case SRational:
		return vv.Float64(), nil
	case Float:
		return float64(vv), nil
	case Double:
		return float64(vv), nil
	}
	return 0, fmt.Errorf("%w: %T to float64", ErrUnsupportedCoercion, v)
}

// Values holds the decoded values of one directory entry in file order.
// An entry with a count of 1 is a single value, any other count is a sequence.
type Values struct {
	vals []Value
}

// NewValues creates a new Values from vals.
func NewValues(vals ...Value) Values {
	return Values{vals: vals}
}

// Len returns the number of values.
func (v Values) Len() int {
	return len(v.vals)
}

// IsSingle reports whether v holds exactly one value.
func (v Values) IsSingle() bool {
	return len(v.vals) == 1
}

// All returns the values in file order. The returned slice must not be modified.
func (v Values) All() []Value {
	return v.vals
}

// Single returns the only value in v.
func (v Values) Single() (Value, error) {
	if !v.IsSingle() {
		return nil, fmt.Errorf("%w: expected a single value, got %d", ErrUnsupportedCoercion, len(v.vals))
	}
	return v.vals[0], nil
}

// Uint16 returns the single value in v as an uint16.
func (v Values) Uint16() (uint16, error) {
	s, err := v.Single()
	if err != nil {
		return 0, err
	}
	return AsUint16(s)
}

// Uint32 returns the single value in v as an uint32.
func (v Values) Uint32() (uint32, error) {
	s, err := v.Single()
	if err != nil {
		return 0, err
	}
	return AsUint32(s)
}

// Int returns the single value in v as a non-negative int.
func (v Values) Int() (int, error) {
	s, err := v.Single()
	if err != nil {
		return 0, err
	}
	return AsInt(s)
}

// Uint16s returns all values as uint16.
func (v Values) Uint16s() ([]uint16, error) {
	return convertAll(v, AsUint16)
}

// Uint32s returns all values as uint32.
func (v Values) Uint32s() ([]uint32, error) {
	return convertAll(v, AsUint32)
}

// Bytes returns the raw bytes of BYTE, ASCII and UNDEFINED values.
func (v Values) Bytes() ([]byte, error) {
	b := make([]byte, len(v.vals))
	for i, vv := range v.vals {
		switch vvv := vv.(type) {
		case Byte:
			b[i] = byte(vvv)
		case ASCII:
			b[i] = byte(vvv)
		case Undefined:
			b[i] = byte(vvv)
		default:
			return nil, fmt.Errorf("%w: %s to byte", ErrUnsupportedCoercion, vv.Type())
		}
	}
	return b, nil
}

// Text returns the values as a string with surrounding NUL bytes removed.
// Bytes that are not valid UTF-8 are decoded as ISO-8859-1.
func (v Values) Text() (string, error) {
	b, err := v.Bytes()
	if err != nil {
		return "", err
	}
	b = trimBytesNulls(b)
	if utf8.Valid(b) {
		return string(b), nil
	}
	b, err = charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (v Values) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, vv := range v.vals {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%v", vv)
	}
	sb.WriteString("]")
	return sb.String()
}

func convertAll[T any](v Values, conv func(Value) (T, error)) ([]T, error) {
	out := make([]T, len(v.vals))
	for i, vv := range v.vals {
		c, err := conv(vv)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out[i] = c
	}
	return out, nil
}

func trimBytesNulls(b []byte) []byte {
	var lo, hi int
	for lo = 0; lo < len(b) && b[lo] == 0; lo++ {
	}
	for hi = len(b) - 1; hi >= 0 && b[hi] == 0; hi-- {
	}
	if lo > hi {
		return nil
	}
	return b[lo : hi+1]
}

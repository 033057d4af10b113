package tiffexif

import (
	"encoding/binary"
	"fmt"

	"github.com/photodedup/photodedup/internal/catalog"
)

// TypedValue is the materialized value of one TIFF entry. Concrete
// types below cover every TIFF 6.0 type; this collapses eight
// near-duplicate wrapper structs (unsignedByteValue/signedByteValue/
// ...) into one slice-per-Go-type family, since Go's []T already gives
// each the behavior those structs existed to provide in pre-generics
// style C-like Go.
type TypedValue interface {
	fmt.Stringer
	Len() int
}

type ByteValue []uint8

func (v ByteValue) Len() int      { return len(v) }
func (v ByteValue) String() string { return fmt.Sprintf("%v", []uint8(v)) }

type AsciiValue string

func (v AsciiValue) Len() int      { return len(v) }
func (v AsciiValue) String() string { return string(v) }

type ShortValue []uint16

func (v ShortValue) Len() int      { return len(v) }
func (v ShortValue) String() string { return fmt.Sprintf("%v", []uint16(v)) }

type LongValue []uint32

func (v LongValue) Len() int      { return len(v) }
func (v LongValue) String() string { return fmt.Sprintf("%v", []uint32(v)) }

type Rational struct{ Num, Den uint32 }

func (r Rational) Float() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

type RationalValue []Rational

func (v RationalValue) Len() int      { return len(v) }
func (v RationalValue) String() string { return fmt.Sprintf("%v", []Rational(v)) }

type SByteValue []int8

func (v SByteValue) Len() int      { return len(v) }
func (v SByteValue) String() string { return fmt.Sprintf("%v", []int8(v)) }

type UndefinedValue []byte

func (v UndefinedValue) Len() int      { return len(v) }
func (v UndefinedValue) String() string { return fmt.Sprintf("%d bytes undefined", len(v)) }

type SShortValue []int16

func (v SShortValue) Len() int      { return len(v) }
func (v SShortValue) String() string { return fmt.Sprintf("%v", []int16(v)) }

type SLongValue []int32

func (v SLongValue) Len() int      { return len(v) }
func (v SLongValue) String() string { return fmt.Sprintf("%v", []int32(v)) }

type SRational struct{ Num, Den int32 }

type SRationalValue []SRational

func (v SRationalValue) Len() int      { return len(v) }
func (v SRationalValue) String() string { return fmt.Sprintf("%v", []SRational(v)) }

type FloatValue []float32

func (v FloatValue) Len() int      { return len(v) }
func (v FloatValue) String() string { return fmt.Sprintf("%v", []float32(v)) }

type DoubleValue []float64

func (v DoubleValue) Len() int      { return len(v) }
func (v DoubleValue) String() string { return fmt.Sprintf("%v", []float64(v)) }

// materialize re-packs raw bytes into a TypedValue honoring the given
// byte order.
func materialize(order binary.ByteOrder, t catalog.TiffType, data []byte) TypedValue {
	switch t {
	case catalog.TypeByte:
		return ByteValue(append([]byte(nil), data...))
	case catalog.TypeAscii:
		n := len(data)
		for n > 0 && data[n-1] == 0 {
			n--
		}
		return AsciiValue(string(data[:n]))
	case catalog.TypeSByte:
		out := make(SByteValue, len(data))
		for i, b := range data {
			out[i] = int8(b)
		}
		return out
	case catalog.TypeUndefined:
		return UndefinedValue(append([]byte(nil), data...))
	case catalog.TypeShort:
		return ShortValue(unpackU16(order, data))
	case catalog.TypeSShort:
		u := unpackU16(order, data)
		out := make(SShortValue, len(u))
		for i, v := range u {
			out[i] = int16(v)
		}
		return out
	case catalog.TypeLong:
		return LongValue(unpackU32(order, data))
	case catalog.TypeSLong:
		u := unpackU32(order, data)
		out := make(SLongValue, len(u))
		for i, v := range u {
			out[i] = int32(v)
		}
		return out
	case catalog.TypeFloat:
		u := unpackU32(order, data)
		out := make(FloatValue, len(u))
		for i, v := range u {
			out[i] = math32frombits(v)
		}
		return out
	case catalog.TypeDouble:
		out := make(DoubleValue, len(data)/8)
		for i := range out {
			u := order.Uint64(data[i*8:])
			out[i] = math64frombits(u)
		}
		return out
	case catalog.TypeRational:
		out := make(RationalValue, len(data)/8)
		for i := range out {
			out[i] = Rational{
				Num: order.Uint32(data[i*8:]),
				Den: order.Uint32(data[i*8+4:]),
			}
		}
		return out
	case catalog.TypeSRational:
		out := make(SRationalValue, len(data)/8)
		for i := range out {
			out[i] = SRational{
				Num: int32(order.Uint32(data[i*8:])),
				Den: int32(order.Uint32(data[i*8+4:])),
			}
		}
		return out
	default:
		return UndefinedValue(append([]byte(nil), data...))
	}
}

func unpackU16(order binary.ByteOrder, data []byte) []uint16 {
	out := make([]uint16, len(data)/2)
	for i := range out {
		out[i] = order.Uint16(data[i*2:])
	}
	return out
}

func unpackU32(order binary.ByteOrder, data []byte) []uint32 {
	out := make([]uint32, len(data)/4)
	for i := range out {
		out[i] = order.Uint32(data[i*4:])
	}
	return out
}

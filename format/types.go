package format

import (
	"math"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/arloliu/tcoll/errs"
)

type (
	// SizeEncoding is the byte width used for a count header or an item length prefix.
	SizeEncoding uint8
	// Kind identifies the element kind stored in a collection.
	Kind uint8
)

const (
	Size8  SizeEncoding = 1 // Size8 stores sizes in a single byte.
	Size16 SizeEncoding = 2 // Size16 stores sizes in two bytes.
	Size32 SizeEncoding = 4 // Size32 stores sizes in four bytes.
	Size64 SizeEncoding = 8 // Size64 stores sizes in eight bytes.

	// DefaultCountSize is the count header width used when none is configured.
	DefaultCountSize = Size32
	// DefaultItemSize is the length prefix width used when none is configured.
	DefaultItemSize = Size32
)

const (
	KindBool     Kind = 0x01 // KindBool is a 1-byte boolean.
	KindInt8     Kind = 0x02 // KindInt8 is a signed byte.
	KindUint8    Kind = 0x03 // KindUint8 is an unsigned byte.
	KindInt16    Kind = 0x04 // KindInt16 is a 2-byte signed integer.
	KindInt32    Kind = 0x05 // KindInt32 is a 4-byte signed integer.
	KindInt64    Kind = 0x06 // KindInt64 is an 8-byte signed integer.
	KindFloat32  Kind = 0x07 // KindFloat32 is an IEEE 754 single.
	KindFloat64  Kind = 0x08 // KindFloat64 is an IEEE 754 double.
	KindGUID     Kind = 0x09 // KindGUID is a 16-byte identifier.
	KindDateTime Kind = 0x0A // KindDateTime is a 64-bit tick count.
	KindRange32  Kind = 0x0B // KindRange32 is a pair of 4-byte bounds.
	KindRange64  Kind = 0x0C // KindRange64 is a pair of 8-byte bounds.
	KindComplex  Kind = 0x0D // KindComplex is a pair of 8-byte floats.
	KindAngle    Kind = 0x0E // KindAngle is an angle projected onto int32 units.
	KindString   Kind = 0x10 // KindString is a length-prefixed UTF-8 string.
	KindBinary   Kind = 0x11 // KindBinary is a length-prefixed byte blob.
	KindBigInt   Kind = 0x12 // KindBigInt is a length-prefixed two's-complement integer.
)

// Width returns the number of bytes used by the size encoding.
func (s SizeEncoding) Width() int {
	return int(s)
}

// Valid reports whether s is one of the four supported widths.
func (s SizeEncoding) Valid() bool {
	switch s {
	case Size8, Size16, Size32, Size64:
		return true
	default:
		return false
	}
}

// Max returns the largest value representable with the size encoding.
func (s SizeEncoding) Max() uint64 {
	switch s {
	case Size8:
		return math.MaxUint8
	case Size16:
		return math.MaxUint16
	case Size32:
		return math.MaxUint32
	case Size64:
		return math.MaxUint64
	default:
		return 0
	}
}

func (s SizeEncoding) String() string {
	switch s {
	case Size8:
		return "8bit"
	case Size16:
		return "16bit"
	case Size32:
		return "32bit"
	case Size64:
		return "64bit"
	default:
		return "Unknown"
	}
}

// ParseSizeEncoding maps a byte width (1, 2, 4 or 8) to its SizeEncoding.
func ParseSizeEncoding(width int) (SizeEncoding, error) {
	s := SizeEncoding(width) //nolint:gosec
	if width < 0 || width > 8 || !s.Valid() {
		return 0, errors.Wrapf(errs.ErrInvalidSizeEncoding, "width %d", width)
	}

	return s, nil
}

// Variable reports whether elements of kind k are length-prefixed.
func (k Kind) Variable() bool {
	return k == KindString || k == KindBinary || k == KindBigInt
}

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindInt8:
		return "Int8"
	case KindUint8:
		return "Uint8"
	case KindInt16:
		return "Int16"
	case KindInt32:
		return "Int32"
	case KindInt64:
		return "Int64"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindGUID:
		return "GUID"
	case KindDateTime:
		return "DateTime"
	case KindRange32:
		return "Range32"
	case KindRange64:
		return "Range64"
	case KindComplex:
		return "Complex"
	case KindAngle:
		return "Angle"
	case KindString:
		return "String"
	case KindBinary:
		return "Binary"
	case KindBigInt:
		return "BigInt"
	default:
		return "Unknown"
	}
}

// Kinds lists every supported element kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindBool, KindInt8, KindUint8, KindInt16, KindInt32, KindInt64,
		KindFloat32, KindFloat64, KindGUID, KindDateTime, KindRange32,
		KindRange64, KindComplex, KindAngle, KindString, KindBinary, KindBigInt,
	}
}

// ParseKind maps a kind name such as "int32" or "GUID" to its Kind. Names
// match case-insensitively.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(k.String(), name) {
			return k, nil
		}
	}

	return 0, errors.Newf("unknown element kind %q", name)
}

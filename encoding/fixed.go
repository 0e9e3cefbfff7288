package encoding

import (
	"math"
	"strconv"

	"github.com/arloliu/tcoll/endian"
	"github.com/arloliu/tcoll/errs"
	"github.com/arloliu/tcoll/format"
)

// TextCodec converts single element values to and from their literal form.
//
// ParseText receives the raw literal token exactly as it appeared in the
// text, including quotes for quoted kinds, and returns a *errs.FormatError
// naming the token when it is malformed.
type TextCodec[T any] interface {
	FormatText(v T) string
	ParseText(token string) (T, error)
}

// FixedCodec encodes one value of a fixed-width element kind.
//
// Implementations are stateless; Read and Write never allocate and never
// look outside b[:Width()].
type FixedCodec[T any] interface {
	TextCodec[T]

	// Kind returns the element kind tag of the codec.
	Kind() format.Kind
	// Width returns the encoded size of one value in bytes.
	Width() int
	// Read decodes a value from b[:Width()].
	Read(engine endian.EndianEngine, b []byte) T
	// Write encodes v into b[:Width()].
	Write(engine endian.EndianEngine, b []byte, v T)
	// Equal reports whether two values are the same element.
	Equal(a, b T) bool
}

// Integer is the set of integer types backed by IntCodec.
type Integer interface {
	~int8 | ~uint8 | ~int16 | ~int32 | ~int64
}

// IntCodec encodes two's-complement integers of 1, 2, 4 or 8 bytes.
type IntCodec[T Integer] struct {
	kind     format.Kind
	width    int
	unsigned bool
}

var (
	_ FixedCodec[int32] = IntCodec[int32]{}
	_ FixedCodec[bool]  = BoolCodec{}
)

// Int8 returns the codec for signed bytes.
func Int8() IntCodec[int8] { return IntCodec[int8]{kind: format.KindInt8, width: 1} }

// Uint8 returns the codec for unsigned bytes.
func Uint8() IntCodec[uint8] {
	return IntCodec[uint8]{kind: format.KindUint8, width: 1, unsigned: true}
}

// Int16 returns the codec for 2-byte integers.
func Int16() IntCodec[int16] { return IntCodec[int16]{kind: format.KindInt16, width: 2} }

// Int32 returns the codec for 4-byte integers.
func Int32() IntCodec[int32] { return IntCodec[int32]{kind: format.KindInt32, width: 4} }

// Int64 returns the codec for 8-byte integers.
func Int64() IntCodec[int64] { return IntCodec[int64]{kind: format.KindInt64, width: 8} }

// Angle returns the codec for angle kinds. Hour, grad and sexagesimal angles
// are stored as signed 32-bit units; converting units to an angle is left to
// the caller.
func Angle() IntCodec[int32] { return IntCodec[int32]{kind: format.KindAngle, width: 4} }

func (c IntCodec[T]) Kind() format.Kind { return c.kind }

func (c IntCodec[T]) Width() int { return c.width }

func (c IntCodec[T]) Read(engine endian.EndianEngine, b []byte) T {
	switch c.width {
	case 1:
		return T(b[0])
	case 2:
		return T(engine.Uint16(b))
	case 4:
		return T(engine.Uint32(b))
	default:
		return T(engine.Uint64(b))
	}
}

func (c IntCodec[T]) Write(engine endian.EndianEngine, b []byte, v T) {
	switch c.width {
	case 1:
		b[0] = byte(v)
	case 2:
		engine.PutUint16(b, uint16(v))
	case 4:
		engine.PutUint32(b, uint32(v))
	default:
		engine.PutUint64(b, uint64(v))
	}
}

func (c IntCodec[T]) Equal(a, b T) bool { return a == b }

func (c IntCodec[T]) FormatText(v T) string {
	if c.unsigned {
		return strconv.FormatUint(uint64(v), 10)
	}

	return strconv.FormatInt(int64(v), 10)
}

func (c IntCodec[T]) ParseText(token string) (T, error) {
	if c.unsigned {
		u, err := strconv.ParseUint(token, 10, c.width*8)
		if err != nil {
			return 0, errs.NewFormatError(token, err)
		}

		return T(u), nil
	}

	n, err := strconv.ParseInt(token, 10, c.width*8)
	if err != nil {
		return 0, errs.NewFormatError(token, err)
	}

	return T(n), nil
}

// BoolCodec stores booleans as a single 0x00/0x01 byte.
type BoolCodec struct{}

// Bool returns the boolean codec.
func Bool() BoolCodec { return BoolCodec{} }

func (BoolCodec) Kind() format.Kind { return format.KindBool }

func (BoolCodec) Width() int { return 1 }

func (BoolCodec) Read(_ endian.EndianEngine, b []byte) bool { return b[0] != 0 }

func (BoolCodec) Write(_ endian.EndianEngine, b []byte, v bool) {
	if v {
		b[0] = 1
	} else {
		b[0] = 0
	}
}

func (BoolCodec) Equal(a, b bool) bool { return a == b }

func (BoolCodec) FormatText(v bool) string { return strconv.FormatBool(v) }

func (BoolCodec) ParseText(token string) (bool, error) {
	v, err := strconv.ParseBool(token)
	if err != nil {
		return false, errs.NewFormatError(token, err)
	}

	return v, nil
}

// Float32Codec stores IEEE 754 single precision values.
type Float32Codec struct{}

// Float32 returns the float32 codec.
func Float32() Float32Codec { return Float32Codec{} }

func (Float32Codec) Kind() format.Kind { return format.KindFloat32 }

func (Float32Codec) Width() int { return 4 }

func (Float32Codec) Read(engine endian.EndianEngine, b []byte) float32 {
	return math.Float32frombits(engine.Uint32(b))
}

func (Float32Codec) Write(engine endian.EndianEngine, b []byte, v float32) {
	engine.PutUint32(b, math.Float32bits(v))
}

// Equal treats NaN as equal to NaN so stored NaN elements can be found.
func (Float32Codec) Equal(a, b float32) bool {
	return a == b || (math.IsNaN(float64(a)) && math.IsNaN(float64(b)))
}

func (Float32Codec) FormatText(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func (Float32Codec) ParseText(token string) (float32, error) {
	v, err := strconv.ParseFloat(token, 32)
	if err != nil {
		return 0, errs.NewFormatError(token, err)
	}

	return float32(v), nil
}

// Float64Codec stores IEEE 754 double precision values.
type Float64Codec struct{}

// Float64 returns the float64 codec.
func Float64() Float64Codec { return Float64Codec{} }

func (Float64Codec) Kind() format.Kind { return format.KindFloat64 }

func (Float64Codec) Width() int { return 8 }

func (Float64Codec) Read(engine endian.EndianEngine, b []byte) float64 {
	return math.Float64frombits(engine.Uint64(b))
}

func (Float64Codec) Write(engine endian.EndianEngine, b []byte, v float64) {
	engine.PutUint64(b, math.Float64bits(v))
}

func (Float64Codec) Equal(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}

func (Float64Codec) FormatText(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (Float64Codec) ParseText(token string) (float64, error) {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, errs.NewFormatError(token, err)
	}

	return v, nil
}

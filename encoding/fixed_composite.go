package encoding

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arloliu/tcoll/endian"
	"github.com/arloliu/tcoll/errs"
	"github.com/arloliu/tcoll/format"
)

// Tick constants for DateTime values: one tick is 100ns counted from
// 0001-01-01T00:00:00Z.
const (
	TicksPerSecond = 10_000_000
	nanosPerTick   = 100
	// tickEpochUnix is 0001-01-01T00:00:00Z in Unix seconds.
	tickEpochUnix = -62135596800
)

// GUIDCodec stores 16-byte identifiers in their canonical RFC 4122 byte
// order. The byte order engine does not apply.
type GUIDCodec struct{}

// GUID returns the GUID codec.
func GUID() GUIDCodec { return GUIDCodec{} }

func (GUIDCodec) Kind() format.Kind { return format.KindGUID }

func (GUIDCodec) Width() int { return 16 }

func (GUIDCodec) Read(_ endian.EndianEngine, b []byte) uuid.UUID {
	var id uuid.UUID
	copy(id[:], b[:16])

	return id
}

func (GUIDCodec) Write(_ endian.EndianEngine, b []byte, v uuid.UUID) {
	copy(b[:16], v[:])
}

func (GUIDCodec) Equal(a, b uuid.UUID) bool { return a == b }

func (GUIDCodec) FormatText(v uuid.UUID) string { return v.String() }

func (GUIDCodec) ParseText(token string) (uuid.UUID, error) {
	id, err := uuid.Parse(unquoteOptional(token))
	if err != nil {
		return uuid.Nil, errs.NewFormatError(token, err)
	}

	return id, nil
}

// DateTimeCodec stores time values as a signed 64-bit tick count.
// Decoded values are in UTC and truncated to tick precision.
type DateTimeCodec struct{}

// DateTime returns the date/time codec.
func DateTime() DateTimeCodec { return DateTimeCodec{} }

// TimeToTicks converts t to its tick count.
func TimeToTicks(t time.Time) int64 {
	return (t.Unix()-tickEpochUnix)*TicksPerSecond + int64(t.Nanosecond()/nanosPerTick)
}

// TicksToTime converts a tick count to a UTC time.
func TicksToTime(ticks int64) time.Time {
	sec := ticks / TicksPerSecond
	rem := ticks % TicksPerSecond
	if rem < 0 {
		sec--
		rem += TicksPerSecond
	}

	return time.Unix(sec+tickEpochUnix, rem*nanosPerTick).UTC()
}

func (DateTimeCodec) Kind() format.Kind { return format.KindDateTime }

func (DateTimeCodec) Width() int { return 8 }

func (DateTimeCodec) Read(engine endian.EndianEngine, b []byte) time.Time {
	return TicksToTime(int64(engine.Uint64(b))) //nolint:gosec
}

func (DateTimeCodec) Write(engine endian.EndianEngine, b []byte, v time.Time) {
	engine.PutUint64(b, uint64(TimeToTicks(v))) //nolint:gosec
}

// Equal compares at tick precision, matching what is stored.
func (DateTimeCodec) Equal(a, b time.Time) bool { return TimeToTicks(a) == TimeToTicks(b) }

func (DateTimeCodec) FormatText(v time.Time) string {
	return strconv.Quote(v.UTC().Format(time.RFC3339Nano))
}

func (DateTimeCodec) ParseText(token string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, unquoteOptional(token))
	if err != nil {
		return time.Time{}, errs.NewFormatError(token, err)
	}

	return t, nil
}

// Range32 is an inclusive pair of 32-bit bounds.
type Range32 struct {
	Low  int32
	High int32
}

// Range64 is an inclusive pair of 64-bit bounds.
type Range64 struct {
	Low  int64
	High int64
}

// Range32Codec stores a Range32 as two consecutive 4-byte integers.
type Range32Codec struct{}

// Range32Of returns the Range32 codec.
func Range32Of() Range32Codec { return Range32Codec{} }

func (Range32Codec) Kind() format.Kind { return format.KindRange32 }

func (Range32Codec) Width() int { return 8 }

func (Range32Codec) Read(engine endian.EndianEngine, b []byte) Range32 {
	return Range32{
		Low:  int32(engine.Uint32(b[0:4])), //nolint:gosec
		High: int32(engine.Uint32(b[4:8])), //nolint:gosec
	}
}

func (Range32Codec) Write(engine endian.EndianEngine, b []byte, v Range32) {
	engine.PutUint32(b[0:4], uint32(v.Low))  //nolint:gosec
	engine.PutUint32(b[4:8], uint32(v.High)) //nolint:gosec
}

func (Range32Codec) Equal(a, b Range32) bool { return a == b }

func (Range32Codec) FormatText(v Range32) string {
	return fmt.Sprintf("%d..%d", v.Low, v.High)
}

func (Range32Codec) ParseText(token string) (Range32, error) {
	lo, hi, err := parseBounds(token, 32)
	if err != nil {
		return Range32{}, err
	}

	return Range32{Low: int32(lo), High: int32(hi)}, nil //nolint:gosec
}

// Range64Codec stores a Range64 as two consecutive 8-byte integers.
type Range64Codec struct{}

// Range64Of returns the Range64 codec.
func Range64Of() Range64Codec { return Range64Codec{} }

func (Range64Codec) Kind() format.Kind { return format.KindRange64 }

func (Range64Codec) Width() int { return 16 }

func (Range64Codec) Read(engine endian.EndianEngine, b []byte) Range64 {
	return Range64{
		Low:  int64(engine.Uint64(b[0:8])),  //nolint:gosec
		High: int64(engine.Uint64(b[8:16])), //nolint:gosec
	}
}

func (Range64Codec) Write(engine endian.EndianEngine, b []byte, v Range64) {
	engine.PutUint64(b[0:8], uint64(v.Low))   //nolint:gosec
	engine.PutUint64(b[8:16], uint64(v.High)) //nolint:gosec
}

func (Range64Codec) Equal(a, b Range64) bool { return a == b }

func (Range64Codec) FormatText(v Range64) string {
	return fmt.Sprintf("%d..%d", v.Low, v.High)
}

func (Range64Codec) ParseText(token string) (Range64, error) {
	lo, hi, err := parseBounds(token, 64)
	if err != nil {
		return Range64{}, err
	}

	return Range64{Low: lo, High: hi}, nil
}

func parseBounds(token string, bitSize int) (int64, int64, error) {
	loText, hiText, ok := strings.Cut(token, "..")
	if !ok {
		return 0, 0, errs.NewFormatError(token, fmt.Errorf("missing %q separator", ".."))
	}

	lo, err := strconv.ParseInt(strings.TrimSpace(loText), 10, bitSize)
	if err != nil {
		return 0, 0, errs.NewFormatError(token, err)
	}

	hi, err := strconv.ParseInt(strings.TrimSpace(hiText), 10, bitSize)
	if err != nil {
		return 0, 0, errs.NewFormatError(token, err)
	}

	return lo, hi, nil
}

// ComplexCodec stores a complex128 as real then imaginary float64 parts.
type ComplexCodec struct{}

// Complex returns the complex codec.
func Complex() ComplexCodec { return ComplexCodec{} }

func (ComplexCodec) Kind() format.Kind { return format.KindComplex }

func (ComplexCodec) Width() int { return 16 }

func (ComplexCodec) Read(engine endian.EndianEngine, b []byte) complex128 {
	re := math.Float64frombits(engine.Uint64(b[0:8]))
	im := math.Float64frombits(engine.Uint64(b[8:16]))

	return complex(re, im)
}

func (ComplexCodec) Write(engine endian.EndianEngine, b []byte, v complex128) {
	engine.PutUint64(b[0:8], math.Float64bits(real(v)))
	engine.PutUint64(b[8:16], math.Float64bits(imag(v)))
}

func (ComplexCodec) Equal(a, b complex128) bool { return a == b }

func (ComplexCodec) FormatText(v complex128) string {
	return strconv.FormatComplex(v, 'g', -1, 128)
}

func (ComplexCodec) ParseText(token string) (complex128, error) {
	v, err := strconv.ParseComplex(token, 128)
	if err != nil {
		return 0, errs.NewFormatError(token, err)
	}

	return v, nil
}

// unquoteOptional strips Go string quoting when present.
func unquoteOptional(token string) string {
	if len(token) >= 2 && token[0] == '"' {
		if s, err := strconv.Unquote(token); err == nil {
			return s
		}
	}

	return token
}

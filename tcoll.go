// Package tcoll provides streamed typed collections: ordered, nullable
// sequences of one element kind encoded directly in a byte buffer and mutated
// in place.
//
// A collection buffer is owned by the caller. Layouts hold only encoding
// parameters and work on whatever buffer they are handed, returning the
// updated buffer append-style.
//
// # Core Features
//
//   - Fixed-width kinds (integers, floats, bool, GUID, date/time, ranges,
//     complex, angles) with a compact presence bitmap or inline null markers
//   - Variable-length kinds (strings, binary, big integers) with 1, 2, 4 or
//     8-byte length prefixes
//   - Point and range mutation that shifts the buffer tail once per call
//   - Little- or big-endian encoding of every multi-byte field
//   - Literal text form {1, NULL, 3}
//
// # Basic Usage
//
//	ints, _ := tcoll.NewFixed(tcoll.Int32())
//
//	buf := ints.Create()
//	buf, _ = ints.InsertRepeat(buf, tcoll.NullIndex(), tcoll.Some[int32](5), 3)
//	buf, _ = ints.Set(buf, 1, tcoll.Null[int32]())
//	text, _ := ints.Format(buf) // {5, NULL, 5}
//
// Strings:
//
//	strs, _ := tcoll.NewStrings(collection.WithItemSize(format.Size16))
//	buf, _ := strs.Parse(`{"a", NULL, "b"}`)
//	buf, _ = strs.RemoveRange(buf, tcoll.Index(1), tcoll.Index(1))
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the collection
// and encoding packages. For advanced usage, such as custom element codecs,
// use those packages directly.
package tcoll

import (
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/arloliu/tcoll/collection"
	"github.com/arloliu/tcoll/encoding"
)

// Nullable is a collection element that may be null.
type Nullable[T any] = collection.Nullable[T]

// Layout is the operation set shared by every collection layout.
type Layout[T any] = collection.Layout[T]

// Some returns a non-null element.
func Some[T any](v T) Nullable[T] {
	return collection.Some(v)
}

// Null returns the null element of type T.
func Null[T any]() Nullable[T] {
	return collection.Null[T]()
}

// Index returns a specified range index or count.
func Index(i int) Nullable[int] {
	return collection.Some(i)
}

// NullIndex returns an unspecified range index or count, which selects the
// slice-defaulting behavior of range operations.
func NullIndex() Nullable[int] {
	return collection.Null[int]()
}

// NewFixed creates a layout for a fixed-width element codec.
//
// Parameters:
//   - codec: Element codec, for example Int32() or GUID()
//   - opts: Layout options
//
// Returns:
//   - *collection.Fixed[T]: The layout
//   - error: Error if an option is invalid
//
// Example:
//
//	guids, err := tcoll.NewFixed(tcoll.GUID(), collection.WithCompact(false))
func NewFixed[T any](codec encoding.FixedCodec[T], opts ...collection.Option) (*collection.Fixed[T], error) {
	return collection.NewFixed(codec, opts...)
}

// NewVariable creates a layout for a variable-length element codec.
func NewVariable[T any](codec encoding.VarCodec[T], opts ...collection.Option) (*collection.Variable[T], error) {
	return collection.NewVariable(codec, opts...)
}

// NewStrings creates a layout for string collections.
func NewStrings(opts ...collection.Option) (*collection.Variable[string], error) {
	return collection.NewVariable(encoding.String(), opts...)
}

// NewBinary creates a layout for byte blob collections.
func NewBinary(opts ...collection.Option) (*collection.Variable[[]byte], error) {
	return collection.NewVariable(encoding.Binary(), opts...)
}

// NewBigInts creates a layout for arbitrary-precision integer collections.
func NewBigInts(opts ...collection.Option) (*collection.Variable[*big.Int], error) {
	return collection.NewVariable(encoding.BigInt(), opts...)
}

// Transcode re-encodes src under the parameters of dst into a new
// exact-size buffer.
func Transcode[T any](dst Layout[T], src []byte, srcLayout Layout[T]) ([]byte, error) {
	return collection.Transcode(dst, collection.NewSource(srcLayout, src))
}

// Codec shortcuts.

// Bool returns the boolean element codec.
func Bool() encoding.BoolCodec { return encoding.Bool() }

// Int8 returns the signed byte element codec.
func Int8() encoding.IntCodec[int8] { return encoding.Int8() }

// Uint8 returns the unsigned byte element codec.
func Uint8() encoding.IntCodec[uint8] { return encoding.Uint8() }

// Int16 returns the 16-bit integer element codec.
func Int16() encoding.IntCodec[int16] { return encoding.Int16() }

// Int32 returns the 32-bit integer element codec.
func Int32() encoding.IntCodec[int32] { return encoding.Int32() }

// Int64 returns the 64-bit integer element codec.
func Int64() encoding.IntCodec[int64] { return encoding.Int64() }

// Float32 returns the single precision element codec.
func Float32() encoding.Float32Codec { return encoding.Float32() }

// Float64 returns the double precision element codec.
func Float64() encoding.Float64Codec { return encoding.Float64() }

// GUID returns the 16-byte identifier element codec.
func GUID() encoding.GUIDCodec { return encoding.GUID() }

// DateTime returns the date/time element codec.
func DateTime() encoding.DateTimeCodec { return encoding.DateTime() }

// Range32 returns the 32-bit range element codec.
func Range32() encoding.Range32Codec { return encoding.Range32Of() }

// Range64 returns the 64-bit range element codec.
func Range64() encoding.Range64Codec { return encoding.Range64Of() }

// Complex returns the complex element codec.
func Complex() encoding.ComplexCodec { return encoding.Complex() }

// Angle returns the angle element codec.
func Angle() encoding.IntCodec[int32] { return encoding.Angle() }

// NewGUID returns a random GUID element value.
func NewGUID() uuid.UUID {
	return uuid.New()
}

// Ticks returns the DateTime tick count of t.
func Ticks(t time.Time) int64 {
	return encoding.TimeToTicks(t)
}

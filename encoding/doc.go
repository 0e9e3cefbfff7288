// Package encoding provides the element codecs of collection buffers.
//
// A codec converts one element value to and from bytes and to and from its
// literal text. Codecs never see nulls, counts or length prefixes; those
// belong to the collection layouts in the collection package.
//
// # Fixed-Width Codecs
//
// FixedCodec implementations write every value in exactly Width bytes:
//
//	Kind       Go type      Width   Bytes
//	Bool       bool         1       0x00 / 0x01
//	Int8       int8         1       two's complement
//	Uint8      uint8        1
//	Int16      int16        2       engine byte order
//	Int32      int32        4       engine byte order
//	Int64      int64        8       engine byte order
//	Angle      int32        4       engine byte order
//	Float32    float32      4       IEEE 754 bits
//	Float64    float64      8       IEEE 754 bits
//	DateTime   time.Time    8       signed 100ns ticks since 0001-01-01 UTC
//	GUID       uuid.UUID    16      RFC 4122 byte order, never swapped
//	Range32    Range32      8       low then high
//	Range64    Range64      16      low then high
//	Complex    complex128   16      real then imaginary float64
//
// # Variable-Length Codecs
//
// VarCodec implementations produce a payload of any length. The collection
// layout writes the payload behind a length prefix whose width is chosen by
// the layout:
//
//	String     string       raw UTF-8 bytes
//	Binary     []byte       raw bytes, literal form is quoted hex
//	BigInt     *big.Int     two's complement, minimal length
//
// # Length Prefixes
//
// ReadSize, PutSize and AppendSize read and write the 1, 2, 4 or 8-byte
// unsigned length and count fields used by the layouts.
//
// # Custom Codecs
//
// Any type satisfying FixedCodec[T] or VarCodec[T] can back a collection:
//
//	type celsius struct{}
//
//	func (celsius) Kind() format.Kind { return format.KindInt16 }
//	func (celsius) Width() int        { return 2 }
//	// Read, Write, Equal, FormatText, ParseText ...
//
//	temps, err := collection.NewFixed[int16](celsius{})
package encoding

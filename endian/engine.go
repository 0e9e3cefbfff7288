// Package endian provides the byte order used by every multi-byte field of a
// collection buffer: the count header, item length prefixes and fixed-width
// element values.
//
// A collection buffer does not record its byte order. The layout that created
// the buffer and every layout that later mutates it must agree on the engine,
// exactly as they must agree on the count width and compactness.
//
// Most users should use GetLittleEndianEngine(), which is the tcoll default:
//
//	engine := endian.GetLittleEndianEngine()
//	engine.PutUint32(buf[0:4], count)
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100: a little-endian host stores the 0x00 byte first.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNative reports whether engine matches the host byte order, in which case
// fixed-width values could be reinterpreted without swapping.
func IsNative(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// IsBigEndian reports whether engine writes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	return engine == binary.BigEndian
}

// Name returns "little" or "big" for the engine, used in diagnostics.
func Name(engine EndianEngine) string {
	if IsBigEndian(engine) {
		return "big"
	}

	return "little"
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

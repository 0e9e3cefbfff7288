// Package section defines the two structural sections every collection
// buffer is made of: the element count header and, for compact fixed-width
// layouts, the presence bitmap.
//
// # Buffer Structure
//
//	┌────────────────────────────────────────────┐
//	│ Count (1, 2, 4 or 8 bytes, unsigned)       │
//	├────────────────────────────────────────────┤
//	│ Presence bitmap (compact fixed only)       │
//	│  ceil(count/8) bytes, bit i = slot i       │
//	├────────────────────────────────────────────┤
//	│ Values                                     │
//	└────────────────────────────────────────────┘
//
// Header reads, writes and bounds-checks the count field for a chosen width
// and byte order.
//
// Bitmap views the presence bytes. Bit i lives in byte i/8 at position i%8,
// least significant bit first; a set bit marks a non-null slot. Bits past
// the element count are always zero. Rank0 counts the nulls before a slot,
// which is how compact layouts locate packed values. InsertBits and
// RemoveBits shift the tail of the bitmap in place when slots are inserted or
// removed.
package section

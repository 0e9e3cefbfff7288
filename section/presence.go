package section

import (
	"encoding/binary"
	"math/bits"
)

// Bitmap is the presence region of a compact fixed-width collection.
//
// Bit i lives in byte i/8 at bit position i%8 (least significant bit first)
// and is set when slot i holds a value. Bits at positions >= count are kept
// zero so that popcounts over whole bytes stay exact.
//
// A Bitmap aliases the collection buffer; mutations are visible to the
// caller immediately.
type Bitmap []byte

// BitmapSize returns the number of bitmap bytes needed for count slots.
func BitmapSize(count int) int {
	return (count + 7) / 8
}

// Present reports whether slot i holds a value.
func (b Bitmap) Present(i int) bool {
	return b[i>>3]&(1<<(uint(i)&7)) != 0
}

// IsNull reports whether slot i is null.
func (b Bitmap) IsNull(i int) bool {
	return !b.Present(i)
}

// Set marks slot i present or null.
func (b Bitmap) Set(i int, present bool) {
	mask := byte(1) << (uint(i) & 7)
	if present {
		b[i>>3] |= mask
	} else {
		b[i>>3] &^= mask
	}
}

// SetRange marks slots [at, at+n) present or null.
func (b Bitmap) SetRange(at, n int, present bool) {
	for i := at; i < at+n; i++ {
		b.Set(i, present)
	}
}

// PresentBefore returns the number of present slots strictly before i.
//
// Whole 64-bit words are counted with a single popcount, so the cost is
// O(i/64) plus at most seven byte popcounts.
func (b Bitmap) PresentBefore(i int) int {
	full := i >> 3
	n := 0
	j := 0
	for ; j+8 <= full; j += 8 {
		n += bits.OnesCount64(binary.LittleEndian.Uint64(b[j : j+8]))
	}
	for ; j < full; j++ {
		n += bits.OnesCount8(b[j])
	}
	if rem := uint(i) & 7; rem != 0 {
		n += bits.OnesCount8(b[full] & (1<<rem - 1))
	}

	return n
}

// Rank0 returns the number of null slots strictly before i.
func (b Bitmap) Rank0(i int) int {
	return i - b.PresentBefore(i)
}

// PresentCount returns the number of present slots among the first count.
func (b Bitmap) PresentCount(count int) int {
	return b.PresentBefore(count)
}

// ClearFrom zeroes every bit at position >= n.
func (b Bitmap) ClearFrom(n int) {
	first := BitmapSize(n)
	if rem := uint(n) & 7; rem != 0 {
		b[n>>3] &= 1<<rem - 1
	}
	clear(b[first:])
}

// InsertBits opens n null slots at position at in a bitmap holding count
// slots, renumbering the slots after at. The bitmap must already be sized
// for count+n slots.
//
// Only the trailing region [at, count) is moved. Byte-aligned openings move
// whole bytes; otherwise bits are moved from the back.
func (b Bitmap) InsertBits(count, at, n int) {
	if n == 0 {
		return
	}

	if at&7 == 0 && n&7 == 0 {
		from := at >> 3
		copy(b[from+n>>3:], b[from:BitmapSize(count)])
		clear(b[from : from+n>>3])
		b.ClearFrom(count + n)

		return
	}

	for i := count - 1; i >= at; i-- {
		b.Set(i+n, b.Present(i))
	}
	b.SetRange(at, n, false)
	b.ClearFrom(count + n)
}

// RemoveBits deletes slots [at, at+n) from a bitmap holding count slots,
// renumbering the slots after them and zeroing the vacated tail bits.
func (b Bitmap) RemoveBits(count, at, n int) {
	if n == 0 {
		return
	}

	if at&7 == 0 && n&7 == 0 {
		from := at >> 3
		copy(b[from:], b[from+n>>3:BitmapSize(count)])
		b.ClearFrom(count - n)

		return
	}

	for i := at + n; i < count; i++ {
		b.Set(i-n, b.Present(i))
	}
	b.ClearFrom(count - n)
}

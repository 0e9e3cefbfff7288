package pool

import "sync"

const (
	ScratchBufferDefaultSize  = 1024 * 4   // 4KiB
	ScratchBufferMaxThreshold = 1024 * 256 // 256KiB

	// smallBufferLimit is the capacity below which Grow doubles the buffer.
	smallBufferLimit = 1024 * 64
)

// ByteBuffer is a growable byte slice with in-place region shifting.
//
// Collection buffers are owned by the caller; the engine wraps them with Wrap,
// mutates them through the ByteBuffer methods and hands B back to the caller.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Wrap returns a ByteBuffer that operates directly on b.
func Wrap(b []byte) *ByteBuffer {
	return &ByteBuffer{B: b}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite writes data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Extend extends the buffer by n bytes if there is sufficient capacity.
func (bb *ByteBuffer) Extend(n int) bool {
	curLen := len(bb.B)
	if cap(bb.B)-curLen < n {
		return false
	}

	bb.B = bb.B[:curLen+n]

	return true
}

// ExtendOrGrow extends the buffer by n bytes, growing it if necessary.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	if bb.Extend(n) {
		return
	}

	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// The growth strategy is as follows:
//   - For small buffers (<64KiB), double the capacity.
//   - For larger buffers, grow by 25% of current capacity to balance memory usage and reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := cap(bb.B)
	if cap(bb.B) > smallBufferLimit {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Splice resizes the region [off, off+oldLen) to newLen bytes, shifting the
// trailing bytes once. The content of the resized region is unspecified when
// it grows; the caller overwrites it.
func (bb *ByteBuffer) Splice(off, oldLen, newLen int) {
	bb.Reshape(off, 0, 0, oldLen, newLen)
}

// Reshape moves the head region [start, start+headLen) by headShift bytes and
// resizes the middle region that follows it from oldMid to newMid bytes. The
// trailing bytes after the middle region move by headShift+newMid-oldMid.
//
// Each region is moved with a single copy. When headShift and the middle
// delta have opposite signs the tail is staged through a scratch buffer.
func (bb *ByteBuffer) Reshape(start, headLen, headShift, oldMid, newMid int) {
	oldLen := len(bb.B)
	midDelta := newMid - oldMid
	tailShift := headShift + midDelta
	tailStart := start + headLen + oldMid
	tailLen := oldLen - tailStart
	newLen := oldLen + tailShift

	if tailShift > 0 {
		bb.ExtendOrGrow(tailShift)
	}

	switch {
	case headShift >= 0 && midDelta >= 0:
		copy(bb.B[tailStart+tailShift:], bb.B[tailStart:oldLen])
		if headShift != 0 {
			copy(bb.B[start+headShift:], bb.B[start:start+headLen])
		}
	case headShift <= 0 && midDelta <= 0:
		if headShift != 0 {
			copy(bb.B[start+headShift:], bb.B[start:start+headLen])
		}
		copy(bb.B[tailStart+tailShift:], bb.B[tailStart:tailStart+tailLen])
	default:
		tmp := GetScratchBuffer()
		defer PutScratchBuffer(tmp)
		tmp.MustWrite(bb.B[tailStart : tailStart+tailLen])
		copy(bb.B[start+headShift:], bb.B[start:start+headLen])
		copy(bb.B[tailStart+tailShift:], tmp.B)
	}

	bb.B = bb.B[:newLen]
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteString appends s to the buffer.
func (bb *ByteBuffer) WriteString(s string) (int, error) {
	bb.B = append(bb.B, s...)
	return len(s), nil
}

// WriteByte appends c to the buffer.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

// Clone returns an exact-size copy of the buffer contents.
func (bb *ByteBuffer) Clone() []byte {
	out := make([]byte, len(bb.B))
	copy(out, bb.B)

	return out
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally to manage the buffers.
// The pool can be configured with a maximum size threshold to avoid retaining
// overly large buffers that could lead to memory bloat.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var scratchPool = NewByteBufferPool(ScratchBufferDefaultSize, ScratchBufferMaxThreshold)

// GetScratchBuffer retrieves an empty ByteBuffer from the scratch pool.
func GetScratchBuffer() *ByteBuffer {
	return scratchPool.Get()
}

// PutScratchBuffer returns a ByteBuffer to the scratch pool.
func PutScratchBuffer(bb *ByteBuffer) {
	scratchPool.Put(bb)
}

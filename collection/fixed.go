package collection

import (
	"github.com/cockroachdb/errors"

	"github.com/arloliu/tcoll/encoding"
	"github.com/arloliu/tcoll/endian"
	"github.com/arloliu/tcoll/errs"
	"github.com/arloliu/tcoll/format"
	"github.com/arloliu/tcoll/internal/pool"
	"github.com/arloliu/tcoll/section"
)

const (
	markerNull    byte = 0x00
	markerPresent byte = 0x01
)

// Fixed is the layout of collections whose elements all encode to the same
// width.
//
// Compact layout (the default):
//
//	[count][bitmap: ceil(count/8) bytes][non-null values, packed]
//
// The value of slot i starts at (i - Rank0(i)) * width within the value
// region, so point access costs one popcount over the bitmap prefix.
//
// Non-compact layout:
//
//	[count][marker|value][marker|value]...
//
// Every slot takes 1 + width bytes; null slots carry a zero marker and
// zeroed value bytes.
type Fixed[T any] struct {
	base[T]

	codec  encoding.FixedCodec[T]
	params Params
	width  int
}

var _ Layout[int32] = (*Fixed[int32])(nil)

// NewFixed creates a fixed-width layout for codec.
//
// Parameters:
//   - codec: Element codec
//   - opts: Layout options; WithItemSize is accepted and ignored
//
// Returns:
//   - *Fixed[T]: The layout
//   - error: ErrInvalidSizeEncoding if an option carries an invalid width
func NewFixed[T any](codec encoding.FixedCodec[T], opts ...Option) (*Fixed[T], error) {
	if codec == nil {
		return nil, errors.New("collection: nil fixed codec")
	}

	p, err := buildParams(opts)
	if err != nil {
		return nil, err
	}

	f := &Fixed[T]{codec: codec, params: p, width: codec.Width()}
	f.base = base[T]{
		impl:   f,
		header: section.Header{CountSize: p.CountSize, Engine: p.Engine},
		text:   codec,
		equal:  codec.Equal,
	}

	return f, nil
}

func (f *Fixed[T]) Kind() format.Kind { return f.codec.Kind() }

func (f *Fixed[T]) Params() Params { return f.params }

// Codec returns the element codec of the layout.
func (f *Fixed[T]) Codec() encoding.FixedCodec[T] { return f.codec }

func (f *Fixed[T]) defaults() Layout[T] {
	d, _ := NewFixed(f.codec)
	return d
}

func (f *Fixed[T]) slotSize() int {
	return 1 + f.width
}

// sameEncoding reports whether raw slots of other can be copied into f.
func (f *Fixed[T]) sameEncoding(other *Fixed[T]) bool {
	return other.codec.Kind() == f.codec.Kind() &&
		other.width == f.width &&
		other.params.Compact == f.params.Compact &&
		endian.IsBigEndian(other.params.Engine) == endian.IsBigEndian(f.params.Engine)
}

func (f *Fixed[T]) count(buf []byte) (int, error) {
	count, err := f.header.Count(buf)
	if err != nil {
		return 0, err
	}

	h := f.header.Size()
	var need int
	if f.params.Compact {
		bmEnd := h + section.BitmapSize(count)
		if bmEnd > len(buf) || bmEnd < h {
			return 0, errors.Wrapf(errs.ErrCorrupted, "bitmap for %d slots exceeds %d-byte buffer", count, len(buf))
		}
		need = bmEnd + section.Bitmap(buf[h:bmEnd]).PresentCount(count)*f.width
	} else {
		if count > (len(buf)-h)/f.slotSize() {
			return 0, errors.Wrapf(errs.ErrCorrupted, "%d slots exceed %d-byte buffer", count, len(buf))
		}
		need = h + count*f.slotSize()
	}

	if need > len(buf) {
		return 0, errors.Wrapf(errs.ErrCorrupted, "%d slots need %d bytes, buffer has %d", count, need, len(buf))
	}

	return count, nil
}

// bitmap returns the presence bitmap of a compact buffer.
func (f *Fixed[T]) bitmap(buf []byte, count int) section.Bitmap {
	h := f.header.Size()
	return section.Bitmap(buf[h : h+section.BitmapSize(count)])
}

func (f *Fixed[T]) scan(buf []byte, count, at, n int, yield func(int, Nullable[T]) bool) {
	engine := f.params.Engine
	w := f.width

	if f.params.Compact {
		bm := f.bitmap(buf, count)
		off := f.header.Size() + len(bm) + bm.PresentBefore(at)*w
		for i := at; i < at+n; i++ {
			var v Nullable[T]
			if bm.Present(i) {
				v = Some(f.codec.Read(engine, buf[off:off+w]))
				off += w
			}
			if !yield(i, v) {
				return
			}
		}

		return
	}

	off := f.header.Size() + at*f.slotSize()
	for i := at; i < at+n; i++ {
		var v Nullable[T]
		if buf[off] != markerNull {
			v = Some(f.codec.Read(engine, buf[off+1:off+1+w]))
		}
		if !yield(i, v) {
			return
		}
		off += f.slotSize()
	}
}

// fixedRun is a run of encoded slots ready to be spliced into a buffer.
//
// In the compact layout bits holds the presence of each run slot and data
// the packed non-null values. In the non-compact layout bits is nil and data
// holds whole marker+value slots.
type fixedRun struct {
	n       int
	present int
	bits    section.Bitmap
	data    []byte
}

// encodeValues encodes vals into scratch.
func (f *Fixed[T]) encodeValues(scratch *pool.ByteBuffer, vals []Nullable[T]) fixedRun {
	return f.encodeFunc(scratch, len(vals), func(i int) Nullable[T] { return vals[i] })
}

// encodeRepeat encodes n copies of v into scratch.
func (f *Fixed[T]) encodeRepeat(scratch *pool.ByteBuffer, v Nullable[T], n int) fixedRun {
	return f.encodeFunc(scratch, n, func(int) Nullable[T] { return v })
}

func (f *Fixed[T]) encodeFunc(scratch *pool.ByteBuffer, n int, at func(int) Nullable[T]) fixedRun {
	engine := f.params.Engine
	w := f.width
	run := fixedRun{n: n}

	if !f.params.Compact {
		scratch.ExtendOrGrow(n * f.slotSize())
		slots := scratch.B[len(scratch.B)-n*f.slotSize():]
		clear(slots)
		for i := range n {
			v := at(i)
			if !v.Valid {
				continue
			}
			slot := slots[i*f.slotSize():]
			slot[0] = markerPresent
			f.codec.Write(engine, slot[1:1+w], v.Value)
			run.present++
		}
		run.data = slots

		return run
	}

	bmSize := section.BitmapSize(n)
	scratch.ExtendOrGrow(bmSize)
	clear(scratch.B[:bmSize])
	for i := range n {
		v := at(i)
		if !v.Valid {
			continue
		}
		section.Bitmap(scratch.B[:bmSize]).Set(i, true)
		scratch.ExtendOrGrow(w)
		f.codec.Write(engine, scratch.B[len(scratch.B)-w:], v.Value)
		run.present++
	}
	run.bits = section.Bitmap(scratch.B[:bmSize])
	run.data = scratch.B[bmSize:]

	return run
}

// copyRaw copies the encoded slots [at, at+n) of buf into scratch.
func (f *Fixed[T]) copyRaw(scratch *pool.ByteBuffer, buf []byte, count, at, n int) fixedRun {
	run := fixedRun{n: n}

	if !f.params.Compact {
		off := f.header.Size() + at*f.slotSize()
		scratch.MustWrite(buf[off : off+n*f.slotSize()])
		run.data = scratch.B
		for i := range n {
			if run.data[i*f.slotSize()] != markerNull {
				run.present++
			}
		}

		return run
	}

	src := f.bitmap(buf, count)
	bmSize := section.BitmapSize(n)
	scratch.ExtendOrGrow(bmSize)
	bits := section.Bitmap(scratch.B[:bmSize])
	clear(bits)
	for i := range n {
		if src.Present(at + i) {
			bits.Set(i, true)
		}
	}

	before := src.PresentBefore(at)
	run.present = src.PresentBefore(at+n) - before
	vs := f.header.Size() + len(src)
	scratch.MustWrite(buf[vs+before*f.width : vs+(before+run.present)*f.width])

	run.bits = section.Bitmap(scratch.B[:bmSize])
	run.data = scratch.B[bmSize:]

	return run
}

// apply replaces slots [at, at+del) of buf with run, moving the trailing
// bytes once.
func (f *Fixed[T]) apply(buf []byte, count, at, del int, run fixedRun) ([]byte, error) {
	newCount := count - del + run.n
	h := f.header.Size()
	bb := pool.Wrap(buf)

	if !f.params.Compact {
		off := h + at*f.slotSize()
		bb.Splice(off, del*f.slotSize(), run.n*f.slotSize())
		copy(bb.B[off:], run.data)
	} else {
		w := f.width
		oldBM := section.BitmapSize(count)
		newBM := section.BitmapSize(newCount)
		bm := section.Bitmap(buf[h : h+oldBM])
		before := bm.PresentBefore(at)
		oldMid := (bm.PresentBefore(at+del) - before) * w
		headLen := before * w

		// Shrinking renumbers the bits before the bitmap gives up its
		// trailing bytes; growing needs the new bytes first.
		if run.n < del {
			bm.RemoveBits(count, at, del-run.n)
		}
		bb.Reshape(h+oldBM, headLen, newBM-oldBM, oldMid, run.present*w)
		bm = section.Bitmap(bb.B[h : h+newBM])
		if run.n >= del {
			bm.InsertBits(count, at, run.n-del)
		}

		for i := range run.n {
			bm.Set(at+i, run.bits.Present(i))
		}
		copy(bb.B[h+newBM+headLen:], run.data)
	}

	if err := f.header.SetCount(bb.B, newCount); err != nil {
		return bb.B, err
	}

	return bb.B, nil
}

func (f *Fixed[T]) spliceValues(buf []byte, count, at, del int, vals []Nullable[T]) ([]byte, error) {
	scratch := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(scratch)

	return f.apply(buf, count, at, del, f.encodeValues(scratch, vals))
}

func (f *Fixed[T]) spliceRepeat(buf []byte, count, at, del int, v Nullable[T], n int) ([]byte, error) {
	scratch := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(scratch)

	return f.apply(buf, count, at, del, f.encodeRepeat(scratch, v, n))
}

// spliceSource copies raw slots when src shares this encoding and decodes
// then re-encodes otherwise. The run is staged in scratch before buf is
// touched, so src may alias buf.
func (f *Fixed[T]) spliceSource(buf []byte, count, at, del int, src Source[T]) ([]byte, error) {
	scratch := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(scratch)

	var run fixedRun
	if other, ok := src.layout.(*Fixed[T]); ok && f.sameEncoding(other) {
		n, err := other.count(src.buf)
		if err != nil {
			return buf, err
		}
		run = f.copyRaw(scratch, src.buf, n, 0, n)
	} else {
		vals, err := src.Values()
		if err != nil {
			return buf, err
		}
		run = f.encodeValues(scratch, vals)
	}

	return f.apply(buf, count, at, del, run)
}

func (f *Fixed[T]) extract(buf []byte, count, at, n int) ([]byte, error) {
	runBuf := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(runBuf)
	out := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(out)

	run := f.copyRaw(runBuf, buf, count, at, n)
	b, err := f.apply(f.header.Append(out.B), 0, 0, 0, run)
	if err != nil {
		return nil, err
	}
	out.B = b

	return out.Clone(), nil
}

func (f *Fixed[T]) stats(buf []byte, count int) Stats {
	s := Stats{Count: count, HeaderBytes: f.header.Size()}

	if f.params.Compact {
		bm := f.bitmap(buf, count)
		present := bm.PresentCount(count)
		s.NullCount = count - present
		s.PresenceBytes = len(bm)
		s.ValueBytes = present * f.width
	} else {
		s.PresenceBytes = count
		s.ValueBytes = count * f.width
		off := s.HeaderBytes
		for range count {
			if buf[off] == markerNull {
				s.NullCount++
			}
			off += f.slotSize()
		}
	}
	s.SlackBytes = len(buf) - s.TotalBytes()

	return s
}

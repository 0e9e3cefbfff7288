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

// Variable is the layout of collections whose elements have individual
// lengths:
//
//	[count][len|payload][len|payload]...
//
// Each length prefix is ItemSize bytes wide. The all-ones prefix marks a
// null slot and carries no payload, so the longest storable item is one byte
// shorter than the prefix maximum. Locating slot i walks the i prefixes
// before it.
type Variable[T any] struct {
	base[T]

	codec  encoding.VarCodec[T]
	params Params
}

var _ Layout[string] = (*Variable[string])(nil)

// NewVariable creates a variable-length layout for codec.
//
// Parameters:
//   - codec: Element codec
//   - opts: Layout options; WithCompact is accepted and ignored
//
// Returns:
//   - *Variable[T]: The layout
//   - error: ErrInvalidSizeEncoding if an option carries an invalid width
func NewVariable[T any](codec encoding.VarCodec[T], opts ...Option) (*Variable[T], error) {
	if codec == nil {
		return nil, errors.New("collection: nil variable codec")
	}

	p, err := buildParams(opts)
	if err != nil {
		return nil, err
	}

	v := &Variable[T]{codec: codec, params: p}
	v.base = base[T]{
		impl:   v,
		header: section.Header{CountSize: p.CountSize, Engine: p.Engine},
		text:   codec,
		equal:  codec.Equal,
	}

	return v, nil
}

func (v *Variable[T]) Kind() format.Kind { return v.codec.Kind() }

func (v *Variable[T]) Params() Params { return v.params }

// Codec returns the element codec of the layout.
func (v *Variable[T]) Codec() encoding.VarCodec[T] { return v.codec }

func (v *Variable[T]) defaults() Layout[T] {
	d, _ := NewVariable(v.codec)
	return d
}

func (v *Variable[T]) sameEncoding(other *Variable[T]) bool {
	return other.codec.Kind() == v.codec.Kind() &&
		other.params.ItemSize == v.params.ItemSize &&
		endian.IsBigEndian(other.params.Engine) == endian.IsBigEndian(v.params.Engine)
}

// next returns the offset just past the item at off, its payload and whether
// it is null. ok is false when the item runs past the end of buf.
func (v *Variable[T]) next(buf []byte, off int) (end int, payload []byte, null, ok bool) {
	size := v.params.ItemSize
	w := size.Width()
	if off+w > len(buf) {
		return 0, nil, false, false
	}

	n := encoding.ReadSize(v.params.Engine, buf[off:], size)
	if n == size.Max() {
		return off + w, nil, true, true
	}
	if n > uint64(len(buf)-off-w) {
		return 0, nil, false, false
	}
	end = off + w + int(n) //nolint:gosec

	return end, buf[off+w : end], false, true
}

// offset returns the byte offset of slot i. The buffer must have passed count.
func (v *Variable[T]) offset(buf []byte, i int) int {
	off := v.header.Size()
	for range i {
		off, _, _, _ = v.next(buf, off)
	}

	return off
}

// count walks every length prefix, so later scans never run past buf.
func (v *Variable[T]) count(buf []byte) (int, error) {
	count, err := v.header.Count(buf)
	if err != nil {
		return 0, err
	}

	off := v.header.Size()
	if count > (len(buf)-off)/v.params.ItemSize.Width() {
		return 0, errors.Wrapf(errs.ErrCorrupted, "%d items exceed %d-byte buffer", count, len(buf))
	}
	for i := range count {
		end, _, _, ok := v.next(buf, off)
		if !ok {
			return 0, errors.Wrapf(errs.ErrCorrupted, "item %d at offset %d runs past %d-byte buffer", i, off, len(buf))
		}
		off = end
	}

	return count, nil
}

func (v *Variable[T]) scan(buf []byte, _, at, n int, yield func(int, Nullable[T]) bool) {
	off := v.offset(buf, at)
	for i := at; i < at+n; i++ {
		end, payload, null, _ := v.next(buf, off)
		var x Nullable[T]
		if !null {
			x = Some(v.codec.Decode(v.params.Engine, payload))
		}
		if !yield(i, x) {
			return
		}
		off = end
	}
}

// encodeFunc encodes n items into scratch, failing before anything is
// written to the collection when a payload does not fit the length prefix.
func (v *Variable[T]) encodeFunc(scratch *pool.ByteBuffer, n int, at func(int) Nullable[T]) error {
	size := v.params.ItemSize
	engine := v.params.Engine

	for i := range n {
		x := at(i)
		if !x.Valid {
			scratch.B, _ = encoding.AppendSize(engine, scratch.B, size, size.Max())
			continue
		}

		length := v.codec.Size(x.Value)
		if uint64(length) >= size.Max() { //nolint:gosec
			return errors.Wrapf(errs.ErrSizeOverflow, "item %d of %d bytes exceeds %s length prefix", i, length, size)
		}
		scratch.B, _ = encoding.AppendSize(engine, scratch.B, size, uint64(length)) //nolint:gosec
		scratch.B = v.codec.Append(engine, scratch.B, x.Value)
	}

	return nil
}

// apply replaces slots [at, at+del) of buf with the n encoded items in run.
func (v *Variable[T]) apply(buf []byte, count, at, del int, run []byte, n int) ([]byte, error) {
	start := v.offset(buf, at)
	end := start
	for range del {
		end, _, _, _ = v.next(buf, end)
	}

	bb := pool.Wrap(buf)
	bb.Splice(start, end-start, len(run))
	copy(bb.B[start:], run)

	if err := v.header.SetCount(bb.B, count-del+n); err != nil {
		return bb.B, err
	}

	return bb.B, nil
}

func (v *Variable[T]) spliceValues(buf []byte, count, at, del int, vals []Nullable[T]) ([]byte, error) {
	scratch := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(scratch)

	if err := v.encodeFunc(scratch, len(vals), func(i int) Nullable[T] { return vals[i] }); err != nil {
		return buf, err
	}

	return v.apply(buf, count, at, del, scratch.B, len(vals))
}

func (v *Variable[T]) spliceRepeat(buf []byte, count, at, del int, x Nullable[T], n int) ([]byte, error) {
	scratch := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(scratch)

	if err := v.encodeFunc(scratch, 1, func(int) Nullable[T] { return x }); err != nil {
		return buf, err
	}
	item := len(scratch.B)
	for range n - 1 {
		scratch.MustWrite(scratch.B[:item])
	}

	return v.apply(buf, count, at, del, scratch.B, n)
}

// spliceSource copies raw items when src shares this encoding and decodes
// then re-encodes otherwise. The items are staged in scratch before buf is
// touched, so src may alias buf.
func (v *Variable[T]) spliceSource(buf []byte, count, at, del int, src Source[T]) ([]byte, error) {
	scratch := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(scratch)

	var n int
	if other, ok := src.layout.(*Variable[T]); ok && v.sameEncoding(other) {
		srcCount, err := other.count(src.buf)
		if err != nil {
			return buf, err
		}
		n = srcCount
		scratch.MustWrite(src.buf[other.header.Size():other.offset(src.buf, srcCount)])
	} else {
		vals, err := src.Values()
		if err != nil {
			return buf, err
		}
		n = len(vals)
		if err := v.encodeFunc(scratch, n, func(i int) Nullable[T] { return vals[i] }); err != nil {
			return buf, err
		}
	}

	return v.apply(buf, count, at, del, scratch.B, n)
}

func (v *Variable[T]) extract(buf []byte, _, at, n int) ([]byte, error) {
	start := v.offset(buf, at)
	end := start
	for range n {
		end, _, _, _ = v.next(buf, end)
	}

	h := v.header.Size()
	out := make([]byte, h+end-start)
	if err := v.header.SetCount(out, n); err != nil {
		return nil, err
	}
	copy(out[h:], buf[start:end])

	return out, nil
}

func (v *Variable[T]) stats(buf []byte, count int) Stats {
	h := v.header.Size()
	s := Stats{Count: count, HeaderBytes: h}

	off := h
	for range count {
		end, _, null, _ := v.next(buf, off)
		if null {
			s.NullCount++
		}
		off = end
	}
	s.ValueBytes = off - h
	s.SlackBytes = len(buf) - off

	return s
}

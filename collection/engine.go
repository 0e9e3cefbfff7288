package collection

import (
	"github.com/cockroachdb/errors"

	"github.com/arloliu/tcoll/encoding"
	"github.com/arloliu/tcoll/errs"
	"github.com/arloliu/tcoll/internal/pool"
	"github.com/arloliu/tcoll/section"
)

// primitives are the layout-specific building blocks the shared engine is
// written against. Indices and counts passed to them are already validated.
type primitives[T any] interface {
	Layout[T]

	// count reads the slot count and checks the buffer is long enough to
	// hold it.
	count(buf []byte) (int, error)
	// scan yields slots [at, at+n) in order.
	scan(buf []byte, count, at, n int, yield func(int, Nullable[T]) bool)
	// spliceValues replaces slots [at, at+del) with vals using one shift of
	// the trailing region.
	spliceValues(buf []byte, count, at, del int, vals []Nullable[T]) ([]byte, error)
	// spliceRepeat replaces slots [at, at+del) with n copies of v.
	spliceRepeat(buf []byte, count, at, del int, v Nullable[T], n int) ([]byte, error)
	// spliceSource replaces slots [at, at+del) with every slot of src.
	spliceSource(buf []byte, count, at, del int, src Source[T]) ([]byte, error)
	// extract returns a new buffer holding slots [at, at+n).
	extract(buf []byte, count, at, n int) ([]byte, error)
	// stats reports the region sizes of buf.
	stats(buf []byte, count int) Stats
	// defaults returns the layout with default parameters for the same codec.
	defaults() Layout[T]
}

// base implements the Layout operations shared by every layout on top of
// the layout primitives.
type base[T any] struct {
	impl   primitives[T]
	header section.Header
	text   encoding.TextCodec[T]
	equal  func(a, b T) bool
}

func (b *base[T]) Create() []byte {
	return b.header.Append(make([]byte, 0, b.header.Size()))
}

func (b *base[T]) Build(values []Nullable[T]) ([]byte, error) {
	if err := b.header.CheckCount(len(values)); err != nil {
		return nil, err
	}

	scratch := pool.GetScratchBuffer()
	defer pool.PutScratchBuffer(scratch)

	buf, err := b.impl.spliceValues(b.header.Append(scratch.B), 0, 0, 0, values)
	if err != nil {
		return nil, err
	}
	scratch.B = buf

	return scratch.Clone(), nil
}

func (b *base[T]) Source(buf []byte) Source[T] {
	return Source[T]{layout: b.impl, buf: buf}
}

func (b *base[T]) Count(buf []byte) (int, error) {
	return b.impl.count(buf)
}

func (b *base[T]) Get(buf []byte, i int) (Nullable[T], error) {
	count, err := b.impl.count(buf)
	if err != nil {
		return Nullable[T]{}, err
	}
	if err := checkIndex(i, count); err != nil {
		return Nullable[T]{}, err
	}

	var out Nullable[T]
	b.impl.scan(buf, count, i, 1, func(_ int, v Nullable[T]) bool {
		out = v
		return false
	})

	return out, nil
}

// IndexOf returns the index of the first slot equal to v, or -1. A null v
// matches the first null slot.
func (b *base[T]) IndexOf(buf []byte, v Nullable[T]) (int, error) {
	count, err := b.impl.count(buf)
	if err != nil {
		return -1, err
	}

	found := -1
	b.impl.scan(buf, count, 0, count, func(i int, x Nullable[T]) bool {
		if b.same(v, x) {
			found = i
			return false
		}

		return true
	})

	return found, nil
}

func (b *base[T]) same(a, x Nullable[T]) bool {
	if a.Valid != x.Valid {
		return false
	}

	return !a.Valid || b.equal(a.Value, x.Value)
}

func (b *base[T]) Values(buf []byte) ([]Nullable[T], error) {
	count, err := b.impl.count(buf)
	if err != nil {
		return nil, err
	}

	out := make([]Nullable[T], 0, count)
	b.impl.scan(buf, count, 0, count, func(_ int, v Nullable[T]) bool {
		out = append(out, v)
		return true
	})

	return out, nil
}

func (b *base[T]) Set(buf []byte, i int, v Nullable[T]) ([]byte, error) {
	count, err := b.impl.count(buf)
	if err != nil {
		return buf, err
	}
	if err := checkIndex(i, count); err != nil {
		return buf, err
	}

	return b.impl.spliceValues(buf, count, i, 1, []Nullable[T]{v})
}

func (b *base[T]) InsertAt(buf []byte, i int, v Nullable[T]) ([]byte, error) {
	count, err := b.impl.count(buf)
	if err != nil {
		return buf, err
	}
	if i < 0 || i > count {
		return buf, errors.Wrapf(errs.ErrIndexOutOfRange, "insert index %d not in [0, %d]", i, count)
	}
	if err := b.header.CheckCount(count + 1); err != nil {
		return buf, err
	}

	return b.impl.spliceValues(buf, count, i, 0, []Nullable[T]{v})
}

func (b *base[T]) RemoveAt(buf []byte, i int) ([]byte, error) {
	count, err := b.impl.count(buf)
	if err != nil {
		return buf, err
	}
	if err := checkIndex(i, count); err != nil {
		return buf, err
	}

	return b.impl.spliceValues(buf, count, i, 1, nil)
}

// Remove deletes the first slot equal to v. It is a no-op when no slot matches.
func (b *base[T]) Remove(buf []byte, v Nullable[T]) ([]byte, error) {
	i, err := b.IndexOf(buf, v)
	if err != nil || i < 0 {
		return buf, err
	}

	return b.RemoveAt(buf, i)
}

// Clear truncates the collection to an empty header.
func (b *base[T]) Clear(buf []byte) ([]byte, error) {
	if _, err := b.impl.count(buf); err != nil {
		return buf, err
	}

	buf = buf[:b.header.Size()]
	if err := b.header.SetCount(buf, 0); err != nil {
		return buf, err
	}

	return buf, nil
}

func (b *base[T]) GetRange(buf []byte, index, count Nullable[int]) ([]byte, error) {
	total, err := b.impl.count(buf)
	if err != nil {
		return nil, err
	}
	at, n, err := resolveSlice(total, index, count)
	if err != nil {
		return nil, err
	}

	return b.impl.extract(buf, total, at, n)
}

func (b *base[T]) RemoveRange(buf []byte, index, count Nullable[int]) ([]byte, error) {
	total, err := b.impl.count(buf)
	if err != nil {
		return buf, err
	}
	at, n, err := resolveSlice(total, index, count)
	if err != nil {
		return buf, err
	}
	if n == 0 {
		return buf, nil
	}

	return b.impl.spliceValues(buf, total, at, n, nil)
}

// InsertRange inserts every slot of src before index. A null index appends.
func (b *base[T]) InsertRange(buf []byte, index Nullable[int], src Source[T]) ([]byte, error) {
	total, err := b.impl.count(buf)
	if err != nil {
		return buf, err
	}
	n, err := b.sourceCount(src)
	if err != nil {
		return buf, err
	}
	at, err := resolveInsert(total, index)
	if err != nil {
		return buf, err
	}
	if err := b.header.CheckCount(total + n); err != nil {
		return buf, err
	}
	if n == 0 {
		return buf, nil
	}

	return b.impl.spliceSource(buf, total, at, 0, src)
}

// SetRange overwrites slots starting at index with every slot of src. A null
// index overwrites the last Count(src) slots.
func (b *base[T]) SetRange(buf []byte, index Nullable[int], src Source[T]) ([]byte, error) {
	total, err := b.impl.count(buf)
	if err != nil {
		return buf, err
	}
	n, err := b.sourceCount(src)
	if err != nil {
		return buf, err
	}
	at, n, err := resolveSlice(total, index, Some(n))
	if err != nil {
		return buf, err
	}
	if n == 0 {
		return buf, nil
	}

	return b.impl.spliceSource(buf, total, at, n, src)
}

// InsertRepeat inserts n copies of v before index. A null index appends.
func (b *base[T]) InsertRepeat(buf []byte, index Nullable[int], v Nullable[T], n int) ([]byte, error) {
	total, err := b.impl.count(buf)
	if err != nil {
		return buf, err
	}
	if n < 0 {
		return buf, errors.Wrapf(errs.ErrInvalidCount, "negative repeat count %d", n)
	}
	at, err := resolveInsert(total, index)
	if err != nil {
		return buf, err
	}
	if err := b.header.CheckCount(total + n); err != nil {
		return buf, err
	}
	if n == 0 {
		return buf, nil
	}

	return b.impl.spliceRepeat(buf, total, at, 0, v, n)
}

// SetRepeat overwrites the slots selected by index and count with v.
func (b *base[T]) SetRepeat(buf []byte, v Nullable[T], index, count Nullable[int]) ([]byte, error) {
	total, err := b.impl.count(buf)
	if err != nil {
		return buf, err
	}
	at, n, err := resolveSlice(total, index, count)
	if err != nil {
		return buf, err
	}
	if n == 0 {
		return buf, nil
	}

	return b.impl.spliceRepeat(buf, total, at, n, v, n)
}

func (b *base[T]) sourceCount(src Source[T]) (int, error) {
	if src.layout == nil {
		return 0, errs.ErrNilBuffer
	}
	if src.layout.Kind() != b.impl.Kind() {
		return 0, errors.Wrapf(errs.ErrKindMismatch, "source %s, destination %s", src.layout.Kind(), b.impl.Kind())
	}

	return src.layout.Count(src.buf)
}

func checkIndex(i, count int) error {
	if i < 0 || i >= count {
		return errors.Wrapf(errs.ErrIndexOutOfRange, "index %d not in [0, %d)", i, count)
	}

	return nil
}

// resolveInsert applies insert defaulting: a null index appends.
func resolveInsert(total int, index Nullable[int]) (int, error) {
	if !index.Valid {
		return total, nil
	}
	if index.Value < 0 || index.Value > total {
		return 0, errors.Wrapf(errs.ErrIndexOutOfRange, "insert index %d not in [0, %d]", index.Value, total)
	}

	return index.Value, nil
}

// resolveSlice applies the slice-defaulting convention to a collection of
// total slots and validates the resulting range.
func resolveSlice(total int, index, count Nullable[int]) (int, int, error) {
	switch {
	case !index.Valid && !count.Valid:
		return 0, total, nil
	case !index.Valid:
		n := count.Value
		if n < 0 || n > total {
			return 0, 0, errors.Wrapf(errs.ErrInvalidCount, "count %d not in [0, %d]", n, total)
		}

		return total - n, n, nil
	case !count.Valid:
		at := index.Value
		if at < 0 || at > total {
			return 0, 0, errors.Wrapf(errs.ErrIndexOutOfRange, "index %d not in [0, %d]", at, total)
		}

		return at, total - at, nil
	default:
		at, n := index.Value, count.Value
		if at < 0 || at > total {
			return 0, 0, errors.Wrapf(errs.ErrIndexOutOfRange, "index %d not in [0, %d]", at, total)
		}
		if n < 0 || n > total-at {
			return 0, 0, errors.Wrapf(errs.ErrInvalidCount, "count %d at index %d exceeds %d slots", n, at, total)
		}

		return at, n, nil
	}
}

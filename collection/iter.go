package collection

import "iter"

// Enumerate returns a restartable iterator over the slots selected by index
// and count. Each pass re-reads buf and stops early if the collection has
// shrunk below the selected range.
func (b *base[T]) Enumerate(buf []byte, index, count Nullable[int]) (iter.Seq2[int, Nullable[T]], error) {
	total, err := b.impl.count(buf)
	if err != nil {
		return nil, err
	}
	at, n, err := resolveSlice(total, index, count)
	if err != nil {
		return nil, err
	}

	return func(yield func(int, Nullable[T]) bool) {
		current, err := b.impl.count(buf)
		if err != nil || at >= current {
			return
		}
		b.impl.scan(buf, current, at, min(n, current-at), yield)
	}, nil
}

// Present adapts a slot iterator to yield only the non-null values, keyed by
// their slot index.
func Present[T any](seq iter.Seq2[int, Nullable[T]]) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range seq {
			if v.Valid && !yield(i, v.Value) {
				return
			}
		}
	}
}

// Collect gathers every slot of seq in order.
func Collect[T any](seq iter.Seq2[int, Nullable[T]]) []Nullable[T] {
	var out []Nullable[T]
	for _, v := range seq {
		out = append(out, v)
	}

	return out
}

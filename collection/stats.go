package collection

import "github.com/arloliu/tcoll/internal/hash"

// Digest returns a hash of the logical content of the collection. Two
// buffers holding the same sequence have the same digest whatever their
// layout parameters.
func (b *base[T]) Digest(buf []byte) (uint64, error) {
	count, err := b.impl.count(buf)
	if err != nil {
		return 0, err
	}

	d := hash.NewDigest()
	b.impl.scan(buf, count, 0, count, func(_ int, v Nullable[T]) bool {
		if v.Valid {
			d.WriteValue(b.text.FormatText(v.Value))
		} else {
			d.WriteNull()
		}

		return true
	})

	return d.Sum64(), nil
}

// Stats reports how buf is laid out.
func (b *base[T]) Stats(buf []byte) (Stats, error) {
	count, err := b.impl.count(buf)
	if err != nil {
		return Stats{}, err
	}

	return b.impl.stats(buf, count), nil
}

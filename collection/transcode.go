package collection

import (
	"github.com/cockroachdb/errors"

	"github.com/arloliu/tcoll/errs"
)

// Transcode decodes every slot of src in index order and returns a new
// exact-size buffer encoding the same sequence under the parameters of dst.
//
// A count or item length that does not fit the size encodings of dst fails
// with a *errs.FormatError wrapping errs.ErrSizeOverflow.
func Transcode[T any](dst Layout[T], src Source[T]) ([]byte, error) {
	if dst == nil || src.layout == nil {
		return nil, errs.ErrNilBuffer
	}
	if dst.Kind() != src.layout.Kind() {
		return nil, errors.Wrapf(errs.ErrKindMismatch, "source %s, destination %s", src.layout.Kind(), dst.Kind())
	}

	values, err := src.Values()
	if err != nil {
		return nil, err
	}

	out, err := dst.Build(values)
	if err != nil {
		if errors.Is(err, errs.ErrSizeOverflow) {
			return nil, errs.NewFormatError(dst.Params().String(), err)
		}

		return nil, err
	}

	return out, nil
}

// ToArray rebuilds the collection under the default parameters of its codec.
func (b *base[T]) ToArray(buf []byte) ([]byte, error) {
	return Transcode(b.impl.defaults(), b.Source(buf))
}

// Compact rebuilds the collection under its own parameters. The result holds
// no slack past the logical end and no spare capacity.
func (b *base[T]) Compact(buf []byte) ([]byte, error) {
	count, err := b.impl.count(buf)
	if err != nil {
		return nil, err
	}

	return b.impl.extract(buf, count, 0, count)
}

package main

import (
	"math/big"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/arloliu/tcoll/collection"
	"github.com/arloliu/tcoll/encoding"
	"github.com/arloliu/tcoll/errs"
	"github.com/arloliu/tcoll/format"
)

// layout is a collection layout with its element type erased so one
// command can serve every kind.
type layout interface {
	Kind() format.Kind
	Params() collection.Params
	Parse(text string) ([]byte, error)
	Format(buf []byte) (string, error)
	Count(buf []byte) (int, error)
	Stats(buf []byte) (collection.Stats, error)
	Digest(buf []byte) (uint64, error)
	Compact(buf []byte) ([]byte, error)
	// TranscodeTo re-encodes buf under the parameters of dst.
	TranscodeTo(dst layout, buf []byte) ([]byte, error)
}

type typedLayout[T any] struct {
	collection.Layout[T]
}

func (l typedLayout[T]) TranscodeTo(dst layout, buf []byte) ([]byte, error) {
	d, ok := dst.(typedLayout[T])
	if !ok {
		return nil, errors.Wrapf(errs.ErrKindMismatch, "source %s, destination %s", l.Kind(), dst.Kind())
	}

	return collection.Transcode(d.Layout, l.Source(buf))
}

type opener func(opts ...collection.Option) (layout, error)

func fixed[T any](codec encoding.FixedCodec[T]) opener {
	return func(opts ...collection.Option) (layout, error) {
		l, err := collection.NewFixed(codec, opts...)
		if err != nil {
			return nil, err
		}

		return typedLayout[T]{l}, nil
	}
}

func variable[T any](codec encoding.VarCodec[T]) opener {
	return func(opts ...collection.Option) (layout, error) {
		l, err := collection.NewVariable(codec, opts...)
		if err != nil {
			return nil, err
		}

		return typedLayout[T]{l}, nil
	}
}

var openers = map[format.Kind]opener{
	format.KindBool:     fixed[bool](encoding.Bool()),
	format.KindInt8:     fixed[int8](encoding.Int8()),
	format.KindUint8:    fixed[uint8](encoding.Uint8()),
	format.KindInt16:    fixed[int16](encoding.Int16()),
	format.KindInt32:    fixed[int32](encoding.Int32()),
	format.KindInt64:    fixed[int64](encoding.Int64()),
	format.KindFloat32:  fixed[float32](encoding.Float32()),
	format.KindFloat64:  fixed[float64](encoding.Float64()),
	format.KindGUID:     fixed[uuid.UUID](encoding.GUID()),
	format.KindDateTime: fixed[time.Time](encoding.DateTime()),
	format.KindRange32:  fixed[encoding.Range32](encoding.Range32Of()),
	format.KindRange64:  fixed[encoding.Range64](encoding.Range64Of()),
	format.KindComplex:  fixed[complex128](encoding.Complex()),
	format.KindAngle:    fixed[int32](encoding.Angle()),
	format.KindString:   variable[string](encoding.String()),
	format.KindBinary:   variable[[]byte](encoding.Binary()),
	format.KindBigInt:   variable[*big.Int](encoding.BigInt()),
}

// openLayout builds the layout for kind under params.
func openLayout(kind format.Kind, params collection.Params) (layout, error) {
	open, ok := openers[kind]
	if !ok {
		return nil, errors.Newf("no layout for kind %s", kind)
	}

	return open(collection.WithParams(params))
}

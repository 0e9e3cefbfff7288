package collection

import (
	"fmt"
	"iter"

	"github.com/cockroachdb/errors"

	"github.com/arloliu/tcoll/endian"
	"github.com/arloliu/tcoll/errs"
	"github.com/arloliu/tcoll/format"
	"github.com/arloliu/tcoll/internal/options"
)

// Params are the layout parameters of a collection buffer. They are not
// stored in the buffer; every layout that touches a buffer must be built
// with the parameters that created it.
type Params struct {
	// CountSize is the width of the count header.
	CountSize format.SizeEncoding
	// Compact selects the presence bitmap layout for fixed-width kinds.
	Compact bool
	// ItemSize is the width of the length prefix for variable-length kinds.
	ItemSize format.SizeEncoding
	// Engine is the byte order of every multi-byte field.
	Engine endian.EndianEngine
}

// DefaultParams returns the parameters used when no option is given:
// 32-bit count, compact presence, 32-bit item lengths, little-endian.
func DefaultParams() Params {
	return Params{
		CountSize: format.DefaultCountSize,
		Compact:   true,
		ItemSize:  format.DefaultItemSize,
		Engine:    endian.GetLittleEndianEngine(),
	}
}

func (p Params) String() string {
	return fmt.Sprintf("count=%s compact=%t item=%s endian=%s",
		p.CountSize, p.Compact, p.ItemSize, endian.Name(p.Engine))
}

// Option configures layout parameters.
type Option = options.Option[*Params]

// WithCountSize sets the count header width.
func WithCountSize(size format.SizeEncoding) Option {
	return options.New(func(p *Params) error {
		if !size.Valid() {
			return errors.Wrapf(errs.ErrInvalidSizeEncoding, "count size %d", size)
		}
		p.CountSize = size

		return nil
	})
}

// WithItemSize sets the length prefix width of variable-length kinds.
func WithItemSize(size format.SizeEncoding) Option {
	return options.New(func(p *Params) error {
		if !size.Valid() {
			return errors.Wrapf(errs.ErrInvalidSizeEncoding, "item size %d", size)
		}
		p.ItemSize = size

		return nil
	})
}

// WithCompact selects the compact (bitmap) or non-compact (inline marker)
// presence layout for fixed-width kinds.
func WithCompact(compact bool) Option {
	return options.NoError(func(p *Params) {
		p.Compact = compact
	})
}

// WithLittleEndian selects little-endian byte order (the default).
func WithLittleEndian() Option {
	return options.NoError(func(p *Params) {
		p.Engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian selects big-endian byte order.
func WithBigEndian() Option {
	return options.NoError(func(p *Params) {
		p.Engine = endian.GetBigEndianEngine()
	})
}

// WithParams replaces every parameter at once.
func WithParams(params Params) Option {
	return options.New(func(p *Params) error {
		if !params.CountSize.Valid() || !params.ItemSize.Valid() {
			return errors.Wrapf(errs.ErrInvalidSizeEncoding, "params %s", params)
		}
		if params.Engine == nil {
			params.Engine = endian.GetLittleEndianEngine()
		}
		*p = params

		return nil
	})
}

// Combine folds opts into one option applied in order.
func Combine(opts ...Option) Option {
	return options.Chain(opts...)
}

// NewParams returns DefaultParams with opts applied.
func NewParams(opts ...Option) (Params, error) {
	return buildParams(opts)
}

func buildParams(opts []Option) (Params, error) {
	p := DefaultParams()
	if err := options.Apply(&p, opts...); err != nil {
		return Params{}, err
	}

	return p, nil
}

// Layout is the operation set shared by every collection layout.
//
// A Layout holds parameters only. Each method works directly on the buffer
// it is given and keeps nothing after returning, so one Layout may serve any
// number of buffers from any number of goroutines. Mutating methods return
// the updated buffer append-style; the caller must use the returned slice.
//
// Range methods take an index and a count that may each be null and apply
// the slice-defaulting convention:
//
//	index null, count null: index = 0, count = Count
//	index null, count set:  index = Count - count  (the last count slots)
//	index set,  count null: count = Count - index  (index to the end)
//	both set:               used as given
type Layout[T any] interface {
	// Kind returns the element kind of the layout's codec.
	Kind() format.Kind
	// Params returns the layout parameters.
	Params() Params

	// Create returns a new empty collection buffer.
	Create() []byte
	// Build returns a new exact-size collection buffer holding values.
	Build(values []Nullable[T]) ([]byte, error)
	// Source binds buf to this layout for use as an InsertRange/SetRange source.
	Source(buf []byte) Source[T]

	Count(buf []byte) (int, error)
	Get(buf []byte, i int) (Nullable[T], error)
	IndexOf(buf []byte, v Nullable[T]) (int, error)
	Values(buf []byte) ([]Nullable[T], error)
	Enumerate(buf []byte, index, count Nullable[int]) (iter.Seq2[int, Nullable[T]], error)

	Set(buf []byte, i int, v Nullable[T]) ([]byte, error)
	InsertAt(buf []byte, i int, v Nullable[T]) ([]byte, error)
	RemoveAt(buf []byte, i int) ([]byte, error)
	Remove(buf []byte, v Nullable[T]) ([]byte, error)
	Clear(buf []byte) ([]byte, error)

	GetRange(buf []byte, index, count Nullable[int]) ([]byte, error)
	RemoveRange(buf []byte, index, count Nullable[int]) ([]byte, error)
	InsertRange(buf []byte, index Nullable[int], src Source[T]) ([]byte, error)
	SetRange(buf []byte, index Nullable[int], src Source[T]) ([]byte, error)
	InsertRepeat(buf []byte, index Nullable[int], v Nullable[T], n int) ([]byte, error)
	SetRepeat(buf []byte, v Nullable[T], index, count Nullable[int]) ([]byte, error)

	Format(buf []byte) (string, error)
	Parse(text string) ([]byte, error)
	ToArray(buf []byte) ([]byte, error)
	Compact(buf []byte) ([]byte, error)
	Digest(buf []byte) (uint64, error)
	Stats(buf []byte) (Stats, error)
}

// Source is a collection buffer bound to the layout that encodes it.
type Source[T any] struct {
	layout Layout[T]
	buf    []byte
}

// NewSource binds buf to layout.
func NewSource[T any](layout Layout[T], buf []byte) Source[T] {
	return Source[T]{layout: layout, buf: buf}
}

// Layout returns the layout of the source.
func (s Source[T]) Layout() Layout[T] { return s.layout }

// Bytes returns the source buffer.
func (s Source[T]) Bytes() []byte { return s.buf }

// Count returns the number of slots in the source.
func (s Source[T]) Count() (int, error) {
	if s.layout == nil {
		return 0, errs.ErrNilBuffer
	}

	return s.layout.Count(s.buf)
}

// Values decodes every slot of the source.
func (s Source[T]) Values() ([]Nullable[T], error) {
	if s.layout == nil {
		return nil, errs.ErrNilBuffer
	}

	return s.layout.Values(s.buf)
}

// Stats describes how a collection buffer is laid out.
type Stats struct {
	Count         int
	NullCount     int
	HeaderBytes   int
	PresenceBytes int
	ValueBytes    int
	// SlackBytes counts bytes past the logical end of the collection.
	SlackBytes int
}

// TotalBytes returns the logical size of the collection.
func (s Stats) TotalBytes() int {
	return s.HeaderBytes + s.PresenceBytes + s.ValueBytes
}

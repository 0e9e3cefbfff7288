// Package options implements generic functional options for layout
// configuration.
package options

import "github.com/cockroachdb/errors"

// Option configures a target of type T.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a function to Option.
type Func[T any] struct {
	fn func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.fn(target)
}

// New returns an option that may reject the target state.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{fn: fn}
}

// NoError returns an option that cannot fail.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{fn: func(target T) error {
		fn(target)
		return nil
	}}
}

// Chain folds opts into a single option applied in order. Nil entries are
// skipped.
func Chain[T any](opts ...Option[T]) *Func[T] {
	return &Func[T]{fn: func(target T) error {
		return Apply(target, opts...)
	}}
}

// Apply applies opts to target in order and stops at the first failure. The
// returned error names the position of the failing option and keeps the
// option's own error for errors.Is.
func Apply[T any](target T, opts ...Option[T]) error {
	for i, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return errors.Wrapf(err, "option %d", i)
		}
	}

	return nil
}

package collection

import "fmt"

// Nullable is a collection element, a range index or a range count that may
// be null.
//
// A null Nullable is a domain value ("unknown"), distinct from a missing
// argument: a nil buffer is always an error, a null element is stored.
type Nullable[T any] struct {
	Value T
	Valid bool
}

// Some returns a non-null Nullable holding v.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Value: v, Valid: true}
}

// Null returns the null Nullable of type T.
func Null[T any]() Nullable[T] {
	return Nullable[T]{}
}

// Get returns the value and whether it is non-null.
func (n Nullable[T]) Get() (T, bool) {
	return n.Value, n.Valid
}

// IsNull reports whether n is null.
func (n Nullable[T]) IsNull() bool {
	return !n.Valid
}

func (n Nullable[T]) String() string {
	if !n.Valid {
		return "NULL"
	}

	return fmt.Sprint(n.Value)
}

// All is a convenience for building a slice of non-null elements.
func All[T any](values ...T) []Nullable[T] {
	out := make([]Nullable[T], len(values))
	for i, v := range values {
		out[i] = Some(v)
	}

	return out
}

// Package fragile wraps values that may only be used by the goroutine
// that created them.
//
// Toolkit bindings sometimes require callbacks that look callable from
// any goroutine even though they always run on the UI goroutine. Wrapping
// the captured value in a Fragile turns a violation of that assumption
// into a loud panic instead of a data race.
package fragile

import (
	"errors"

	"github.com/petermattis/goid"
)

// ErrWrongGoroutine is returned (or raised) when a Fragile value is
// accessed from a goroutine other than its owner.
var ErrWrongGoroutine = errors.New("fragile: value accessed from a foreign goroutine")

// Fragile holds a value owned by one goroutine.
type Fragile[T any] struct {
	value T
	owner int64
}

// New wraps v for the calling goroutine.
func New[T any](v T) *Fragile[T] {
	return &Fragile[T]{value: v, owner: goid.Get()}
}

// Valid reports whether the calling goroutine may access the value.
func (f *Fragile[T]) Valid() bool {
	return goid.Get() == f.owner
}

// TryGet returns the value, or ErrWrongGoroutine.
func (f *Fragile[T]) TryGet() (T, error) {
	if !f.Valid() {
		var zero T
		return zero, ErrWrongGoroutine
	}
	return f.value, nil
}

// Get returns the value and panics with ErrWrongGoroutine when called
// from a foreign goroutine.
func (f *Fragile[T]) Get() T {
	v, err := f.TryGet()
	if err != nil {
		panic(err)
	}
	return v
}

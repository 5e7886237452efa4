package stream

import "github.com/elizafairlady/go-relm/mainloop"

// Handle is a non-owning reference to an EventStream. Copying a Handle is
// cheap and does not keep the stream open. Using a handle whose stream
// was closed is a lifetime bug and panics with ErrStreamDropped.
type Handle[M any] struct {
	s *EventStream[M]
}

// Emit emits msg on the stream.
func (h Handle[M]) Emit(msg M) {
	h.must().Emit(msg)
}

// TryEmit is like Emit but returns ErrStreamDropped instead of panicking.
func (h Handle[M]) TryEmit(msg M) error {
	if !h.Alive() {
		return ErrStreamDropped
	}
	h.s.Emit(msg)
	return nil
}

// Observe adds an observer to the stream.
func (h Handle[M]) Observe(fn func(M)) {
	h.must().Observe(fn)
}

// Lock locks the stream; see EventStream.Lock.
func (h Handle[M]) Lock() *Lock {
	return h.must().Lock()
}

// Alive reports whether the stream is still open.
func (h Handle[M]) Alive() bool {
	return h.s != nil && !h.s.closed
}

// Context returns the context of the stream, or nil for the zero Handle.
func (h Handle[M]) Context() *mainloop.Context {
	if h.s == nil {
		return nil
	}
	return h.s.ctx
}

func (h Handle[M]) must() *EventStream[M] {
	if !h.Alive() {
		panic(ErrStreamDropped)
	}
	return h.s
}
